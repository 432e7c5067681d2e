// API server entry point for ProcureLens.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	engine "github.com/procurelens/ProcureLens/internal/analysis"
	appanalysis "github.com/procurelens/ProcureLens/internal/application/analysis"
	appdocuments "github.com/procurelens/ProcureLens/internal/application/documents"
	"github.com/procurelens/ProcureLens/internal/config"
	"github.com/procurelens/ProcureLens/internal/infrastructure/database/postgres"
	"github.com/procurelens/ProcureLens/internal/infrastructure/database/redis"
	"github.com/procurelens/ProcureLens/internal/infrastructure/messaging/kafka"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
	"github.com/procurelens/ProcureLens/internal/infrastructure/storage/minio"
	"github.com/procurelens/ProcureLens/internal/intelligence/riskai"
	httpserver "github.com/procurelens/ProcureLens/internal/interfaces/http"
	"github.com/procurelens/ProcureLens/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting procurelens api server",
		logging.Int("port", cfg.Server.Port),
		logging.Bool("ai_enabled", cfg.AI.Enabled),
	)

	// Infrastructure.
	pool, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(postgres.DSN(cfg.Database), logger); err != nil {
		return err
	}

	objectStore, err := minio.NewStore(cfg.MinIO, logger)
	if err != nil {
		return err
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		return err
	}

	cache := redis.NewResultCache(cfg.Redis, logger)
	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", logging.Err(err))
		}
	}()

	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := prometheus.NewMetrics(registry)

	// Analysis engine, AI path optional.
	var ai engine.AIClient
	if cfg.AI.Enabled && cfg.AI.BaseURL != "" {
		client, err := riskai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, riskai.WithTimeout(cfg.AI.Timeout))
		if err != nil {
			return err
		}
		ai = client
	}
	eng := engine.NewEngine(ai, logger, engine.WithAITimeout(cfg.AI.Timeout))

	// Application services.
	docService := appdocuments.NewService(postgres.NewDocumentRepository(pool, logger), objectStore, logger)
	analysisService := appanalysis.NewService(eng, docService, cache, producer, metrics, logger)

	// HTTP interface.
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Mode:      cfg.Server.Mode,
		Analysis:  handlers.NewAnalysisHandler(analysisService, logger),
		Documents: handlers.NewDocumentHandler(docService, logger),
		Health: handlers.NewHealthHandler(logger, map[string]handlers.Pinger{
			"postgres": pool.Ping,
			"redis":    cache.Ping,
		}),
		Metrics:  metrics,
		Gatherer: registry,
		Logger:   logger,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	return server.Stop(context.Background())
}
