// Package http wires the gin route tree and the HTTP server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/prometheus"
	"github.com/procurelens/ProcureLens/internal/interfaces/http/handlers"
	"github.com/procurelens/ProcureLens/internal/interfaces/http/middleware"
)

// RouterConfig aggregates everything the route tree needs.
type RouterConfig struct {
	Mode string // gin mode: "debug" | "release" | "test"

	Analysis  *handlers.AnalysisHandler
	Documents *handlers.DocumentHandler
	Health    *handlers.HealthHandler

	Metrics  *prometheus.Metrics
	Gatherer promclient.Gatherer

	Logger logging.Logger
}

// NewRouter builds the full route tree: health probes, the metrics endpoint,
// and the versioned API group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(cfg.Logger),
		middleware.CORS(),
		middleware.RequestLogging(cfg.Logger, "/healthz", "/readyz", "/metrics"),
	)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Liveness)
		r.GET("/readyz", cfg.Health.Readiness)
	}
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	if cfg.Analysis != nil {
		api.POST("/analyses", cfg.Analysis.Analyze)
		api.POST("/documents/:id/analyses", cfg.Analysis.AnalyzeDocument)
	}
	if cfg.Documents != nil {
		api.POST("/documents", cfg.Documents.Upload)
		api.GET("/documents/:id", cfg.Documents.Get)
	}

	return r
}
