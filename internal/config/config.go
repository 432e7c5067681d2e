// Package config defines the configuration structures for ProcureLens. No I/O
// or parsing logic lives here, only plain data types and validation; loading
// is in loader.go and defaults in defaults.go.
package config

import (
	"time"

	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the document
// metadata store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis connection parameters for the analysis result cache.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ResultTTL   time.Duration `mapstructure:"result_ttl"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds the producer parameters for analysis completion events.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
}

// MinIOConfig holds object-storage parameters for raw document content.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// AIConfig holds the external contract analysis service parameters. When
// Enabled is false (or BaseURL is empty) every analysis runs the heuristic
// pipeline.
type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	AI       AIConfig       `mapstructure:"ai"`
	Log      logging.Config `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config. Any
// error is fatal; callers must refuse to start with an invalid config.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Newf(errors.ErrCodeInvalidConfig, "server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.Newf(errors.ErrCodeInvalidConfig, "server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	if c.Database.Host == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "database.host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return errors.Newf(errors.ErrCodeInvalidConfig, "database.port %d is out of range [1, 65535]", c.Database.Port)
	}
	if c.Database.User == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "database.db_name is required")
	}

	if c.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return errors.Newf(errors.ErrCodeInvalidConfig, "redis.db must be >= 0, got %d", c.Redis.DB)
	}

	if len(c.Kafka.Brokers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "kafka.brokers must contain at least one broker address")
	}
	if c.Kafka.Topic == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "kafka.topic is required")
	}

	if c.MinIO.Endpoint == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "minio.endpoint is required")
	}
	if c.MinIO.Bucket == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "minio.bucket is required")
	}

	if c.AI.Enabled && c.AI.BaseURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "ai.base_url is required when ai.enabled is true")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.ErrCodeInvalidConfig, "log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Newf(errors.ErrCodeInvalidConfig, "log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
