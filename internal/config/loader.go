package config

import (
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/procurelens/ProcureLens/pkg/errors"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "PROCURELENS"

// configKeys enumerates every settable key with its zero value. Viper only
// consults environment variables for keys it already knows about, so without
// this registration a purely env-driven LoadFromEnv would see nothing.
var configKeys = map[string]interface{}{
	"server.port":             0,
	"server.mode":             "",
	"server.read_timeout":     time.Duration(0),
	"server.write_timeout":    time.Duration(0),
	"server.shutdown_timeout": time.Duration(0),

	"database.host":              "",
	"database.port":              0,
	"database.user":              "",
	"database.password":          "",
	"database.db_name":           "",
	"database.ssl_mode":          "",
	"database.max_conns":         0,
	"database.min_conns":         0,
	"database.conn_max_lifetime": time.Duration(0),

	"redis.addr":         "",
	"redis.password":     "",
	"redis.db":           0,
	"redis.dial_timeout": time.Duration(0),
	"redis.result_ttl":   time.Duration(0),
	"redis.key_prefix":   "",

	"kafka.brokers":       []string{},
	"kafka.topic":         "",
	"kafka.batch_timeout": time.Duration(0),

	"minio.endpoint":   "",
	"minio.access_key": "",
	"minio.secret_key": "",
	"minio.bucket":     "",
	"minio.use_ssl":    false,

	"ai.enabled":  false,
	"ai.base_url": "",
	"ai.api_key":  "",
	"ai.timeout":  time.Duration(0),

	"log.level":        "",
	"log.format":       "",
	"log.output_paths": []string{},
}

// newViper builds a pre-configured viper instance: YAML files, PROCURELENS_
// env prefix, automatic env binding, and a key replacer so that nested keys
// like "database.host" resolve to "PROCURELENS_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, zero := range configKeys {
		v.SetDefault(key, zero)
	}
	return v
}

// Load reads the YAML file at configPath, merges PROCURELENS_* environment
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "read config file "+configPath)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from PROCURELENS_* environment
// variables, with no config file required. This is the loading strategy for
// containerised deployments:
//
//	PROCURELENS_<SECTION>_<FIELD>   e.g. PROCURELENS_DATABASE_HOST
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidConfig, "unmarshal configuration")
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with each newly parsed valid
// Config. Intended for hot-reloading the safe subset of settings (log level
// in particular); callers decide which changes to apply at runtime. A change
// that fails to parse or validate is skipped without invoking the callback.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first, so errors here
	// only mean the watcher starts from an empty state.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}
