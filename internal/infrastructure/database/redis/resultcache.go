// Package redis provides the analysis result cache. Caching is strictly an
// application-layer concern: the engine never reads cached results to
// re-score, and a cache outage degrades to recomputing analyses.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/internal/config"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// commands is the subset of the redis client the cache needs; tests supply a
// fake implementation.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// ResultCache is a TTL cache of finished analysis results keyed by document
// content hash, type, and vendor id. Every operation is best effort: failures
// are logged and reported as misses, never propagated.
type ResultCache struct {
	client commands
	logger logging.Logger
	prefix string
	ttl    time.Duration
}

// NewResultCache connects a cache to the configured redis instance.
func NewResultCache(cfg config.RedisConfig, log logging.Logger) *ResultCache {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	return newResultCache(client, log, cfg.KeyPrefix, cfg.ResultTTL)
}

func newResultCache(client commands, log logging.Logger, prefix string, ttl time.Duration) *ResultCache {
	return &ResultCache{client: client, logger: log, prefix: prefix, ttl: ttl}
}

// Key derives the cache key for a document. Contract id and name do not
// affect the key, so re-submissions of the same text reuse the cached result.
// The vendor id does: the vendor lens reports whether one was supplied, so
// results computed with and without a vendor are not interchangeable.
func Key(content string, docType risk.DocumentType, vendorID string) string {
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte{0})
	h.Write([]byte(vendorID))
	return fmt.Sprintf("analysis:%s:%s", hex.EncodeToString(h.Sum(nil)), docType)
}

func (c *ResultCache) fullKey(key string) string {
	return c.prefix + ":" + key
}

// Get returns the cached result for key, or nil on a miss or any error.
func (c *ResultCache) Get(ctx context.Context, key string) *analysis.Result {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		c.logger.Warn("result cache read failed", logging.String("key", key), logging.Err(err))
		return nil
	}
	var res analysis.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("result cache entry undecodable", logging.String("key", key), logging.Err(err))
		return nil
	}
	return &res
}

// Set stores res under key with the configured TTL. Failures are logged only.
func (c *ResultCache) Set(ctx context.Context, key string, res *analysis.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("result cache marshal failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.ttl).Err(); err != nil {
		c.logger.Warn("result cache write failed", logging.String("key", key), logging.Err(err))
	}
}

// Ping verifies connectivity; used by the health endpoint.
func (c *ResultCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
