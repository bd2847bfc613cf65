package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis so every API replica shares one
// directory download.
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedis wraps an existing client. Keys are namespaced with prefix.
func NewRedis(client *redis.Client, prefix string, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

// Get returns the stored bytes. Redis errors other than a miss are logged and
// treated as a miss so the caller falls through to the provider.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis cache get failed", "key", key, "error", err)
		}
		return nil, "", false
	}
	return data, ComputeETag(data), true
}

// Set stores data with a TTL. Write failures are logged, not returned.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn("Redis cache set failed", "key", key, "error", err)
	}
	return ComputeETag(data)
}

// Stats returns connection pool statistics.
func (c *RedisCache) Stats() map[string]interface{} {
	ps := c.client.PoolStats()
	return map[string]interface{}{
		"backend":     "redis",
		"enabled":     true,
		"hits":        ps.Hits,
		"misses":      ps.Misses,
		"timeouts":    ps.Timeouts,
		"total_conns": ps.TotalConns,
		"idle_conns":  ps.IdleConns,
	}
}

// Ping verifies connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
