// Package rediscache wraps an optional Redis instance used as a read-through
// layer in front of Postgres-backed caches. Every method on a nil *Cache is a
// no-op, so callers wire it unconditionally and run fine without Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/casefolio/backend/internal/platform/envutil"
	"github.com/casefolio/backend/internal/platform/logger"
)

type Cache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// New connects to REDIS_ADDR. A missing address is not an error; it returns
// (nil, nil) and the nil cache degrades to pass-through.
func New(log *logger.Logger) (*Cache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttlSec := envutil.Int("REDIS_CACHE_TTL_SECONDS", 300)

	return &Cache{
		log: log.With("service", "RedisCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

// GetJSON loads key into dest. Returns false on miss, on decode failure, or
// when the cache is absent.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Bad cached payload", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON stores value under key with the configured TTL. Failures are logged
// and swallowed; the Postgres row remains the source of truth.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode cache value", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to write cache", "key", key, "error", err)
	}
}

// Invalidate drops a key. Best effort.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Failed to invalidate cache", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
