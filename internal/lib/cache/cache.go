// Package cache keeps read-through copies of catalog responses in Redis.
//
// A nil *Cache, a Cache without a client and a disabled Cache all behave as
// an always-missing cache. Redis failures are logged and reported as misses,
// so callers fall back to the database.
//
// Entries live under a per-resource generation, e.g. catalog:tags:g4:all.
// Writes bump the generation instead of deleting keys. An entry stored late
// by a read that began before a write lands under the old generation, which
// is never read again and expires with its TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/catalog-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "catalog"

type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
	logger  *zerolog.Logger
}

func New(client *redis.Client, cfg *config.CacheConfig, logger *zerolog.Logger) *Cache {
	if cfg == nil {
		cfg = config.DefaultCacheConfig()
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = config.DefaultCacheConfig().TTL
	}

	return &Cache{
		client:  client,
		ttl:     ttl,
		enabled: cfg.Enabled && client != nil,
		logger:  logger,
	}
}

// ListKey is the key of a whole resource listing at generation gen.
func ListKey(resource string, gen int64) string {
	return fmt.Sprintf("%s:%s:g%d:all", keyPrefix, resource, gen)
}

// ItemKey is the key of one resource row at generation gen.
func ItemKey(resource string, gen int64, id int) string {
	return fmt.Sprintf("%s:%s:g%d:%d", keyPrefix, resource, gen, id)
}

func generationKey(resource string) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, resource)
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

// Generation returns the current generation of resource. It must be read
// before the database is queried. ok is false when the cache is off or
// Redis failed; callers then neither read nor store.
func (c *Cache) Generation(ctx context.Context, resource string) (gen int64, ok bool) {
	if !c.Enabled() {
		return 0, false
	}

	gen, err := c.client.Get(ctx, generationKey(resource)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		c.logger.Warn().Err(err).Str("resource", resource).Msg("cache generation read failed")
		return 0, false
	}

	return gen, true
}

// Invalidate moves every resource to a new generation in one transaction.
func (c *Cache) Invalidate(ctx context.Context, resources ...string) {
	if !c.Enabled() || len(resources) == 0 {
		return
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, resource := range resources {
			pipe.Incr(ctx, generationKey(resource))
		}
		return nil
	})
	if err != nil {
		c.logger.Error().Err(err).Strs("resources", resources).Msg("cache invalidation failed")
	}
}

// Get decodes the value at key into dest and reports whether it was a hit.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		c.Delete(ctx, key)
		return false
	}

	return true
}

// Set stores value at key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("could not encode cache entry")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Delete removes keys. Invalidate is the way to drop entries after a write.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}
