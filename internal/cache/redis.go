package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"github.com/viniapp/viniapp-node/internal/log"
	pkgcache "github.com/viniapp/viniapp-node/pkg/cache"
)

type redisCache struct {
	client *redis.Client
	codec  *cache.Cache
}

// NewRedisCache returns a cache stored in redis. Values are msgpack encoded by go-redis/cache
// and never kept in a process local layer, so every replica sees the same entries.
func NewRedisCache(client *redis.Client) pkgcache.Cache {
	return &redisCache{
		client: client,
		codec:  cache.New(&cache.Options{Redis: client}),
	}
}

// Set stores value under key. A ttl of pkgcache.ForEver keeps the entry without expiration.
func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl == pkgcache.ForEver {
		ttl = -1
	}
	return c.codec.Set(&cache.Item{
		Ctx:            ctx,
		Key:            key,
		Value:          value,
		TTL:            ttl,
		SkipLocalCache: true,
	})
}

// Get decodes the entry stored under key into value. Misses are silent, backend
// and decoding errors are logged and reported as a miss.
func (c *redisCache) Get(ctx context.Context, key string, value any) bool {
	err := c.codec.Get(ctx, key, value)
	switch {
	case err == nil:
		return true
	case errors.Is(err, cache.ErrCacheMiss):
	default:
		log.Warn(ctx, "redis cache get", "key", key, "err", err)
	}
	return false
}

func (c *redisCache) Exists(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		log.Warn(ctx, "redis cache exists", "key", key, "err", err)
		return false
	}
	return n == 1
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	err := c.codec.Delete(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}
