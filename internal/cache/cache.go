package cache

import (
	"context"
	"fmt"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/health"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/redis"
	"github.com/viniapp/viniapp-node/pkg/cache"
)

// NewCacheClient - creates a new cache client based on the configuration.
// The returned pinger is nil for the in memory cache.
func NewCacheClient(ctx context.Context, cfg config.Configuration) (cache.Cache, health.Ping, error) {
	switch cfg.Cache.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return nil, nil, err
		}
		pinger := health.PingFunc(func(ctx context.Context) error { return redis.Status(ctx, rdb) })
		return NewRedisCache(rdb), pinger, nil
	case config.CacheProviderValKey:
		client, err := redis.OpenValKey(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.Cache.Url)
			return nil, nil, err
		}
		pinger := health.PingFunc(func(ctx context.Context) error {
			return client.Do(ctx, client.B().Ping().Build()).Error()
		})
		return NewValKeyCache(client), pinger, nil
	case config.CacheProviderMemory:
		return cache.NewMemoryCache(), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown cache provider <%s>", cfg.Cache.Provider)
}
