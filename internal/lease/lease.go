package lease

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/redis"
)

// keyPrefix namespaces every lease stored in a shared backend
const keyPrefix = "viniapp-node:pipeline:"

// releaseScript deletes the key only when it still holds the caller token
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

// Key returns the lease key of a viniapp
func Key(viniappID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, viniappID)
}

// New returns the lease implementation matching the cache provider
func New(ctx context.Context, cfg config.Configuration) (ports.Lease, error) {
	switch cfg.Cache.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewRedis(rdb), nil
	case config.CacheProviderValKey:
		client, err := redis.OpenValKey(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return NewValKey(client), nil
	case config.CacheProviderMemory:
		return NewMemory(ctx), nil
	}
	return nil, fmt.Errorf("unknown cache provider <%s>", cfg.Cache.Provider)
}

func newToken() string {
	return uuid.NewString()
}
