package pubsub

import (
	"context"
	"fmt"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/redis"
	"github.com/viniapp/viniapp-node/pkg/pubsub"
)

// NewPubSub - creates a new pubsub client based on the configuration
func NewPubSub(ctx context.Context, cfg config.Configuration) (pubsub.Client, error) {
	switch cfg.Cache.Provider {
	case config.CacheProviderRedis:
		rdb, err := redis.Open(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to redis", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return pubsub.NewRedis(rdb), nil
	case config.CacheProviderValKey:
		client, err := redis.OpenValKey(ctx, cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot connect to valkey", "err", err, "host", cfg.Cache.Url)
			return nil, err
		}
		return pubsub.NewValKeyClient(client), nil
	case config.CacheProviderMemory:
		return pubsub.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown cache provider <%s>", cfg.Cache.Provider)
}
