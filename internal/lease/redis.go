package lease

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/viniapp/viniapp-node/internal/core/ports"
)

type redisLease struct {
	rdb     *redis.Client
	release *redis.Script
}

// NewRedis returns a lease stored in redis
func NewRedis(rdb *redis.Client) ports.Lease {
	return &redisLease{rdb: rdb, release: redis.NewScript(releaseScript)}
}

// Acquire sets the key only if it does not exist
func (l *redisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release removes the key if it is still owned by token
func (l *redisLease) Release(ctx context.Context, key string, token string) error {
	return l.release.Run(ctx, l.rdb, []string{key}, token).Err()
}
