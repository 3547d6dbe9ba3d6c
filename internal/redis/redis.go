package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/valkey-io/valkey-go"
)

// Open opens a connection to redis and returns it
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := Status(ctx, rdb); err != nil {
		return nil, err
	}
	return rdb, nil
}

// Status returns nil of redis status is ok. Otherwise a redis status err
func Status(ctx context.Context, rdb *redis.Client) error {
	if pingCmd := rdb.Ping(ctx); pingCmd.Err() != nil {
		return pingCmd.Err()
	}
	return nil
}

// OpenValKey opens a connection to a valkey server. url accepts the redis:// scheme.
func OpenValKey(ctx context.Context, url string) (valkey.Client, error) {
	opts, err := valkey.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing valkey url: %w", err)
	}
	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, err
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
