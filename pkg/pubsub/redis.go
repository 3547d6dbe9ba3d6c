package pubsub

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/viniapp/viniapp-node/internal/log"
)

// RedisClient struct
type RedisClient struct {
	conn *redis.Client
}

// NewRedis returns a redis pubsub client
func NewRedis(rdb *redis.Client) Client {
	return &RedisClient{rdb}
}

// Publish publishes a new topic payload
func (rdb *RedisClient) Publish(ctx context.Context, topic string, event Event) error {
	p, err := newPayload(event)
	if err != nil {
		return err
	}
	return rdb.conn.Publish(ctx, topic, p).Err()
}

// Subscribe adds a topic to the subscriber. Messages are handled one at a time.
func (rdb *RedisClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	sub := rdb.conn.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		log.Error(ctx, "subscribing to topic", "topic", topic, "err", err)
		_ = sub.Close()
		return
	}

	ch := sub.Channel()
	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if event.Channel != topic {
					log.Error(ctx, "msg channel != topic", "channel", event.Channel, "topic", topic)
					continue
				}
				dispatch(ctx, topic, []byte(event.Payload), callback)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close closes the redis connection
func (rdb *RedisClient) Close() error {
	return rdb.conn.Close()
}
