package pubsub

import (
	"context"
	"errors"

	"github.com/valkey-io/valkey-go"

	"github.com/viniapp/viniapp-node/internal/log"
)

type valkeyClient struct {
	client valkey.Client
}

// NewValKeyClient returns a new pubsub client based on Valkey
func NewValKeyClient(client valkey.Client) Client {
	return &valkeyClient{
		client: client,
	}
}

// Publish publishes a new topic payload
func (vk *valkeyClient) Publish(ctx context.Context, topic string, event Event) error {
	p, err := newPayload(event)
	if err != nil {
		return err
	}
	data, err := p.MarshalBinary()
	if err != nil {
		log.Error(ctx, "error marshalling payload", "err", err)
		return err
	}
	return vk.client.Do(ctx, vk.client.B().Publish().Channel(topic).Message(string(data)).Build()).Error()
}

// Subscribe adds a topic to the subscriber
func (vk *valkeyClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	go func() {
		err := vk.client.Receive(ctx, vk.client.B().Subscribe().Channel(topic).Build(), func(msg valkey.PubSubMessage) {
			dispatch(ctx, topic, []byte(msg.Message), callback)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "error subscribing to topic", "topic", topic, "err", err)
		}
	}()
}

// Close closes the pubsub client
func (vk *valkeyClient) Close() error {
	vk.client.Close()
	return nil
}
