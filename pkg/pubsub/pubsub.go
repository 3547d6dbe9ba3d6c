package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/viniapp/viniapp-node/internal/log"
)

// Event defines the payload
type Event interface {
	Marshal() (msg Message, err error)
	Unmarshal(msg Message) error
}

// Message is the payload received in a pubsub subscriber. The input for callback functions
type Message []byte

// Publisher sends topics to the pubsub
type Publisher interface {
	Publish(ctx context.Context, topic string, payload Event) error
}

// EventHandler is the type that functions that handle an Event must comply.
type EventHandler func(context.Context, Message) error

// Subscriber subscribes to the pubsub topics. Subscribe returns once the subscription is
// active and delivers messages in background until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, callback EventHandler)
}

// Client is formed by the publisher and subscriber
type Client interface {
	Publisher
	Subscriber
	Close() error
}

// payload is the envelope sent over the wire
type payload struct {
	ID   uuid.UUID `json:"id"`
	Time time.Time `json:"time"`
	Msg  []byte    `json:"msg"`
}

func newPayload(event Event) (*payload, error) {
	msg, err := event.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshalling event: %w", err)
	}
	return &payload{
		ID:   uuid.New(),
		Time: time.Now().UTC(),
		Msg:  msg,
	}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler
func (p payload) MarshalBinary() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler
func (p *payload) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, p)
}

// dispatch runs the callback protecting the subscriber loop from panics
func dispatch(ctx context.Context, topic string, data []byte, callback EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "panic in pubsub callback", "topic", topic, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	var p payload
	if err := p.UnmarshalBinary(data); err != nil {
		log.Error(ctx, "unmarshal msg payload", "topic", topic, "err", err)
		return
	}

	if err := callback(ctx, p.Msg); err != nil {
		log.Error(ctx, "executing callback function", "topic", topic, "msg_id", p.ID, "err", err)
	}
}
