package pubsub

import (
	"context"
	"sync"
)

type memoryClient struct {
	mu       sync.RWMutex
	handlers map[string][]*memorySubscription
}

// memorySubscription holds an unbounded queue. Publishing never waits for the consumer,
// so a callback may publish to its own topic.
type memorySubscription struct {
	mu      sync.Mutex
	pending [][]byte
	signal  chan struct{}
}

// NewMemory returns a pubsub client that delivers messages inside the process.
// Each subscription gets its messages in publishing order.
func NewMemory() Client {
	return &memoryClient{handlers: make(map[string][]*memorySubscription)}
}

// Publish queues the event in every active subscription of topic
func (m *memoryClient) Publish(ctx context.Context, topic string, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := newPayload(event)
	if err != nil {
		return err
	}
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.handlers[topic] {
		sub.push(data)
	}
	return nil
}

// Subscribe adds a topic to the subscriber
func (m *memoryClient) Subscribe(ctx context.Context, topic string, callback EventHandler) {
	sub := &memorySubscription{signal: make(chan struct{}, 1)}

	m.mu.Lock()
	m.handlers[topic] = append(m.handlers[topic], sub)
	m.mu.Unlock()

	go func() {
		defer m.unsubscribe(topic, sub)
		for {
			select {
			case <-sub.signal:
				for _, data := range sub.drain() {
					if ctx.Err() != nil {
						return
					}
					dispatch(ctx, topic, data, callback)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *memorySubscription) push(data []byte) {
	s.mu.Lock()
	s.pending = append(s.pending, data)
	s.mu.Unlock()
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *memorySubscription) drain() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

func (m *memoryClient) unsubscribe(topic string, sub *memorySubscription) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.handlers[topic]
	for i := range subs {
		if subs[i] == sub {
			m.handlers[topic] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Close does nothing. Subscriptions end with their context.
func (m *memoryClient) Close() error {
	return nil
}
