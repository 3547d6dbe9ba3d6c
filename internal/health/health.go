package health

import (
	"context"
)

const (
	db    = "db"
	cache = "cache"
)

// Status struct
type Status struct {
	pingers map[string]Ping
}

// Ping interface
type Ping interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to the Ping interface
type PingFunc func(ctx context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// New returns a Health instance. A nil cache pinger means the cache lives in process
// and is always reported as healthy.
func New(dbPinger Ping, cachePinger Ping) *Status {
	if cachePinger == nil {
		cachePinger = PingFunc(func(context.Context) error { return nil })
	}
	return &Status{map[string]Ping{db: dbPinger, cache: cachePinger}}
}

// Status returns the whether the cache and the db is active or not
func (h *Status) Status(ctx context.Context) map[string]bool {
	m := make(map[string]bool)

	for key, val := range h.pingers {
		m[key] = true
		if val == nil {
			m[key] = false
			continue
		}
		if err := val.Ping(ctx); err != nil {
			m[key] = false
		}
	}

	return m
}

// DB tells whether the database answered the last ping
func (h *Status) DB(ctx context.Context) bool {
	return h.check(ctx, db)
}

// Cache tells whether the cache answered the last ping
func (h *Status) Cache(ctx context.Context) bool {
	return h.check(ctx, cache)
}

func (h *Status) check(ctx context.Context, key string) bool {
	p := h.pingers[key]
	return p != nil && p.Ping(ctx) == nil
}
