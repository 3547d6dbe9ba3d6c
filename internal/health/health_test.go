package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	ko := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	type testConfig struct {
		name     string
		db       Ping
		cache    Ping
		expected map[string]bool
	}
	for _, tc := range []testConfig{
		{name: "all up", db: ok, cache: ok, expected: map[string]bool{"db": true, "cache": true}},
		{name: "db down", db: ko, cache: ok, expected: map[string]bool{"db": false, "cache": true}},
		{name: "cache down", db: ok, cache: ko, expected: map[string]bool{"db": true, "cache": false}},
		{name: "in process cache", db: ok, cache: nil, expected: map[string]bool{"db": true, "cache": true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := New(tc.db, tc.cache)
			assert.Equal(t, tc.expected, h.Status(context.Background()))
			assert.Equal(t, tc.expected["db"], h.DB(context.Background()))
			assert.Equal(t, tc.expected["cache"], h.Cache(context.Background()))
		})
	}
}
