package lease

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/viniapp/viniapp-node/internal/core/ports"
)

type valkeyLease struct {
	client  valkey.Client
	release *valkey.Lua
}

// NewValKey returns a lease stored in valkey
func NewValKey(client valkey.Client) ports.Lease {
	return &valkeyLease{client: client, release: valkey.NewLuaScript(releaseScript)}
}

// Acquire sets the key only if it does not exist
func (l *valkeyLease) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := newToken()
	err := l.client.Do(ctx, l.client.B().Set().Key(key).Value(token).Nx().Px(ttl).Build()).Error()
	if valkey.IsValkeyNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

// Release removes the key if it is still owned by token
func (l *valkeyLease) Release(ctx context.Context, key string, token string) error {
	return l.release.Exec(ctx, l.client, []string{key}, []string{token}).Error()
}
