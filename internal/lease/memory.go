package lease

import (
	"context"
	"time"

	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/syncttlmap"
)

const memoryCleaningPeriod = time.Minute

type memoryLease struct {
	locks *syncttlmap.TTLMap
}

// NewMemory returns a lease that only protects steps run by this process.
// Expired entries are cleaned until ctx is done.
func NewMemory(ctx context.Context) ports.Lease {
	locks := syncttlmap.New(0)
	locks.CleaningBackground(ctx, memoryCleaningPeriod)
	return &memoryLease{locks: locks}
}

// Acquire stores the key only if it is missing or expired
func (l *memoryLease) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := newToken()
	if !l.locks.StoreIfAbsent(key, token, ttl) {
		return "", false, nil
	}
	return token, true, nil
}

// Release removes the key if it is still owned by token
func (l *memoryLease) Release(_ context.Context, key string, token string) error {
	l.locks.CompareAndDelete(key, token)
	return nil
}
