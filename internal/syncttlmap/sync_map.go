package syncttlmap

import (
	"context"
	"sync"
	"time"
)

// TTLMap is a concurrent map whose entries expire.
// Values must be comparable to be used with StoreIfAbsent and CompareAndDelete.
type TTLMap struct {
	TTL  time.Duration
	data sync.Map
}

type expireEntry struct {
	ExpiresAt time.Time
	Value     interface{}
}

func (e expireEntry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store saves a key/value pair into TTLMap using the default TTL
func (t *TTLMap) Store(key string, val interface{}) {
	t.data.Store(key, expireEntry{
		ExpiresAt: time.Now().Add(t.TTL),
		Value:     val,
	})
}

// StoreIfAbsent saves the pair only when key is missing or expired. Returns whether it was stored.
func (t *TTLMap) StoreIfAbsent(key string, val interface{}, ttl time.Duration) bool {
	entry := expireEntry{ExpiresAt: time.Now().Add(ttl), Value: val}
	for {
		current, loaded := t.data.LoadOrStore(key, entry)
		if !loaded {
			return true
		}
		if !current.(expireEntry).expired(time.Now()) {
			return false
		}
		if t.data.CompareAndSwap(key, current, entry) {
			return true
		}
	}
}

// Delete deletes the given key from TTLMap
func (t *TTLMap) Delete(key string) {
	t.data.Delete(key)
}

// CompareAndDelete deletes key only if it holds val. Returns whether it was deleted.
func (t *TTLMap) CompareAndDelete(key string, val interface{}) bool {
	current, ok := t.data.Load(key)
	if !ok || current.(expireEntry).Value != val {
		return false
	}
	return t.data.CompareAndDelete(key, current)
}

// Load retrieves the value of the given key from TTLMap
func (t *TTLMap) Load(key string) (val interface{}) {
	entry, ok := t.data.Load(key)
	if !ok {
		return nil
	}

	expireEntry := entry.(expireEntry)
	if expireEntry.expired(time.Now()) {
		return nil
	}

	return expireEntry.Value
}

// CleaningBackground starts a go routine for cleaning expired entries until ctx is done
func (t *TTLMap) CleaningBackground(ctx context.Context, cleaning time.Duration) {
	go func() {
		ticker := time.NewTicker(cleaning)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				t.data.Range(func(k, v interface{}) bool {
					if v.(expireEntry).expired(now) {
						t.data.CompareAndDelete(k, v)
					}
					return true
				})
			case <-ctx.Done():
				return
			}
		}
	}()
}

// New returns a new TTLMap
func New(ttl time.Duration) *TTLMap {
	return &TTLMap{TTL: ttl}
}
