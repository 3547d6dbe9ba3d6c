package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/viniapp/viniapp-node/internal/log"
	pkgcache "github.com/viniapp/viniapp-node/pkg/cache"
)

type valKeyCache struct {
	client valkey.Client
}

// NewValKeyCache returns a cache stored in valkey. Values are json encoded.
func NewValKeyCache(client valkey.Client) pkgcache.Cache {
	return &valKeyCache{client: client}
}

func (v *valKeyCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	set := v.client.B().Set().Key(key).Value(valkey.BinaryString(raw))
	if ttl == pkgcache.ForEver {
		return v.client.Do(ctx, set.Build()).Error()
	}
	return v.client.Do(ctx, set.Px(ttl).Build()).Error()
}

// Get decodes the entry stored under key into value. Misses are silent, backend
// and decoding errors are logged and reported as a miss.
func (v *valKeyCache) Get(ctx context.Context, key string, value any) bool {
	raw, err := v.client.Do(ctx, v.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			log.Warn(ctx, "valkey cache get", "key", key, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, value); err != nil {
		log.Warn(ctx, "valkey cache decode", "key", key, "err", err)
		return false
	}
	return true
}

func (v *valKeyCache) Exists(ctx context.Context, key string) bool {
	n, err := v.client.Do(ctx, v.client.B().Exists().Key(key).Build()).AsInt64()
	if err != nil {
		log.Warn(ctx, "valkey cache exists", "key", key, "err", err)
		return false
	}
	return n == 1
}

func (v *valKeyCache) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(key).Build()).Error()
}
