package services

import (
	"context"
	"time"

	"github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/pkg/cache"
)

const verificationCacheKeyPrefix = "viniapp-node:verification:"

type cachedVerifier struct {
	next  ports.TransactionVerifier
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedVerifier memoizes valid verifications for ttl. Invalid results are never cached
// so a transaction that is not mined yet can be verified again later.
func NewCachedVerifier(next ports.TransactionVerifier, c cache.Cache, ttl time.Duration) ports.TransactionVerifier {
	return &cachedVerifier{next: next, cache: c, ttl: ttl}
}

func (c *cachedVerifier) Verify(ctx context.Context, transactionHash string) *domain.VerificationResult {
	key := verificationCacheKeyPrefix + common.NormalizeHex(transactionHash)

	var cached domain.VerificationResult
	if c.cache.Get(ctx, key, &cached) && cached.Valid {
		log.Debug(ctx, "verification cache hit", "key", key)
		return &cached
	}

	result := c.next.Verify(ctx, transactionHash)
	if result.Valid {
		if err := c.cache.Set(ctx, key, *result, c.ttl); err != nil {
			log.Warn(ctx, "cannot cache verification", "key", key, "err", err)
		}
	}
	return result
}
