package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/pkg/cache"
)

const (
	testContract = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	testMethod   = "DEADBEEF"
	testHash     = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
)

type fakeChain struct {
	receipt        json.RawMessage
	receiptErr     error
	tx             json.RawMessage
	txErr          error
	receiptCalls   int
	txCalls        int
	requestedHashs []string
}

func (f *fakeChain) TransactionReceipt(_ context.Context, hash string) (json.RawMessage, error) {
	f.receiptCalls++
	f.requestedHashs = append(f.requestedHashs, hash)
	return f.receipt, f.receiptErr
}

func (f *fakeChain) TransactionByHash(_ context.Context, hash string) (json.RawMessage, error) {
	f.txCalls++
	f.requestedHashs = append(f.requestedHashs, hash)
	return f.tx, f.txErr
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func validChain() *fakeChain {
	return &fakeChain{
		receipt: raw(`{"status":"0x1","to":"0xabcdef0123456789abcdef0123456789abcdef01"}`),
		tx:      raw(`{"input":"0xdeadbeef000000000000000000000000000000000000000000000000000000000000002a"}`),
	}
}

func TestVerifier_Verify(t *testing.T) {
	type expected struct {
		valid       bool
		err         string
		receipt     bool
		transaction bool
		txCalls     int
	}
	type testConfig struct {
		name     string
		chain    func() *fakeChain
		expected expected
	}
	for _, tc := range []testConfig{
		{
			name:     "valid transaction",
			chain:    validChain,
			expected: expected{valid: true, receipt: true, transaction: true, txCalls: 1},
		},
		{
			name: "numeric status",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = raw(`{"status":"1","to":"0xABCDEF0123456789ABCDEF0123456789ABCDEF01"}`)
				return c
			},
			expected: expected{valid: true, receipt: true, transaction: true, txCalls: 1},
		},
		{
			name: "receipt without status",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = raw(`{"status":null,"to":"abcdef0123456789abcdef0123456789abcdef01"}`)
				return c
			},
			expected: expected{valid: true, receipt: true, transaction: true, txCalls: 1},
		},
		{
			name: "receipt not found",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = nil
				return c
			},
			expected: expected{err: "Transaction not found on blockchain"},
		},
		{
			name: "reverted transaction",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = raw(`{"status":"0x0","to":"0xabcdef0123456789abcdef0123456789abcdef01"}`)
				return c
			},
			expected: expected{err: "Transaction failed on blockchain", receipt: true},
		},
		{
			name: "contract creation",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = raw(`{"status":"0x1","to":null}`)
				return c
			},
			expected: expected{err: `Transaction receipt does not contain a "to" address`, receipt: true},
		},
		{
			name: "other contract",
			chain: func() *fakeChain {
				c := validChain()
				c.receipt = raw(`{"status":"0x1","to":"0x0000000000000000000000000000000000000001"}`)
				return c
			},
			expected: expected{
				err:     "Transaction is not to the expected contract. Expected: 0xabcdef0123456789abcdef0123456789abcdef01, Got: 0x0000000000000000000000000000000000000001",
				receipt: true,
			},
		},
		{
			name: "transaction details missing",
			chain: func() *fakeChain {
				c := validChain()
				c.tx = nil
				return c
			},
			expected: expected{err: "Failed to retrieve transaction details", txCalls: 1},
		},
		{
			name: "no input",
			chain: func() *fakeChain {
				c := validChain()
				c.tx = raw(`{"input":"0x"}`)
				return c
			},
			expected: expected{err: "Transaction has no input data", transaction: true, txCalls: 1},
		},
		{
			name: "selector with nine chars",
			chain: func() *fakeChain {
				c := validChain()
				c.tx = raw(`{"input":"0xdeadbee"}`)
				return c
			},
			expected: expected{err: "Transaction input data is too short to contain a method selector", transaction: true, txCalls: 1},
		},
		{
			name: "selector with exactly ten chars",
			chain: func() *fakeChain {
				c := validChain()
				c.tx = raw(`{"input":"0xDEADBEEF"}`)
				return c
			},
			expected: expected{valid: true, receipt: true, transaction: true, txCalls: 1},
		},
		{
			name: "other method",
			chain: func() *fakeChain {
				c := validChain()
				c.tx = raw(`{"input":"0xa9059cbb0000"}`)
				return c
			},
			expected: expected{
				err:         "Transaction method does not match. Expected: 0xdeadbeef, Got: 0xa9059cbb",
				transaction: true,
				txCalls:     1,
			},
		},
		{
			name: "receipt rpc failure",
			chain: func() *fakeChain {
				c := validChain()
				c.receiptErr = errors.New("RPC request failed: bad gateway")
				return c
			},
			expected: expected{err: "Failed to verify transaction: RPC request failed: bad gateway"},
		},
		{
			name: "transaction rpc failure",
			chain: func() *fakeChain {
				c := validChain()
				c.txErr = errors.New("RPC error: boom")
				return c
			},
			expected: expected{err: "Failed to verify transaction: RPC error: boom", txCalls: 1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			chain := tc.chain()
			v := NewVerifier(chain, testContract, testMethod)

			res := v.Verify(context.Background(), testHash)

			assert.Equal(t, tc.expected.valid, res.Valid)
			assert.Equal(t, tc.expected.err, res.Error)
			assert.Equal(t, tc.expected.receipt, res.Receipt != nil)
			assert.Equal(t, tc.expected.transaction, res.Transaction != nil)
			assert.Equal(t, 1, chain.receiptCalls)
			assert.Equal(t, tc.expected.txCalls, chain.txCalls)
			if tc.expected.valid {
				assert.Equal(t, "0xdeadbeef", res.Method)
			}
		})
	}
}

func TestVerifier_NormalizesHash(t *testing.T) {
	for _, in := range []string{
		testHash,
		"  5C504ED432CB51138BCF09AA5E8A410DD4A1E204EF84BFED1BE16DFBA1B22060 ",
		"0x5C504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060",
	} {
		chain := validChain()
		res := NewVerifier(chain, testContract, testMethod).Verify(context.Background(), in)
		require.True(t, res.Valid)
		assert.Equal(t, []string{testHash, testHash}, chain.requestedHashs)
	}
}

type countingVerifier struct {
	calls  int
	result func() bool
}

func (c *countingVerifier) Verify(_ context.Context, _ string) *domain.VerificationResult {
	c.calls++
	if c.result() {
		return &domain.VerificationResult{Valid: true, Method: "0xdeadbeef", Receipt: raw(`{"status":"0x1"}`)}
	}
	return &domain.VerificationResult{Error: "Transaction not found on blockchain"}
}

func TestCachedVerifier(t *testing.T) {
	ctx := context.Background()
	valid := false
	next := &countingVerifier{result: func() bool { return valid }}
	v := NewCachedVerifier(next, cache.NewMemoryCache(), time.Minute)

	res := v.Verify(ctx, testHash)
	assert.False(t, res.Valid)
	res = v.Verify(ctx, testHash)
	assert.False(t, res.Valid)
	assert.Equal(t, 2, next.calls, "invalid results are not cached")

	valid = true
	res = v.Verify(ctx, testHash)
	assert.True(t, res.Valid)
	assert.Equal(t, 3, next.calls)

	res = v.Verify(ctx, "  "+testHash[2:])
	assert.True(t, res.Valid)
	assert.Equal(t, "0xdeadbeef", res.Method)
	assert.JSONEq(t, `{"status":"0x1"}`, string(res.Receipt))
	assert.Equal(t, 3, next.calls, "valid results are served from cache by normalized hash")
}
