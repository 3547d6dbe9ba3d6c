package gateways

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniapp/viniapp-node/internal/config"
	pkghttp "github.com/viniapp/viniapp-node/pkg/http"
)

const msgSender = "0x1111111111111111111111111111111111111111"

type privyCall struct {
	path string
	user string
	body map[string]any
}

type fakePrivy struct {
	mu    sync.Mutex
	calls []privyCall
	// wallets decides the status of each /wallets call
	wallets func(user string, body map[string]any) int
	quorum  func() (int, string)
}

func (f *fakePrivy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, _, _ := r.BasicAuth()
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.mu.Lock()
	f.calls = append(f.calls, privyCall{path: r.URL.Path, user: user, body: body})
	f.mu.Unlock()

	if r.Header.Get("privy-app-id") != "app-id" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	switch r.URL.Path {
	case "/v1/key_quorums":
		status, resp := http.StatusOK, `{"id":"quorum-1"}`
		if f.quorum != nil {
			status, resp = f.quorum()
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp))
	case "/v1/wallets":
		status := f.wallets(user, body)
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"wallet-1","address":"0x2222222222222222222222222222222222222222","chain_type":"ethereum"}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":"refused"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakePrivy) walletCalls() []privyCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []privyCall
	for _, c := range f.calls {
		if c.path == "/v1/wallets" {
			out = append(out, c)
		}
	}
	return out
}

func newTestPrivy(t *testing.T, fake *fakePrivy) *Privy {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return NewPrivy(config.Wallet{
		AppID:      "app-id",
		AppSecret:  "app-secret",
		AuthID:     "auth-id",
		AuthSecret: "auth-secret",
		BaseURL:    srv.URL + "/v1",
	}, pkghttp.NewRetryableClient(0))
}

func TestPrivy_CreateWallet(t *testing.T) {
	type expected struct {
		err         bool
		walletUsers []string
		ownerKey    bool
	}
	type testConfig struct {
		name     string
		wallets  func(user string, body map[string]any) int
		quorum   func() (int, string)
		expected expected
	}
	for _, tc := range []testConfig{
		{
			name:     "authorization key credentials accepted",
			wallets:  func(string, map[string]any) int { return http.StatusOK },
			expected: expected{walletUsers: []string{"auth-id"}},
		},
		{
			name: "fallback to app credentials",
			wallets: func(user string, _ map[string]any) int {
				if user == "auth-id" {
					return http.StatusUnauthorized
				}
				return http.StatusOK
			},
			expected: expected{walletUsers: []string{"auth-id", "app-id"}},
		},
		{
			name: "fallback to owner public key",
			wallets: func(_ string, body map[string]any) int {
				if _, ok := body["owner_id"]; ok {
					return http.StatusBadRequest
				}
				return http.StatusOK
			},
			expected: expected{walletUsers: []string{"auth-id", "auth-id"}, ownerKey: true},
		},
		{
			name: "fallback to owner public key and app credentials",
			wallets: func(user string, body map[string]any) int {
				if _, ok := body["owner_id"]; ok {
					return http.StatusBadRequest
				}
				if user == "auth-id" {
					return http.StatusForbidden
				}
				return http.StatusOK
			},
			expected: expected{walletUsers: []string{"auth-id", "auth-id", "app-id"}, ownerKey: true},
		},
		{
			name:     "wallet refused",
			wallets:  func(string, map[string]any) int { return http.StatusUnprocessableEntity },
			expected: expected{err: true, walletUsers: []string{"auth-id"}},
		},
		{
			name:     "key quorum refused",
			wallets:  func(string, map[string]any) int { return http.StatusOK },
			quorum:   func() (int, string) { return http.StatusUnauthorized, `{"error":"bad credentials"}` },
			expected: expected{err: true},
		},
		{
			name:     "key quorum without id",
			wallets:  func(string, map[string]any) int { return http.StatusOK },
			quorum:   func() (int, string) { return http.StatusOK, `{}` },
			expected: expected{err: true},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakePrivy{wallets: tc.wallets, quorum: tc.quorum}
			p := newTestPrivy(t, fake)

			wallet, err := p.CreateWallet(context.Background(), msgSender, "ethereum")

			calls := fake.walletCalls()
			users := make([]string, 0, len(calls))
			for _, c := range calls {
				users = append(users, c.user)
			}
			if len(tc.expected.walletUsers) == 0 {
				assert.Empty(t, users)
			} else {
				assert.Equal(t, tc.expected.walletUsers, users)
			}

			if tc.expected.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "wallet-1", wallet.ID)
			assert.Equal(t, "0x2222222222222222222222222222222222222222", wallet.Address)
			assert.Equal(t, "ethereum", wallet.ChainType)
			assert.Equal(t, "quorum-1", wallet.KeyQuorumID)
			assert.NotEmpty(t, wallet.PrivateKey)

			last := calls[len(calls)-1].body
			assert.Equal(t, "ethereum", last["chain_type"])
			assert.Equal(t, []any{map[string]any{"signer_id": "quorum-1"}}, last["additional_signers"])
			if tc.expected.ownerKey {
				assert.Equal(t, map[string]any{"public_key": "auth-id"}, last["owner"])
				assert.NotContains(t, last, "owner_id")
			} else {
				assert.Equal(t, "auth-id", last["owner_id"])
			}
		})
	}
}

func TestPrivy_KeyQuorumRequest(t *testing.T) {
	fake := &fakePrivy{wallets: func(string, map[string]any) int { return http.StatusOK }}
	p := newTestPrivy(t, fake)

	_, err := p.CreateWallet(context.Background(), msgSender, "ethereum")
	require.NoError(t, err)

	require.NotEmpty(t, fake.calls)
	quorum := fake.calls[0]
	assert.Equal(t, "/v1/key_quorums", quorum.path)
	assert.Equal(t, "app-id", quorum.user)
	assert.Equal(t, msgSender, quorum.body["display_name"])
	assert.Equal(t, float64(1), quorum.body["authorization_threshold"])
	keys, ok := quorum.body["public_keys"].([]any)
	require.True(t, ok)
	require.Len(t, keys, 1)
	assert.NotEmpty(t, keys[0])
}
