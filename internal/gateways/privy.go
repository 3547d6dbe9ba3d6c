package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/viniapp/viniapp-node/internal/config"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/kms"
	"github.com/viniapp/viniapp-node/internal/log"
	pkghttp "github.com/viniapp/viniapp-node/pkg/http"
)

const (
	privyAppIDHeader = "privy-app-id"
	keyQuorumsPath   = "/key_quorums"
	walletsPath      = "/wallets"
)

// ErrPrivyResponse is returned when privy answers 2xx with an unusable body
var ErrPrivyResponse = errors.New("unexpected privy response")

type keyQuorumRequest struct {
	PublicKeys             []string `json:"public_keys"`
	DisplayName            string   `json:"display_name"`
	AuthorizationThreshold int      `json:"authorization_threshold"`
}

type keyQuorumResponse struct {
	ID string `json:"id"`
}

type additionalSigner struct {
	SignerID string `json:"signer_id"`
}

type walletOwner struct {
	PublicKey string `json:"public_key"`
}

type walletRequest struct {
	OwnerID           string             `json:"owner_id,omitempty"`
	Owner             *walletOwner       `json:"owner,omitempty"`
	ChainType         string             `json:"chain_type"`
	AdditionalSigners []additionalSigner `json:"additional_signers"`
}

type walletResponse struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	ChainType string `json:"chain_type"`
}

type credentials struct {
	id     string
	secret string
}

// Privy creates wallets owned by the platform authorization key through the Privy API
type Privy struct {
	client  *pkghttp.Client
	baseURL string
	appID   string
	app     credentials
	auth    credentials
}

// NewPrivy returns a new Privy wallet provider
func NewPrivy(cfg config.Wallet, client *pkghttp.Client) *Privy {
	return &Privy{
		client:  client,
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		app:     credentials{id: cfg.AppID, secret: cfg.AppSecret},
		auth:    credentials{id: cfg.AuthID, secret: cfg.AuthSecret},
	}
}

// CreateWallet creates an authorization key for msgSender and a wallet where that key is an
// additional signer. The returned wallet carries the generated private key.
func (p *Privy) CreateWallet(ctx context.Context, msgSender string, chainType string) (*domain.Wallet, error) {
	key, err := kms.NewAuthorizationKey()
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "generated authorization keypair", "msg_sender", msgSender)

	quorumID, err := p.createKeyQuorum(ctx, key.PublicKey, msgSender)
	if err != nil {
		return nil, fmt.Errorf("creating authorization key for msg sender: %w", err)
	}
	log.Info(ctx, "created key quorum", "msg_sender", msgSender, "key_quorum_id", quorumID)

	signers := []additionalSigner{{SignerID: quorumID}}
	resp, err := p.postWithFallback(ctx, walletsPath, walletRequest{
		OwnerID:           p.auth.id,
		ChainType:         chainType,
		AdditionalSigners: signers,
	})
	if pkghttp.StatusCode(err) == http.StatusBadRequest {
		log.Warn(ctx, "privy rejected owner_id, retrying with owner public key", "err", err)
		resp, err = p.postWithFallback(ctx, walletsPath, walletRequest{
			Owner:             &walletOwner{PublicKey: p.auth.id},
			ChainType:         chainType,
			AdditionalSigners: signers,
		})
	}
	if err != nil {
		log.Error(ctx, "privy wallet creation failed", "msg_sender", msgSender, "status", pkghttp.StatusCode(err), "err", err)
		return nil, fmt.Errorf("privy wallet creation failed: %w", err)
	}

	var wallet walletResponse
	if err := json.Unmarshal(resp, &wallet); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrivyResponse, err)
	}
	if wallet.Address == "" {
		return nil, fmt.Errorf("%w: wallet created without address", ErrPrivyResponse)
	}
	if wallet.ChainType == "" {
		wallet.ChainType = chainType
	}

	return &domain.Wallet{
		ID:          wallet.ID,
		Address:     wallet.Address,
		ChainType:   wallet.ChainType,
		KeyQuorumID: quorumID,
		PrivateKey:  key.PrivateKey,
	}, nil
}

func (p *Privy) createKeyQuorum(ctx context.Context, publicKey string, msgSender string) (string, error) {
	resp, err := p.post(ctx, keyQuorumsPath, keyQuorumRequest{
		PublicKeys:             []string{publicKey},
		DisplayName:            msgSender,
		AuthorizationThreshold: 1,
	}, p.app)
	if err != nil {
		log.Error(ctx, "failed to create key quorum", "msg_sender", msgSender, "status", pkghttp.StatusCode(err), "err", err)
		return "", err
	}

	var quorum keyQuorumResponse
	if err := json.Unmarshal(resp, &quorum); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPrivyResponse, err)
	}
	if quorum.ID == "" {
		return "", fmt.Errorf("%w: key quorum created but no ID returned", ErrPrivyResponse)
	}
	return quorum.ID, nil
}

// postWithFallback authenticates with the authorization key credentials and retries with the
// app credentials when they are refused
func (p *Privy) postWithFallback(ctx context.Context, path string, body any) ([]byte, error) {
	resp, err := p.post(ctx, path, body, p.auth)
	if status := pkghttp.StatusCode(err); status == http.StatusUnauthorized || status == http.StatusForbidden {
		log.Debug(ctx, "privy refused authorization key credentials, using app credentials", "status", status)
		return p.post(ctx, path, body, p.app)
	}
	return resp, err
}

func (p *Privy) post(ctx context.Context, path string, body any, creds credentials) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return p.client.Post(ctx, p.baseURL+path, payload,
		pkghttp.WithBasicAuth(creds.id, creds.secret),
		pkghttp.WithHeader(privyAppIDHeader, p.appID),
	)
}
