package ports

import (
	"context"

	"github.com/viniapp/viniapp-node/internal/core/domain"
)

// WalletProvider creates custodial wallets owned by the platform authorization key.
// msgSender becomes an additional signer of the wallet.
type WalletProvider interface {
	CreateWallet(ctx context.Context, msgSender string, chainType string) (*domain.Wallet, error)
}

// KeyCipher encrypts secrets before they are stored
type KeyCipher interface {
	Encrypt(plain []byte) (string, error)
}
