package ports

import (
	"context"

	"github.com/viniapp/viniapp-node/internal/core/domain"
)

// CreateViniappRequest is the input to mint a new viniapp
type CreateViniappRequest struct {
	TransactionHash string
	MsgSender       string
	Name            string
	Prompt          *string
	LogoImage       *string
}

// ViniappService creates viniapps from verified transactions
type ViniappService interface {
	Create(ctx context.Context, req *CreateViniappRequest) (*domain.Viniapp, *domain.Wallet, error)
	GetByID(ctx context.Context, id int64) (*domain.Viniapp, error)
}
