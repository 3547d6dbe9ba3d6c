package ports

import (
	"context"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/db"
)

// ViniappRepository is the persistence layer for viniapps
type ViniappRepository interface {
	Save(ctx context.Context, conn db.Querier, viniapp *domain.Viniapp) (int64, error)
	GetByID(ctx context.Context, conn db.Querier, id int64) (*domain.Viniapp, error)
	ExistsByTransactionHash(ctx context.Context, conn db.Querier, transactionHash string) (bool, error)
	ExistsBySlug(ctx context.Context, conn db.Querier, slug string) (bool, error)
	UpdateWallet(ctx context.Context, conn db.Querier, id int64, address, encryptedPrivateKey, signer string) error
	UpdateStatus(ctx context.Context, conn db.Querier, id int64, status domain.ViniappStatus) error
}
