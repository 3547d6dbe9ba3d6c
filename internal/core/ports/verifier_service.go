package ports

import (
	"context"
	"encoding/json"

	"github.com/viniapp/viniapp-node/internal/core/domain"
)

// TransactionVerifier checks that a transaction called the expected contract method.
// Verify never fails: every problem is reported in the result.
type TransactionVerifier interface {
	Verify(ctx context.Context, transactionHash string) *domain.VerificationResult
}

// ChainClient reads transactions from an Ethereum compatible node.
// A nil message with a nil error means the node does not know the transaction.
type ChainClient interface {
	TransactionReceipt(ctx context.Context, hash string) (json.RawMessage, error)
	TransactionByHash(ctx context.Context, hash string) (json.RawMessage, error)
}
