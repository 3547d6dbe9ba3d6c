package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/log"
)

const (
	reasonNotFound          = "Transaction not found on blockchain"
	reasonFailed            = "Transaction failed on blockchain"
	reasonNoTo              = `Transaction receipt does not contain a "to" address`
	reasonWrongContract     = "Transaction is not to the expected contract. Expected: %s, Got: %s"
	reasonNoDetails         = "Failed to retrieve transaction details"
	reasonNoInput           = "Transaction has no input data"
	reasonShortInput        = "Transaction input data is too short to contain a method selector"
	reasonWrongMethod       = "Transaction method does not match. Expected: %s, Got: %s"
	reasonVerificationError = "Failed to verify transaction: %s"
)

type verifier struct {
	client   ports.ChainClient
	contract string
	method   string
}

// NewVerifier returns a transaction verifier that expects calls to method on contract.
// contract and method are normalized here so callers can pass raw configuration values.
func NewVerifier(client ports.ChainClient, contract string, method string) ports.TransactionVerifier {
	return &verifier{
		client:   client,
		contract: common.NormalizeHex(contract),
		method:   common.NormalizeHex(method),
	}
}

// Verify checks that transactionHash was mined successfully and called the expected method
// on the expected contract
func (v *verifier) Verify(ctx context.Context, transactionHash string) *domain.VerificationResult {
	hash := common.NormalizeHex(transactionHash)
	ctx = log.With(ctx, "transaction_hash", hash)

	receipt, err := v.client.TransactionReceipt(ctx, hash)
	if err != nil {
		log.Error(ctx, "blockchain verification failed", "err", err)
		return domain.NewInvalidVerification(fmt.Sprintf(reasonVerificationError, err))
	}
	if receipt == nil {
		return domain.NewInvalidVerification(reasonNotFound)
	}

	if status := gjson.GetBytes(receipt, "status"); status.Exists() && status.Type != gjson.Null {
		if s := status.String(); s != "0x1" && s != "1" {
			return &domain.VerificationResult{Receipt: receipt, Error: reasonFailed}
		}
	}

	to := common.NormalizeHex(gjson.GetBytes(receipt, "to").String())
	if to == "" {
		return &domain.VerificationResult{Receipt: receipt, Error: reasonNoTo}
	}
	if to != v.contract {
		return &domain.VerificationResult{Receipt: receipt, Error: fmt.Sprintf(reasonWrongContract, v.contract, to)}
	}

	tx, err := v.client.TransactionByHash(ctx, hash)
	if err != nil {
		log.Error(ctx, "blockchain verification failed", "err", err)
		return domain.NewInvalidVerification(fmt.Sprintf(reasonVerificationError, err))
	}
	if tx == nil {
		return domain.NewInvalidVerification(reasonNoDetails)
	}

	input := strings.ToLower(strings.TrimSpace(gjson.GetBytes(tx, "input").String()))
	if input == "" || input == "0x" {
		return &domain.VerificationResult{Transaction: tx, Error: reasonNoInput}
	}
	if len(input) < common.MethodSelectorLength {
		return &domain.VerificationResult{Transaction: tx, Error: reasonShortInput}
	}

	selector := input[:common.MethodSelectorLength]
	if selector != v.method {
		return &domain.VerificationResult{Transaction: tx, Error: fmt.Sprintf(reasonWrongMethod, v.method, selector)}
	}

	return &domain.VerificationResult{
		Valid:       true,
		Transaction: tx,
		Receipt:     receipt,
		Method:      selector,
	}
}
