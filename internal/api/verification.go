package api

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/log"
)

const (
	verifiedMessage     = "Transaction verified successfully"
	errHashRequired     = "transaction_hash is required"
	verifyFailurePrefix = "Failed to verify transaction"
)

type verifyOutcome int

const (
	verifyOK verifyOutcome = iota
	verifyBadRequest
	verifyInternalError
)

// VerifyHash checks a transaction given in the query string
func (s *Server) VerifyHash(ctx context.Context, request VerifyHashRequestObject) (VerifyHashResponseObject, error) {
	resp, outcome := s.verifyHash(ctx, request.Params.TransactionHash)
	switch outcome {
	case verifyOK:
		return VerifyHash200JSONResponse{resp}, nil
	case verifyBadRequest:
		return VerifyHash400JSONResponse{resp}, nil
	default:
		return VerifyHash500JSONResponse{resp}, nil
	}
}

// VerifyHashPost checks a transaction given in the body or in the query string
func (s *Server) VerifyHashPost(ctx context.Context, request VerifyHashPostRequestObject) (VerifyHashPostResponseObject, error) {
	hash := request.Params.TransactionHash
	if request.Body != nil && request.Body.TransactionHash != nil && *request.Body.TransactionHash != "" {
		hash = request.Body.TransactionHash
	}
	resp, outcome := s.verifyHash(ctx, hash)
	switch outcome {
	case verifyOK:
		return VerifyHashPost200JSONResponse{resp}, nil
	case verifyBadRequest:
		return VerifyHashPost400JSONResponse{resp}, nil
	default:
		return VerifyHashPost500JSONResponse{resp}, nil
	}
}

func (s *Server) verifyHash(ctx context.Context, hash *string) (VerifyHashJSONResponse, verifyOutcome) {
	if hash == nil || strings.TrimSpace(*hash) == "" {
		return VerifyHashJSONResponse{Error: common.ToPointer(errHashRequired)}, verifyBadRequest
	}

	res := s.verifier.Verify(ctx, *hash)
	resp, err := toVerifyHashResponse(*hash, res)
	if err != nil {
		log.Error(ctx, "encoding verification result", "err", err, "transaction_hash", *hash)
		return VerifyHashJSONResponse{
			TransactionHash: *hash,
			Error:           common.ToPointer(verifyFailurePrefix + ": " + err.Error()),
		}, verifyInternalError
	}
	if !res.Valid {
		return resp, verifyBadRequest
	}
	return resp, verifyOK
}

func toVerifyHashResponse(hash string, res *domain.VerificationResult) (VerifyHashJSONResponse, error) {
	resp := VerifyHashJSONResponse{
		Valid:           res.Valid,
		TransactionHash: hash,
	}
	if !res.Valid {
		resp.Error = common.ToPointer(res.Error)
		return resp, nil
	}
	resp.Message = common.ToPointer(verifiedMessage)

	var err error
	if resp.Transaction, err = rawToObject(res.Transaction); err != nil {
		return resp, err
	}
	if resp.Receipt, err = rawToObject(res.Receipt); err != nil {
		return resp, err
	}
	return resp, nil
}

func rawToObject(raw json.RawMessage) (*map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}
