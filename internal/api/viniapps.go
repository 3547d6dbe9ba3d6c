package api

import (
	"context"
	"errors"

	"github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/core/services"
	"github.com/viniapp/viniapp-node/internal/log"
)

const (
	errInvalidRequest      = "Invalid request"
	errHashAlreadyExists   = "Transaction hash already exists"
	errVerificationFailed  = "Transaction verification failed"
	errCreateViniapp       = "Failed to create viniapp with wallet"
	errViniappNotFound     = "Viniapp not found"
	errInternalServerError = "Internal server error"
)

// CreateViniapp mints a viniapp from a verified transaction
func (s *Server) CreateViniapp(ctx context.Context, request CreateViniappRequestObject) (CreateViniappResponseObject, error) {
	resp, status, err := s.createViniapp(ctx, request.Body)
	switch status {
	case createdStatus:
		return CreateViniapp201JSONResponse(*resp), nil
	case badRequestStatus:
		return CreateViniapp400JSONResponse{N400JSONResponse(*err)}, nil
	default:
		return CreateViniapp500JSONResponse{N500JSONResponse(*err)}, nil
	}
}

// CreateViniappV1 is CreateViniapp under the versioned path
func (s *Server) CreateViniappV1(ctx context.Context, request CreateViniappV1RequestObject) (CreateViniappV1ResponseObject, error) {
	resp, status, err := s.createViniapp(ctx, request.Body)
	switch status {
	case createdStatus:
		return CreateViniappV1201JSONResponse(*resp), nil
	case badRequestStatus:
		return CreateViniappV1400JSONResponse{N400JSONResponse(*err)}, nil
	default:
		return CreateViniappV1500JSONResponse{N500JSONResponse(*err)}, nil
	}
}

// GetViniapp returns a viniapp so clients can follow its provisioning status
func (s *Server) GetViniapp(ctx context.Context, request GetViniappRequestObject) (GetViniappResponseObject, error) {
	app, err := s.viniappService.GetByID(ctx, request.Id)
	if errors.Is(err, services.ErrViniappNotFound) {
		return GetViniapp404JSONResponse{N404JSONResponse{Error: errViniappNotFound}}, nil
	}
	if err != nil {
		log.Error(ctx, "getting viniapp", "err", err, "viniapp_id", request.Id)
		return GetViniapp500JSONResponse{N500JSONResponse{Error: errInternalServerError, Message: common.ToPointer(err.Error())}}, nil
	}
	return GetViniapp200JSONResponse(toViniappResponse(app)), nil
}

type createStatus int

const (
	createdStatus createStatus = iota
	badRequestStatus
	internalErrorStatus
)

func (s *Server) createViniapp(ctx context.Context, body *CreateViniappRequest) (*CreateViniappResponse, createStatus, *GenericErrorMessage) {
	req := &ports.CreateViniappRequest{
		TransactionHash: body.TransactionHash,
		MsgSender:       body.MsgSender,
		Name:            body.Name,
		Prompt:          body.Prompt,
		LogoImage:       body.LogoImage,
	}
	app, wallet, err := s.viniappService.Create(ctx, req)
	if err == nil {
		return &CreateViniappResponse{
			Viniapp: toViniappResponse(app),
			Wallet:  toWalletResponse(wallet),
		}, createdStatus, nil
	}

	var verr *services.VerificationError
	switch {
	case errors.Is(err, services.ErrMissingField):
		return nil, badRequestStatus, &GenericErrorMessage{Error: errInvalidRequest, Message: common.ToPointer(err.Error())}
	case errors.Is(err, services.ErrTransactionHashAlreadyUsed):
		return nil, badRequestStatus, &GenericErrorMessage{Error: errHashAlreadyExists}
	case errors.As(err, &verr):
		return nil, badRequestStatus, &GenericErrorMessage{Error: errVerificationFailed, Message: common.ToPointer(verr.Reason)}
	default:
		log.Error(ctx, "creating viniapp", "err", err)
		return nil, internalErrorStatus, &GenericErrorMessage{Error: errCreateViniapp, Message: common.ToPointer(err.Error())}
	}
}
