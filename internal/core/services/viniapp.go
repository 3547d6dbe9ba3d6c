package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"

	"github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/internal/log"
	"github.com/viniapp/viniapp-node/internal/repositories"
)

// WalletChainType is the chain type requested to the wallet provider
const WalletChainType = "ethereum"

type viniappService struct {
	repo       ports.ViniappRepository
	storage    db.Querier
	verifier   ports.TransactionVerifier
	wallets    ports.WalletProvider
	cipher     ports.KeyCipher
	scheduler  ports.PipelineScheduler
	slugSuffix func() (string, error)
}

// NewViniapp returns the service that mints viniapps from verified transactions
func NewViniapp(
	repo ports.ViniappRepository,
	storage db.Querier,
	verifier ports.TransactionVerifier,
	wallets ports.WalletProvider,
	cipher ports.KeyCipher,
	scheduler ports.PipelineScheduler,
) ports.ViniappService {
	return &viniappService{
		repo:       repo,
		storage:    storage,
		verifier:   verifier,
		wallets:    wallets,
		cipher:     cipher,
		scheduler:  scheduler,
		slugSuffix: randomSlugSuffix,
	}
}

// Create verifies the transaction, stores the viniapp with its wallet and starts the
// provisioning pipeline. The wallet is created inside the database transaction, so a
// wallet failure leaves nothing behind. A slug stored concurrently by another request
// makes Create pick a new one and retry once.
func (v *viniappService) Create(ctx context.Context, req *ports.CreateViniappRequest) (*domain.Viniapp, *domain.Wallet, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, nil, err
	}

	hash := common.NormalizeHex(req.TransactionHash)
	ctx = log.With(ctx, "transaction_hash", hash)

	used, err := v.repo.ExistsByTransactionHash(ctx, v.storage, hash)
	if err != nil {
		return nil, nil, fmt.Errorf("checking transaction hash: %w", err)
	}
	if used {
		return nil, nil, ErrTransactionHashAlreadyUsed
	}

	verification := v.verifier.Verify(ctx, hash)
	if !verification.Valid {
		log.Info(ctx, "transaction verification failed", "reason", verification.Error)
		return nil, nil, &VerificationError{Reason: verification.Error}
	}

	var (
		app    *domain.Viniapp
		wallet *domain.Wallet
	)
	for attempt := 0; ; attempt++ {
		slug, err := v.availableSlug(ctx, v.storage, req.Name)
		if err != nil {
			return nil, nil, err
		}
		app = domain.NewViniapp(hash, req.Name, slug, req.MsgSender, req.Prompt, req.LogoImage)
		wallet, err = v.insert(ctx, app, req.MsgSender)
		if err == nil {
			break
		}
		// another request stored the same slug between the check and the insert
		if errors.Is(err, repositories.ErrDuplicatedSlug) && attempt < slugInsertRetries {
			log.Warn(ctx, "slug taken concurrently, picking another one", "slug", slug)
			continue
		}
		log.Error(ctx, "creating viniapp", "err", err)
		return nil, nil, err
	}

	ctx = log.With(ctx, "viniapp_id", app.ID, "slug", app.Slug)
	log.Info(ctx, "viniapp created", "wallet_address", wallet.Address)

	if err := v.scheduler.Schedule(ctx, app.ID, domain.FirstPipelineStep); err != nil {
		log.Error(ctx, "scheduling pipeline", "err", err, "step", domain.FirstPipelineStep)
	}

	return app, wallet, nil
}

// insert stores app and attaches a new wallet in a single database transaction.
// The wallet is created at the provider before the commit, so a failed commit leaves
// an unused remote wallet behind.
func (v *viniappService) insert(ctx context.Context, app *domain.Viniapp, msgSender string) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := v.storage.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := v.repo.Save(ctx, tx, app); err != nil {
			if errors.Is(err, repositories.ErrDuplicatedTransactionHash) {
				return ErrTransactionHashAlreadyUsed
			}
			return fmt.Errorf("saving viniapp: %w", err)
		}

		created, err := v.wallets.CreateWallet(ctx, msgSender, WalletChainType)
		if err != nil {
			return fmt.Errorf("creating wallet: %w", err)
		}

		encrypted, err := v.cipher.Encrypt([]byte(created.PrivateKey))
		if err != nil {
			return fmt.Errorf("encrypting wallet key: %w", err)
		}
		if err := v.repo.UpdateWallet(ctx, tx, app.ID, created.Address, encrypted, created.KeyQuorumID); err != nil {
			return fmt.Errorf("attaching wallet: %w", err)
		}
		app.WalletAddress = &created.Address
		app.WalletPrivateKey = &encrypted
		app.WalletSigner = &created.KeyQuorumID
		wallet = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// GetByID returns a viniapp or ErrViniappNotFound
func (v *viniappService) GetByID(ctx context.Context, id int64) (*domain.Viniapp, error) {
	app, err := v.repo.GetByID(ctx, v.storage, id)
	if errors.Is(err, repositories.ErrViniappDoesNotExist) {
		return nil, ErrViniappNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func validateCreateRequest(req *ports.CreateViniappRequest) error {
	if strings.TrimSpace(req.TransactionHash) == "" {
		return missingField("transaction_hash")
	}
	if strings.TrimSpace(req.MsgSender) == "" {
		return missingField("msg_sender")
	}
	if strings.TrimSpace(req.Name) == "" {
		return missingField("name")
	}
	return nil
}
