package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/viniapp/viniapp-node/internal/core/domain"
	"github.com/viniapp/viniapp-node/internal/core/ports"
	"github.com/viniapp/viniapp-node/internal/db"
)

const (
	duplicateViolationErrorCode = "23505"

	transactionHashConstraint = "viniapps_transaction_hash_key"
	slugConstraint            = "viniapps_slug_key"
)

var (
	// ErrViniappDoesNotExist viniapp does not exist
	ErrViniappDoesNotExist = errors.New("viniapp does not exist")
	// ErrDuplicatedTransactionHash a viniapp with the same transaction hash already exists
	ErrDuplicatedTransactionHash = errors.New("duplicated transaction hash")
	// ErrDuplicatedSlug a viniapp with the same slug already exists
	ErrDuplicatedSlug = errors.New("duplicated slug")
)

const viniappColumns = `id, transaction_hash, name, slug, prompt, description, logo_image, link,
	created_by, owned_by, status, wallet_address, wallet_private_key, wallet_signer,
	agent_session_id, github_url, website_url, ens, created_at, updated_at`

type viniapp struct{}

// NewViniapp returns a viniapp repository
func NewViniapp() ports.ViniappRepository {
	return &viniapp{}
}

// Save inserts a new viniapp and returns its id
func (v *viniapp) Save(ctx context.Context, conn db.Querier, app *domain.Viniapp) (int64, error) {
	const insertViniapp = `INSERT INTO viniapps (transaction_hash, name, slug, prompt, description, logo_image, link,
			created_by, owned_by, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := conn.QueryRow(ctx, insertViniapp,
		app.TransactionHash,
		app.Name,
		app.Slug,
		app.Prompt,
		app.Description,
		app.LogoImage,
		app.Link,
		app.CreatedBy,
		app.OwnedBy,
		statusToColumn(app.Status),
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateViolationErrorCode {
			switch pgErr.ConstraintName {
			case transactionHashConstraint:
				return 0, ErrDuplicatedTransactionHash
			case slugConstraint:
				return 0, ErrDuplicatedSlug
			}
		}
		return 0, err
	}
	return app.ID, nil
}

// GetByID returns the viniapp with the given id or ErrViniappDoesNotExist
func (v *viniapp) GetByID(ctx context.Context, conn db.Querier, id int64) (*domain.Viniapp, error) {
	row := conn.QueryRow(ctx, `SELECT `+viniappColumns+` FROM viniapps WHERE id = $1`, id)

	var app domain.Viniapp
	var status *string
	err := row.Scan(
		&app.ID,
		&app.TransactionHash,
		&app.Name,
		&app.Slug,
		&app.Prompt,
		&app.Description,
		&app.LogoImage,
		&app.Link,
		&app.CreatedBy,
		&app.OwnedBy,
		&status,
		&app.WalletAddress,
		&app.WalletPrivateKey,
		&app.WalletSigner,
		&app.AgentSessionID,
		&app.GithubURL,
		&app.WebsiteURL,
		&app.ENS,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrViniappDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	if status != nil {
		app.Status = domain.ViniappStatus(*status)
	}
	return &app, nil
}

// ExistsByTransactionHash tells whether a viniapp was already minted for the transaction
func (v *viniapp) ExistsByTransactionHash(ctx context.Context, conn db.Querier, transactionHash string) (bool, error) {
	return v.exists(ctx, conn, `SELECT EXISTS(SELECT 1 FROM viniapps WHERE transaction_hash = $1)`, transactionHash)
}

// ExistsBySlug tells whether the slug is taken
func (v *viniapp) ExistsBySlug(ctx context.Context, conn db.Querier, slug string) (bool, error) {
	return v.exists(ctx, conn, `SELECT EXISTS(SELECT 1 FROM viniapps WHERE slug = $1)`, slug)
}

func (v *viniapp) exists(ctx context.Context, conn db.Querier, query string, arg string) (bool, error) {
	var found bool
	if err := conn.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

// UpdateWallet attaches the provisioned wallet to the viniapp
func (v *viniapp) UpdateWallet(ctx context.Context, conn db.Querier, id int64, address, encryptedPrivateKey, signer string) error {
	const updateWallet = `UPDATE viniapps
		SET wallet_address = $2, wallet_private_key = $3, wallet_signer = $4, updated_at = NOW()
		WHERE id = $1`
	tag, err := conn.Exec(ctx, updateWallet, id, address, encryptedPrivateKey, signer)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrViniappDoesNotExist
	}
	return nil
}

// UpdateStatus sets the provisioning status of the viniapp
func (v *viniapp) UpdateStatus(ctx context.Context, conn db.Querier, id int64, status domain.ViniappStatus) error {
	tag, err := conn.Exec(ctx, `UPDATE viniapps SET status = $2, updated_at = NOW() WHERE id = $1`, id, statusToColumn(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrViniappDoesNotExist
	}
	return nil
}

func statusToColumn(status domain.ViniappStatus) *string {
	if status == domain.ViniappStatusUnset {
		return nil
	}
	s := string(status)
	return &s
}
