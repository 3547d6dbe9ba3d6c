package domain

import (
	"time"
)

// ViniappStatus is the provisioning state of a viniapp
type ViniappStatus string

const (
	ViniappStatusUnset                 ViniappStatus = ""
	ViniappStatusRepositoryInitialized ViniappStatus = "repository directory initialized"
	ViniappStatusPromptCreated         ViniappStatus = "prompt file created successfully"
	ViniappStatusDirectoryInitialized  ViniappStatus = "directory initialized"
	ViniappStatusFailed                ViniappStatus = "directory initialization failed"
)

// IsTerminal tells whether the pipeline is done with the viniapp
func (s ViniappStatus) IsTerminal() bool {
	return s == ViniappStatusDirectoryInitialized || s == ViniappStatusFailed
}

// Viniapp is the record minted from a verified transaction
type Viniapp struct {
	ID               int64         `json:"id"`
	TransactionHash  string        `json:"transaction_hash"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Prompt           *string       `json:"prompt"`
	Description      *string       `json:"description"`
	LogoImage        *string       `json:"logo_image"`
	Link             *string       `json:"link"`
	CreatedBy        *string       `json:"created_by"`
	OwnedBy          *string       `json:"owned_by"`
	Status           ViniappStatus `json:"status"`
	WalletAddress    *string       `json:"wallet_address"`
	WalletPrivateKey *string       `json:"-"`
	WalletSigner     *string       `json:"wallet_signer"`
	AgentSessionID   *string       `json:"agent_session_id"`
	GithubURL        *string       `json:"github_url"`
	WebsiteURL       *string       `json:"website_url"`
	ENS              *string       `json:"ens"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewViniapp returns a viniapp ready to be stored. The provisioning status starts unset.
func NewViniapp(transactionHash, name, slug, msgSender string, prompt, logoImage *string) *Viniapp {
	return &Viniapp{
		TransactionHash: transactionHash,
		Name:            name,
		Slug:            slug,
		Prompt:          prompt,
		LogoImage:       logoImage,
		CreatedBy:       &msgSender,
		OwnedBy:         &msgSender,
		Status:          ViniappStatusUnset,
	}
}

// PromptText returns the user prompt or an empty string
func (v *Viniapp) PromptText() string {
	if v.Prompt == nil {
		return ""
	}
	return *v.Prompt
}

// Wallet is the custodial wallet created for a viniapp.
// PrivateKey is the authorization key of the msg sender signer. It is never serialized.
type Wallet struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	ChainType   string `json:"chain_type"`
	KeyQuorumID string `json:"key_quorum_id"`
	PrivateKey  string `json:"-"`
}
