package api

import (
	"github.com/viniapp/viniapp-node/internal/core/domain"
)

func toViniappResponse(app *domain.Viniapp) Viniapp {
	return Viniapp{
		Id:              app.ID,
		TransactionHash: app.TransactionHash,
		Name:            app.Name,
		Slug:            app.Slug,
		Prompt:          app.Prompt,
		Description:     app.Description,
		LogoImage:       app.LogoImage,
		Link:            app.Link,
		CreatedBy:       app.CreatedBy,
		OwnedBy:         app.OwnedBy,
		Status:          string(app.Status),
		WalletAddress:   app.WalletAddress,
		WalletSigner:    app.WalletSigner,
		AgentSessionId:  app.AgentSessionID,
		GithubUrl:       app.GithubURL,
		WebsiteUrl:      app.WebsiteURL,
		Ens:             app.ENS,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
}

// toWalletResponse never exposes the authorization private key
func toWalletResponse(wallet *domain.Wallet) Wallet {
	return Wallet{
		Id:          wallet.ID,
		Address:     wallet.Address,
		ChainType:   wallet.ChainType,
		KeyQuorumId: wallet.KeyQuorumID,
	}
}
