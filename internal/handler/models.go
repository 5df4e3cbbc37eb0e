package handler

import (
	"encoding/json"

	"github.com/nothingdao/solana-support/internal/model"
	"github.com/shopspring/decimal"
)

// donationRequest mirrors the widget's POST /donations body. Amount is
// kept raw so both JSON numbers and quoted strings reach the recorder's
// own validation.
type donationRequest struct {
	ProjectID   string          `json:"projectId"`
	DonorWallet string          `json:"donorWallet"`
	Amount      json.RawMessage `json:"amount"`
	Message     string          `json:"message"`
	TxSignature string          `json:"txSignature"`
}

type createProjectRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	WalletAddress string           `json:"walletAddress"`
	Goal          *decimal.Decimal `json:"goal"`
	ShowGoal      *bool            `json:"showGoal"`
	Theme         string           `json:"theme"`
	DevFeeEnabled bool             `json:"devFeeEnabled"`
	CustomMessage string           `json:"customMessage"`
}

// updateProjectRequest carries the mutable fields; only fields present
// in the body are applied.
type updateProjectRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Goal          *decimal.Decimal `json:"goal"`
	ShowGoal      *bool            `json:"showGoal"`
	Theme         *string          `json:"theme"`
	DevFeeEnabled *bool            `json:"devFeeEnabled"`
	CustomMessage *string          `json:"customMessage"`
	IsActive      *bool            `json:"isActive"`
}

// projectListItem is a project plus its confirmed-donation count.
type projectListItem struct {
	model.Project
	DonationCount int64 `json:"donationCount"`
}

// projectDetail is a project plus its most recent confirmed donations.
type projectDetail struct {
	model.Project
	Donations []model.Donation `json:"donations"`
}
