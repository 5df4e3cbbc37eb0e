package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/nothingdao/solana-support/internal/logger"
	"github.com/nothingdao/solana-support/internal/model"
	"github.com/nothingdao/solana-support/internal/solana"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// devFeeRate is the platform fee taken per confirmed donation when the
// project has opted in.
var devFeeRate = decimal.New(2, -2) // 0.02

// LedgerClient is the narrow chain-query contract the recorder needs.
// *solana.Client satisfies it.
type LedgerClient interface {
	LookupTransaction(ctx context.Context, signature string) (solana.TxStatus, error)
}

// DonationClaim is an unverified donation submission. Amount arrives as
// a string so the recorder owns its parsing and validation.
type DonationClaim struct {
	ProjectID   string
	DonorWallet string
	Amount      string
	Message     string
	TxSignature string
}

// DonationLogic records donation claims against the chain's verdict.
type DonationLogic struct {
	db           *gorm.DB
	ledger       LedgerClient
	projectLogic *ProjectLogic
}

func NewDonationLogic(db *gorm.DB, ledger LedgerClient) *DonationLogic {
	return &DonationLogic{
		db:           db,
		ledger:       ledger,
		projectLogic: NewProjectLogic(db),
	}
}

// SubmitDonation validates a claim, asks the chain whether the
// referenced transfer went through, and records the donation. Only a
// confirmed transfer moves the project's raised total; a failed,
// unknown, or unverifiable transfer is still recorded, unconfirmed,
// for audit. The donation row, the raised increment, and the optional
// fee row commit as one transaction.
func (d *DonationLogic) SubmitDonation(ctx context.Context, claim DonationClaim) (*model.Donation, error) {
	if claim.ProjectID == "" || claim.DonorWallet == "" || claim.Amount == "" || claim.TxSignature == "" {
		return nil, ErrMissingFields
	}
	if err := solana.ValidateAddress(claim.DonorWallet); err != nil {
		return nil, ErrInvalidDonorWallet
	}
	amount, err := decimal.NewFromString(claim.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	project, err := d.projectLogic.GetProject(claim.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, ErrProjectNotFound
	}

	switch _, err := d.GetDonationBySignature(claim.TxSignature); {
	case err == nil:
		return nil, ErrDuplicateSignature
	case !errors.Is(err, ErrDonationNotFound):
		return nil, fmt.Errorf("failed to check transaction signature: %w", err)
	}

	// Chain lookup. A transport failure is absorbed: the donation is
	// recorded unconfirmed rather than lost, and no balance moves.
	confirmed := false
	status, err := d.ledger.LookupTransaction(ctx, claim.TxSignature)
	if err != nil {
		logger.Warn("Transaction verification failed for %s: %v", claim.TxSignature, err)
	} else {
		confirmed = status == solana.TxConfirmed
	}

	donation := model.Donation{
		ProjectID:   claim.ProjectID,
		DonorWallet: claim.DonorWallet,
		Amount:      amount,
		Message:     claim.Message,
		TxSignature: claim.TxSignature,
		IsConfirmed: confirmed,
	}

	err = d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}
		if !donation.IsConfirmed {
			return nil
		}

		if err := d.projectLogic.IncrementRaised(tx, project.ID, amount); err != nil {
			return err
		}

		if project.DevFeeEnabled {
			fee := model.DevFee{
				DonationID: donation.ID,
				Amount:     amount.Mul(devFeeRate),
				// Placeholder label, no second on-chain transfer
				TxSignature: claim.TxSignature + "_fee",
			}
			if err := tx.Create(&fee).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent submission with the same signature won the race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSignature
		}
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	return &donation, nil
}

// GetDonationBySignature fetches a donation by its transaction signature.
func (d *DonationLogic) GetDonationBySignature(signature string) (*model.Donation, error) {
	var donation model.Donation
	err := d.db.Where("tx_signature = ?", signature).First(&donation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDonationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}
