package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DevFee is the bookkeeping record for the platform fee, written in the
// same transaction as the raised-total increment. TxSignature is a
// derived label, not a real on-chain transfer.
type DevFee struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`

	DonationID  string          `json:"donationId" gorm:"index;not null;type:varchar(36)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,9);not null"`
	TxSignature string          `json:"txSignature"`
}

func (f *DevFee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the default table name
func (DevFee) TableName() string {
	return "dev_fee"
}
