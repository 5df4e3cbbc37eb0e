package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation is one recorded donation claim. The unique index on
// TxSignature is what makes duplicate submissions lose the race.
type Donation struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`

	ProjectID   string          `json:"projectId" gorm:"index;not null;type:varchar(36)"`
	DonorWallet string          `json:"donorWallet" gorm:"not null;type:varchar(44)"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,9);not null"`
	Message     string          `json:"message"`

	// Base58 signature of the on-chain transfer
	TxSignature string `json:"txSignature" gorm:"uniqueIndex;not null;type:varchar(88)"`

	// Set once at record time from the chain verdict, never flipped later
	IsConfirmed bool `json:"isConfirmed"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the default table name
func (Donation) TableName() string {
	return "donation"
}
