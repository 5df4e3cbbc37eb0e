package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is a registered recipient. One receiving wallet maps to one project.
type Project struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Basic info
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// Receiving wallet, unique across all projects
	WalletAddress string `json:"walletAddress" gorm:"uniqueIndex;not null;type:varchar(44)"`

	// Funding goal, optional
	Goal     *decimal.Decimal `json:"goal" gorm:"type:decimal(20,9)"`
	ShowGoal bool             `json:"showGoal" gorm:"default:true"`

	// Badge presentation
	Theme         string `json:"theme" gorm:"default:'default'"`
	CustomMessage string `json:"customMessage"`

	// 2% platform fee recorded per confirmed donation when enabled
	DevFeeEnabled bool `json:"devFeeEnabled" gorm:"default:false"`

	IsActive bool `json:"isActive" gorm:"default:true"`

	// Cumulative confirmed donations. Mutated only through
	// DonationLogic's atomic increment.
	Raised decimal.Decimal `json:"raised" gorm:"type:decimal(20,9);default:0"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the default table name
func (Project) TableName() string {
	return "project"
}
