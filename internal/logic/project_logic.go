package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nothingdao/solana-support/internal/model"
	"github.com/nothingdao/solana-support/internal/solana"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectLogic owns project reads and writes.
type ProjectLogic struct {
	db *gorm.DB
}

func NewProjectLogic(db *gorm.DB) *ProjectLogic {
	return &ProjectLogic{db: db}
}

// CreateProject validates and persists a new project. The wallet
// address may own at most one project; the unique index backs up the
// pre-check under concurrent creates.
func (p *ProjectLogic) CreateProject(project *model.Project) error {
	project.Name = strings.TrimSpace(project.Name)
	project.Description = strings.TrimSpace(project.Description)
	project.CustomMessage = strings.TrimSpace(project.CustomMessage)

	if project.Name == "" || project.WalletAddress == "" {
		return ErrNameRequired
	}
	if err := solana.ValidateAddress(project.WalletAddress); err != nil {
		return ErrInvalidWallet
	}
	if project.Goal != nil && !project.Goal.IsPositive() {
		return ErrInvalidAmount
	}

	var existing model.Project
	err := p.db.Where("wallet_address = ?", project.WalletAddress).First(&existing).Error
	if err == nil {
		return ErrWalletTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check wallet address: %w", err)
	}

	if project.Theme == "" {
		project.Theme = "default"
	}
	project.IsActive = true
	project.Raised = decimal.Zero

	if err := p.db.Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrWalletTaken
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetProject fetches a project by id, active or not.
func (p *ProjectLogic) GetProject(id string) (*model.Project, error) {
	var project model.Project
	if err := p.db.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return &project, nil
}

// GetProjectByWallet fetches the project owning a receiving address.
func (p *ProjectLogic) GetProjectByWallet(address string) (*model.Project, error) {
	var project model.Project
	if err := p.db.Where("wallet_address = ?", address).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return &project, nil
}

// GetActiveProjects lists active projects, newest first.
func (p *ProjectLogic) GetActiveProjects() ([]model.Project, error) {
	var projects []model.Project
	if err := p.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// ConfirmedDonationCounts returns the confirmed-donation count per
// project for the given ids.
func (p *ProjectLogic) ConfirmedDonationCounts(projectIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(projectIDs))
	if len(projectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProjectID string
		Count     int64
	}
	err := p.db.Model(&model.Donation{}).
		Select("project_id, COUNT(*) as count").
		Where("project_id IN ? AND is_confirmed = ?", projectIDs, true).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}

	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}

// RecentConfirmedDonations returns up to limit confirmed donations for
// a project, newest first.
func (p *ProjectLogic) RecentConfirmedDonations(projectID string, limit int) ([]model.Donation, error) {
	var donations []model.Donation
	if err := p.db.Where("project_id = ? AND is_confirmed = ?", projectID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

// UpdateProject applies a partial update of mutable fields and returns
// the updated project.
func (p *ProjectLogic) UpdateProject(id string, updates map[string]interface{}) (*model.Project, error) {
	project, err := p.GetProject(id)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return project, nil
	}

	if err := p.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return p.GetProject(id)
}

// IncrementRaised adds delta to the project's raised total as a
// store-side atomic add. It runs on the caller's transaction so the
// increment commits together with the donation row.
func (p *ProjectLogic) IncrementRaised(tx *gorm.DB, id string, delta decimal.Decimal) error {
	result := tx.Model(&model.Project{}).
		Where("id = ?", id).
		UpdateColumn("raised", gorm.Expr("raised + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to increment raised total: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
