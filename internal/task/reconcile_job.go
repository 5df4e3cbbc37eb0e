package task

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/nothingdao/solana-support/internal/config"
	"github.com/nothingdao/solana-support/internal/logger"
	"github.com/nothingdao/solana-support/internal/model"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReconcileJob audits the reconciliation invariant: every project's
// raised total must equal the sum of its confirmed donations. The job
// is read-only and only reports drift; it never repairs totals or
// re-verifies donations.
type ReconcileJob struct {
	db     *gorm.DB
	config *config.Config
}

func NewReconcileJob(db *gorm.DB, cfg *config.Config) *ReconcileJob {
	return &ReconcileJob{
		db:     db,
		config: cfg,
	}
}

// GetName returns the job name.
func (j *ReconcileJob) GetName() string {
	return "raised_total_audit"
}

// GetSchedule returns the schedule definition.
func (j *ReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute checks every project through a worker pool.
func (j *ReconcileJob) Execute() {
	logger.Info("Starting raised-total audit")

	var projects []model.Project
	if err := j.db.Find(&projects).Error; err != nil {
		logger.Error("Audit failed to fetch projects: %v", err)
		return
	}

	workers := j.config.Task.Workers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		logger.Error("Audit failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	drifted := 0

	for _, project := range projects {
		project := project
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if !j.checkProject(&project) {
				mu.Lock()
				drifted++
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			logger.Warn("Audit failed to submit project %s: %v", project.ID, submitErr)
		}
	}
	wg.Wait()

	logger.Info("Raised-total audit completed. Checked %d projects, %d drifted", len(projects), drifted)
}

// checkProject recomputes the confirmed-donation sum and compares it to
// the stored total. Returns false on drift.
func (j *ReconcileJob) checkProject(project *model.Project) bool {
	var result struct {
		Total decimal.Decimal
	}
	err := j.db.Model(&model.Donation{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("project_id = ? AND is_confirmed = ?", project.ID, true).
		Scan(&result).Error
	if err != nil {
		logger.Error("Audit failed to sum donations for project %s: %v", project.ID, err)
		return true
	}

	if !project.Raised.Equal(result.Total) {
		logger.Error("Raised-total drift on project %s: stored %s, confirmed sum %s",
			project.ID, project.Raised, result.Total)
		return false
	}
	return true
}
