package jobs

import (
	"database/sql"

	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository/postgres"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db        *sql.DB
	store     *postgres.Store
	publisher events.Publisher
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, publisher events.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:        db,
		store:     store,
		publisher: publisher,
		config:    cfg,
	}
}

// Config exposes the configuration for schedule registration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllSweeps runs every sweep once (for manual execution)
func (jr *JobRunner) RunAllSweeps() {
	jr.ExpireStalePayments()
	jr.MarkNoShows()
}
