package jobs

import (
	"context"
	"fmt"
	"os"
	"time"

	"hireflow-backend/internal/config"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/repository"
	"hireflow-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos    Repositories
	services *Services
	config   *config.Config
	owner    string
	now      func() time.Time
}

// Repositories holds the stores read by jobs
type Repositories struct {
	Interviews repository.InterviewRepository
	JobOffers  repository.JobOfferRepository
	Claims     repository.JobClaimRepository
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Interview service.InterviewService
	Gateway   service.MessagingGateway
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repos Repositories, services *Services, cfg *config.Config) *JobRunner {
	host, _ := os.Hostname()
	return &JobRunner{
		repos:    repos,
		services: services,
		config:   cfg,
		owner:    fmt.Sprintf("%s/%d", host, os.Getpid()),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Config returns the configuration the runner was built with
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

// claim reports whether this replica should run jobName for period. A
// failed claim skips the run: another replica may hold it.
func (jr *JobRunner) claim(ctx context.Context, jobName, period string) bool {
	ok, err := jr.repos.Claims.Claim(ctx, jobName, period, jr.owner)
	if err != nil {
		logger.Error("Failed to claim job run", "job", jobName, "period", period, "error", err)
		return false
	}
	if !ok {
		logger.Info("Job run already claimed by another replica", "job", jobName, "period", period)
	}
	return ok
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendUpcomingDigest()
	jr.SendPendingReminders()
}
