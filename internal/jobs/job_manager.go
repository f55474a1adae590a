package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoAssignJob *AutoAssignJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the auto-assign handler as a dependency to wire up job execution.
func NewJobManager(
	autoAssignHandler AutoAssigner,
	sink *metrics.PromSink,
	interval time.Duration,
	tickTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoAssignJob: NewAutoAssignJob(autoAssignHandler, sink, interval, tickTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoAssignJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-assign job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoAssignJob.Stop()
}
