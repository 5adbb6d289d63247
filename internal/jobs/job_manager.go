package jobs

import (
	"fmt"
	"log/slog"

	"tawsila/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	availabilitySyncJob *AvailabilitySyncJob
	orderRebroadcastJob *OrderRebroadcastJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	syncAvailabilityHandler commands.SyncAvailabilityCommandHandler,
	rebroadcastHandler commands.RebroadcastOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		availabilitySyncJob: NewAvailabilitySyncJob(syncAvailabilityHandler, logger),
		orderRebroadcastJob: NewOrderRebroadcastJob(rebroadcastHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.availabilitySyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start availability sync job: %w", err)
	}

	if err := jm.orderRebroadcastJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.availabilitySyncJob.Stop()
		return fmt.Errorf("failed to start order rebroadcast job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.availabilitySyncJob.Stop()
	jm.orderRebroadcastJob.Stop()
}
