package jobs

import (
	"context"
	"log/slog"

	"tawsila/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// availabilitySyncSchedule runs the reconciliation once a minute. The
// pass is idempotent, so overlap with live releases is harmless.
const availabilitySyncSchedule = "0 * * * * *"

// AvailabilitySyncJob periodically restores the availability flag of
// drivers who have nothing in transit, repairing pool shrinkage left by
// crashed processes or missed releases.
type AvailabilitySyncJob struct {
	handler commands.SyncAvailabilityCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAvailabilitySyncJob creates the reconciliation job.
func NewAvailabilitySyncJob(handler commands.SyncAvailabilityCommandHandler, logger *slog.Logger) *AvailabilitySyncJob {
	return &AvailabilitySyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "availability_sync_job"),
	}
}

// Start schedules the reconciliation pass.
func (j *AvailabilitySyncJob) Start() error {
	_, err := j.cron.AddFunc(availabilitySyncSchedule, func() {
		ctx := context.Background()

		if _, err := j.handler.Handle(ctx, commands.NewSyncAvailabilityCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Availability sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Availability sync job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *AvailabilitySyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Availability sync job stopped")
}
