package jobs

import (
	"context"
	"log/slog"
	"time"

	"tawsila/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// orderRebroadcastSchedule repeats pool announcements every 30 seconds.
	orderRebroadcastSchedule = "*/30 * * * * *"

	// orderRebroadcastMinAge keeps just-submitted orders out of the repeat:
	// their first announcement is still in flight.
	orderRebroadcastMinAge = 30 * time.Second
)

// OrderRebroadcastJob re-announces orders still waiting for a driver, so
// drivers who connected after the original announcement see them too.
type OrderRebroadcastJob struct {
	handler commands.RebroadcastOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderRebroadcastJob creates the rebroadcast job.
func NewOrderRebroadcastJob(handler commands.RebroadcastOrdersCommandHandler, logger *slog.Logger) *OrderRebroadcastJob {
	return &OrderRebroadcastJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_rebroadcast_job"),
	}
}

// Start schedules the rebroadcast pass.
func (j *OrderRebroadcastJob) Start() error {
	_, err := j.cron.AddFunc(orderRebroadcastSchedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewRebroadcastOrdersCommand(orderRebroadcastMinAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order rebroadcast job misconfigured", "error", err)
			return
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order rebroadcast job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order rebroadcast job started (running every 30 seconds)")
	return nil
}

// Stop stops the rebroadcast job.
func (j *OrderRebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order rebroadcast job stopped")
}
