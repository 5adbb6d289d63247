package commands

import (
	"context"
	"log/slog"
)

// SyncAvailabilityCommandHandler reconciles the persisted availability
// flags against the orders actually in flight.
//
// Partial failures leave the flags drifting in both directions: a crashed
// process or a missed release can leave a driver flagged unavailable with
// no in-transit order (silently shrinking the dispatch pool), and a
// failed claim cleanup can leave a driver flagged available while still
// carrying a delivery. The order's persisted status is the source of
// truth, so this handler walks every driver and corrects the flag both
// ways: nothing in transit means available, something in transit means
// unavailable.
type SyncAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

// NewSyncAvailabilityCommandHandler creates a reconciliation handler.
func NewSyncAvailabilityCommandHandler(uowFactory UoWFactory, logger *slog.Logger) SyncAvailabilityCommandHandler {
	return SyncAvailabilityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "SyncAvailabilityCommandHandler"),
	}
}

// Handle runs one reconciliation pass. Returns how many drivers had their
// availability flag corrected, in either direction.
func (h SyncAvailabilityCommandHandler) Handle(ctx context.Context, cmd SyncAvailabilityCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	orderRepo := uow.OrderRepository()

	drivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	corrected := 0
	for _, d := range drivers {
		inTransit, err := orderRepo.GetInTransitByDriver(ctx, d.ID())
		if err != nil {
			return 0, err
		}

		shouldBeAvailable := len(inTransit) == 0
		if d.IsAvailable() == shouldBeAvailable {
			continue
		}

		if err = driverRepo.SetAvailability(ctx, d.ID(), shouldBeAvailable); err != nil {
			return 0, err
		}
		corrected++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if corrected > 0 {
		h.logger.Info("reconciled driver availability", "drivers", corrected)
	}

	return corrected, nil
}
