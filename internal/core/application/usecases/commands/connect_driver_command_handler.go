package commands

import (
	"context"
	"log/slog"
)

// ConnectDriverCommandHandler persists the side effects of a driver
// joining with a position: the announced coordinates and availability set
// back to true. A driver who reconnects after a crash becomes dispatch
// eligible right away instead of waiting for the reconciliation pass.
type ConnectDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	logger     *slog.Logger
}

// NewConnectDriverCommandHandler creates a handler for driver joins.
func NewConnectDriverCommandHandler(uowFactory DriverUoWFactory, logger *slog.Logger) ConnectDriverCommandHandler {
	return ConnectDriverCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "ConnectDriverCommandHandler"),
	}
}

// Handle writes the join side effects in one transaction.
func (h ConnectDriverCommandHandler) Handle(ctx context.Context, cmd ConnectDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	if err := driverRepo.UpdateCoords(ctx, cmd.DriverID(), cmd.Coords()); err != nil {
		return err
	}

	if err := driverRepo.SetAvailability(ctx, cmd.DriverID(), true); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
