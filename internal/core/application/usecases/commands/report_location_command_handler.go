package commands

import (
	"context"
	"log/slog"
	"time"

	"tawsila/internal/core/ports"
)

// ReportLocationCommandHandler handles live position fixes from drivers.
//
// Relaying the fix to the order's tracking room is the priority path.
// Persisting it on the order and on the driver row is best-effort: storage
// errors are logged and the relay proceeds anyway, so a slow or briefly
// unavailable database never stalls the live tracking stream.
type ReportLocationCommandHandler struct {
	uowFactory UoWFactory
	presence   ports.Presence
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(
	uowFactory UoWFactory,
	presence ports.Presence,
	notifier ports.Notifier,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		notifier:   notifier,
		logger:     logger.With("component", "ReportLocationCommandHandler"),
		now:        time.Now,
	}
}

// Handle records the fix in the presence registry, publishes it to the
// order's tracking room and persists it in the background contract
// described above.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	at := h.now()
	h.presence.UpdateCoords(cmd.DriverID(), cmd.Coords())

	h.notifier.PublishLocation(ctx, ports.LocationNotice{
		OrderNumber: cmd.OrderNumber(),
		DriverID:    cmd.DriverID(),
		Coords:      cmd.Coords(),
		At:          at,
	})

	if err := h.persist(ctx, cmd, at); err != nil {
		h.logger.Warn("location persistence failed",
			"order", cmd.OrderNumber(), "driver", cmd.DriverID().String(), "error", err)
	}

	return nil
}

func (h ReportLocationCommandHandler) persist(ctx context.Context, cmd ReportLocationCommand, at time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().SetTrackedLocation(ctx, cmd.OrderNumber(), cmd.Coords(), at); err != nil {
		return err
	}

	if err := uow.DriverRepository().UpdateCoords(ctx, cmd.DriverID(), cmd.Coords()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
