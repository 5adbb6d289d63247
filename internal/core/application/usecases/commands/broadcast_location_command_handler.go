package commands

import (
	"context"
	"log/slog"
	"time"

	"tawsila/internal/core/ports"
)

// BroadcastLocationCommandHandler relays a driver-level position fix to the
// tracking room of every order the driver has in transit. Unlike the
// per-order report, the set of affected orders comes from storage, so a
// database failure fails the whole command.
type BroadcastLocationCommandHandler struct {
	uowFactory UoWFactory
	presence   ports.Presence
	notifier   ports.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// NewBroadcastLocationCommandHandler creates a handler for driver-wide
// location broadcasts.
func NewBroadcastLocationCommandHandler(
	uowFactory UoWFactory,
	presence ports.Presence,
	notifier ports.Notifier,
	logger *slog.Logger,
) BroadcastLocationCommandHandler {
	return BroadcastLocationCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		notifier:   notifier,
		logger:     logger.With("component", "BroadcastLocationCommandHandler"),
		now:        time.Now,
	}
}

// Handle persists the fix, then publishes it to each in-transit order room.
// It returns the number of orders notified.
func (h BroadcastLocationCommandHandler) Handle(ctx context.Context, cmd BroadcastLocationCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	at := h.now()
	h.presence.UpdateCoords(cmd.DriverID(), cmd.Coords())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inTransit, err := uow.OrderRepository().GetInTransitByDriver(ctx, cmd.DriverID())
	if err != nil {
		return 0, err
	}

	for _, o := range inTransit {
		if err := uow.OrderRepository().SetTrackedLocation(ctx, o.Number(), cmd.Coords(), at); err != nil {
			return 0, err
		}
	}

	if err := uow.DriverRepository().UpdateCoords(ctx, cmd.DriverID(), cmd.Coords()); err != nil {
		return 0, err
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, o := range inTransit {
		h.notifier.PublishLocation(ctx, ports.LocationNotice{
			OrderNumber: o.Number(),
			DriverID:    cmd.DriverID(),
			Coords:      cmd.Coords(),
			At:          at,
		})
	}

	return len(inTransit), nil
}
