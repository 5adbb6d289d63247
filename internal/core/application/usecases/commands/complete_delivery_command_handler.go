package commands

import (
	"context"
	"errors"
	"time"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

// ErrOrderNotInTransit is returned when completion is reported for an
// order that is not currently being delivered.
var ErrOrderNotInTransit = errors.New("order is not in transit")

// CompleteDeliveryCommandHandler handles delivery completion.
//
// Completion is a guarded conditional write that only succeeds while the
// order is in transit, so duplicate or stale completion reports are
// rejected instead of silently restamping the delivery time. The assigned
// driver is released back into the available pool in the same transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the completion. On success returns the delivered order.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveredAt := h.now()
	delivered, err := uow.OrderRepository().DeliverIfInTransit(ctx, cmd.OrderNumber(), deliveredAt)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if errors.Is(err, errs.ErrObjectConflict) {
		return nil, ErrOrderNotInTransit
	}
	if err != nil {
		return nil, err
	}

	if driverID := delivered.AssignedDriver(); driverID != nil {
		if err = uow.DriverRepository().SetAvailability(ctx, *driverID, true); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.PublishDeliveryCompleted(ctx, ports.DeliveryNotice{
		OrderNumber: delivered.Number(),
		At:          deliveredAt,
	})

	return delivered, nil
}
