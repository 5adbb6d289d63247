package commands

import (
	"context"
	"errors"
	"time"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

// ErrOrderNotCancellable is returned when the order already reached a
// terminal state and can no longer be cancelled.
var ErrOrderNotCancellable = errors.New("order can no longer be cancelled")

// CancelOrderCommandHandler handles order cancellation.
//
// Cancellation is a guarded conditional write that only succeeds while the
// order is still active. When the order had an assigned driver, that driver
// is released back into the available pool in the same transaction, and is
// notified directly so their app can drop the order.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the cancellation. On success returns the cancelled order.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	cancelledAt := h.now()
	cancelled, err := uow.OrderRepository().CancelIfActive(ctx, cmd.OrderNumber(), cancelledAt)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if errors.Is(err, errs.ErrObjectConflict) {
		return nil, ErrOrderNotCancellable
	}
	if err != nil {
		return nil, err
	}

	if driverID := cancelled.AssignedDriver(); driverID != nil {
		if err = uow.DriverRepository().SetAvailability(ctx, *driverID, true); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.PublishOrderCancelled(ctx, cancelled.AssignedDriver(), ports.DeliveryNotice{
		OrderNumber: cancelled.Number(),
		At:          cancelledAt,
		CancelledBy: cmd.CancelledBy(),
	})

	return cancelled, nil
}
