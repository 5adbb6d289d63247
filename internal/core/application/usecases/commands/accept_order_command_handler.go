package commands

import (
	"context"
	"errors"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when no order exists for the number.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderAlreadyTaken is returned when another driver claimed the
	// order first, or the order left the Received status some other way.
	ErrOrderAlreadyTaken = errors.New("order already taken")
)

// AcceptOrderCommandHandler handles a driver claiming a broadcast order.
//
// The claim is a guarded conditional write: it succeeds only while the
// order is still in Received status, so concurrent acceptances resolve to
// exactly one winner. The losing drivers receive ErrOrderAlreadyTaken and
// nothing about their state changes. The winner is marked unavailable in
// the same transaction.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the acceptance. On success returns the assigned order.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	assigned, err := uow.OrderRepository().AssignIfReceived(ctx, cmd.OrderNumber(), cmd.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if errors.Is(err, errs.ErrObjectConflict) {
		return nil, ErrOrderAlreadyTaken
	}
	if err != nil {
		return nil, err
	}

	if err = uow.DriverRepository().SetAvailability(ctx, cmd.DriverID(), false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.PublishStatusUpdate(ctx, ports.StatusNotice{
		OrderNumber: assigned.Number(),
		Status:      assigned.Status().String(),
	})

	return assigned, nil
}
