package commands

import (
	"context"
	"errors"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
)

// ErrOrderNotRatable is returned when the order is not delivered yet or a
// rating has already been recorded.
var ErrOrderNotRatable = errors.New("order cannot be rated")

// RateOrderCommandHandler handles customer ratings.
//
// The write is guarded on the order being delivered and not yet rated, so
// a second rating attempt loses cleanly instead of overwriting the first.
type RateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRateOrderCommandHandler creates a handler for order rating.
func NewRateOrderCommandHandler(uowFactory OrderUoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating. On success returns the rated order.
func (h RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) (*order.Order, error) {
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

	rated, err := uow.OrderRepository().RateIfDelivered(ctx, cmd.OrderNumber(), cmd.Rating())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if errors.Is(err, errs.ErrObjectConflict) {
		return nil, ErrOrderNotRatable
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rated, nil
}
