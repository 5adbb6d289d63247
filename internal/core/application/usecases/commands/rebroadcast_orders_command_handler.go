package commands

import (
	"context"
	"log/slog"
	"time"

	"tawsila/internal/core/ports"
)

// RebroadcastOrdersCommandHandler re-announces waiting orders to the
// driver pool.
//
// An order submitted while every driver was busy or offline sits in the
// received state until someone claims it. Drivers who connect later never
// saw the original announcement, so this handler periodically repeats it
// for orders that have waited long enough.
type RebroadcastOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger

	now func() time.Time
}

// NewRebroadcastOrdersCommandHandler creates a rebroadcast handler.
func NewRebroadcastOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RebroadcastOrdersCommandHandler {
	return RebroadcastOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "RebroadcastOrdersCommandHandler"),
		now:        time.Now,
	}
}

// Handle runs one rebroadcast pass. Returns how many orders were
// re-announced.
func (h RebroadcastOrdersCommandHandler) Handle(ctx context.Context, cmd RebroadcastOrdersCommand) (int, error) {
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

	waiting, err := uow.OrderRepository().GetAllReceived(ctx)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	cutoff := h.now().Add(-cmd.OlderThan())
	announced := 0
	for _, waitingOrder := range waiting {
		if waitingOrder.CreatedAt().After(cutoff) {
			continue
		}
		h.notifier.BroadcastNewOrder(ctx, orderNotice(waitingOrder))
		announced++
	}

	if announced > 0 {
		h.logger.Info("re-announced waiting orders", "orders", announced)
	}

	return announced, nil
}
