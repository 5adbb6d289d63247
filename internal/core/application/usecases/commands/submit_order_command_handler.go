package commands

import (
	"context"
	"errors"
	"log/slog"

	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/domain/services"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

// ErrCustomerHasActiveOrder is returned when the submitting customer
// already has an order that is neither delivered nor cancelled.
var ErrCustomerHasActiveOrder = errors.New("customer already has an active order")

// SubmitOrderCommandHandler handles the business logic for order submission
// and immediate dispatch.
//
// Submission is two phases. The first phase persists the new order in
// Received status, rejecting customers who already have an active order.
// The second phase attempts nearest-driver dispatch: it snapshots the
// connected available drivers, ranks them by proximity to the drop-off
// point, and walks the ranking claiming the order with a guarded
// conditional write. The first successful claim wins; a driver lost to a
// concurrent claim is simply skipped. When nobody can be assigned the
// order is broadcast to the whole driver pool instead, and the first
// driver to accept takes it.
//
// Dispatch failures never fail the submission: the order is already
// persisted and remains claimable through the pool.
type SubmitOrderCommandHandler struct {
	uowFactory UoWFactory
	presence   ports.Presence
	notifier   ports.Notifier
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// Requires a UoWFactory for transactional persistence, the presence
// registry for the dispatch snapshot and a notifier for driver fan-out.
func NewSubmitOrderCommandHandler(
	uowFactory UoWFactory,
	presence ports.Presence,
	notifier ports.Notifier,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		notifier:   notifier,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "SubmitOrderCommandHandler"),
	}
}

// Handle processes the order submission command. Returns the persisted
// order so callers can hand the customer the generated tracking number.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(cmd.CustomerName(), cmd.CustomerPhone(), cmd.Address(), cmd.Destination())
	if err != nil {
		return nil, err
	}

	newOrder, err := h.persist(ctx, customer, cmd.ItemType())
	if err != nil {
		return nil, err
	}

	h.dispatch(ctx, newOrder)
	return newOrder, nil
}

func (h SubmitOrderCommandHandler) persist(ctx context.Context, customer order.Customer, itemType string) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	hasActive, err := orderRepo.HasActiveForPhone(ctx, customer.Phone())
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, ErrCustomerHasActiveOrder
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), customer, itemType)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}

// dispatch attempts to assign the freshly submitted order to the nearest
// connected driver, falling back to a pool-wide broadcast.
func (h SubmitOrderCommandHandler) dispatch(ctx context.Context, newOrder *order.Order) {
	candidates, err := h.candidates(ctx)
	if err != nil {
		h.logger.Warn("dispatch snapshot failed, broadcasting to pool",
			"order", newOrder.Number(), "error", err)
		h.notifier.BroadcastNewOrder(ctx, orderNotice(newOrder))
		return
	}

	ranked, err := h.dispatcher.RankCandidates(newOrder, candidates)
	if err != nil {
		if !errors.Is(err, services.ErrDriverNotFound) {
			h.logger.Warn("driver ranking failed", "order", newOrder.Number(), "error", err)
		}
		h.notifier.BroadcastNewOrder(ctx, orderNotice(newOrder))
		return
	}

	for i, candidate := range ranked {
		assigned, err := h.claim(ctx, newOrder.Number(), candidate.ID())
		if errors.Is(err, errs.ErrObjectConflict) {
			continue
		}
		if err != nil {
			h.logger.Warn("order claim failed", "order", newOrder.Number(),
				"driver", candidate.ID().String(), "error", err)
			break
		}

		h.notifier.NotifyOrderAssigned(ctx, candidate.ID(), orderNotice(assigned))
		h.notifier.PublishStatusUpdate(ctx, ports.StatusNotice{
			OrderNumber: assigned.Number(),
			Status:      assigned.Status().String(),
		})

		// The rest of the fleet still hears about the demand, as an
		// informational notice rather than an assignment.
		for j, loser := range ranked {
			if j == i {
				continue
			}
			h.notifier.NotifyNewOrder(ctx, loser.ID(), orderNotice(newOrder))
		}
		return
	}

	h.notifier.BroadcastNewOrder(ctx, orderNotice(newOrder))
}

// candidates merges the persisted available drivers with the presence
// registry: only connected drivers are considered, and the registry's
// position fix wins over the persisted one because it is fresher.
func (h SubmitOrderCommandHandler) candidates(ctx context.Context) ([]*driver.Driver, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	available, err := uow.DriverRepository().GetAllAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	online := make(map[string]*kernel.Coordinates, len(available))
	for _, connected := range h.presence.Snapshot() {
		online[connected.ID.String()] = connected.Coords
	}

	candidates := make([]*driver.Driver, 0, len(available))
	for _, d := range available {
		coords, ok := online[d.ID().String()]
		if !ok {
			continue
		}
		if coords != nil {
			if err := d.MoveTo(*coords); err != nil {
				continue
			}
		}
		candidates = append(candidates, d)
	}

	return candidates, nil
}

// claim performs the guarded assignment and marks the winning driver
// unavailable within the same transaction.
func (h SubmitOrderCommandHandler) claim(ctx context.Context, number string, driverID kernel.UUID) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assigned, err := uow.OrderRepository().AssignIfReceived(ctx, number, driverID)
	if err != nil {
		return nil, err
	}

	if err = uow.DriverRepository().SetAvailability(ctx, driverID, false); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assigned, nil
}
