package commands

import (
	"context"
	"errors"
	"time"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

// UpdateOrderCommandHandler handles administrative order edits.
//
// Status changes go through the aggregate's reconciliation rule: moving to
// cancelled stamps the cancellation time, moving anywhere else clears it,
// on every update. A driver released by an administrative cancellation is
// returned to the available pool.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewUpdateOrderCommandHandler creates a handler for administrative edits.
func NewUpdateOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle processes the edit. On success returns the updated order.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByNumber(ctx, cmd.OrderNumber())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	wasActive := existing.Status().IsActive()

	if err = h.applyCustomerEdit(existing, cmd); err != nil {
		return nil, err
	}

	if cmd.ItemType() != nil {
		existing.ChangeItemType(*cmd.ItemType())
	}

	statusChanged := false
	if cmd.Status() != nil {
		if err = existing.ChangeStatus(*cmd.Status(), h.now()); err != nil {
			return nil, err
		}
		statusChanged = true
	} else {
		// The timestamp reconciles on every edit: a patch that does not
		// say "cancelled" leaves no cancellation mark behind.
		existing.ClearCancelledAt()
	}

	if err = orderRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	// An administrative move into a terminal state frees the driver.
	if statusChanged && wasActive && existing.Status().IsTerminal() {
		if driverID := existing.AssignedDriver(); driverID != nil {
			if err = uow.DriverRepository().SetAvailability(ctx, *driverID, true); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if statusChanged {
		h.notifier.PublishStatusUpdate(ctx, ports.StatusNotice{
			OrderNumber: existing.Number(),
			Status:      existing.Status().String(),
		})
	}

	return existing, nil
}

// applyCustomerEdit merges the optional contact fields into a fresh
// Customer value so the usual construction validation applies.
func (h UpdateOrderCommandHandler) applyCustomerEdit(existing *order.Order, cmd UpdateOrderCommand) error {
	if cmd.CustomerName() == nil && cmd.CustomerPhone() == nil && cmd.Address() == nil {
		return nil
	}

	current := existing.Customer()
	name := current.Name()
	phone := current.Phone()
	address := current.Address()

	if cmd.CustomerName() != nil {
		name = *cmd.CustomerName()
	}
	if cmd.CustomerPhone() != nil {
		phone = *cmd.CustomerPhone()
	}
	if cmd.Address() != nil {
		address = *cmd.Address()
	}

	customer, err := order.NewCustomer(name, phone, address, current.Coords())
	if err != nil {
		return err
	}

	return existing.ChangeCustomer(customer)
}
