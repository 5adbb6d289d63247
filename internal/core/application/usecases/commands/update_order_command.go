package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents an administrative edit of an order. All
// fields except the order number are optional; nil means "leave as is".
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber   string
	status        *order.Status
	customerName  *string
	customerPhone *string
	address       *string
	itemType      *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command for an administrative order edit.
// The status, when present, must be a known status value.
func NewUpdateOrderCommand(
	orderNumber string,
	status *order.Status,
	customerName *string,
	customerPhone *string,
	address *string,
	itemType *string,
) (UpdateOrderCommand, error) {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return UpdateOrderCommand{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	return UpdateOrderCommand{
		orderNumber:   orderNumber,
		status:        status,
		customerName:  customerName,
		customerPhone: customerPhone,
		address:       address,
		itemType:      itemType,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderNumber returns the public tracking number of the edited order.
func (c UpdateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Status returns the requested status, or nil when unchanged.
func (c UpdateOrderCommand) Status() *order.Status {
	return c.status
}

// CustomerName returns the new customer name, or nil when unchanged.
func (c UpdateOrderCommand) CustomerName() *string {
	return c.customerName
}

// CustomerPhone returns the new customer phone, or nil when unchanged.
func (c UpdateOrderCommand) CustomerPhone() *string {
	return c.customerPhone
}

// Address returns the new delivery address, or nil when unchanged.
func (c UpdateOrderCommand) Address() *string {
	return c.address
}

// ItemType returns the new item description, or nil when unchanged.
func (c UpdateOrderCommand) ItemType() *string {
	return c.itemType
}
