package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents the assigned driver reporting that an
// in-transit order has been handed to the customer.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderNumber string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to mark an order delivered.
func NewCompleteDeliveryCommand(orderNumber string) (CompleteDeliveryCommand, error) {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderNumber returns the public tracking number of the delivered order.
func (c CompleteDeliveryCommand) OrderNumber() string {
	return c.orderNumber
}
