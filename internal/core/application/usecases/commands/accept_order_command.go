package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a driver's claim on a broadcast order.
// Only one of the drivers racing for the same order number succeeds.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	driverID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a driver to claim an order.
// Validates the order number format and the driver ID.
func NewAcceptOrderCommand(orderNumber string, driverID kernel.UUID) (AcceptOrderCommand, error) {
	acceptCommand := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderNumber(orderNumber),
		acceptCommand.setDriverID(driverID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderNumber returns the public tracking number of the claimed order.
func (c AcceptOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// DriverID returns the identifier of the claiming driver.
func (c AcceptOrderCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AcceptOrderCommand) setOrderNumber(orderNumber string) error {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return err
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *AcceptOrderCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
