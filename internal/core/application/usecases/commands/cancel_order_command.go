package commands

import (
	"errors"
	"fmt"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// Parties that may cancel an order. The value travels with the
// cancellation event so consumers can tell which side pulled out.
const (
	CancelledByCustomer = "customer"
	CancelledByDriver   = "driver"
	CancelledByAdmin    = "admin"
)

// CancelOrderCommand represents a request to cancel an order that has not
// yet reached a terminal state.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	cancelledBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order by its
// tracking number on behalf of the given party.
func NewCancelOrderCommand(orderNumber, cancelledBy string) (CancelOrderCommand, error) {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return CancelOrderCommand{}, err
	}
	if err := validateCancelledBy(cancelledBy); err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{
		orderNumber: orderNumber,
		cancelledBy: cancelledBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func validateCancelledBy(cancelledBy string) error {
	switch cancelledBy {
	case CancelledByCustomer, CancelledByDriver, CancelledByAdmin:
		return nil
	case "":
		return errs.NewValueIsRequiredError("cancelled by")
	default:
		return errs.NewValueIsInvalidErrorWithCause("cancelled by",
			fmt.Errorf("unknown party %q", cancelledBy))
	}
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderNumber returns the public tracking number of the order to cancel.
func (c CancelOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// CancelledBy returns the party that asked for the cancellation.
func (c CancelOrderCommand) CancelledBy() string {
	return c.cancelledBy
}
