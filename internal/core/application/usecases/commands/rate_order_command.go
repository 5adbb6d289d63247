package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents a customer rating a delivered order.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	rating      int

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate a delivered order.
// The rating must be within [order.RatingMin, order.RatingMax].
func NewRateOrderCommand(orderNumber string, rating int) (RateOrderCommand, error) {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return RateOrderCommand{}, err
	}
	if rating < order.RatingMin || rating > order.RatingMax {
		return RateOrderCommand{}, errs.NewValueIsOutOfRangeError(
			"rating", rating, order.RatingMin, order.RatingMax)
	}

	return RateOrderCommand{
		orderNumber: orderNumber,
		rating:      rating,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderNumber returns the public tracking number of the rated order.
func (c RateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Rating returns the submitted rating value.
func (c RateOrderCommand) Rating() int {
	return c.rating
}
