package order

import (
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer value was not
// created via NewCustomer.
var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError(
	"customer must be created via NewCustomer constructor")

// Customer is the contact and destination information embedded in an order.
// Name, phone and coordinates are required; the free-text address is
// optional and only used for display and statistics.
//
// Customer is an immutable value object.
type Customer struct { //nolint:recvcheck //using for validation
	name    string
	phone   string
	address string
	coords  kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewCustomer creates a validated Customer value.
func NewCustomer(name string, phone string, address string, coords kernel.Coordinates) (Customer, error) {
	if name == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer name")
	}
	if phone == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer phone")
	}
	if err := coords.Validate(); err != nil {
		return Customer{}, err
	}

	return Customer{
		name:    name,
		phone:   phone,
		address: address,
		coords:  coords,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate checks the Customer was created via NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's contact phone. It also serves as the
// identity used for the one-active-order-per-customer rule.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the free-text delivery address, possibly empty.
func (c Customer) Address() string {
	return c.address
}

// Coords returns the delivery destination coordinates.
func (c Customer) Coords() kernel.Coordinates {
	return c.coords
}
