package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/guard"
)

var (
	ErrSubmitOrderCommandIsNotConstructed = errors.New(
		"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
	)
	ErrCustomerNameIsRequired  = errors.New("customer name is required")
	ErrCustomerPhoneIsRequired = errors.New("customer phone is required")
	ErrItemTypeIsRequired      = errors.New("item type is required")
)

// SubmitOrderCommand represents a customer's request to create a new
// delivery order. Encapsulates the contact details, the free-text address
// and the drop-off coordinates.
//
// Example:
//
//	coords, _ := kernel.NewCoordinates(33.5731, -7.5898)
//	cmd, err := NewSubmitOrderCommand("Leila Haddad", "+212600000001", "12 Rue des Fleurs", coords, "documents")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
//	fmt.Printf("Order %s submitted", result.Number())
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customerName  string
	customerPhone string
	address       string
	destination   kernel.Coordinates
	itemType      string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new delivery order.
// Validates that the customer name, phone and item type are not empty and
// that the destination coordinates are well formed.
func NewSubmitOrderCommand(
	customerName string,
	customerPhone string,
	address string,
	destination kernel.Coordinates,
	itemType string,
) (SubmitOrderCommand, error) {
	orderCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerName(customerName),
		orderCommand.setCustomerPhone(customerPhone),
		orderCommand.setDestination(destination),
		orderCommand.setItemType(itemType),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	orderCommand.address = address
	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// CustomerName returns the customer's display name.
func (c SubmitOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the customer's contact phone.
func (c SubmitOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// Address returns the free-text delivery address, possibly empty.
func (c SubmitOrderCommand) Address() string {
	return c.address
}

// Destination returns the drop-off coordinates.
func (c SubmitOrderCommand) Destination() kernel.Coordinates {
	return c.destination
}

// ItemType returns what kind of item is being delivered.
func (c SubmitOrderCommand) ItemType() string {
	return c.itemType
}

func (c *SubmitOrderCommand) setCustomerName(name string) error {
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	c.customerName = name
	return nil
}

func (c *SubmitOrderCommand) setCustomerPhone(phone string) error {
	if phone == "" {
		return ErrCustomerPhoneIsRequired
	}
	c.customerPhone = phone
	return nil
}

func (c *SubmitOrderCommand) setDestination(destination kernel.Coordinates) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	c.destination = destination
	return nil
}

func (c *SubmitOrderCommand) setItemType(itemType string) error {
	if itemType == "" {
		return ErrItemTypeIsRequired
	}
	c.itemType = itemType
	return nil
}
