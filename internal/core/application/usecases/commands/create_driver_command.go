package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrDriverNameIsRequired     = errors.New("driver full name is required")
	ErrDriverUsernameIsRequired = errors.New("driver username is required")
	ErrDriverPhoneIsRequired    = errors.New("driver phone is required")
)

// CreateDriverCommand represents a request to register a new driver.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	fullName string
	username string
	phone    string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver.
// Validates that the ID is valid and that no required field is empty.
func NewCreateDriverCommand(driverID kernel.UUID, fullName string, username string, phone string) (CreateDriverCommand, error) {
	driverCommand := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverCommand.setDriverID(driverID),
		driverCommand.setFullName(fullName),
		driverCommand.setUsername(username),
		driverCommand.setPhone(phone),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return driverCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the identifier for the new driver.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// FullName returns the driver's display name.
func (c CreateDriverCommand) FullName() string {
	return c.fullName
}

// Username returns the driver's login name.
func (c CreateDriverCommand) Username() string {
	return c.username
}

// Phone returns the driver's contact phone.
func (c CreateDriverCommand) Phone() string {
	return c.phone
}

func (c *CreateDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *CreateDriverCommand) setFullName(fullName string) error {
	if fullName == "" {
		return ErrDriverNameIsRequired
	}
	c.fullName = fullName
	return nil
}

func (c *CreateDriverCommand) setUsername(username string) error {
	if username == "" {
		return ErrDriverUsernameIsRequired
	}
	c.username = username
	return nil
}

func (c *CreateDriverCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrDriverPhoneIsRequired
	}
	c.phone = phone
	return nil
}
