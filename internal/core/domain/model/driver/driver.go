package driver

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrFullNameIsRequired is returned when attempting to create a driver without a name.
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("full name")
	// ErrUsernameIsRequired is returned when attempting to create a driver without a username.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrPhoneIsRequired is returned when attempting to create a driver without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a mobile delivery driver (staff user).
// It is an aggregate root that manages driver identity, availability for
// dispatch, and the last coordinates the driver reported.
//
// Business rules:
//   - A driver must have a valid UUID, non-empty full name, username and phone
//   - A new driver starts available
//   - Coordinates are optional: a driver that never reported a fix has none,
//     and stays ineligible for nearest-match dispatch until the first report
//
// Availability is dispatch bookkeeping, not an employment state: dispatch
// takes it, delivery and cancellation give it back, and the reconciliation
// job resyncs it against non-terminal orders after a partial failure.
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// fullName is the human-readable name of the driver
	fullName string
	// username is the unique login name
	username string
	// phone is the contact number shared with customers on assignment
	phone string
	// availability reports whether the driver can take a new order
	availability bool
	// coords is the last known position, nil until the first report
	coords *kernel.Coordinates
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver with the specified identity.
// This is the only way to create a valid fresh Driver instance; drivers
// loaded from persistence go through RestoreDriver.
//
// A newly created driver is available and has no known coordinates.
func NewDriver(id kernel.UUID, fullName string, username string, phone string) (*Driver, error) {
	d := &Driver{
		availability: true,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setFullName(fullName),
		d.setUsername(username),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// preserving its availability and last known coordinates.
func RestoreDriver(
	id kernel.UUID,
	fullName string,
	username string,
	phone string,
	availability bool,
	coords *kernel.Coordinates,
) (*Driver, error) {
	d := &Driver{
		availability: availability,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setFullName(fullName),
		d.setUsername(username),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	if coords != nil {
		if err := coords.Validate(); err != nil {
			return nil, err
		}
		c := *coords
		d.coords = &c
	}

	return d, nil
}

// Validate checks the Driver was created via one of the constructors.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// FullName returns the driver's display name.
func (d *Driver) FullName() string {
	return d.fullName
}

// Username returns the driver's login name.
func (d *Driver) Username() string {
	return d.username
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// IsAvailable reports whether the driver can take a new order.
func (d *Driver) IsAvailable() bool {
	return d.availability
}

// Coords returns the driver's last known position, or nil if the driver
// never reported one.
func (d *Driver) Coords() *kernel.Coordinates {
	return d.coords
}

// SetAvailability updates the driver's dispatch availability.
func (d *Driver) SetAvailability(available bool) {
	d.availability = available
}

// MoveTo records the driver's latest reported position.
func (d *Driver) MoveTo(coords kernel.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	d.coords = &coords
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setFullName(fullName string) error {
	if fullName == "" {
		return ErrFullNameIsRequired
	}
	d.fullName = fullName
	return nil
}

func (d *Driver) setUsername(username string) error {
	if username == "" {
		return ErrUsernameIsRequired
	}
	d.username = username
	return nil
}

func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}
