package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/guard"
)

var ErrBroadcastLocationCommandIsNotConstructed = errors.New(
	"BroadcastLocationCommand must be created via NewBroadcastLocationCommand constructor",
)

// BroadcastLocationCommand carries a position fix reported against the
// driver rather than a single order. The handler fans it out to every
// delivery the driver currently has in transit.
type BroadcastLocationCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	coords   kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewBroadcastLocationCommand creates a driver-wide location broadcast.
func NewBroadcastLocationCommand(driverID kernel.UUID, coords kernel.Coordinates) (BroadcastLocationCommand, error) {
	broadcastCommand := BroadcastLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		broadcastCommand.setDriverID(driverID),
		broadcastCommand.setCoords(coords),
	); err != nil {
		return BroadcastLocationCommand{}, err
	}

	return broadcastCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c BroadcastLocationCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver's identifier.
func (c BroadcastLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Coords returns the reported position.
func (c BroadcastLocationCommand) Coords() kernel.Coordinates {
	return c.coords
}

func (c *BroadcastLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *BroadcastLocationCommand) setCoords(coords kernel.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	c.coords = coords
	return nil
}
