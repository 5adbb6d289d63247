package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/guard"
)

var ErrConnectDriverCommandIsNotConstructed = errors.New(
	"ConnectDriverCommand must be created via NewConnectDriverCommand constructor",
)

// ConnectDriverCommand records that a driver came online announcing their
// position. Joining with a position is an explicit "ready for work"
// signal, so the handler restores the persisted availability flag along
// with the coordinates.
type ConnectDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	coords   kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewConnectDriverCommand creates a driver-online command.
func NewConnectDriverCommand(driverID kernel.UUID, coords kernel.Coordinates) (ConnectDriverCommand, error) {
	connectCommand := ConnectDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		connectCommand.setDriverID(driverID),
		connectCommand.setCoords(coords),
	); err != nil {
		return ConnectDriverCommand{}, err
	}

	return connectCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ConnectDriverCommand) Validate() error {
	return c.guard.Validate(ErrConnectDriverCommandIsNotConstructed)
}

// DriverID returns the joining driver's identifier.
func (c ConnectDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Coords returns the position announced with the join.
func (c ConnectDriverCommand) Coords() kernel.Coordinates {
	return c.coords
}

func (c *ConnectDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *ConnectDriverCommand) setCoords(coords kernel.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	c.coords = coords
	return nil
}
