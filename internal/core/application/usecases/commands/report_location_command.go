package commands

import (
	"errors"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a position fix reported by the driver
// currently delivering an order.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	driverID    kernel.UUID
	coords      kernel.Coordinates

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command carrying one position fix.
func NewReportLocationCommand(orderNumber string, driverID kernel.UUID, coords kernel.Coordinates) (ReportLocationCommand, error) {
	locationCommand := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		locationCommand.setOrderNumber(orderNumber),
		locationCommand.setDriverID(driverID),
		locationCommand.setCoords(coords),
	); err != nil {
		return ReportLocationCommand{}, err
	}

	return locationCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// OrderNumber returns the tracking number the fix belongs to.
func (c ReportLocationCommand) OrderNumber() string {
	return c.orderNumber
}

// DriverID returns the reporting driver's identifier.
func (c ReportLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Coords returns the reported position.
func (c ReportLocationCommand) Coords() kernel.Coordinates {
	return c.coords
}

func (c *ReportLocationCommand) setOrderNumber(orderNumber string) error {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return err
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *ReportLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *ReportLocationCommand) setCoords(coords kernel.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return err
	}
	c.coords = coords
	return nil
}
