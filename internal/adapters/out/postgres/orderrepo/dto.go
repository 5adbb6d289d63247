// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The public tracking number and the customer phone are indexed because the
// guarded transition writes and the duplicate-order check filter on them.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"uniqueIndex;size:32"`
	CustomerName     string     `gorm:"size:128"`
	CustomerPhone    string     `gorm:"index;size:32"`
	CustomerAddress  string     `gorm:"size:256"`
	DestinationLat   float64    `gorm:"type:double precision"`
	DestinationLng   float64    `gorm:"type:double precision"`
	ItemType         string     `gorm:"size:64"`
	Status           string     `gorm:"index;size:16"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`
	TrackedLat       *float64   `gorm:"type:double precision"`
	TrackedLng       *float64   `gorm:"type:double precision"`
	TrackedAt        *time.Time
	Rating           *int
	CancelledAt      *time.Time
	DeliveredAt      *time.Time
	CreatedAt        time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.AssignedDriver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:               aggregate.ID().Bytes(),
		Number:           aggregate.Number(),
		CustomerName:     aggregate.Customer().Name(),
		CustomerPhone:    aggregate.Customer().Phone(),
		CustomerAddress:  aggregate.Customer().Address(),
		DestinationLat:   aggregate.Customer().Coords().Lat(),
		DestinationLng:   aggregate.Customer().Coords().Lng(),
		ItemType:         aggregate.ItemType(),
		Status:           aggregate.Status().String(),
		AssignedDriverID: driverID,
		Rating:           aggregate.Rating(),
		CancelledAt:      aggregate.CancelledAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CreatedAt:        aggregate.CreatedAt(),
	}

	if tracked := aggregate.TrackedLocation(); tracked != nil {
		lat := tracked.Coords.Lat()
		lng := tracked.Coords.Lng()
		at := tracked.At
		dto.TrackedLat = &lat
		dto.TrackedLng = &lng
		dto.TrackedAt = &at
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewCoordinates(dto.DestinationLat, dto.DestinationLng)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone, dto.CustomerAddress, destination)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var tracked *order.TrackedLocation
	if dto.TrackedLat != nil && dto.TrackedLng != nil && dto.TrackedAt != nil {
		coords, coordsErr := kernel.NewCoordinates(*dto.TrackedLat, *dto.TrackedLng)
		if coordsErr != nil {
			return nil, coordsErr
		}
		tracked = &order.TrackedLocation{Coords: coords, At: *dto.TrackedAt}
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customer,
		dto.ItemType,
		status,
		driverID,
		tracked,
		dto.Rating,
		dto.CancelledAt,
		dto.DeliveredAt,
		dto.CreatedAt,
	)
}
