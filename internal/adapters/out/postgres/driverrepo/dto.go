// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
// This package implements the repository pattern for the driver domain aggregate.
package driverrepo

import (
	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. The availability flag is indexed because dispatch snapshots
// filter on it. Position columns are nullable: a driver has no coordinates
// until the first fix arrives.
type DriverDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName    string    `gorm:"size:128"`
	Username    string    `gorm:"uniqueIndex;size:64"`
	Phone       string    `gorm:"size:32"`
	IsAvailable bool      `gorm:"index"`
	Lat         *float64  `gorm:"type:double precision"`
	Lng         *float64  `gorm:"type:double precision"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:          aggregate.ID().Bytes(),
		FullName:    aggregate.FullName(),
		Username:    aggregate.Username(),
		Phone:       aggregate.Phone(),
		IsAvailable: aggregate.IsAvailable(),
	}

	if coords := aggregate.Coords(); coords != nil {
		lat := coords.Lat()
		lng := coords.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var coords *kernel.Coordinates
	if dto.Lat != nil && dto.Lng != nil {
		c, coordsErr := kernel.NewCoordinates(*dto.Lat, *dto.Lng)
		if coordsErr != nil {
			return nil, coordsErr
		}
		coords = &c
	}

	return driver.RestoreDriver(id, dto.FullName, dto.Username, dto.Phone, dto.IsAvailable, coords)
}
