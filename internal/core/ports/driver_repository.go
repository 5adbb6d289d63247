// Package ports defines the contracts between the application core and the
// outside world: persistence, the realtime presence registry, event fan-out,
// and the external routing service. These interfaces establish dependency
// inversion so the core stays testable without infrastructure.
package ports

import (
	"context"

	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
//
// Availability writes must be atomic enough that two concurrent assignments
// cannot both claim the same driver without at least one observing the
// other's claim; SetAvailability is a single-row conditional-free write and
// the order-side guarded transition is what arbitrates races.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable retrieves every driver with availability set and a
	// known position. Drivers without a coordinate fix are excluded; they
	// are ineligible for nearest-match dispatch.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)

	// GetAll retrieves every driver. Used by the availability
	// reconciliation pass.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// SetAvailability updates the driver's availability flag in place.
	// A missing driver id is reported as errs.ErrObjectNotFound.
	SetAvailability(ctx context.Context, id kernel.UUID, available bool) error

	// UpdateCoords updates the driver's last known position in place.
	// A missing driver id is a no-op.
	UpdateCoords(ctx context.Context, id kernel.UUID, coords kernel.Coordinates) error
}
