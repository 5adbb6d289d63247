package ports

import (
	"context"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Every guarded lifecycle transition (AssignIfReceived, CancelIfActive,
// DeliverIfInTransit, RateIfDelivered) must execute as a single atomic
// conditional write: the store matches the order AND its current-state
// precondition, then mutates. Two racing requests can have at most one
// winner; the loser gets errs.ErrObjectConflict when the order exists in
// the wrong state, or errs.ErrObjectNotFound when it does not exist at all.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate by id.
	// Used for administrative field updates; lifecycle transitions go
	// through the guarded methods below.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its external order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllReceived retrieves all orders awaiting a driver, oldest first.
	GetAllReceived(ctx context.Context) ([]*order.Order, error)

	// GetInTransitByDriver retrieves the orders a driver is currently
	// delivering. Used to fan a driver's position out to every affected
	// order room.
	GetInTransitByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)

	// HasActiveForPhone reports whether the customer identified by phone
	// already has an order in received or in_transit status.
	HasActiveForPhone(ctx context.Context, phone string) (bool, error)

	// AssignIfReceived atomically assigns driverID and moves the order to
	// in_transit, guarded by "status is still received".
	AssignIfReceived(ctx context.Context, number string, driverID kernel.UUID) (*order.Order, error)

	// CancelIfActive atomically cancels the order and stamps at, guarded
	// by "status is neither delivered nor cancelled". Returns the updated
	// order so callers can release the assigned driver and notify.
	CancelIfActive(ctx context.Context, number string, at time.Time) (*order.Order, error)

	// DeliverIfInTransit atomically marks the order delivered, stamps at,
	// and clears the tracked location, guarded by "status is in_transit".
	DeliverIfInTransit(ctx context.Context, number string, at time.Time) (*order.Order, error)

	// RateIfDelivered atomically records the rating, guarded by "status is
	// delivered and no rating exists yet".
	RateIfDelivered(ctx context.Context, number string, rating int) (*order.Order, error)

	// SetTrackedLocation stores the latest fix for the order. This is a
	// plain write, not a guarded transition: the most recent fix wins.
	SetTrackedLocation(ctx context.Context, number string, coords kernel.Coordinates, at time.Time) error

	// Delete removes an order permanently (administrative operation).
	Delete(ctx context.Context, id kernel.UUID) error
}
