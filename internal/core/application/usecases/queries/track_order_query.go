// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read straight from the database through GORM, bypassing
// the aggregate layer: tracking screens and dashboards need projections,
// not domain behavior.
package queries

import (
	"errors"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the public tracking view of one order by its
// tracking number. This is the customer-facing lookup: no authentication,
// no internal identifiers in the response.
type TrackOrderQuery struct {
	orderNumber string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query for the tracking view of an order.
func NewTrackOrderQuery(orderNumber string) (TrackOrderQuery, error) {
	if err := order.ValidateNumber(orderNumber); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderNumber returns the tracking number being looked up.
func (q TrackOrderQuery) OrderNumber() string {
	return q.orderNumber
}

// TrackOrderQueryResponse is the customer-facing tracking projection.
// DriverName and the tracked position are only present once a driver has
// been assigned and has reported a fix.
type TrackOrderQueryResponse struct {
	Number      string
	Status      string
	ItemType    string
	Address     string
	Destination kernel.Coordinates
	DriverID    *string
	DriverName  *string
	DriverPhone *string
	TrackedLat  *float64
	TrackedLng  *float64
	TrackedAt   *time.Time
	Rating      *int
	CreatedAt   time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}
