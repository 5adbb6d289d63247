package queries

import (
	"context"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/errs"

	"gorm.io/gorm"
)

// TrackOrderQueryHandler serves the public tracking lookup. Joins the
// assigned driver's contact details when an assignment exists.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking lookups.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking lookup. Returns errs.ErrObjectNotFound when
// no order exists for the number.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var row struct {
		Number          string
		Status          string
		ItemType        string
		CustomerAddress string
		DestinationLat  float64
		DestinationLng  float64
		DriverID        *string
		DriverName      *string
		DriverPhone     *string
		TrackedLat      *float64
		TrackedLng      *float64
		TrackedAt       *time.Time
		Rating          *int
		CreatedAt       time.Time
		DeliveredAt     *time.Time
		CancelledAt     *time.Time
	}

	result := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			o.status,
			o.item_type,
			o.customer_address,
			o.destination_lat,
			o.destination_lng,
			o.assigned_driver_id::text AS driver_id,
			d.full_name AS driver_name,
			d.phone     AS driver_phone,
			o.tracked_lat,
			o.tracked_lng,
			o.tracked_at,
			o.rating,
			o.created_at,
			o.delivered_at,
			o.cancelled_at
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.assigned_driver_id
		WHERE o.number = ?
	`, query.OrderNumber()).Scan(&row)
	if result.Error != nil {
		return TrackOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderNumber())
	}

	destination, err := kernel.NewCoordinates(row.DestinationLat, row.DestinationLng)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return TrackOrderQueryResponse{
		Number:      row.Number,
		Status:      row.Status,
		ItemType:    row.ItemType,
		Address:     row.CustomerAddress,
		Destination: destination,
		DriverID:    row.DriverID,
		DriverName:  row.DriverName,
		DriverPhone: row.DriverPhone,
		TrackedLat:  row.TrackedLat,
		TrackedLng:  row.TrackedLng,
		TrackedAt:   row.TrackedAt,
		Rating:      row.Rating,
		CreatedAt:   row.CreatedAt,
		DeliveredAt: row.DeliveredAt,
		CancelledAt: row.CancelledAt,
	}, nil
}
