package queries

import (
	"context"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler retrieves the claimable order pool,
// oldest submissions first.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for pool listings.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		Number          string
		ItemType        string
		CustomerName    string
		CustomerAddress string
		DestinationLat  float64
		DestinationLng  float64
		CreatedAt       time.Time
	}

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			number,
			item_type,
			customer_name,
			customer_address,
			destination_lat,
			destination_lng,
			created_at
		FROM orders
		WHERE status = ?
		ORDER BY created_at
	`, order.Received.String()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	responses := make([]GetAvailableOrdersQueryResponse, 0, len(rows))
	for _, row := range rows {
		destination, coordsErr := kernel.NewCoordinates(row.DestinationLat, row.DestinationLng)
		if coordsErr != nil {
			return nil, coordsErr
		}

		responses = append(responses, GetAvailableOrdersQueryResponse{
			Number:       row.Number,
			ItemType:     row.ItemType,
			CustomerName: row.CustomerName,
			Address:      row.CustomerAddress,
			Destination:  destination,
			CreatedAt:    row.CreatedAt,
		})
	}

	return responses, nil
}
