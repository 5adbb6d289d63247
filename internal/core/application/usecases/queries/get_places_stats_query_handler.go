package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetPlacesStatsQueryHandler ranks delivery destinations by order volume.
type GetPlacesStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetPlacesStatsQueryHandler creates a handler for the places ranking.
func NewGetPlacesStatsQueryHandler(db *gorm.DB) GetPlacesStatsQueryHandler {
	return GetPlacesStatsQueryHandler{db: db}
}

// Handle executes the ranking query.
func (h GetPlacesStatsQueryHandler) Handle(ctx context.Context, query GetPlacesStatsQuery) ([]GetPlacesStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetPlacesStatsQueryResponse, 0, query.Limit())
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			customer_address AS address,
			COUNT(*) AS count
		FROM orders
		WHERE customer_address <> ''
		GROUP BY customer_address
		ORDER BY count DESC, customer_address
		LIMIT ?
	`, query.Limit()).Scan(&responses).Error
	if err != nil {
		return nil, err
	}

	return responses, nil
}
