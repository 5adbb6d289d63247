package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves the administrative order listing,
// newest first.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for administrative listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query with the optional status filter.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetOrdersQueryResponse, 0)

	q := `
		SELECT
			o.id,
			o.number,
			o.status,
			o.item_type,
			o.customer_name,
			o.customer_phone,
			o.customer_address AS address,
			d.full_name AS driver_name,
			o.rating,
			o.created_at,
			o.delivered_at,
			o.cancelled_at
		FROM orders o
		LEFT JOIN drivers d ON d.id = o.assigned_driver_id
	`

	db := h.db.WithContext(ctx)
	var err error
	if status := query.Status(); status != nil {
		err = db.Raw(q+" WHERE o.status = ? ORDER BY o.created_at DESC", status.String()).Scan(&responses).Error
	} else {
		err = db.Raw(q + " ORDER BY o.created_at DESC").Scan(&responses).Error
	}
	if err != nil {
		return nil, err
	}

	return responses, nil
}
