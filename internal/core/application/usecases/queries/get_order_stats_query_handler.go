package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes dashboard statistics with grouped
// aggregate queries.
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for dashboard statistics.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the aggregate queries.
func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	since := fmt.Sprintf("%d days", query.Days())

	var dailyRows []struct {
		Day   time.Time
		Count int
	}
	err := db.Raw(`
		SELECT
			date_trunc('day', created_at) AS day,
			COUNT(*) AS count
		FROM orders
		WHERE created_at >= now() - ?::interval
		GROUP BY day
		ORDER BY day
	`, since).Scan(&dailyRows).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var statusRows []struct {
		Status string
		Count  int
	}
	err = db.Raw(`
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
	`).Scan(&statusRows).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var avgRating sql.NullFloat64
	err = db.Raw(`SELECT AVG(rating) FROM orders WHERE rating IS NOT NULL`).Scan(&avgRating).Error
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	response := GetOrderStatsQueryResponse{
		Daily:         make([]DailyOrderCount, 0, len(dailyRows)),
		TotalByStatus: make(map[string]int, len(statusRows)),
	}
	if avgRating.Valid {
		response.AverageRating = &avgRating.Float64
	}

	for _, row := range dailyRows {
		response.Daily = append(response.Daily, DailyOrderCount{Day: row.Day, Count: row.Count})
	}
	for _, row := range statusRows {
		response.TotalByStatus[row.Status] = row.Count
	}

	return response, nil
}
