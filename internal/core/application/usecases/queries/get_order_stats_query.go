package queries

import (
	"errors"
	"time"

	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// Stats window bounds, in days.
const (
	StatsDaysMin = 1
	StatsDaysMax = 90
)

// GetOrderStatsQuery retrieves per-day order volume over a trailing
// window plus totals per status, for the operations dashboard.
type GetOrderStatsQuery struct {
	days int

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a stats query over the last days days.
func NewGetOrderStatsQuery(days int) (GetOrderStatsQuery, error) {
	if days < StatsDaysMin || days > StatsDaysMax {
		return GetOrderStatsQuery{}, errs.NewValueIsOutOfRangeError("days", days, StatsDaysMin, StatsDaysMax)
	}

	return GetOrderStatsQuery{
		days:  days,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// Days returns the trailing window size.
func (q GetOrderStatsQuery) Days() int {
	return q.days
}

// DailyOrderCount is the order volume of one calendar day.
type DailyOrderCount struct {
	Day   time.Time
	Count int
}

// GetOrderStatsQueryResponse aggregates dashboard statistics.
type GetOrderStatsQueryResponse struct {
	Daily         []DailyOrderCount
	TotalByStatus map[string]int
	AverageRating *float64
}
