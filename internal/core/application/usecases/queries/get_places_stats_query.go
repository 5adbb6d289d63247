package queries

import (
	"errors"

	"tawsila/internal/pkg/errs"
	"tawsila/internal/pkg/guard"
)

var ErrGetPlacesStatsQueryIsNotConstructed = errors.New(
	"GetPlacesStatsQuery must be created via NewGetPlacesStatsQuery constructor",
)

// Limit bounds for the places ranking.
const (
	PlacesLimitMin = 1
	PlacesLimitMax = 100
)

// GetPlacesStatsQuery ranks delivery addresses by how many orders were
// sent there. Orders without a free-text address are excluded.
type GetPlacesStatsQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetPlacesStatsQuery creates a ranking query returning at most limit rows.
func NewGetPlacesStatsQuery(limit int) (GetPlacesStatsQuery, error) {
	if limit < PlacesLimitMin || limit > PlacesLimitMax {
		return GetPlacesStatsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, PlacesLimitMin, PlacesLimitMax)
	}

	return GetPlacesStatsQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPlacesStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPlacesStatsQueryIsNotConstructed)
}

// Limit returns the maximum number of ranked rows.
func (q GetPlacesStatsQuery) Limit() int {
	return q.limit
}

// GetPlacesStatsQueryResponse is one ranked delivery destination.
type GetPlacesStatsQueryResponse struct {
	Address string
	Count   int
}
