package queries

import (
	"errors"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery retrieves every order still waiting for a
// driver. Drivers browse this list to claim orders that dispatch did not
// assign automatically.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableOrdersQuery creates a parameterless query for the
// claimable order pool.
func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

// GetAvailableOrdersQueryResponse is one claimable order as shown in the
// driver's pool list.
type GetAvailableOrdersQueryResponse struct {
	Number       string
	ItemType     string
	CustomerName string
	Address      string
	Destination  kernel.Coordinates
	CreatedAt    time.Time
}
