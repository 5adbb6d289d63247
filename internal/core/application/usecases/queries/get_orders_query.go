package queries

import (
	"errors"
	"time"

	"tawsila/internal/core/domain/model/order"
	"tawsila/internal/pkg/guard"

	"github.com/google/uuid"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the administrative order listing, optionally
// filtered by status.
type GetOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a listing query. A nil status means all orders.
func NewGetOrdersQuery(status *order.Status) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or nil for no filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// GetOrdersQueryResponse is one order row in the administrative listing.
type GetOrdersQueryResponse struct {
	ID            uuid.UUID
	Number        string
	Status        string
	ItemType      string
	CustomerName  string
	CustomerPhone string
	Address       string
	DriverName    *string
	Rating        *int
	CreatedAt     time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}
