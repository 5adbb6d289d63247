package services

import (
	"errors"
	"sort"

	"tawsila/internal/core/domain/model/driver"
	"tawsila/internal/core/domain/model/order"
)

// ErrDriverNotFound is returned when no suitable driver is available for
// order dispatch. This occurs when either no drivers are provided or none
// of them is available with a known position.
var ErrDriverNotFound = errors.New("driver not found")

// OrderDispatcher is a domain service responsible for ranking candidate
// drivers for a delivery order by proximity to the drop-off point.
//
// Business rules:
//   - Orders must be valid and assignable before dispatch
//   - Only available drivers with a known position are candidates
//   - Candidates are ordered by straight-line distance, nearest first
//   - The first driver wins in case of ties
//
// The dispatcher does not perform the assignment itself: claiming an order
// is a guarded conditional write owned by the repository, and the caller
// walks the ranked list until one claim succeeds. This keeps the race
// between concurrent dispatches out of the domain service.
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// RankCandidates validates the order and returns the eligible drivers
// ordered by distance to the order's destination, nearest first.
//
// Returns ErrDriverNotFound when no driver is eligible.
func (o OrderDispatcher) RankCandidates(aggregate *order.Order, drivers []*driver.Driver) ([]*driver.Driver, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	if err := aggregate.Status().ValidateAssign(); err != nil {
		return nil, err
	}

	destination := aggregate.Customer().Coords()

	type candidate struct {
		driver   *driver.Driver
		distance float64
	}

	candidates := make([]candidate, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		if !d.IsAvailable() {
			continue
		}

		coords := d.Coords()
		if coords == nil {
			continue
		}

		distance, err := coords.DistanceKmTo(destination)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, candidate{driver: d, distance: distance})
	}

	if len(candidates) == 0 {
		return nil, ErrDriverNotFound
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	ranked := make([]*driver.Driver, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.driver
	}

	return ranked, nil
}

// Nearest returns only the closest eligible driver for the order.
func (o OrderDispatcher) Nearest(aggregate *order.Order, drivers []*driver.Driver) (*driver.Driver, error) {
	ranked, err := o.RankCandidates(aggregate, drivers)
	if err != nil {
		return nil, err
	}

	return ranked[0], nil
}
