package ports

import (
	"context"

	"tawsila/internal/core/domain/model/kernel"
)

// RouteInfo describes the driving route between two points.
type RouteInfo struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RoutePlanner resolves road distance and travel time between two points
// using an external routing service. Callers must treat failures as
// degradable: when the planner is unavailable the straight-line distance
// from kernel.Coordinates is the fallback.
type RoutePlanner interface {
	Route(ctx context.Context, from, to kernel.Coordinates) (RouteInfo, error)
}
