package ports

import (
	"tawsila/internal/core/domain/model/kernel"
)

// ConnectedDriver is a point-in-time view of one online driver taken from
// the presence registry. Coords is nil until the driver reports a fix.
type ConnectedDriver struct {
	ID     kernel.UUID
	Handle string
	Coords *kernel.Coordinates
}

// Presence tracks which drivers currently hold a live realtime connection.
//
// Each Connect issues a fresh connection handle. Disconnect only removes
// the entry when the handle matches the one currently registered, so a
// reconnect that races a stale connection's teardown never erases the new
// session. The registry is an in-memory view of liveness, distinct from
// the persisted availability flag.
type Presence interface {
	// Connect registers a driver under the given connection handle,
	// replacing any previous handle for the same driver. When the driver
	// announced a position with the join, coords carries it and the
	// driver is immediately eligible for nearest-match dispatch; with nil
	// coords the last known fix, if any, is kept.
	Connect(driverID kernel.UUID, handle string, coords *kernel.Coordinates)

	// Disconnect removes the driver's entry if handle still matches the
	// registered one. Returns true when the entry was removed.
	Disconnect(driverID kernel.UUID, handle string) bool

	// UpdateCoords records the driver's latest position fix.
	UpdateCoords(driverID kernel.UUID, coords kernel.Coordinates)

	// IsOnline reports whether the driver currently holds a connection.
	IsOnline(driverID kernel.UUID) bool

	// Snapshot returns a copy of every connected driver. Mutating the
	// result does not affect the registry.
	Snapshot() []ConnectedDriver
}
