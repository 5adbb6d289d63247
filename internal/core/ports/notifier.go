package ports

import (
	"context"
	"time"

	"tawsila/internal/core/domain/model/kernel"
)

// OrderNotice is the wire-neutral projection of an order that realtime
// consumers receive. It deliberately carries only what a driver or a
// tracking client needs to render the order.
type OrderNotice struct {
	Number        string
	Status        string
	ItemType      string
	CustomerName  string
	CustomerPhone string
	Address       string
	Destination   *kernel.Coordinates
}

// LocationNotice is a single position fix for an in-transit order.
// DriverID identifies the reporting driver so tracking clients can tell
// whose position they are watching.
type LocationNotice struct {
	OrderNumber string
	DriverID    kernel.UUID
	Coords      kernel.Coordinates
	At          time.Time
}

// DeliveryNotice announces that an order reached a terminal state.
// CancelledBy names the party that asked for a cancellation and stays
// empty on completed deliveries.
type DeliveryNotice struct {
	OrderNumber string
	At          time.Time
	CancelledBy string
}

// StatusNotice announces a status change on an order's tracking room.
type StatusNotice struct {
	OrderNumber string
	Status      string
}

// Notifier fans out order lifecycle events to realtime consumers.
//
// Delivery is best-effort: implementations log failures but never return
// them, so command handlers are not coupled to the health of any single
// subscriber. Per-room ordering is guaranteed; cross-room ordering is not.
type Notifier interface {
	// BroadcastNewOrder announces an unassigned order to every connected
	// driver in the shared pool.
	BroadcastNewOrder(ctx context.Context, notice OrderNotice)

	// NotifyNewOrder informs a single driver about an order somebody else
	// won. Dispatch sends it to every ranked candidate except the winner
	// so the rest of the fleet still sees the demand.
	NotifyNewOrder(ctx context.Context, driverID kernel.UUID, notice OrderNotice)

	// NotifyOrderAssigned informs the winning driver directly that the
	// order is theirs.
	NotifyOrderAssigned(ctx context.Context, driverID kernel.UUID, notice OrderNotice)

	// PublishLocation relays a position fix to the order's tracking room.
	PublishLocation(ctx context.Context, notice LocationNotice)

	// PublishDeliveryCompleted announces completion to the order's
	// tracking room.
	PublishDeliveryCompleted(ctx context.Context, notice DeliveryNotice)

	// PublishOrderCancelled announces cancellation to the order's
	// tracking room and to the assigned driver if any.
	PublishOrderCancelled(ctx context.Context, driverID *kernel.UUID, notice DeliveryNotice)

	// PublishStatusUpdate announces a status change to the order's
	// tracking room.
	PublishStatusUpdate(ctx context.Context, notice StatusNotice)
}
