package ws

import (
	"context"
	"log/slog"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/ports"
)

// Outbound event names. Customers in an order room and drivers in the
// pool share the same envelope format.
const (
	EventNewOrder          = "new-order"
	EventOrderAssigned     = "order-assigned"
	EventLocationUpdate    = "location-update"
	EventDeliveryCompleted = "delivery-completed"
	EventOrderCancelled    = "order-cancelled"
	EventStatusUpdate      = "status-update"
)

type orderPayload struct {
	Number        string   `json:"number"`
	Status        string   `json:"status"`
	ItemType      string   `json:"item_type"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	Address       string   `json:"address"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

type locationPayload struct {
	OrderNumber string  `json:"order_number"`
	DriverID    string  `json:"driver_id,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	At          string  `json:"at"`
}

type terminalPayload struct {
	OrderNumber string `json:"order_number"`
	At          string `json:"at"`
	CancelledBy string `json:"cancelled_by,omitempty"`
}

type statusPayload struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// HubNotifier fans order lifecycle events out through the websocket hub.
// It also mirrors each event to an optional secondary publisher, used to
// feed the message broker alongside the live sockets.
type HubNotifier struct {
	hub       *Hub
	secondary ports.Notifier
	logger    *slog.Logger
}

// NewHubNotifier creates the notifier. secondary may be nil.
func NewHubNotifier(hub *Hub, secondary ports.Notifier, logger *slog.Logger) *HubNotifier {
	return &HubNotifier{
		hub:       hub,
		secondary: secondary,
		logger:    logger.With("component", "ws.HubNotifier"),
	}
}

func (n *HubNotifier) BroadcastNewOrder(ctx context.Context, notice ports.OrderNotice) {
	n.hub.BroadcastRoom(PoolRoom, EventNewOrder, orderToPayload(notice))
	if n.secondary != nil {
		n.secondary.BroadcastNewOrder(ctx, notice)
	}
}

func (n *HubNotifier) NotifyNewOrder(ctx context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	n.hub.SendToDriver(driverID.String(), EventNewOrder, orderToPayload(notice))
	if n.secondary != nil {
		n.secondary.NotifyNewOrder(ctx, driverID, notice)
	}
}

func (n *HubNotifier) NotifyOrderAssigned(ctx context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	n.hub.SendToDriver(driverID.String(), EventOrderAssigned, orderToPayload(notice))
	if n.secondary != nil {
		n.secondary.NotifyOrderAssigned(ctx, driverID, notice)
	}
}

func (n *HubNotifier) PublishLocation(ctx context.Context, notice ports.LocationNotice) {
	n.hub.BroadcastRoom(OrderRoom(notice.OrderNumber), EventLocationUpdate, locationPayload{
		OrderNumber: notice.OrderNumber,
		DriverID:    notice.DriverID.String(),
		Lat:         notice.Coords.Lat(),
		Lng:         notice.Coords.Lng(),
		At:          notice.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if n.secondary != nil {
		n.secondary.PublishLocation(ctx, notice)
	}
}

func (n *HubNotifier) PublishDeliveryCompleted(ctx context.Context, notice ports.DeliveryNotice) {
	n.hub.BroadcastRoom(OrderRoom(notice.OrderNumber), EventDeliveryCompleted, terminalPayload{
		OrderNumber: notice.OrderNumber,
		At:          notice.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
	if n.secondary != nil {
		n.secondary.PublishDeliveryCompleted(ctx, notice)
	}
}

func (n *HubNotifier) PublishOrderCancelled(ctx context.Context, driverID *kernel.UUID, notice ports.DeliveryNotice) {
	payload := terminalPayload{
		OrderNumber: notice.OrderNumber,
		At:          notice.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		CancelledBy: notice.CancelledBy,
	}
	n.hub.BroadcastRoom(OrderRoom(notice.OrderNumber), EventOrderCancelled, payload)
	if driverID != nil {
		n.hub.SendToDriver(driverID.String(), EventOrderCancelled, payload)
	}
	if n.secondary != nil {
		n.secondary.PublishOrderCancelled(ctx, driverID, notice)
	}
}

func (n *HubNotifier) PublishStatusUpdate(ctx context.Context, notice ports.StatusNotice) {
	n.hub.BroadcastRoom(OrderRoom(notice.OrderNumber), EventStatusUpdate, statusPayload{
		OrderNumber: notice.OrderNumber,
		Status:      notice.Status,
	})
	if n.secondary != nil {
		n.secondary.PublishStatusUpdate(ctx, notice)
	}
}

func orderToPayload(notice ports.OrderNotice) orderPayload {
	payload := orderPayload{
		Number:        notice.Number,
		Status:        notice.Status,
		ItemType:      notice.ItemType,
		CustomerName:  notice.CustomerName,
		CustomerPhone: notice.CustomerPhone,
		Address:       notice.Address,
	}
	if notice.Destination != nil {
		lat := notice.Destination.Lat()
		lng := notice.Destination.Lng()
		payload.Lat = &lat
		payload.Lng = &lng
	}
	return payload
}
