// Package rabbitmq mirrors order lifecycle events onto a message broker
// so that systems outside the live websocket fan-out (billing, analytics,
// notification senders) can consume the same feed.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/ports"
)

// ExchangeName is the durable topic exchange every order event goes to.
const ExchangeName = "tawsila.orders"

// Routing keys per event kind. Assignment events carry the driver id as
// the last segment so per-driver consumers can bind selectively.
const (
	routingKeyCreated   = "order.created"
	routingKeyAssigned  = "order.assigned"
	routingKeyLocation  = "order.location"
	routingKeyDelivered = "order.delivered"
	routingKeyCancelled = "order.cancelled"
	routingKeyStatus    = "order.status"
)

// Publisher implements ports.Notifier over a RabbitMQ topic exchange.
// Publishing is best-effort: a broker outage is logged, never propagated.
type Publisher struct {
	channel *amqp091.Channel
	logger  *slog.Logger
}

// NewPublisher opens a channel on the given connection and declares the
// order events exchange.
func NewPublisher(conn *amqp091.Connection, logger *slog.Logger) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}

	return &Publisher{
		channel: channel,
		logger:  logger.With("component", "rabbitmq.Publisher"),
	}, nil
}

// Close releases the underlying channel.
func (p *Publisher) Close() error {
	return p.channel.Close()
}

type orderEvent struct {
	Number        string   `json:"number"`
	Status        string   `json:"status"`
	ItemType      string   `json:"item_type"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	Address       string   `json:"address"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
}

type locationEvent struct {
	OrderNumber string    `json:"order_number"`
	DriverID    string    `json:"driver_id"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	At          time.Time `json:"at"`
}

type terminalEvent struct {
	OrderNumber string    `json:"order_number"`
	At          time.Time `json:"at"`
	CancelledBy string    `json:"cancelled_by,omitempty"`
}

type statusEvent struct {
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

func (p *Publisher) BroadcastNewOrder(ctx context.Context, notice ports.OrderNotice) {
	p.publish(ctx, routingKeyCreated, orderToEvent(notice))
}

func (p *Publisher) NotifyNewOrder(ctx context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	p.publish(ctx, routingKeyCreated+"."+driverID.String(), orderToEvent(notice))
}

func (p *Publisher) NotifyOrderAssigned(ctx context.Context, driverID kernel.UUID, notice ports.OrderNotice) {
	p.publish(ctx, routingKeyAssigned+"."+driverID.String(), orderToEvent(notice))
}

func (p *Publisher) PublishLocation(ctx context.Context, notice ports.LocationNotice) {
	p.publish(ctx, routingKeyLocation, locationEvent{
		OrderNumber: notice.OrderNumber,
		DriverID:    notice.DriverID.String(),
		Lat:         notice.Coords.Lat(),
		Lng:         notice.Coords.Lng(),
		At:          notice.At,
	})
}

func (p *Publisher) PublishDeliveryCompleted(ctx context.Context, notice ports.DeliveryNotice) {
	p.publish(ctx, routingKeyDelivered, terminalEvent{
		OrderNumber: notice.OrderNumber,
		At:          notice.At,
	})
}

func (p *Publisher) PublishOrderCancelled(ctx context.Context, driverID *kernel.UUID, notice ports.DeliveryNotice) {
	key := routingKeyCancelled
	if driverID != nil {
		key += "." + driverID.String()
	}
	p.publish(ctx, key, terminalEvent{
		OrderNumber: notice.OrderNumber,
		At:          notice.At,
		CancelledBy: notice.CancelledBy,
	})
}

func (p *Publisher) PublishStatusUpdate(ctx context.Context, notice ports.StatusNotice) {
	p.publish(ctx, routingKeyStatus, statusEvent{
		OrderNumber: notice.OrderNumber,
		Status:      notice.Status,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("event marshal failed", "routing_key", routingKey, "error", err)
		return
	}

	err = p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Warn("event publish failed", "routing_key", routingKey, "error", err)
	}
}

func orderToEvent(notice ports.OrderNotice) orderEvent {
	event := orderEvent{
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
		event.Lat = &lat
		event.Lng = &lng
	}
	return event
}
