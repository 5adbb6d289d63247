package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"tawsila/internal/core/application/usecases/commands"
	"tawsila/internal/core/application/usecases/queries"
	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/ports"
)

// Inbound event names accepted from clients.
const (
	EventUpdateLocation = "update-location"
	EventAcceptOrder    = "accept-order"
	EventOrderDelivered = "order-delivered"
	EventCancelOrder    = "cancel-order"
	EventJoinOrder      = "join-order"
	EventError          = "error"
	EventAck            = "ack"
)

type errorPayload struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

type ackPayload struct {
	Event       string `json:"event"`
	OrderNumber string `json:"order_number"`
}

// Gateway upgrades HTTP requests to websocket connections and routes
// inbound events to the command handlers. Drivers connect on one endpoint
// and join the shared pool; customers connect on another and join their
// order's tracking room.
type Gateway struct {
	hub      *Hub
	presence ports.Presence

	connectDriver    commands.ConnectDriverCommandHandler
	reportLocation   commands.ReportLocationCommandHandler
	acceptOrder      commands.AcceptOrderCommandHandler
	cancelOrder      commands.CancelOrderCommandHandler
	completeDelivery commands.CompleteDeliveryCommandHandler
	trackOrder       queries.TrackOrderQueryHandler

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewGateway(
	hub *Hub,
	presence ports.Presence,
	connectDriver commands.ConnectDriverCommandHandler,
	reportLocation commands.ReportLocationCommandHandler,
	acceptOrder commands.AcceptOrderCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	completeDelivery commands.CompleteDeliveryCommandHandler,
	trackOrder queries.TrackOrderQueryHandler,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		hub:              hub,
		presence:         presence,
		connectDriver:    connectDriver,
		reportLocation:   reportLocation,
		acceptOrder:      acceptOrder,
		cancelOrder:      cancelOrder,
		completeDelivery: completeDelivery,
		trackOrder:       trackOrder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws.Gateway"),
	}
}

// HandleDriverSocket upgrades GET /ws/drivers/:id. The connection joins
// the driver pool and registers the driver as online under a fresh
// connection handle. Optional lat/lng query parameters announce the
// driver's position with the join, which also flips the persisted
// availability flag back on. Closing the socket only clears presence if
// no newer connection took over in the meantime.
func (g *Gateway) HandleDriverSocket(c echo.Context) error {
	driverID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid driver id")
	}

	joinCoords, err := parseJoinCoords(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid coordinates")
	}

	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	handle := uuid.NewString()
	client := newClient(
		g.hub,
		conn,
		driverID.String(),
		handle,
		g.handleDriverMessage,
		func(*Client) {
			if g.presence.Disconnect(driverID, handle) {
				g.logger.Info("driver disconnected", "driver_id", driverID.String())
			}
		},
		g.logger,
	)

	g.presence.Connect(driverID, handle, joinCoords)
	g.hub.Register(client)
	g.logger.Info("driver connected", "driver_id", driverID.String())

	if joinCoords != nil {
		if cmd, cmdErr := commands.NewConnectDriverCommand(driverID, *joinCoords); cmdErr == nil {
			if handleErr := g.connectDriver.Handle(gatewayContext(), cmd); handleErr != nil {
				g.logger.Warn("driver join persistence failed",
					"driver_id", driverID.String(), "error", handleErr)
			}
		}
	}

	go client.writePump()
	go client.readPump()
	return nil
}

// parseJoinCoords reads the optional lat/lng query parameters of a driver
// join. Both absent means no position was announced; one without the
// other, or unparsable values, is an error.
func parseJoinCoords(c echo.Context) (*kernel.Coordinates, error) {
	rawLat := c.QueryParam("lat")
	rawLng := c.QueryParam("lng")
	if rawLat == "" && rawLng == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, err
	}

	coords, err := kernel.NewCoordinates(lat, lng)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}

// HandleTrackSocket upgrades GET /ws/track/:number. The connection joins
// the order's tracking room and immediately receives the current status
// plus the last known position fix, so late joiners do not wait for the
// next live update.
func (g *Gateway) HandleTrackSocket(c echo.Context) error {
	query, err := queries.NewTrackOrderQuery(c.Param("number"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order number")
	}

	tracked, err := g.trackOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	client := newClient(g.hub, conn, "", "", g.handleTrackMessage, nil, g.logger)
	g.hub.Register(client)
	g.hub.Join(client, OrderRoom(tracked.Number))

	go client.writePump()
	go client.readPump()

	g.replayTrackedState(client, tracked)
	return nil
}

// gatewayContext backs inbound message handling. The upgrade request's
// context is cancelled as soon as the HTTP handler returns, long before
// the socket closes, so it cannot be used here.
func gatewayContext() context.Context {
	return context.Background()
}

func (g *Gateway) handleDriverMessage(client *Client, message inboundMessage) {
	ctx := gatewayContext()
	driverID, err := kernel.UUIDFromString(client.driverID)
	if err != nil {
		return
	}

	switch message.Event {
	case EventUpdateLocation:
		coords, err := kernel.NewCoordinates(message.Lat, message.Lng)
		if err != nil {
			g.reject(client, message.Event, "invalid coordinates")
			return
		}
		cmd, err := commands.NewReportLocationCommand(message.OrderNumber, driverID, coords)
		if err != nil {
			g.reject(client, message.Event, "invalid location report")
			return
		}
		if err := g.reportLocation.Handle(ctx, cmd); err != nil {
			g.reject(client, message.Event, err.Error())
		}

	case EventAcceptOrder:
		cmd, err := commands.NewAcceptOrderCommand(message.OrderNumber, driverID)
		if err != nil {
			g.reject(client, message.Event, "invalid order number")
			return
		}
		if _, err := g.acceptOrder.Handle(ctx, cmd); err != nil {
			g.reject(client, message.Event, err.Error())
			return
		}
		g.acknowledge(client, message.Event, message.OrderNumber)

	case EventOrderDelivered:
		cmd, err := commands.NewCompleteDeliveryCommand(message.OrderNumber)
		if err != nil {
			g.reject(client, message.Event, "invalid order number")
			return
		}
		if _, err := g.completeDelivery.Handle(ctx, cmd); err != nil {
			g.reject(client, message.Event, err.Error())
			return
		}
		g.acknowledge(client, message.Event, message.OrderNumber)

	case EventCancelOrder:
		cancelledBy := message.CancelledBy
		if cancelledBy == "" {
			cancelledBy = commands.CancelledByDriver
		}
		cmd, err := commands.NewCancelOrderCommand(message.OrderNumber, cancelledBy)
		if err != nil {
			g.reject(client, message.Event, "invalid cancellation request")
			return
		}
		if _, err := g.cancelOrder.Handle(ctx, cmd); err != nil {
			g.reject(client, message.Event, err.Error())
			return
		}
		g.acknowledge(client, message.Event, message.OrderNumber)

	default:
		g.reject(client, message.Event, "unknown event")
	}
}

// handleTrackMessage lets a tracking connection follow additional orders
// on the same socket.
func (g *Gateway) handleTrackMessage(client *Client, message inboundMessage) {
	if message.Event != EventJoinOrder {
		g.reject(client, message.Event, "unknown event")
		return
	}

	query, err := queries.NewTrackOrderQuery(message.OrderNumber)
	if err != nil {
		g.reject(client, message.Event, "invalid order number")
		return
	}
	tracked, err := g.trackOrder.Handle(gatewayContext(), query)
	if err != nil {
		g.reject(client, message.Event, "order not found")
		return
	}

	g.hub.Join(client, OrderRoom(tracked.Number))
	g.replayTrackedState(client, tracked)
}

func (g *Gateway) replayTrackedState(client *Client, tracked queries.TrackOrderQueryResponse) {
	g.hub.SendToClient(client, EventStatusUpdate, statusPayload{
		OrderNumber: tracked.Number,
		Status:      tracked.Status,
	})
	if tracked.TrackedLat != nil && tracked.TrackedLng != nil && tracked.TrackedAt != nil {
		payload := locationPayload{
			OrderNumber: tracked.Number,
			Lat:         *tracked.TrackedLat,
			Lng:         *tracked.TrackedLng,
			At:          tracked.TrackedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
		if tracked.DriverID != nil {
			payload.DriverID = *tracked.DriverID
		}
		g.hub.SendToClient(client, EventLocationUpdate, payload)
	}
}

func (g *Gateway) reject(client *Client, event string, message string) {
	g.hub.SendToClient(client, EventError, errorPayload{Event: event, Message: message})
}

func (g *Gateway) acknowledge(client *Client, event string, orderNumber string) {
	g.hub.SendToClient(client, EventAck, ackPayload{Event: event, OrderNumber: orderNumber})
}
