package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// inboundMessage is what clients send us. Events carry a flat field set;
// unused fields are simply left empty.
type inboundMessage struct {
	Event       string  `json:"event"`
	OrderNumber string  `json:"order_number,omitempty"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	CancelledBy string  `json:"cancelled_by,omitempty"`
}

// Client is one websocket connection attached to the hub. driverID is
// empty for customer tracking connections.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	driverID     string
	driverHandle string

	// joinedRooms is owned by the hub's Run goroutine.
	joinedRooms map[string]struct{}

	onMessage func(client *Client, message inboundMessage)
	onClose   func(client *Client)
	logger    *slog.Logger
}

func newClient(
	hub *Hub,
	conn *websocket.Conn,
	driverID string,
	driverHandle string,
	onMessage func(client *Client, message inboundMessage),
	onClose func(client *Client),
	logger *slog.Logger,
) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, sendBufferSize),
		driverID:     driverID,
		driverHandle: driverHandle,
		joinedRooms:  make(map[string]struct{}),
		onMessage:    onMessage,
		onClose:      onClose,
		logger:       logger.With("component", "ws.Client"),
	}
}

// readPump reads inbound messages until the connection dies, then
// unregisters the client from the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		if c.onClose != nil {
			c.onClose(c)
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message inboundMessage
		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}
		if c.onMessage != nil {
			c.onMessage(c, message)
		}
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings. The hub closes the send channel to force a disconnect.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
