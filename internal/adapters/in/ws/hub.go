// Package ws implements the realtime transport: a websocket hub with a
// shared driver pool room and one tracking room per order, the presence
// registry, and the notifier that command handlers fan events through.
package ws

import (
	"encoding/json"
	"log/slog"
	"time"
)

// PoolRoom is the shared room every connected driver sits in. Orders that
// could not be dispatched directly are announced here.
const PoolRoom = "drivers-pool"

// OrderRoom names the tracking room of one order.
func OrderRoom(orderNumber string) string {
	return "order:" + orderNumber
}

// Envelope is the wire format for every outbound event.
type Envelope struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

type joinRequest struct {
	client *Client
	room   string
}

type roomMessage struct {
	room    string
	payload []byte
}

type directMessage struct {
	driverID string
	payload  []byte
}

type clientMessage struct {
	client  *Client
	payload []byte
}

// Hub routes messages between connected clients. All state is owned by
// the single Run goroutine: register, join and broadcast requests are
// serialized through channels, which is what guarantees in-order delivery
// per room without locks.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan joinRequest
	leave      chan joinRequest
	broadcast  chan roomMessage
	direct     chan directMessage
	toClient   chan clientMessage

	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	drivers map[string]*Client

	logger *slog.Logger
}

// NewHub creates a hub. Call Run in its own goroutine before use.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinRequest),
		leave:      make(chan joinRequest),
		broadcast:  make(chan roomMessage, 256),
		direct:     make(chan directMessage, 256),
		toClient:   make(chan clientMessage, 256),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		drivers:    make(map[string]*Client),
		logger:     logger.With("component", "ws.Hub"),
	}
}

// Run processes hub events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			if client.driverID != "" {
				// a reconnect replaces the previous socket
				if previous, ok := h.drivers[client.driverID]; ok && previous != client {
					h.drop(previous)
				}
				h.drivers[client.driverID] = client
				h.addToRoom(client, PoolRoom)
			}

		case client := <-h.unregister:
			h.drop(client)

		case request := <-h.join:
			h.addToRoom(request.client, request.room)

		case request := <-h.leave:
			h.removeFromRoom(request.client, request.room)

		case message := <-h.broadcast:
			for client := range h.rooms[message.room] {
				h.send(client, message.payload)
			}

		case message := <-h.direct:
			if client, ok := h.drivers[message.driverID]; ok {
				h.send(client, message.payload)
			}

		case message := <-h.toClient:
			if _, ok := h.clients[message.client]; ok {
				h.send(message.client, message.payload)
			}
		}
	}
}

// Register adds a freshly upgraded connection to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a connection and all its room memberships.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Join adds the client to a room. Joining twice is a no-op.
func (h *Hub) Join(client *Client, room string) {
	h.join <- joinRequest{client: client, room: room}
}

// Leave removes the client from a room.
func (h *Hub) Leave(client *Client, room string) {
	h.leave <- joinRequest{client: client, room: room}
}

// BroadcastRoom delivers an event to every member of the room. Delivery
// is best-effort: marshal failures are logged and dropped.
func (h *Hub) BroadcastRoom(room string, event string, data any) {
	payload, err := h.marshal(event, data)
	if err != nil {
		return
	}
	h.broadcast <- roomMessage{room: room, payload: payload}
}

// SendToDriver delivers an event to one connected driver. Nothing happens
// when the driver is offline.
func (h *Hub) SendToDriver(driverID string, event string, data any) {
	payload, err := h.marshal(event, data)
	if err != nil {
		return
	}
	h.direct <- directMessage{driverID: driverID, payload: payload}
}

// SendToClient delivers an event to one specific connection. Used for
// acknowledgements and error replies on inbound messages.
func (h *Hub) SendToClient(client *Client, event string, data any) {
	payload, err := h.marshal(event, data)
	if err != nil {
		return
	}
	h.toClient <- clientMessage{client: client, payload: payload}
}

func (h *Hub) marshal(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(Envelope{Event: event, Data: data, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error("event marshal failed", "event", event, "error", err)
		return nil, err
	}
	return payload, nil
}

func (h *Hub) addToRoom(client *Client, room string) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[client] = struct{}{}
	client.joinedRooms[room] = struct{}{}
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.joinedRooms, room)
}

// send enqueues a payload for the client, dropping the connection when
// its send buffer is full. A stalled reader must not block the room.
func (h *Hub) send(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	for room := range client.joinedRooms {
		h.removeFromRoom(client, room)
	}
	if client.driverID != "" && h.drivers[client.driverID] == client {
		delete(h.drivers, client.driverID)
	}
	delete(h.clients, client)
	close(client.send)
}
