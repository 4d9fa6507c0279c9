// Package notify delivers fire-and-forget asset-change events to
// connected clients, grouped into rooms by office. Delivery is best
// effort: a slow or gone client is dropped, and nothing here ever fails
// the workflow that emitted the event.
package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the wire shape of a broadcast.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type roomMessage struct {
	room    string
	payload []byte
}

// Client is one websocket connection subscribed to a room.
type Client struct {
	room string
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients per room and fans broadcasts out to them.
type Hub struct {
	clients    map[string]map[*Client]bool
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan roomMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations and broadcasts. Call in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.room] == nil {
				h.clients[client.room] = make(map[*Client]bool)
			}
			h.clients[client.room][client] = true

		case client := <-h.unregister:
			if room, ok := h.clients[client.room]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
				}
			}

		case msg := <-h.broadcast:
			for client := range h.clients[msg.room] {
				select {
				case client.send <- msg.payload:
				default:
					// Client can't keep up; drop it.
					close(client.send)
					delete(h.clients[msg.room], client)
				}
			}
		}
	}
}

// Notify implements the workflow notification interface. Marshal or
// delivery problems are logged and swallowed.
func (h *Hub) Notify(room, event string, payload interface{}) {
	data, err := json.Marshal(Event{Type: event, Data: payload, Timestamp: time.Now()})
	if err != nil {
		log.Printf("notify: failed to marshal %s event: %v", event, err)
		return
	}
	select {
	case h.broadcast <- roomMessage{room: room, payload: data}:
	default:
		log.Printf("notify: broadcast queue full, dropping %s event", event)
	}
}

// ServeWS upgrades an HTTP request to a websocket subscribed to the
// office room named in the "office" query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("office")
	if room == "" {
		http.Error(w, "office query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("notify: websocket upgrade failed: %v", err)
		return
	}

	client := &Client{room: room, conn: conn, send: make(chan []byte, 16)}
	h.register <- client

	go client.writePump()
	go client.readPump(h)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump discards inbound frames; its job is detecting disconnects.
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
