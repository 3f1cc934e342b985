package stream

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 50 * time.Second
	maxMessageSize = 2 * 1024 * 1024
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub keeps the connected websocket clients grouped by room, a room being
// the session the clients are working on.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: map[string]map[*client]struct{}{}}
}

// Publish delivers the event to every client in the session room. Clients
// that cannot keep up are disconnected instead of blocking the publisher.
func (h *Hub) Publish(event Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[event.SessionID] {
		select {
		case c.send <- event:
		default:
			log.Warn().Str("client", c.id).Msg("client send buffer full, disconnecting")
			go c.close()
		}
	}

	return nil
}

// RoomSize returns the number of clients in the room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = map[*client]struct{}{}
	}

	h.rooms[room][c] = struct{}{}
	c.room = room
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if c.room == "" {
		return
	}

	delete(h.rooms[c.room], c)

	if len(h.rooms[c.room]) == 0 {
		delete(h.rooms, c.room)
	}

	c.room = ""
}

// ServeHTTP upgrades the connection, the optional session query parameter
// joins the room straight away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	c := &client{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan Event, sendBufferSize),
		done: make(chan struct{}),
	}

	log.Debug().Str("client", c.id).Msg("socket connected")

	if room := r.URL.Query().Get("session"); room != "" {
		h.join(c, room)
	}

	go c.writePump()
	go c.readPump()
}
