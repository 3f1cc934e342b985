package stream

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	joinMessage  = "join"
	leaveMessage = "leave"
	editMessage  = "edit"
)

// clientMessage is what a client sends over the socket.
type clientMessage struct {
	Type     string `json:"type"`
	Room     string `json:"room"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

type client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan Event

	// room is guarded by the hub lock.
	room string

	closeOnce sync.Once
	done      chan struct{}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		c.hub.leave(c)
		close(c.done)
		_ = c.conn.Close()

		log.Debug().Str("client", c.id).Msg("socket disconnected")
	})
}

func (c *client) currentRoom() string {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	return c.room
}

func (c *client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message clientMessage

		if err := c.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", c.id).Msg("ws read error")
			}

			return
		}

		c.handle(&message)
	}
}

func (c *client) handle(message *clientMessage) {
	switch message.Type {
	case joinMessage:
		if message.Room != "" {
			c.hub.join(c, message.Room)
		}
	case leaveMessage:
		c.hub.leave(c)
	case editMessage:
		room := message.Room

		if room == "" {
			room = c.currentRoom()
		}

		if room == "" {
			return
		}

		_ = c.hub.Publish(Event{
			SessionID: room,
			Type:      EditEvent,
			Language:  message.Language,
			Code:      message.Code,
			SenderID:  c.id,
		})
	default:
		log.Debug().Str("client", c.id).Str("type", message.Type).Msg("ignoring unknown message")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteJSON(event); err != nil {
				log.Warn().Err(err).Str("client", c.id).Msg("ws write error")
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
