// Package websocket - progress event fan-out
// Pushes watchlist mutation events to a user's connected browser sessions
package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"aniview/pkg/logger"
	"aniview/pkg/models"
)

const (
	writeWait      = 10 * time.Second    // Time allowed to write a message
	pongWait       = 60 * time.Second    // Time allowed to read the next pong
	pingPeriod     = (pongWait * 9) / 10 // Send pings to client
	maxMessageSize = 512                 // Inbound frames are control-only
	sendBuffer     = 16
)

// Hub routes progress events to the owning user's sessions. It
// implements core.ProgressPublisher.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*Client]bool // user_id -> clients
}

// Client represents one connected browser session
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan models.ProgressEvent
	userID string
}

// NewHub creates a new progress event hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Client]bool)}
}

// Publish fans an event out to every session of the owning user.
// Sessions with a full send buffer are dropped rather than blocking the
// mutation path.
func (h *Hub) Publish(event models.ProgressEvent) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.sessions[event.UserID]))
	for c := range h.sessions[event.UserID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- event:
		default:
			h.unregister(c)
		}
	}
}

// SessionCount returns the number of live sessions for a user
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[c.userID] == nil {
		h.sessions[c.userID] = make(map[*Client]bool)
	}
	h.sessions[c.userID][c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.sessions[c.userID]; ok {
		if clients[c] {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.sessions, c.userID)
		}
	}
	h.mu.Unlock()
}

// readPump drains the connection so pings/pongs and close frames are
// processed; clients never send application data on this socket
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debugf("websocket read: %v", err)
			}
			return
		}
	}
}

// writePump forwards events to the socket and keeps the connection
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
