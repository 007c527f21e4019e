package timer

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

const (
	EventTimerStarted = "timer_started"
	EventTimerStopped = "timer_stopped"
)

// Event is pushed to every connected device of the entry's owner so a
// toggle on one device updates the others.
type Event struct {
	Type  string     `json:"type"`
	Entry *TimeEntry `json:"entry"`
}

type connection struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub fans timer events out to a user's open websocket connections.
type Hub struct {
	mu          sync.RWMutex
	connections map[int64]map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[int64]map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c.userID] == nil {
		h.connections[c.userID] = make(map[*connection]struct{})
	}
	h.connections[c.userID][c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.connections[c.userID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.connections, c.userID)
			}
		}
	}
}

// TimerStarted implements EventSink.
func (h *Hub) TimerStarted(userID int64, entry *TimeEntry) {
	h.push(userID, &Event{Type: EventTimerStarted, Entry: entry})
}

// TimerStopped implements EventSink.
func (h *Hub) TimerStopped(userID int64, entry *TimeEntry) {
	h.push(userID, &Event{Type: EventTimerStopped, Entry: entry})
}

func (h *Hub) push(userID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections[userID] {
		select {
		case c.send <- data:
		default:
			// client too slow, drop the event
		}
	}
}

// ServeWS registers a new connection and starts its pump loops,
// blocking until the peer disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, userID int64) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// The feed is push-only; the read loop exists to notice closes and
	// answer pings.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
