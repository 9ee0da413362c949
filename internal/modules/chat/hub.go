package chat

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"servicehub/internal/domain"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 16 * 1024
	sendBuffer = 64
)

type principal struct {
	kind domain.PrincipalKind
	id   int64
}

type connection struct {
	key  principal
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps at most one live socket per principal. Customer and provider ids
// overlap, so connections are keyed by kind and id together.
type Hub struct {
	mu          sync.RWMutex
	connections map[principal]*connection
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[principal]*connection),
	}
}

func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	if old, ok := h.connections[c.key]; ok {
		close(old.send)
	}
	h.connections[c.key] = c
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.key]; ok && existing == c {
		delete(h.connections, c.key)
		close(c.send)
	}
}

// SendTo queues v for the principal's socket. A slow or absent client
// simply misses the event.
func (h *Hub) SendTo(kind domain.PrincipalKind, id int64, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("level=error msg=ws marshal failed err=%v", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.connections[principal{kind: kind, id: id}]
	if !ok {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Publish lets the hub act as the booking event sink.
func (h *Hub) Publish(kind domain.PrincipalKind, id int64, event any) {
	h.SendTo(kind, id, event)
}

func (h *Hub) IsOnline(kind domain.PrincipalKind, id int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[principal{kind: kind, id: id}]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Serve attaches conn to the principal and blocks until the client goes away.
// Every text frame the client sends is passed to handle.
func (h *Hub) Serve(conn *websocket.Conn, kind domain.PrincipalKind, id int64, handle func(raw []byte)) {
	c := &connection{
		key:  principal{kind: kind, id: id},
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	if !h.register(c) {
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c, handle)
}

func (h *Hub) readPump(c *connection, handle func(raw []byte)) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("level=warn msg=ws read failed kind=%s id=%d err=%v", c.key.kind, c.key.id, err)
			}
			return
		}
		if handle != nil {
			handle(raw)
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// Close drops every connection. Later Serve calls are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for key, c := range h.connections {
		close(c.send)
		delete(h.connections, key)
	}
}
