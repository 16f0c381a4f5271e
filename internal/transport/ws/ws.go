// Package ws pushes library change events to connected browsers so they
// recompute their derived views without polling.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/alanyang/promptvault/internal/domain/event"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

// client pairs a connection with its buffered outbound queue. Writes happen
// on the client's own goroutine, so the network never sits on the library's
// mutation path.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (cl *client) writePump() {
	for data := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			cl.conn.Close()
			return
		}
	}
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
	}
}

func (h *Hub) Register(rg *gin.RouterGroup) {
	rg.GET("", h.handleWS)
}

func (h *Hub) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go cl.writePump()
	defer h.drop(cl)

	// The feed is one-way; reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast queues the event for every connected client and returns without
// touching the network. A client whose queue is full is dropped instead of
// stalling the caller.
func (h *Hub) Broadcast(e event.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("websocket broadcast marshal failed", "error", err)
		return
	}

	var stalled []*client
	h.mu.RLock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			stalled = append(stalled, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range stalled {
		slog.Error("websocket client queue full, dropping client")
		h.drop(cl)
	}
}

// drop unregisters the client and closes its queue. Safe to call more than
// once — only the first call finds the client in the map, and Broadcast
// never sends to a client that has been removed.
func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	cl.conn.Close()
}
