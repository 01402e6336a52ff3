package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cruisemon/pkg/dashboard"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	clientBuffer = 8
)

type streamClient struct {
	id   string
	send chan []byte
}

// StreamHub pushes every published frame to connected websocket clients.
// Slow clients drop frames rather than stall the engine.
type StreamHub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*streamClient
	last    []byte
}

func NewStreamHub() *StreamHub {
	return &StreamHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 << 10,
		},
		clients: make(map[string]*streamClient),
	}
}

// Publish implements dashboard.Sink.
func (h *StreamHub) Publish(f *dashboard.Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		slog.Error("Failed to encode frame for stream", "seq", f.Seq, "error", err)
		return
	}

	h.mu.Lock()
	h.last = data
	h.mu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Debug("Stream client lagging, frame dropped", "client", c.id, "seq", f.Seq)
		}
	}
}

// Clients returns the number of connected clients.
func (h *StreamHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *StreamHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	c := &streamClient{id: uuid.NewString(), send: make(chan []byte, clientBuffer)}
	h.mu.Lock()
	h.clients[c.id] = c
	if h.last != nil {
		c.send <- h.last
	}
	h.mu.Unlock()
	slog.Debug("Stream client connected", "client", c.id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go h.readLoop(conn, done)
	h.writeLoop(conn, c, done)

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	conn.Close()
	slog.Debug("Stream client disconnected", "client", c.id)
}

// readLoop discards client messages and keeps the pong deadline fresh.
func (h *StreamHub) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *StreamHub) writeLoop(conn *websocket.Conn, c *streamClient, done <-chan struct{}) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case data := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
