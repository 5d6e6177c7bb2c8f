package ws

import (
	"adventcal/internal/metrics"
	"adventcal/internal/store"
	"context"
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MsgState carries a full application state snapshot
	MsgState MessageType = "state"
	// MsgError carries a new LastError for renderers that show toasts
	MsgError MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents a WebSocket connection
type Connection struct {
	PlayerID string // Empty for anonymous renderers
	Send     chan []byte
	Hub      *Hub
}

// Hub fans state snapshots out to every connected renderer
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
	done       <-chan struct{}

	snapshot func() store.AppState
}

// NewHub creates a new WebSocket hub that runs until ctx is done.
// snapshot provides the state sent to each new connection.
func NewHub(ctx context.Context, snapshot func() store.AppState) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
		done:       ctx.Done(),
		snapshot:   snapshot,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			metrics.WSConnections.Set(0)
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			metrics.WSConnections.Set(float64(len(h.conns)))
			h.mu.Unlock()
			log.Printf("[ws] renderer connected (player=%q)", conn.PlayerID)

			if data, err := encode(MsgState, h.snapshot()); err == nil {
				trySend(conn, data)
			}

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
				metrics.WSConnections.Set(float64(len(h.conns)))
				log.Printf("[ws] renderer disconnected (player=%q)", conn.PlayerID)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				trySend(conn, data)
			}
			h.mu.RUnlock()
		}
	}
}

// trySend drops the message if the connection's buffer is full
func trySend(conn *Connection, data []byte) {
	select {
	case conn.Send <- data:
	default:
	}
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: data})
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Broadcast sends a message to every connection
func (h *Hub) Broadcast(msgType MessageType, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		log.Printf("[ws] failed to encode %s message: %v", msgType, err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// ErrorPayload is sent when a new user-facing error appears in the state
type ErrorPayload struct {
	Message string `json:"message"`
}

// Follow broadcasts every snapshot published by st until ctx is done.
// A change to a non-empty LastError is also sent as an error message.
func (h *Hub) Follow(ctx context.Context, st *store.Store) {
	updates, cancel := st.Subscribe(16)
	defer cancel()
	lastErr := st.Snapshot().LastError
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			h.Broadcast(MsgState, snap)
			if snap.LastError != "" && snap.LastError != lastErr {
				h.Broadcast(MsgError, ErrorPayload{Message: snap.LastError})
			}
			lastErr = snap.LastError
		}
	}
}
