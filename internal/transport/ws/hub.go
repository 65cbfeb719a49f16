package ws

import (
	"encoding/json"
	"log"
	"sync"

	"deslimste/internal/store"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MsgStoreChanged tells clients that a replicated path changed; the
	// payload names the path and clients re-read what they care about.
	MsgStoreChanged MessageType = "store_changed"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StoreChangedPayload carries the changed store path
type StoreChangedPayload struct {
	Path string `json:"path"`
}

// Hub fans replicated-store changes out to connected clients. Every team
// client and the admin client holds one connection; a change to teams/*
// or gameState/* reaches all of them.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Connection]struct{}

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan []byte
}

// Connection represents one WebSocket client
type Connection struct {
	TeamID  string // empty for admin connections
	IsAdmin bool
	Send    chan []byte
}

// NewHub creates a hub and wires it to store change notifications
func NewHub(st store.Store) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan []byte, 256),
	}
	go h.run()

	st.Subscribe("teams", h.notifyChanged)
	st.Subscribe("gameState", h.notifyChanged)
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("client connected (admin=%v team=%s)", conn.IsAdmin, conn.TeamID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// notifyChanged converts a store change into a broadcast message
func (h *Hub) notifyChanged(path string) {
	payload, _ := json.Marshal(StoreChangedPayload{Path: path})
	data, _ := json.Marshal(&Message{Type: MsgStoreChanged, Payload: payload})
	select {
	case h.broadcast <- data:
	default:
	}
}
