package ws

import (
	"log"
	"net/http"
	"time"

	"deslimste/internal/service"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler upgrades authenticated clients onto the hub
type Handler struct {
	hub     *Hub
	authSvc *service.AuthService
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService) *Handler {
	return &Handler{hub: hub, authSvc: authSvc}
}

// Serve handles GET /v1/ws with the token in the query string. Both team
// and admin tokens are accepted.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	conn := &Connection{Send: make(chan []byte, 256)}
	if claims, err := h.authSvc.ValidateTeamToken(token); err == nil {
		conn.TeamID = claims.TeamID
	} else if _, err := h.authSvc.ValidateAdminToken(token); err == nil {
		conn.IsAdmin = true
	} else {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	h.hub.Register(conn)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		// Clients only listen; nothing to process.
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
