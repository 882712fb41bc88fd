// Package live exposes the garden's change feed over WebSocket. Each
// connected client receives one JSON flower event per insert for the
// lifetime of the connection.
package live

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"cosmicgarden/internal/live"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Handler struct {
	hub *live.Hub
	log *slog.Logger

	upgrader websocket.Upgrader
}

func NewHandler(hub *live.Hub, log *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		log: log.With("component", "live_handler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The garden is a public, read-only feed.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and streams insert events until
// the client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
		return
	}

	sub := h.hub.Subscribe()
	h.log.Info("live subscriber connected", "remote_addr", r.RemoteAddr)

	go h.writeLoop(conn, sub)
	h.readLoop(conn, sub)
}

// writeLoop pushes events and periodic pings to the client.
func (h *Handler) writeLoop(conn *websocket.Conn, sub *live.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains the connection to process control frames and detect
// disconnects. The feed is one-way; inbound data messages are
// discarded.
func (h *Handler) readLoop(conn *websocket.Conn, sub *live.Subscriber) {
	defer func() {
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
