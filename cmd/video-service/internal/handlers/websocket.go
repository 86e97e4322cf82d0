package handlers

import (
	"log"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"gitlab.com/talentflow/services/backend/internal/ratelimit"
	"gitlab.com/talentflow/services/backend/internal/signaling"
)

// NewUpgrader builds the websocket upgrader for the signaling endpoint.
// An allowed origin of "*" (or empty) accepts any origin; otherwise the
// Origin header must match exactly.
func NewUpgrader(allowedOrigin string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}
}

// ServeWs upgrades the HTTP connection, registers the client, and starts
// its read and write pumps. The connect path is rate limited per IP
// before the upgrade; the limiter fails open when redis is unavailable.
func ServeWs(svc *signaling.Service, limiter *ratelimit.Limiter, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if err := limiter.CheckConnect(r.Context(), ip); err != nil {
			http.Error(w, "Too many connection attempts", http.StatusTooManyRequests)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[Handlers] Failed to upgrade connection: %v", err)
			return
		}

		client := signaling.NewClient(conn)
		svc.Connect(client)

		go client.WritePump()
		go client.ReadPump(svc)
	}
}
