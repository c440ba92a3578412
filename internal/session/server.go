// Package session owns the client-facing WebSocket protocol: one handler
// per connection, typed JSON frames, and an ack → result → complete
// sequence per request.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests into wallet sessions and pumps each
// connection's read loop.
type Server struct {
	pipeline assetInfoProvider
	upgrader websocket.Upgrader
}

// NewServer creates the session server over the given pipeline.
func NewServer(pipeline assetInfoProvider) *Server {
	return &Server{
		pipeline: pipeline,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
			// The wallet GUI connects from a local origin; no origin policy
			// is enforced here (authentication is out of scope).
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the session until the client
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("WebSocket upgrade failed", slog.Any("error", err))
		return
	}

	slog.Info("Client connected", slog.String("remote", conn.RemoteAddr().String()))
	s.serveConn(r.Context(), conn)
}

// serveConn owns one connection: welcome message, then a read loop that
// dispatches each frame on its own goroutine. A connection close abandons
// in-flight work; the fetchers write no shared state, so abandoned lookups
// are harmless.
func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	handler := NewHandler(s.pipeline, conn)
	handler.Welcome()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("Session read error", slog.Any("error", err))
			}
			slog.Info("Client disconnected", slog.String("remote", conn.RemoteAddr().String()))
			return
		}

		go handler.HandleMessage(ctx, raw)
	}
}
