package inspect

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The server binds to localhost for development tooling; origin
	// checking is the embedder's concern if it exposes this further.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleEvents upgrades the connection and forwards registration events as
// JSON messages until the client disconnects or the source closes the
// subscription.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, ok := s.src.(EventSource)
	if !ok {
		s.writeJSON(w, http.StatusNotImplemented, map[string]string{
			"error": "source does not stream events",
		})
		return
	}

	// Subscribe before upgrading so no registration that happens after the
	// handshake completes can be missed.
	ch, cancel := events.Subscribe()
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reader goroutine: drain control frames and detect disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, open := <-ch:
			if !open {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("event stream closed", zap.Error(err))
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
