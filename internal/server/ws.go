package server

import (
	"net/http"
	"time"

	"stocktracker/internal/market/memorystore"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const MessageTypeSnapshot = "snapshot"

// Message is the envelope of every frame pushed to WebSocket clients.
type Message struct {
	Type string               `json:"type"`
	Data memorystore.Snapshot `json:"data"`
}

// handleWS streams store snapshots to the client. The store subscription keeps only
// the latest unread snapshot, so a slow client skips frames instead of blocking ticks.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		writeError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	defer s.conns.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	updates, cancel := s.stocks.Subscribe()
	defer cancel()

	remote := conn.RemoteAddr().String()
	s.logger.Info("websocket client connected", zap.String("remote", remote))
	defer s.logger.Info("websocket client disconnected", zap.String("remote", remote))

	readerDone := make(chan struct{})
	go s.readPump(conn, readerDone)

	s.writePump(conn, updates, readerDone)
	_ = conn.Close()
	<-readerDone
}

// readPump discards client frames and keeps the read deadline alive via pongs.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	pongWait := s.cfg.WSPingPeriod * 10 / 9
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

func (s *Server) writePump(conn *websocket.Conn, updates <-chan memorystore.Snapshot, readerDone <-chan struct{}) {
	ticker := time.NewTicker(s.cfg.WSPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				s.writeClose(conn, websocket.CloseGoingAway, "store stopped")
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteWait))
			if err := conn.WriteJSON(Message{Type: MessageTypeSnapshot, Data: snap}); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-readerDone:
			return

		case <-s.closing:
			s.writeClose(conn, websocket.CloseGoingAway, "server shutting down")
			return
		}
	}
}

func (s *Server) writeClose(conn *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.cfg.WSWriteWait))
}
