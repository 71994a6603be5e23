package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/goliatone/go-formbuilder/pkg/session"
)

const writeTimeout = 5 * time.Second

// feed upgrades to a websocket and streams session events as JSON. The first
// message is a "snapshot" of the current state. Client messages are ignored.
func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	events, unsubscribe := s.session.Subscribe()
	defer unsubscribe()

	ctx := conn.CloseRead(r.Context())
	snapshot := session.Event{Type: "snapshot", State: s.session.Snapshot()}
	if err := s.send(ctx, conn, snapshot); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event, ok := <-events:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}
			if err := s.send(ctx, conn, event); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, event session.Event) error {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, newEventView(event, s.session.Status())); err != nil {
		s.logger.Debug("websocket write failed", "error", err)
		return err
	}
	return nil
}
