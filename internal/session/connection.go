package session

import (
	"context"
	"log/slog"
)

// Connection is the part of a websocket connection a session needs.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// ReadPump pumps messages from the connection to the session's incoming
// channel until the connection fails or the session stops.
func (s *Session) ReadPump(ctx context.Context) {
	defer close(s.readerDone)

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.stopped:
				// closed by us
			default:
				slog.InfoContext(ctx, "Browser connection closed", "session.id", s.ID, "error", err)
			}
			return
		}

		select {
		case s.incoming <- msg:
		case <-s.stopped:
			return
		}
	}
}
