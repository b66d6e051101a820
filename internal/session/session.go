package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tictactoe-hotseat/internal/events"
	"ctchen222/tictactoe-hotseat/internal/game"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

const defaultHeartbeat = 10 * time.Second

var tracer = otel.Tracer("session")

// Store keeps a live view of the session and receives its events.
type Store interface {
	Save(ctx context.Context, id string, snap game.Snapshot) error
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, event events.Event) error
}

// Session is one browser connection playing one game. The run goroutine is
// the only one touching the engine or writing to the connection.
type Session struct {
	ID        string
	conn      Connection
	engine    *game.Engine
	presenter *socketPresenter
	store     Store
	heartbeat time.Duration

	incoming   chan []byte
	readerDone chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once
}

// NewSession creates a session for conn. A zero heartbeat uses the default.
func NewSession(id string, conn Connection, store Store, heartbeat time.Duration) *Session {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	p := newSocketPresenter(id, conn)
	return &Session{
		ID:         id,
		conn:       conn,
		engine:     game.NewEngine(p),
		presenter:  p,
		store:      store,
		heartbeat:  heartbeat,
		incoming:   make(chan []byte, 10),
		readerDone: make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Start runs the session until the connection drops or ctx is cancelled,
// then hands the session to unregister.
func (s *Session) Start(ctx context.Context, unregister chan<- *Session) {
	go s.ReadPump(ctx)
	s.run(ctx)

	select {
	case unregister <- s:
	case <-ctx.Done():
	}
}

// Stopped is closed once the session has shut down.
func (s *Session) Stopped() <-chan struct{} {
	return s.stopped
}

func (s *Session) run(ctx context.Context) {
	pingTicker := time.NewTicker(s.heartbeat)
	defer pingTicker.Stop()

	s.open(ctx)
	defer s.close(ctx)

	if err := s.presenter.Err(); err != nil {
		slog.WarnContext(ctx, "Failed to paint initial view, closing session", "session.id", s.ID, "error", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Session stopping, server shutting down", "session.id", s.ID)
			return

		case <-s.readerDone:
			s.drain(ctx)
			return

		case msg := <-s.incoming:
			s.HandleMessage(ctx, msg)
			if err := s.presenter.Err(); err != nil {
				slog.WarnContext(ctx, "Failed to write to browser, closing session", "session.id", s.ID, "error", err)
				return
			}

		case <-pingTicker.C:
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.WarnContext(ctx, "Failed to send ping, assuming disconnect", "session.id", s.ID, "error", err)
				return
			}
		}
	}
}

// drain handles frames the reader queued before the connection dropped.
func (s *Session) drain(ctx context.Context) {
	for {
		select {
		case msg := <-s.incoming:
			s.HandleMessage(ctx, msg)
			if s.presenter.Err() != nil {
				return
			}
		default:
			return
		}
	}
}

// open announces the session and paints the initial view.
func (s *Session) open(ctx context.Context) {
	slog.InfoContext(ctx, "Session opened", "session.id", s.ID)
	liveSessions.Add(ctx, 1)

	s.publish(ctx, events.TypeSessionOpened, events.SessionOpenedPayload{SessionID: s.ID})
	s.engine.Redraw()
	s.save(ctx)
}

func (s *Session) close(ctx context.Context) {
	s.stopOnce.Do(func() {
		close(s.stopped)
		liveSessions.Add(context.WithoutCancel(ctx), -1)

		// ctx may already be cancelled by shutdown
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()

		if err := s.store.Delete(cleanupCtx, s.ID); err != nil {
			slog.WarnContext(cleanupCtx, "Failed to delete session snapshot", "session.id", s.ID, "error", err)
		}
		s.publish(cleanupCtx, events.TypeSessionClosed, events.SessionClosedPayload{
			SessionID: s.ID,
			Scores:    s.engine.Scores(),
		})
		if err := s.conn.Close(); err != nil {
			slog.DebugContext(cleanupCtx, "Error closing connection", "session.id", s.ID, "error", err)
		}
		slog.InfoContext(cleanupCtx, "Session closed", "session.id", s.ID)
	})
}

// Snapshot returns the engine state. Only safe from the run goroutine or
// after the session has stopped.
func (s *Session) Snapshot() game.Snapshot {
	return s.engine.Snapshot()
}

func (s *Session) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.ID, s.engine.Snapshot()); err != nil {
		slog.WarnContext(ctx, "Failed to save session snapshot", "session.id", s.ID, "error", err)
	}
}

func (s *Session) publish(ctx context.Context, eventType string, payload any) {
	event, err := events.New(eventType, payload)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build event", "event.type", eventType, "error", err)
		return
	}
	if err := s.store.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event", "event.type", eventType, "session.id", s.ID, "error", err)
	}
}
