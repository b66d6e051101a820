package hub

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"ctchen222/tictactoe-hotseat/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// RegistrationRequest asks the hub to start a session for a new connection.
type RegistrationRequest struct {
	SessionID string
	Conn      session.Connection
	Ctx       context.Context
}

// Hub owns the live sessions of this server.
type Hub struct {
	store      session.Store
	heartbeat  time.Duration
	register   chan *RegistrationRequest
	unregister chan *session.Session
	done       chan struct{}
	running    sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewHub creates a new hub.
func NewHub(store session.Store, heartbeat time.Duration) *Hub {
	return &Hub{
		store:      store,
		heartbeat:  heartbeat,
		register:   make(chan *RegistrationRequest),
		unregister: make(chan *session.Session),
		done:       make(chan struct{}),
		sessions:   make(map[string]*session.Session),
	}
}

// Run serves registrations until ctx is cancelled. Sessions it started stop
// with the same ctx; see Wait.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	slog.InfoContext(ctx, "Hub started")
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Hub stopping", "sessions.count", h.Len())
			return

		case req := <-h.register:
			h.handleRegister(ctx, req)

		case s := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.sessions[s.ID]; ok && current == s {
				delete(h.sessions, s.ID)
			}
			h.mu.Unlock()
			slog.InfoContext(ctx, "Session unregistered", "session.id", s.ID)
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, req *RegistrationRequest) {
	reqCtx := req.Ctx
	if reqCtx == nil {
		reqCtx = ctx
	}
	spanCtx, span := tracer.Start(reqCtx, "hub.handleRegister", trace.WithAttributes(
		attribute.String("session.id", req.SessionID),
	))
	defer span.End()

	h.mu.Lock()
	if _, taken := h.sessions[req.SessionID]; taken {
		h.mu.Unlock()
		slog.WarnContext(spanCtx, "Session id already live, refusing connection", "session.id", req.SessionID)
		span.SetAttributes(attribute.Bool("session.duplicate", true))
		_ = req.Conn.Close()
		return
	}
	s := session.NewSession(req.SessionID, req.Conn, h.store, h.heartbeat)
	h.sessions[s.ID] = s
	h.mu.Unlock()

	// sessions outlive the upgrade request, so they run on the hub context
	h.running.Add(1)
	go func() {
		defer h.running.Done()
		s.Start(ctx, h.unregister)
	}()
}

// Done is closed once Run has returned. No registration is served after that.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until Run has returned and every session it started has
// finished closing, or until ctx is done.
func (h *Hub) Wait(ctx context.Context) error {
	select {
	case <-h.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	finished := make(chan struct{})
	go func() {
		h.running.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *RegistrationRequest {
	return h.register
}

// Sessions lists the IDs of live sessions in lexical order.
func (h *Hub) Sessions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup reports whether a session is live on this hub.
func (h *Hub) Lookup(id string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.sessions[id]
	return ok
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions)
}
