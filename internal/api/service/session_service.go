package service

import (
	"context"
	"errors"
	"fmt"

	"ctchen222/tictactoe-hotseat/internal/repository"
)

// ErrSessionNotFound is returned when a session has no stored snapshot.
var ErrSessionNotFound = errors.New("session not found")

// LiveSessions is the part of the hub the API reads from.
type LiveSessions interface {
	Sessions() []string
	Lookup(id string) bool
}

// SessionFinder loads stored snapshots.
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*repository.SessionRecord, error)
}

// SessionView is what the API reports about one session.
type SessionView struct {
	*repository.SessionRecord
	Live bool `json:"live"`
}

// SessionService defines the read side of the session API.
type SessionService interface {
	List(ctx context.Context) []string
	Get(ctx context.Context, id string) (*SessionView, error)
}

type sessionService struct {
	live  LiveSessions
	store SessionFinder
}

// NewSessionService creates a new SessionService.
func NewSessionService(live LiveSessions, store SessionFinder) SessionService {
	return &sessionService{live: live, store: store}
}

func (s *sessionService) List(_ context.Context) []string {
	return s.live.Sessions()
}

func (s *sessionService) Get(ctx context.Context, id string) (*SessionView, error) {
	record, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	return &SessionView{SessionRecord: record, Live: s.live.Lookup(id)}, nil
}
