package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ctchen222/tictactoe-hotseat/internal/events"
	"ctchen222/tictactoe-hotseat/internal/game"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.session")

// ErrSessionNotFound is returned when no snapshot exists for a session.
var ErrSessionNotFound = errors.New("session not found")

// Hash fields of a session snapshot.
const (
	FieldBoard     = "board"
	FieldCurrent   = "current"
	FieldPhase     = "phase"
	FieldScores    = "scores"
	FieldWinning   = "winning"
	FieldUpdatedAt = "updated_at"
)

// SessionRecord is a stored snapshot of a live session.
type SessionRecord struct {
	ID        string        `json:"id"`
	Snapshot  game.Snapshot `json:"snapshot"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionRepository stores snapshots of live sessions and publishes their events.
type SessionRepository interface {
	Save(ctx context.Context, id string, snap game.Snapshot) error
	FindByID(ctx context.Context, id string) (*SessionRecord, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, event events.Event) error
}

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

// NewSessionRepository creates a Redis-based SessionRepository. Snapshots
// expire after ttl unless refreshed.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl, now: time.Now}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Save overwrites the snapshot for a session and refreshes its TTL.
func (r *redisSessionRepository) Save(ctx context.Context, id string, snap game.Snapshot) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Save", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("game.phase", string(snap.Phase)),
	))
	defer span.End()

	boardJSON, err := json.Marshal(snap.Board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	scoresJSON, err := json.Marshal(snap.Scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	winningJSON, err := json.Marshal(snap.Winning)
	if err != nil {
		return fmt.Errorf("failed to marshal winning cells: %w", err)
	}

	key := sessionKey(id)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		FieldBoard, boardJSON,
		FieldCurrent, string(snap.Current),
		FieldPhase, string(snap.Phase),
		FieldScores, scoresJSON,
		FieldWinning, winningJSON,
		FieldUpdatedAt, r.now().UTC().Format(time.RFC3339Nano),
	)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// FindByID loads the snapshot of a live session.
func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (*SessionRecord, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.FindByID", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSessionNotFound
	}

	rec := &SessionRecord{
		ID: id,
		Snapshot: game.Snapshot{
			Current: game.PlayerMark(data[FieldCurrent]),
			Phase:   game.Phase(data[FieldPhase]),
		},
	}
	if err := json.Unmarshal([]byte(data[FieldBoard]), &rec.Snapshot.Board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	if err := json.Unmarshal([]byte(data[FieldScores]), &rec.Snapshot.Scores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}
	if w := data[FieldWinning]; w != "" {
		if err := json.Unmarshal([]byte(w), &rec.Snapshot.Winning); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winning cells: %w", err)
		}
	}
	if ts := data[FieldUpdatedAt]; ts != "" {
		if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
	}

	return rec, nil
}

// Delete removes a session snapshot.
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Delete", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	return nil
}

// Publish sends an event on the global events channel.
func (r *redisSessionRepository) Publish(ctx context.Context, event events.Event) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Publish", trace.WithAttributes(
		attribute.String("event.type", event.Type),
	))
	defer span.End()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	if err := r.rdb.Publish(ctx, events.EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
