package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"ctchen222/tictactoe-hotseat/internal/events"
	"ctchen222/tictactoe-hotseat/internal/game"
	"ctchen222/tictactoe-hotseat/internal/validator"
	"ctchen222/tictactoe-hotseat/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// resetKeys are the key presses that start a new round.
var resetKeys = map[string]bool{"r": true, "R": true}

// HandleMessage handles one frame from the browser. It acts as a dispatcher.
// Frames that cannot be understood are logged and dropped.
func (s *Session) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "session.HandleMessage", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from browser", "session.id", s.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeActivate:
		if message.Position == nil {
			slog.WarnContext(ctx, "activate without position", "session.id", s.ID)
			return
		}
		s.handleActivate(ctx, *message.Position)
	case proto.TypeReset:
		s.handleReset(ctx)
	case proto.TypeKey:
		if resetKeys[message.Key] {
			s.handleReset(ctx)
		}
	}
}

// handleActivate forwards a cell activation to the engine and records what
// came of it.
func (s *Session) handleActivate(ctx context.Context, position int) {
	ctx, span := tracer.Start(ctx, "session.handleActivate", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("cell.position", position),
	))
	defer span.End()

	before := s.engine.Snapshot()
	s.engine.Activate(position)
	after := s.engine.Snapshot()

	if before.Board == after.Board {
		span.SetAttributes(attribute.Bool("move.applied", false))
		activationsIgnored.Add(ctx, 1, metric.WithAttributes(attribute.String("game.phase", string(before.Phase))))
		slog.DebugContext(ctx, "activation ignored", "session.id", s.ID, "cell.position", position, "game.phase", before.Phase)
		return
	}
	span.SetAttributes(attribute.Bool("move.applied", true))

	if after.Phase == game.PhaseWon || after.Phase == game.PhaseDraw {
		s.finishRound(ctx, after)
	}
	s.save(ctx)
}

func (s *Session) handleReset(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.handleReset", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("game.phase", string(s.engine.Phase())),
	))
	defer span.End()

	s.engine.Reset()
	slog.DebugContext(ctx, "round reset", "session.id", s.ID)
	s.save(ctx)
}

func (s *Session) finishRound(ctx context.Context, snap game.Snapshot) {
	payload := events.RoundFinishedPayload{
		SessionID: s.ID,
		Outcome:   snap.Phase,
		Cells:     snap.Winning,
		Scores:    snap.Scores,
	}
	if snap.Phase == game.PhaseWon {
		payload.Winner = snap.Current
	}

	roundsFinished.Add(ctx, 1, metric.WithAttributes(
		attribute.String("game.outcome", string(snap.Phase)),
		attribute.String("game.winner", string(payload.Winner)),
	))
	slog.InfoContext(ctx, "Round finished", "session.id", s.ID, "game.outcome", snap.Phase, "game.winner", payload.Winner)

	s.publish(ctx, events.TypeRoundFinished, payload)
}
