package events

import (
	"encoding/json"
	"fmt"

	"ctchen222/tictactoe-hotseat/internal/game"
)

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeSessionOpened = "session_opened"
	TypeRoundFinished = "round_finished"
	TypeSessionClosed = "session_closed"
)

// Event represents a global message published via Pub/Sub.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// SessionOpenedPayload is the payload for the "session_opened" event.
type SessionOpenedPayload struct {
	SessionID string `json:"session_id"`
}

// RoundFinishedPayload is the payload for the "round_finished" event.
// Winner is empty for a draw.
type RoundFinishedPayload struct {
	SessionID string          `json:"session_id"`
	Outcome   game.Phase      `json:"outcome"`
	Winner    game.PlayerMark `json:"winner,omitempty"`
	Cells     []int           `json:"cells,omitempty"`
	Scores    game.Scores     `json:"scores"`
}

// SessionClosedPayload is the payload for the "session_closed" event.
type SessionClosedPayload struct {
	SessionID string      `json:"session_id"`
	Scores    game.Scores `json:"scores"`
}

// New wraps payload in an Event envelope.
func New(eventType string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{Type: eventType, Payload: raw}, nil
}
