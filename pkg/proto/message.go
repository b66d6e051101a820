package proto

import "ctchen222/tictactoe-hotseat/internal/game"

// Client message types
const (
	TypeActivate = "activate"
	TypeReset    = "reset"
	TypeKey      = "key"
)

// Server message types, one per presenter signal
const (
	TypeRenderMark = "render_mark"
	TypeCellTaken  = "cell_taken"
	TypeStatus     = "status"
	TypeHighlight  = "highlight"
	TypeClearBoard = "clear_board"
	TypeScores     = "scores"
)

// ClientToServerMessage represents a message from the browser to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=activate reset key"`
	Position *int   `json:"position,omitempty" validate:"omitempty,cell"`
	Key      string `json:"key,omitempty" validate:"required_if=Type key,max=16"`
}

// ServerToClientMessage represents a message from the server to the browser.
type ServerToClientMessage struct {
	Type      string          `json:"type" validate:"required"`
	Position  *int            `json:"position,omitempty"`
	Mark      game.PlayerMark `json:"mark,omitempty"`
	Text      string          `json:"text,omitempty"`
	Positions []int           `json:"positions,omitempty"`
	Scores    *game.Scores    `json:"scores,omitempty"`
}
