package session

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-hotseat/internal/game"
	"ctchen222/tictactoe-hotseat/pkg/proto"

	"github.com/gorilla/websocket"
)

// socketPresenter turns engine signals into websocket frames. After the first
// failed write it drops everything and reports the error through Err.
type socketPresenter struct {
	sessionID string
	conn      Connection
	err       error
}

func newSocketPresenter(sessionID string, conn Connection) *socketPresenter {
	return &socketPresenter{sessionID: sessionID, conn: conn}
}

func (p *socketPresenter) RenderMark(position int, mark game.PlayerMark) {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeRenderMark, Position: &position, Mark: mark})
}

func (p *socketPresenter) MarkCellTaken(position int) {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeCellTaken, Position: &position})
}

func (p *socketPresenter) ShowStatus(text string) {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeStatus, Text: text})
}

func (p *socketPresenter) HighlightCells(positions []int) {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeHighlight, Positions: positions})
}

func (p *socketPresenter) ClearBoard() {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeClearBoard})
}

func (p *socketPresenter) UpdateScoreDisplay(x, o, draws int) {
	p.send(&proto.ServerToClientMessage{Type: proto.TypeScores, Scores: &game.Scores{X: x, O: o, Draw: draws}})
}

// Err returns the first write error, if any.
func (p *socketPresenter) Err() error {
	return p.err
}

func (p *socketPresenter) send(message *proto.ServerToClientMessage) {
	if p.err != nil {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		p.err = fmt.Errorf("failed to marshal %s message: %w", message.Type, err)
		return
	}
	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		p.err = fmt.Errorf("failed to write %s message: %w", message.Type, err)
		slog.Debug("error writing message to browser", "session.id", p.sessionID, "error", err)
	}
}
