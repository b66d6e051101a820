package game

// Engine holds one session's game: the board, whose turn it is, whether the
// round still accepts moves, and the running scores. It is not safe for
// concurrent use; the owner serializes all calls.
type Engine struct {
	board     Board
	current   PlayerMark
	phase     Phase
	scores    Scores
	presenter Presenter
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Board   Board      `json:"board"`
	Current PlayerMark `json:"current"`
	Phase   Phase      `json:"phase"`
	Scores  Scores     `json:"scores"`
	Winning []int      `json:"winning,omitempty"`
}

// NewEngine returns an engine ready for the first round, X to move. No
// signals are emitted; call Redraw to paint the initial view.
func NewEngine(p Presenter) *Engine {
	if p == nil {
		p = NopPresenter{}
	}
	return &Engine{
		current:   PlayerX,
		phase:     PhasePlaying,
		presenter: p,
	}
}

// Activate places the current player's mark at position. Activations on an
// occupied or out-of-range cell, or outside an active round, are ignored.
func (e *Engine) Activate(position int) {
	if e.phase != PhasePlaying || !InBounds(position) || e.board[position] != None {
		return
	}

	e.board[position] = e.current
	e.presenter.RenderMark(position, e.current)
	e.presenter.MarkCellTaken(position)

	if cells := WinningCells(e.board); len(cells) > 0 {
		e.phase = PhaseWon
		if e.current == PlayerX {
			e.scores.X++
		} else {
			e.scores.O++
		}
		e.presenter.ShowStatus(winStatus(e.current))
		e.presenter.UpdateScoreDisplay(e.scores.X, e.scores.O, e.scores.Draw)
		e.presenter.HighlightCells(cells)
		return
	}

	if IsBoardFull(e.board) {
		e.phase = PhaseDraw
		e.scores.Draw++
		e.presenter.ShowStatus(drawStatus)
		e.presenter.UpdateScoreDisplay(e.scores.X, e.scores.O, e.scores.Draw)
		return
	}

	e.current = e.current.Other()
	e.presenter.ShowStatus(turnStatus(e.current))
}

// Reset starts a new round. Scores are kept.
func (e *Engine) Reset() {
	e.board = Board{}
	e.current = PlayerX
	e.phase = PhasePlaying
	if e.presenter == nil {
		e.presenter = NopPresenter{}
	}

	e.presenter.ClearBoard()
	e.presenter.ShowStatus(turnStatus(e.current))
}

// Redraw re-emits the whole view from the current state. An idle engine has
// no round to report, so only the board and the scores are painted.
func (e *Engine) Redraw() {
	if e.presenter == nil {
		e.presenter = NopPresenter{}
	}

	e.presenter.ClearBoard()
	for pos, mark := range e.board {
		if mark != None {
			e.presenter.RenderMark(pos, mark)
			e.presenter.MarkCellTaken(pos)
		}
	}
	e.presenter.UpdateScoreDisplay(e.scores.X, e.scores.O, e.scores.Draw)

	switch e.phase {
	case PhaseWon:
		e.presenter.ShowStatus(winStatus(e.current))
		e.presenter.HighlightCells(WinningCells(e.board))
	case PhaseDraw:
		e.presenter.ShowStatus(drawStatus)
	case PhasePlaying:
		e.presenter.ShowStatus(turnStatus(e.current))
	case PhaseIdle, "":
	}
}

// Active reports whether moves are accepted.
func (e *Engine) Active() bool { return e.phase == PhasePlaying }

// Phase returns the state of the current round.
func (e *Engine) Phase() Phase {
	if e.phase == "" {
		return PhaseIdle
	}
	return e.phase
}

// CurrentPlayer returns the mark that moves next, or the winner once the
// round is won.
func (e *Engine) CurrentPlayer() PlayerMark { return e.current }

// Board returns a copy of the board.
func (e *Engine) Board() Board { return e.board }

// Scores returns the session totals.
func (e *Engine) Scores() Scores { return e.scores }

// Snapshot copies the full state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Board:   e.board,
		Current: e.current,
		Phase:   e.Phase(),
		Scores:  e.scores,
	}
	if e.phase == PhaseWon {
		s.Winning = WinningCells(e.board)
	}
	return s
}
