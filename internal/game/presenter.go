package game

//go:generate mockgen -source=presenter.go -destination=../mocks/presenter_mock.go -package=mocks

// Presenter receives the engine's output signals and turns them into
// something visible. Implementations must not call back into the engine.
type Presenter interface {
	RenderMark(position int, mark PlayerMark)
	MarkCellTaken(position int)
	ShowStatus(text string)
	HighlightCells(positions []int)
	ClearBoard()
	UpdateScoreDisplay(x, o, draws int)
}

// NopPresenter discards every signal.
type NopPresenter struct{}

func (NopPresenter) RenderMark(int, PlayerMark) {}
func (NopPresenter) MarkCellTaken(int) {}
func (NopPresenter) ShowStatus(string) {}
func (NopPresenter) HighlightCells([]int) {}
func (NopPresenter) ClearBoard() {}
func (NopPresenter) UpdateScoreDisplay(_, _, _ int) {}
