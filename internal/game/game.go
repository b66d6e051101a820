package game

import "fmt"

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

// Phase is the state of the current round.
type Phase string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Round phases
	PhaseIdle    Phase = "idle"
	PhasePlaying Phase = "playing"
	PhaseWon     Phase = "won"
	PhaseDraw    Phase = "draw"

	// Board boundaries
	BorderMin = 0
	BorderMax = 8
	CellCount = 9
)

// Board is the 3x3 grid stored row-major, positions 0-8.
type Board [CellCount]PlayerMark

// WinPatterns holds the 8 winning lines: rows, columns, diagonals.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Scores are the session totals. They survive Reset.
type Scores struct {
	X    int `json:"x"`
	O    int `json:"o"`
	Draw int `json:"draw"`
}

// Other returns the opposing mark.
func (m PlayerMark) Other() PlayerMark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Valid reports whether m is one of the two player marks.
func (m PlayerMark) Valid() bool {
	return m == PlayerX || m == PlayerO
}

// InBounds reports whether position addresses a cell of the board.
func InBounds(position int) bool {
	return position >= BorderMin && position <= BorderMax
}

// CheckWin reports whether any winning line on the board is complete.
func CheckWin(board Board) bool {
	return len(WinningCells(board)) > 0
}

// WinningCells returns every cell belonging to a completed line, in
// ascending order. All 8 patterns are evaluated so that a move completing
// two lines at once yields both of them.
func WinningCells(board Board) []int {
	var hit [CellCount]bool
	for _, p := range WinningPatterns(board) {
		for _, idx := range p {
			hit[idx] = true
		}
	}

	var cells []int
	for idx, ok := range hit {
		if ok {
			cells = append(cells, idx)
		}
	}
	return cells
}

// WinningPatterns returns the completed patterns on the board.
func WinningPatterns(board Board) [][3]int {
	var matched [][3]int
	for _, p := range WinPatterns {
		a, b, c := board[p[0]], board[p[1]], board[p[2]]
		if a != None && a == b && a == c {
			matched = append(matched, p)
		}
	}
	return matched
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board Board) bool {
	for _, cell := range board {
		if cell == None {
			return false
		}
	}
	return true
}

func turnStatus(m PlayerMark) string {
	return fmt.Sprintf("Player %s's Turn", m)
}

func winStatus(m PlayerMark) string {
	return fmt.Sprintf("Player %s Wins!", m)
}

const drawStatus = "It's a Draw!"
