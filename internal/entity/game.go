package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "Tie"

	EmptyCell = ""
)

var ErrInvalidGame = errors.New("invalid game state")

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 3x3 grid in row-major order, cells 0..8.
type Board [9]string

// LineWinner - returns the mark that owns a complete line, or EmptyCell.
func (that *Board) LineWinner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// AvailableCells - empty cells in ascending order.
func (that *Board) AvailableCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

type Game struct {
	Board    Board  `json:"board"`
	Turn     string `json:"current_player"`
	GameOver bool   `json:"game_over"`
	Winner   string `json:"winner,omitempty"`
}

func NewGame() *Game {
	game := &Game{}
	game.Reset()

	return game
}

// Reset - restores the initial state: empty board, X to move.
func (that *Game) Reset() {
	that.Board = Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
	that.Turn = PlayerX
	that.GameOver = false
	that.Winner = EmptyCell
}

// DetermineGameResult - returns the winning mark, PlayerTie for a full board, or "" while the game continues.
func (that *Game) DetermineGameResult() string {
	if winner := that.Board.LineWinner(); winner != EmptyCell {
		return winner
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return ""
	}

	return PlayerTie
}

// MakeTurn - places the mark of the player to move on cell.
func (that *Game) MakeTurn(cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.GameOver {
		return apperror.ErrGameFinished
	}

	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that.Board[cell] = that.Turn
	that.updateGameState()

	return nil
}

func (that *Game) updateGameState() {
	switch result := that.DetermineGameResult(); result {
	// one player wins or tie, the turn stays with the last mover
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = result
		that.GameOver = true
	// game continue
	default:
		that.Turn = Opponent(that.Turn)
	}
}

// Validate - checks that the game could have been reached by legal play with X moving first.
func (that *Game) Validate() error {
	var xCount, oCount int
	for i, cell := range that.Board {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		case EmptyCell:
		default:
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidGame, i, cell)
		}
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X marks and %d O marks", ErrInvalidGame, xCount, oCount)
	}

	xLine, oLine := that.hasLine(PlayerX), that.hasLine(PlayerO)
	switch {
	case xLine && oLine:
		return fmt.Errorf("%w: both players own a line", ErrInvalidGame)
	case xLine && xCount == oCount:
		return fmt.Errorf("%w: X won but O moved after", ErrInvalidGame)
	case oLine && xCount > oCount:
		return fmt.Errorf("%w: O won but X moved after", ErrInvalidGame)
	}

	// the player to move follows from the counts; a finished game keeps the last mover
	expectedTurn := PlayerX
	if (xCount > oCount) != that.GameOver {
		expectedTurn = PlayerO
	}

	if that.Turn != expectedTurn {
		return fmt.Errorf("%w: current player %q, expected %q", ErrInvalidGame, that.Turn, expectedTurn)
	}

	result := that.DetermineGameResult()
	if that.GameOver != (result != "") {
		return fmt.Errorf("%w: game_over %t does not match the board", ErrInvalidGame, that.GameOver)
	}

	if that.Winner != result {
		return fmt.Errorf("%w: winner %q, board says %q", ErrInvalidGame, that.Winner, result)
	}

	return nil
}

func (that *Game) hasLine(mark string) bool {
	for _, combo := range WinCombos {
		if that.Board[combo[0]] == mark && that.Board[combo[1]] == mark && that.Board[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Game) IsFinished() bool {
	return that.GameOver
}

// Snapshot - returns a copy that shares no state with the receiver.
func (that *Game) Snapshot() *Game {
	snapshot := *that
	return &snapshot
}

func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
