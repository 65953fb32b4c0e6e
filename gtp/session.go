package gtp

import "gtpbench/board"

const (
	DefaultBoardSize = 19
	DefaultKomi      = 7.5
)

// Board is the engine surface the interpreter drives.
type Board interface {
	IsLegalMove(p board.Point, c board.Color) bool
	PlayMove(p board.Point, c board.Color) bool
	Score(komi float64) float64
}

// BoardFactory builds an empty board of the given size.
type BoardFactory func(size int) Board

// NewBoard is the default factory backed by package board.
func NewBoard(size int) Board {
	return board.New(size)
}

// Session is the state carried between commands. BoardSize is the size the
// next clear_board will use; it may differ from the current board's size.
type Session struct {
	BoardSize int
	Komi      float64
	Board     Board
}
