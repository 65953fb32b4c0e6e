package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxSize is the largest supported board.
const MaxSize = 19

// The board is stored with a one point border of guard stones on every side,
// so neighbours never need bounds checks.
const (
	virtualSize   = MaxSize + 2
	virtualPoints = virtualSize * virtualSize
)

// Point is a position on the virtual board, row*21 + col, where rows and
// columns of the playing area start at 1.
type Point uint16

const (
	InvalidPoint Point = 0
	Pass         Point = virtualPoints + 1
)

var (
	ErrInvalidPoint = errors.New("invalid point")
	ErrInvalidColor = errors.New("invalid color")
)

// Column letters skip I.
const columns = "ABCDEFGHJKLMNOPQRST"

// PointFrom2D maps a zero-based (row, col) on the playing area to a Point.
func PointFrom2D(row, col int) Point {
	return Point((row+1)*virtualSize + col + 1)
}

// To2D is the inverse of PointFrom2D. Pass and InvalidPoint give (-1, -1).
func (p Point) To2D() (row, col int) {
	if p == InvalidPoint || p == Pass {
		return -1, -1
	}
	return int(p)/virtualSize - 1, int(p)%virtualSize - 1
}

func (p Point) String() string {
	switch p {
	case Pass:
		return "PASS"
	case InvalidPoint:
		return "INVALID"
	}
	row, col := p.To2D()
	if row < 0 || col < 0 || row >= MaxSize || col >= len(columns) {
		return "INVALID"
	}
	return string(columns[col]) + strconv.Itoa(row+1)
}

// ParsePoint reads a vertex such as "d4", "Q16" or "pass".
func ParsePoint(s string) (Point, error) {
	s = strings.ToUpper(s)
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 || len(s) > 3 {
		return InvalidPoint, fmt.Errorf("%w: %q", ErrInvalidPoint, s)
	}
	col := strings.IndexByte(columns, s[0])
	if col < 0 {
		return InvalidPoint, fmt.Errorf("%w: bad column in %q", ErrInvalidPoint, s)
	}
	if s[1] < '1' || s[1] > '9' {
		return InvalidPoint, fmt.Errorf("%w: bad row in %q", ErrInvalidPoint, s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > MaxSize {
		return InvalidPoint, fmt.Errorf("%w: bad row in %q", ErrInvalidPoint, s)
	}
	return PointFrom2D(row-1, col), nil
}

// Color is the state of a point on the board.
type Color uint8

const (
	Black Color = iota
	White
	Empty
	Guard
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	case Empty:
		return "EMPTY"
	case Guard:
		return "GUARD"
	}
	return "?"
}

func (c Color) char() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	case Empty:
		return '+'
	}
	return '#'
}

// ParseColor accepts "b", "black", "w" and "white" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
