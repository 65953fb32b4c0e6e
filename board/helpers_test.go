package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fromDiagram builds a 19x19 board from rows of X (black), O (white) and any
// other character (empty). The first character of the first row is A1, so
// diagrams read upside down compared to String.
func fromDiagram(t testing.TB, diagram string) *Board {
	t.Helper()
	b := New(MaxSize)
	for row, line := range strings.Split(diagram, "\n") {
		line = strings.TrimSpace(line)
		for col := 0; col < len(line); col++ {
			switch line[col] {
			case 'X':
				require.True(t, b.PlayMove(PointFrom2D(row, col), Black))
			case 'O':
				require.True(t, b.PlayMove(PointFrom2D(row, col), White))
			}
		}
	}
	return b
}

func pt(t testing.TB, s string) Point {
	t.Helper()
	p, err := ParsePoint(s)
	require.NoError(t, err)
	return p
}

// recomputeHash folds the keys of every stone from scratch.
func recomputeHash(b *Board) uint64 {
	var h uint64
	for _, p := range b.Points() {
		if c := b.PointColor(p); c == Black || c == White {
			h ^= keys.Row(int(p))[c]
		}
	}
	return h
}
