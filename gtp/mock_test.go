package gtp

import "gtpbench/board"

type mockMove struct {
	point board.Point
	color board.Color
}

// mockBoard accepts every move on an empty point and scores a fixed value.
type mockBoard struct {
	size   int
	stones map[board.Point]board.Color
	played []mockMove
	score  float64
	refuse bool // PlayMove fails even for legal moves
}

func newMockBoard(size int) *mockBoard {
	return &mockBoard{size: size, stones: map[board.Point]board.Color{}}
}

func (m *mockBoard) IsLegalMove(p board.Point, c board.Color) bool {
	_, occupied := m.stones[p]
	return !occupied
}

func (m *mockBoard) PlayMove(p board.Point, c board.Color) bool {
	if m.refuse {
		return false
	}
	m.stones[p] = c
	m.played = append(m.played, mockMove{p, c})
	return true
}

func (m *mockBoard) Score(komi float64) float64 {
	return m.score - komi
}

// mockFactory records every board it builds.
type mockFactory struct {
	boards []*mockBoard
}

func (f *mockFactory) build(size int) Board {
	b := newMockBoard(size)
	f.boards = append(f.boards, b)
	return b
}

func (f *mockFactory) last() *mockBoard {
	return f.boards[len(f.boards)-1]
}
