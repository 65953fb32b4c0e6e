// Package board is a Go board tuned for fast playouts: a guarded 21x21
// virtual board, stone chains kept as circular lists with pseudo-liberty
// sums, simple ko and an incremental Zobrist hash.
package board

import (
	"fmt"
	"strings"

	"gtpbench/check"
	"gtpbench/zobrist"
)

// keySeed fixes the position keys so hashes are stable across runs.
const keySeed = 0x5eed_c0de_b0a2_d001

// keys holds one key per (point, color); guard and empty columns keep the
// table rectangular.
var keys = zobrist.New[uint64](keySeed, virtualPoints, 4)

type vertex struct {
	chainHead Point
	chainNext Point
	color     Color
}

// chain tracks pseudo-liberties: a liberty is counted once per adjacent stone.
// A chain is in atari exactly when every counted liberty is the same point,
// which holds iff n * sum(p^2) == sum(p)^2.
type chain struct {
	numStones          int
	numPseudoLiberties int
	libertySum         int
	libertySumSquared  int
}

// Border values are large enough never to go negative as neighbours remove
// liberties from guard points.
func borderChain() chain {
	return chain{numPseudoLiberties: 4, libertySum: 32768, libertySumSquared: 2147483648}
}

func (c *chain) reset() {
	*c = chain{}
}

func (c *chain) merge(other *chain) {
	c.numStones += other.numStones
	c.numPseudoLiberties += other.numPseudoLiberties
	c.libertySum += other.libertySum
	c.libertySumSquared += other.libertySumSquared
}

func (c *chain) addLiberty(p Point) {
	c.numPseudoLiberties++
	c.libertySum += int(p)
	c.libertySumSquared += int(p) * int(p)
}

func (c *chain) removeLiberty(p Point) {
	c.numPseudoLiberties--
	c.libertySum -= int(p)
	c.libertySumSquared -= int(p) * int(p)
}

func (c *chain) inAtari() bool {
	return c.numPseudoLiberties*c.libertySumSquared == c.libertySum*c.libertySum
}

func (c *chain) singleLiberty() Point {
	check.True(c.inAtari(), "single liberty of a chain not in atari")
	check.Equal(c.libertySum%c.numPseudoLiberties, 0)
	return Point(c.libertySum / c.numPseudoLiberties)
}

type Board struct {
	size         int
	vertices     [virtualPoints]vertex
	chains       [virtualPoints]chain
	lastCaptures [4]Point
	lastKoPoint  Point
	hash         uint64
}

// New returns an empty board of the given size.
func New(size int) *Board {
	if size < 1 || size > MaxSize {
		check.Fatalf("board: size %d outside [1, %d]", size, MaxSize)
	}
	b := &Board{size: size}
	for i := range b.vertices {
		b.vertices[i] = vertex{chainHead: Point(i), chainNext: Point(i), color: Guard}
		b.chains[i] = borderChain()
	}
	for _, p := range b.Points() {
		b.vertices[p].color = Empty
		b.chains[p].reset()
	}
	for _, p := range b.Points() {
		for _, n := range neighbours(p) {
			if b.IsEmpty(n) {
				b.chains[p].addLiberty(n)
			}
		}
	}
	return b
}

func neighbours(p Point) [4]Point {
	return [4]Point{p + virtualSize, p - 1, p + 1, p - virtualSize}
}

func (b *Board) Size() int { return b.size }

// Points lists every point of the playing area, row by row.
func (b *Board) Points() []Point {
	points := make([]Point, 0, b.size*b.size)
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			points = append(points, PointFrom2D(row, col))
		}
	}
	return points
}

func (b *Board) PointColor(p Point) Color { return b.vertices[p].color }

func (b *Board) IsEmpty(p Point) bool { return b.PointColor(p) == Empty }

func (b *Board) InBoardArea(p Point) bool {
	row, col := p.To2D()
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// Hash is the Zobrist hash of the stones on the board.
func (b *Board) Hash() uint64 { return b.hash }

// LastKoPoint is the point that may not be retaken this move, or InvalidPoint.
func (b *Board) LastKoPoint() Point { return b.lastKoPoint }

// ChainHead identifies the chain p belongs to. Heads may change as chains merge.
func (b *Board) ChainHead(p Point) Point { return b.vertices[p].chainHead }

func (b *Board) ChainSize(p Point) int { return b.chain(p).numStones }

// PseudoLiberty is the pseudo-liberty count of p's chain, reported as 1 when
// the chain is in atari.
func (b *Board) PseudoLiberty(p Point) int {
	c := b.chain(p)
	switch {
	case c.numPseudoLiberties == 0:
		return 0
	case c.inAtari():
		return 1
	}
	return c.numPseudoLiberties
}

func (b *Board) InAtari(p Point) bool { return b.chain(p).inAtari() }

// SingleLiberty returns the only liberty of a chain in atari.
func (b *Board) SingleLiberty(p Point) Point {
	head := b.ChainHead(p)
	lib := b.chain(p).singleLiberty()
	check.True(b.InBoardArea(lib), "single liberty outside the board")
	check.True(b.IsEmpty(lib), "single liberty is occupied")
	for _, n := range neighbours(lib) {
		if b.ChainHead(n) == head {
			return lib
		}
	}
	check.Fatalf("board: liberty %v does not border chain at %v", lib, p)
	return InvalidPoint
}

func (b *Board) chain(p Point) *chain {
	return &b.chains[b.ChainHead(p)]
}

// IsLegalMove reports whether c may play at p. Suicide and immediate ko
// recapture are illegal; pass is always legal.
func (b *Board) IsLegalMove(p Point, c Color) bool {
	if p == Pass {
		return true
	}
	if !b.InBoardArea(p) {
		return false
	}
	if !b.IsEmpty(p) || p == b.lastKoPoint {
		return false
	}
	if b.chain(p).numPseudoLiberties > 0 {
		return true
	}

	// The point is surrounded. Connecting to a chain that keeps another
	// liberty is fine.
	for _, n := range neighbours(p) {
		if b.PointColor(n) == c && !b.chain(n).inAtari() {
			return true
		}
	}
	// So is capturing.
	for _, n := range neighbours(p) {
		if b.PointColor(n) == c.Opponent() && b.chain(n).inAtari() {
			return true
		}
	}
	return false
}

// PlayMove places a stone of color c at p and removes captured chains. It
// returns false, leaving the board untouched, when p is off the board or
// occupied. Callers must check IsLegalMove first; playing a suicide is a
// fatal error.
func (b *Board) PlayMove(p Point, c Color) bool {
	if p == Pass {
		b.lastKoPoint = InvalidPoint
		return true
	}
	if !b.InBoardArea(p) || !b.IsEmpty(p) {
		return false
	}
	check.True(c == Black || c == White, "play with a non-stone color")

	playedInEnemyEye := true
	for _, n := range neighbours(p) {
		if nc := b.PointColor(n); nc == c || nc == Empty {
			playedInEnemyEye = false
			break
		}
	}

	b.joinChainsAround(p, c)
	b.setStone(p, c)
	b.removeLibertyFromNeighbouringChains(p)
	captured := b.captureDeadChains(p, c)

	if playedInEnemyEye && captured == 1 {
		b.lastKoPoint = b.lastCaptures[0]
	} else {
		b.lastKoPoint = InvalidPoint
	}

	if b.chain(p).numPseudoLiberties == 0 {
		check.Fatalf("board: suicide %v %v", c, p)
	}
	return true
}

func (b *Board) setStone(p Point, c Color) {
	if c == Empty {
		b.hash ^= keys.Row(int(p))[b.PointColor(p)]
	} else {
		b.hash ^= keys.Row(int(p))[c]
	}
	b.vertices[p].color = c
}

// joinChainsAround merges every chain of color c adjacent to p into the
// largest one and adds p to it, or starts a new chain at p.
func (b *Board) joinChainsAround(p Point, c Color) {
	largestHead := InvalidPoint
	largestSize := 0
	for _, n := range neighbours(p) {
		if b.PointColor(n) == c {
			if size := b.chain(n).numStones; size > largestSize {
				largestSize = size
				largestHead = b.ChainHead(n)
			}
		}
	}

	if largestSize == 0 {
		b.initNewChain(p)
		return
	}

	for _, n := range neighbours(p) {
		if b.PointColor(n) != c || b.ChainHead(n) == largestHead {
			continue
		}
		b.chains[largestHead].merge(b.chain(n))

		cur := n
		for {
			b.vertices[cur].chainHead = largestHead
			cur = b.vertices[cur].chainNext
			if cur == n {
				break
			}
		}

		// Splice the two circular lists.
		b.vertices[largestHead].chainNext, b.vertices[n].chainNext =
			b.vertices[n].chainNext, b.vertices[largestHead].chainNext
	}

	b.vertices[p].chainNext = b.vertices[largestHead].chainNext
	b.vertices[largestHead].chainNext = p
	b.vertices[p].chainHead = largestHead
	b.chains[largestHead].numStones++

	for _, n := range neighbours(p) {
		if b.IsEmpty(n) {
			b.chains[largestHead].addLiberty(n)
		}
	}
}

func (b *Board) removeLibertyFromNeighbouringChains(p Point) {
	for _, n := range neighbours(p) {
		b.chain(n).removeLiberty(p)
	}
}

func (b *Board) captureDeadChains(p Point, c Color) int {
	captured := 0
	i := 0
	for _, n := range neighbours(p) {
		if b.PointColor(n) == c.Opponent() && b.chain(n).numPseudoLiberties == 0 {
			b.lastCaptures[i] = b.ChainHead(n)
			i++
			captured += b.chain(n).numStones
			b.removeChain(n)
		}
	}
	for ; i < len(b.lastCaptures); i++ {
		b.lastCaptures[i] = InvalidPoint
	}
	return captured
}

func (b *Board) removeChain(p Point) {
	head := b.ChainHead(p)
	cur := p
	for {
		next := b.vertices[cur].chainNext

		b.setStone(cur, Empty)
		b.initNewChain(cur)

		for _, n := range neighbours(cur) {
			if b.ChainHead(n) != head || b.IsEmpty(n) {
				b.chain(n).addLiberty(cur)
			}
		}

		cur = next
		if cur == p {
			break
		}
	}
}

func (b *Board) initNewChain(p Point) {
	b.vertices[p].chainHead = p
	b.vertices[p].chainNext = p

	c := &b.chains[p]
	c.reset()
	c.numStones = 1
	for _, n := range neighbours(p) {
		if b.IsEmpty(n) {
			c.addLiberty(n)
		}
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "GoBoard(size=%d)\n", b.size)
	for row := b.size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%2d ", row+1)
		for col := 0; col < b.size; col++ {
			sb.WriteByte(b.PointColor(PointFrom2D(row, col)).char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   " + columns[:b.size] + "\n")
	return sb.String()
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}
