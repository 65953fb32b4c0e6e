package board

// Score is the Tromp-Taylor area score: black stones plus empty regions
// reaching only black, minus the same for white, minus komi. Positive favours
// black.
func (b *Board) Score(komi float64) float64 {
	var area [2]int
	var seen [virtualPoints]bool

	for _, p := range b.Points() {
		switch c := b.PointColor(p); c {
		case Black, White:
			area[c]++
		case Empty:
			if seen[p] {
				continue
			}
			size, reaches := b.floodRegion(p, &seen)
			switch reaches {
			case reachesBlack:
				area[Black] += size
			case reachesWhite:
				area[White] += size
			}
		}
	}
	return float64(area[Black]-area[White]) - komi
}

const (
	reachesBlack = 1 << Black
	reachesWhite = 1 << White
)

// floodRegion marks the empty region containing p and reports its size and
// which stone colors border it.
func (b *Board) floodRegion(p Point, seen *[virtualPoints]bool) (size int, reaches int) {
	stack := []Point{p}
	seen[p] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		for _, n := range neighbours(cur) {
			switch c := b.PointColor(n); c {
			case Black, White:
				reaches |= 1 << c
			case Empty:
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return size, reaches
}
