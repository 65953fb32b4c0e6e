// Package zobrist builds deterministic tables of random keys for Zobrist
// hashing.
//
// A Table is an N-dimensional array of independent uniform draws over the full
// range of an unsigned integer type. Tables are generated from one PCG stream
// seeded once, in row-major order: for every index of the outermost dimension
// the complete sub-table is drawn before the next index begins, recursively.
// The same seed and dimensions always give the same table; reordering the
// dimensions does not.
package zobrist

import (
	"gtpbench/check"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// Table is an immutable N-dimensional table of random keys.
type Table[T constraints.Unsigned] struct {
	seed    uint64
	dims    []int
	strides []int
	values  []T // row-major
}

// New draws a table with the given dimension sizes. Every unsigned width
// divides 64, so truncating each 64-bit draw keeps it uniform over T.
func New[T constraints.Unsigned](seed uint64, dims ...int) *Table[T] {
	check.Greater(len(dims), 0)

	size := 1
	strides := make([]int, len(dims))
	for i := len(dims) - 1; i >= 0; i-- {
		check.Greater(dims[i], 0)
		strides[i] = size
		size *= dims[i]
	}

	r := rand.New(rand.NewSource(seed))
	values := make([]T, size)
	for i := range values {
		values[i] = T(r.Uint64())
	}

	return &Table[T]{
		seed:    seed,
		dims:    append([]int(nil), dims...),
		strides: strides,
		values:  values,
	}
}

// At returns the key at the given coordinates. The number of coordinates must
// match the number of dimensions and each must be in range.
func (t *Table[T]) At(idx ...int) T {
	return t.values[t.offset(idx)]
}

// Row returns the innermost row addressed by all but the last coordinate. The
// returned slice must not be modified.
func (t *Table[T]) Row(prefix ...int) []T {
	check.Equal(len(prefix), len(t.dims)-1)
	start := 0
	for i, x := range prefix {
		start += t.scaled(i, x)
	}
	end := start + t.dims[len(t.dims)-1]
	return t.values[start:end:end]
}

func (t *Table[T]) offset(idx []int) int {
	check.Equal(len(idx), len(t.dims))
	off := 0
	for i, x := range idx {
		off += t.scaled(i, x)
	}
	return off
}

func (t *Table[T]) scaled(dim, x int) int {
	if x < 0 || x >= t.dims[dim] {
		check.Fatalf("zobrist: index %d out of range [0, %d) in dimension %d", x, t.dims[dim], dim)
	}
	return x * t.strides[dim]
}

// Dims returns a copy of the dimension sizes.
func (t *Table[T]) Dims() []int {
	return append([]int(nil), t.dims...)
}

// Len is the total number of keys.
func (t *Table[T]) Len() int {
	return len(t.values)
}

func (t *Table[T]) Seed() uint64 {
	return t.seed
}
