package board

import (
	"math/bits"
	"strings"
)

// CellSet is a set of cells, one bit per cell (bit index = row*8+col).
type CellSet uint64

// Add returns the set with c added. Off-board cells are ignored.
func (s CellSet) Add(c Cell) CellSet {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c.Index())
}

// Remove returns the set without c.
func (s CellSet) Remove(c Cell) CellSet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << uint(c.Index()))
}

// Has reports whether c is in the set. Off-board cells are never members.
func (s CellSet) Has(c Cell) bool {
	if !c.Valid() {
		return false
	}
	return s&(1<<uint(c.Index())) != 0
}

// Len returns the number of cells in the set.
func (s CellSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Empty reports whether the set has no cells.
func (s CellSet) Empty() bool {
	return s == 0
}

// Union returns the cells in either set.
func (s CellSet) Union(o CellSet) CellSet {
	return s | o
}

// ForEach calls f for each cell, a1 first.
func (s CellSet) ForEach(f func(Cell)) {
	for s != 0 {
		i := bits.TrailingZeros64(uint64(s))
		s &= s - 1
		f(CellFromIndex(i))
	}
}

// Cells returns the members in index order.
func (s CellSet) Cells() []Cell {
	cells := make([]Cell, 0, s.Len())
	s.ForEach(func(c Cell) {
		cells = append(cells, c)
	})
	return cells
}

// String returns the member names separated by spaces.
func (s CellSet) String() string {
	names := make([]string, 0, s.Len())
	s.ForEach(func(c Cell) {
		names = append(names, c.String())
	})
	return strings.Join(names, " ")
}
