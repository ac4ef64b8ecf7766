// Package board implements the chess rules core: cells, pieces, the board state,
// attacked-square generation and check detection.
package board

import (
	"errors"
	"fmt"
)

// ErrInvalidCell is returned when a cell name cannot be parsed.
var ErrInvalidCell = errors.New("invalid cell")

// Cell is a board coordinate. Col 0 is file a, Row 0 is rank 1.
type Cell struct {
	Col int
	Row int
}

// NoCell is the cell of a piece that is not on the board.
var NoCell = Cell{Col: -1, Row: -1}

// NewCell creates a cell from column and row.
func NewCell(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// CellFromIndex converts a 0-63 index (row*8+col) to a cell.
func CellFromIndex(i int) Cell {
	if i < 0 || i > 63 {
		return NoCell
	}
	return Cell{Col: i % 8, Row: i / 8}
}

// Valid reports whether the cell lies on the board.
func (c Cell) Valid() bool {
	return c.Col >= 0 && c.Col < 8 && c.Row >= 0 && c.Row < 8
}

// Index returns row*8+col, or -1 for an off-board cell.
func (c Cell) Index() int {
	if !c.Valid() {
		return -1
	}
	return c.Row*8 + c.Col
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Dir) Cell {
	return Cell{Col: c.Col + d.DC, Row: c.Row + d.DR}
}

// String returns the algebraic name of the cell (e.g. "e4").
func (c Cell) String() string {
	if !c.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, c.Row+1)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cell) UnmarshalText(b []byte) error {
	if string(b) == "-" {
		*c = NoCell
		return nil
	}
	parsed, err := ParseCell(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCell parses an algebraic cell name.
func ParseCell(s string) (Cell, error) {
	if len(s) != 2 {
		return NoCell, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	c := Cell{Col: int(s[0] - 'a'), Row: int(s[1] - '1')}
	if !c.Valid() {
		return NoCell, fmt.Errorf("%w: %q", ErrInvalidCell, s)
	}
	return c, nil
}

// Dir is a direction vector in cell units.
type Dir struct {
	DC int
	DR int
}

// Orient returns the direction as seen by color. Templates are written for
// White; Black mirrors them.
func (d Dir) Orient(c Color) Dir {
	if c == Black {
		return Dir{DC: -d.DC, DR: -d.DR}
	}
	return d
}
