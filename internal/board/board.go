package board

import (
	"fmt"
	"slices"
	"strings"
)

// Score holds the captured material credited to each side.
type Score struct {
	White int `json:"white"`
	Black int `json:"black"`
}

// Of returns the captured total credited to c.
func (s Score) Of(c Color) int {
	if c == Black {
		return s.Black
	}
	return s.White
}

func (s *Score) credit(c Color, value int) {
	if c == Black {
		s.Black += value
	} else {
		s.White += value
	}
}

// Board is the game state: an 8x8 grid of piece references, the roster of
// live pieces, side to move, per-side check flags and the capture score.
//
// The grid is the only owner of piece slots. Check flags are independent and
// may both be set.
type Board struct {
	grid       [8][8]*Piece
	roster     []*Piece
	SideToMove Color
	Check      [2]bool
	Score      Score
}

// NewBoard returns an empty board with White to move.
func NewBoard() *Board {
	return &Board{SideToMove: White}
}

// PieceAt returns the piece on c, or nil for an empty or off-board cell.
func (b *Board) PieceAt(c Cell) *Piece {
	if !c.Valid() {
		return nil
	}
	return b.grid[c.Row][c.Col]
}

// CellOf returns the cell of p, or NoCell if p is not on this board.
func (b *Board) CellOf(p *Piece) Cell {
	if p == nil || b.PieceAt(p.Cell) != p {
		return NoCell
	}
	return p.Cell
}

// Pieces returns the live pieces of color c in roster order.
func (b *Board) Pieces(c Color) []*Piece {
	out := make([]*Piece, 0, 16)
	for _, p := range b.roster {
		if p.Color == c {
			out = append(out, p)
		}
	}
	return out
}

// AllPieces returns every live piece in roster order.
func (b *Board) AllPieces() []*Piece {
	return slices.Clone(b.roster)
}

// King returns the king of color c, or nil.
func (b *Board) King(c Color) *Piece {
	for _, p := range b.roster {
		if p.Type == King && p.Color == c {
			return p
		}
	}
	return nil
}

// AddPiece creates a piece on c and adds it to the roster. It returns nil
// when c is off the board or already occupied.
func (b *Board) AddPiece(pt PieceType, color Color, c Cell) *Piece {
	if !c.Valid() || b.PieceAt(c) != nil {
		return nil
	}
	p := NewPiece(pt, color)
	b.roster = append(b.roster, p)
	b.PlacePiece(p, c)
	return p
}

// PlacePiece puts p on c without checking occupancy. An occupant of c loses
// its slot; callers capture it first when that matters.
func (b *Board) PlacePiece(p *Piece, c Cell) {
	if p == nil || !c.Valid() {
		return
	}
	if b.PieceAt(p.Cell) == p {
		b.grid[p.Cell.Row][p.Cell.Col] = nil
	}
	p.Cell = c
	b.grid[c.Row][c.Col] = p
}

// Capture removes p from the board and roster and credits its value to by.
// It reports false, changing nothing, when p is not on this board.
func (b *Board) Capture(p *Piece, by Color) bool {
	if p == nil {
		return false
	}
	i := slices.Index(b.roster, p)
	if i < 0 {
		return false
	}
	b.roster = slices.Delete(b.roster, i, i+1)
	if b.PieceAt(p.Cell) == p {
		b.grid[p.Cell.Row][p.Cell.Col] = nil
	}
	p.Cell = NoCell
	b.Score.credit(by, p.Value)
	return true
}

// ApplyMove captures any occupant of dest, moves p there, marks p as moved
// and passes the turn. Legality is not checked here. It returns the captured
// piece, and false when p is not on this board or dest is off the board.
func (b *Board) ApplyMove(p *Piece, dest Cell) (captured *Piece, ok bool) {
	if b.CellOf(p) == NoCell || !dest.Valid() {
		return nil, false
	}
	if occ := b.PieceAt(dest); occ != nil && occ != p {
		b.Capture(occ, p.Color)
		captured = occ
	}
	b.PlacePiece(p, dest)
	p.HasMoved = true
	b.SideToMove = b.SideToMove.Other()
	return captured, true
}

// MakeMove applies m to the piece on m.From.
func (b *Board) MakeMove(m Move) (captured *Piece, ok bool) {
	return b.ApplyMove(b.PieceAt(m.From), m.To)
}

// InCheck returns the stored check flag of c.
func (b *Board) InCheck(c Color) bool {
	if c > Black {
		return false
	}
	return b.Check[c]
}

// SetCheck stores the check flag of c.
func (b *Board) SetCheck(c Color, v bool) {
	if c > Black {
		return
	}
	b.Check[c] = v
}

// Clone returns a deep copy. Pieces are duplicated so the copy can be mutated
// freely.
func (b *Board) Clone() *Board {
	nb := &Board{
		roster:     make([]*Piece, len(b.roster)),
		SideToMove: b.SideToMove,
		Check:      b.Check,
		Score:      b.Score,
	}
	for i, p := range b.roster {
		cp := *p
		nb.roster[i] = &cp
		if cp.Cell.Valid() {
			nb.grid[cp.Cell.Row][cp.Cell.Col] = &cp
		}
	}
	return nb
}

// Validate checks that the grid and roster agree.
func (b *Board) Validate() error {
	seen := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.grid[row][col]
			if p == nil {
				continue
			}
			seen++
			if p.Cell != NewCell(col, row) {
				return fmt.Errorf("piece %s stored on %s", p, NewCell(col, row))
			}
			if !slices.Contains(b.roster, p) {
				return fmt.Errorf("piece on %s missing from roster", p.Cell)
			}
		}
	}
	if seen != len(b.roster) {
		return fmt.Errorf("roster has %d pieces, grid has %d", len(b.roster), seen)
	}
	return nil
}

// Material returns the summed piece values of color c.
func (b *Board) Material(c Color) int {
	total := 0
	for _, p := range b.roster {
		if p.Color == c {
			total += p.Value
		}
	}
	return total
}

// String returns an ASCII diagram of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d  ", row+1)
		for col := 0; col < 8; col++ {
			if p := b.grid[row][col]; p != nil {
				sb.WriteByte(p.Char())
				sb.WriteByte(' ')
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.SideToMove)
	fmt.Fprintf(&sb, "Check: white=%t black=%t\n", b.Check[White], b.Check[Black])
	fmt.Fprintf(&sb, "Captured: white=%d black=%d\n", b.Score.White, b.Score.Black)
	fmt.Fprintf(&sb, "Hash: %016x\n", b.Hash())
	return sb.String()
}
