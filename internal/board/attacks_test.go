package board

import (
	"testing"
)

func mustCell(t *testing.T, s string) Cell {
	t.Helper()
	c, err := ParseCell(s)
	if err != nil {
		t.Fatalf("ParseCell(%q): %v", s, err)
	}
	return c
}

func setOf(t *testing.T, names ...string) CellSet {
	t.Helper()
	var s CellSet
	for _, n := range names {
		s = s.Add(mustCell(t, n))
	}
	return s
}

func TestRookOnEmptyBoard(t *testing.T) {
	b := NewBoard()
	rook := b.AddPiece(Rook, White, NewCell(3, 3))

	got := b.AttackedSquares(rook)
	if got.Len() != 14 {
		t.Fatalf("rook on d4 attacks %d squares, want 14: %s", got.Len(), got)
	}
	got.ForEach(func(c Cell) {
		if c.Col != 3 && c.Row != 3 {
			t.Errorf("rook on d4 attacks %s, off its row and column", c)
		}
	})
}

func TestBishopInCorner(t *testing.T) {
	b := NewBoard()
	bishop := b.AddPiece(Bishop, White, NewCell(0, 0))

	got := b.AttackedSquares(bishop)
	if got.Len() != 7 {
		t.Fatalf("bishop on a1 attacks %d squares, want 7: %s", got.Len(), got)
	}
	got.ForEach(func(c Cell) {
		if c.Col != c.Row {
			t.Errorf("bishop on a1 attacks %s, off the long diagonal", c)
		}
	})
}

func TestKnightCenterAndCorner(t *testing.T) {
	b := NewBoard()
	center := b.AddPiece(Knight, White, NewCell(4, 4))
	if n := b.AttackedSquares(center).Len(); n != 8 {
		t.Errorf("knight on e5 attacks %d squares, want 8", n)
	}

	b = NewBoard()
	corner := b.AddPiece(Knight, Black, NewCell(0, 0))
	got := b.AttackedSquares(corner)
	if want := setOf(t, "b3", "c2"); got != want {
		t.Errorf("knight on a1 attacks %s, want %s", got, want)
	}
}

func TestPawnDoubleStep(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		b := NewBoard()
		pawn := b.AddPiece(Pawn, White, mustCell(t, "e2"))
		got := b.AttackedSquares(pawn)
		if want := setOf(t, "e3", "e4"); got != want {
			t.Errorf("pawn on e2 attacks %s, want %s", got, want)
		}
	})

	for _, blocker := range []Color{White, Black} {
		t.Run(blocker.String()+" blocker", func(t *testing.T) {
			b := NewBoard()
			pawn := b.AddPiece(Pawn, White, mustCell(t, "e2"))
			b.AddPiece(Knight, blocker, mustCell(t, "e3"))
			got := b.AttackedSquares(pawn)
			if !got.Empty() {
				t.Errorf("blocked pawn on e2 attacks %s, want nothing", got)
			}
		})
	}

	t.Run("black pawn advances down", func(t *testing.T) {
		b := NewBoard()
		pawn := b.AddPiece(Pawn, Black, mustCell(t, "d7"))
		got := b.AttackedSquares(pawn)
		if want := setOf(t, "d6", "d5"); got != want {
			t.Errorf("black pawn on d7 attacks %s, want %s", got, want)
		}
	})
}

func TestPawnDiagonals(t *testing.T) {
	b := NewBoard()
	pawn := b.AddPiece(Pawn, White, mustCell(t, "e4"))
	pawn.HasMoved = true
	b.AddPiece(Knight, Black, mustCell(t, "d5"))
	b.AddPiece(Knight, Black, mustCell(t, "f5"))

	got := b.AttackedSquares(pawn)
	if want := setOf(t, "d5", "e5", "f5"); got != want {
		t.Errorf("pawn on e4 with enemies attacks %s, want %s", got, want)
	}

	b = NewBoard()
	pawn = b.AddPiece(Pawn, White, mustCell(t, "e4"))
	pawn.HasMoved = true
	b.AddPiece(Knight, White, mustCell(t, "d5"))
	b.AddPiece(Knight, White, mustCell(t, "f5"))

	got = b.AttackedSquares(pawn)
	if want := setOf(t, "e5"); got != want {
		t.Errorf("pawn on e4 with friends attacks %s, want %s", got, want)
	}
}

func TestPawnStraightBlockedByEnemy(t *testing.T) {
	b := NewBoard()
	pawn := b.AddPiece(Pawn, White, mustCell(t, "a4"))
	pawn.HasMoved = true
	b.AddPiece(Pawn, Black, mustCell(t, "a5"))
	b.AddPiece(Pawn, Black, mustCell(t, "b5"))

	got := b.AttackedSquares(pawn)
	if want := setOf(t, "b5"); got != want {
		t.Errorf("pawn on a4 attacks %s, want %s", got, want)
	}
}

func TestSlidingBlockers(t *testing.T) {
	b := NewBoard()
	rook := b.AddPiece(Rook, White, mustCell(t, "a1"))
	b.AddPiece(Pawn, Black, mustCell(t, "a4"))
	b.AddPiece(Pawn, White, mustCell(t, "d1"))

	got := b.AttackedSquares(rook)
	if want := setOf(t, "a2", "a3", "a4", "b1", "c1"); got != want {
		t.Errorf("rook on a1 attacks %s, want %s", got, want)
	}
}

func TestAttacksStayOnBoard(t *testing.T) {
	types := []PieceType{Pawn, Knight, Bishop, Rook, Queen, King}
	for i := 0; i < 64; i++ {
		for _, pt := range types {
			for _, c := range []Color{White, Black} {
				b := NewBoard()
				p := b.AddPiece(pt, c, CellFromIndex(i))
				for _, cell := range b.AttackedSquares(p).Cells() {
					if !cell.Valid() {
						t.Fatalf("%s attacks off-board cell %v", p, cell)
					}
					if cell == p.Cell {
						t.Fatalf("%s attacks its own cell", p)
					}
				}
			}
		}
	}
}

func TestAttackedSquaresDegenerate(t *testing.T) {
	b := NewBoard()
	if got := b.AttackedSquares(nil); !got.Empty() {
		t.Errorf("nil piece attacks %s", got)
	}

	p := b.AddPiece(Rook, White, mustCell(t, "d4"))
	p.Type = NoPieceType
	if got := b.AttackedSquares(p); !got.Empty() {
		t.Errorf("piece without template attacks %s", got)
	}
}

func TestAttackedSquaresFrom(t *testing.T) {
	b := NewStandard()
	knight := b.PieceAt(mustCell(t, "g1"))

	got := b.AttackedSquaresFrom(knight, mustCell(t, "e4"))
	if want := setOf(t, "c3", "c5", "d6", "f6", "g5", "g3"); got != want {
		t.Errorf("knight considered on e4 attacks %s, want %s", got, want)
	}
}
