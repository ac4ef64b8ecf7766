package board

import (
	"errors"
	"testing"
)

func TestStandardFEN(t *testing.T) {
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"
	if got := NewStandard().FEN(); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}

	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.Hash() != NewStandard().Hash() {
		t.Error("parsed start position hashes differently from NewStandard")
	}
	for _, p := range b.AllPieces() {
		if p.HasMoved {
			t.Errorf("%s marked as moved in the start position", p)
		}
	}
}

func TestParseFENMovedPieces(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/4P3/8/3P4/4K3 b")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.SideToMove != Black {
		t.Errorf("side to move = %s, want Black", b.SideToMove)
	}
	if !b.PieceAt(mustCell(t, "e4")).HasMoved {
		t.Error("pawn on e4 should count as moved")
	}
	if b.PieceAt(mustCell(t, "d2")).HasMoved {
		t.Error("pawn on d2 should not count as moved")
	}
	if got := b.AttackedSquares(b.PieceAt(mustCell(t, "e4"))); got != setOf(t, "e5") {
		t.Errorf("pawn on e4 attacks %s, want e5", got)
	}
}

func TestParseFENInvalid(t *testing.T) {
	for _, fen := range []string{"", "garbage", "8/8/8 w - - 0 1"} {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestHashTracksSideAndPlacement(t *testing.T) {
	b := NewStandard()
	h := b.Hash()
	b.MakeMove(NewMove(mustCell(t, "g1"), mustCell(t, "f3")))
	if b.Hash() == h {
		t.Error("hash unchanged after a move")
	}
	b.MakeMove(NewMove(mustCell(t, "g8"), mustCell(t, "f6")))
	b.MakeMove(NewMove(mustCell(t, "f3"), mustCell(t, "g1")))
	b.MakeMove(NewMove(mustCell(t, "f6"), mustCell(t, "g8")))
	if b.Hash() != h {
		t.Error("hash differs after knights return home")
	}
}
