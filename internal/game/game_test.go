package game

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

func cell(t *testing.T, s string) board.Cell {
	t.Helper()
	c, err := board.ParseCell(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func move(t *testing.T, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSelect(t *testing.T) {
	g := New()

	if !g.Select(cell(t, "e2")) {
		t.Fatal("could not select the e2 pawn")
	}
	if g.State() != PieceSelected {
		t.Errorf("state = %s, want piece-selected", g.State())
	}
	pm, ok := g.Pending()
	if !ok || pm.Origin != cell(t, "e2") {
		t.Fatalf("pending = %+v, %v", pm, ok)
	}
	if pm.Destinations.Len() != 2 || !g.IsDestination(cell(t, "e4")) || g.IsDestination(cell(t, "e2")) {
		t.Errorf("destinations = %s, want e3 e4", pm.Destinations)
	}

	if g.Select(cell(t, "e7")) {
		t.Error("selected a black piece on white's turn")
	}
	if g.State() != Idle {
		t.Error("failed selection left a pending move")
	}
	if g.Select(cell(t, "e4")) {
		t.Error("selected an empty cell")
	}
}

func TestAttemptRejectsNonDestination(t *testing.T) {
	g := New()
	before := g.Board().FEN()

	g.Select(cell(t, "e2"))
	if out := g.Attempt(cell(t, "e5")); out != Rejected {
		t.Errorf("Attempt(e5) = %s, want rejected", out)
	}
	if g.State() != Idle {
		t.Error("pending move not cleared after a rejected attempt")
	}
	if g.Board().FEN() != before || len(g.History()) != 0 {
		t.Error("rejected attempt changed the game")
	}

	if out := g.Attempt(cell(t, "e4")); out != Rejected {
		t.Errorf("Attempt without selection = %s, want rejected", out)
	}
}

func TestAttemptApplies(t *testing.T) {
	g := New()
	g.Select(cell(t, "e2"))
	if out := g.Attempt(cell(t, "e4")); out != Applied {
		t.Fatalf("Attempt(e4) = %s, want applied", out)
	}
	b := g.Board()
	if b.SideToMove != board.Black {
		t.Errorf("side to move = %s, want Black", b.SideToMove)
	}
	if p := b.PieceAt(cell(t, "e4")); p == nil || !p.HasMoved {
		t.Error("pawn not on e4 or not marked as moved")
	}
	h := g.History()
	if len(h) != 1 || h[0].Move.String() != "e2e4" || h[0].Captured != board.NoPieceType {
		t.Errorf("history = %+v", h)
	}
	if g.State() != Idle {
		t.Error("pending move not cleared after an applied move")
	}
}

func TestAttemptIntoCheck(t *testing.T) {
	g, err := FromFEN("k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := g.Board().FEN()

	g.Select(cell(t, "e2"))
	if !g.IsDestination(cell(t, "a2")) {
		t.Fatal("a2 should be offered as a destination")
	}
	if out := g.Attempt(cell(t, "a2")); out != IntoCheck {
		t.Fatalf("Attempt(a2) = %s, want into-check", out)
	}
	if g.Board().FEN() != before {
		t.Errorf("board changed: %s", g.Board().FEN())
	}
	if !g.Board().InCheck(board.White) {
		t.Error("mover's check flag not set")
	}
	if g.State() != Idle {
		t.Error("pending move not cleared")
	}

	if out := g.Play(move(t, "e2e8")); out != Applied {
		t.Fatalf("Play(e2e8) = %s, want applied", out)
	}
	if g.Board().InCheck(board.White) {
		t.Error("mover's check flag not cleared after a legal move")
	}
	if g.Board().Score.White != 500 {
		t.Errorf("white score = %d, want 500", g.Board().Score.White)
	}
	if h := g.History(); h[0].Captured != board.Rook {
		t.Errorf("captured = %s, want Rook", h[0].Captured)
	}
}

func TestClickFlow(t *testing.T) {
	g := New()
	steps := []struct {
		cell string
		want Outcome
	}{
		{"e4", Ignored},
		{"e2", Selected},
		{"g1", Selected},
		{"g1", Ignored},
		{"g1", Selected},
		{"g3", Rejected},
		{"g1", Selected},
		{"f3", Applied},
		{"f3", Ignored},
		{"e7", Selected},
		{"e5", Applied},
	}
	for i, s := range steps {
		if got := g.Click(cell(t, s.cell)); got != s.want {
			t.Fatalf("step %d click %s = %s, want %s", i, s.cell, got, s.want)
		}
	}
	if len(g.History()) != 2 {
		t.Errorf("history has %d moves, want 2", len(g.History()))
	}
}

func TestCheckFlagRefreshedForOpponent(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if out := g.Play(move(t, "a1a8")); out != Applied {
		t.Fatalf("Play(a1a8) = %s", out)
	}
	if !g.Board().InCheck(board.Black) {
		t.Error("black check flag not set")
	}
	if h := g.History(); !h[0].Check {
		t.Error("record does not note the check")
	}
	if g.Checkmated() {
		t.Error("black can escape, not mate")
	}
}

func TestCheckmated(t *testing.T) {
	g, err := FromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	g.Play(move(t, "a1a8"))
	if !g.Checkmated() {
		t.Error("back rank mate not detected")
	}
}

func TestUndo(t *testing.T) {
	g := New()
	start := g.Board().FEN()
	g.Play(move(t, "e2e4"))
	g.Play(move(t, "d7d5"))
	g.Play(move(t, "e4d5"))

	if !g.Undo() {
		t.Fatal("Undo failed")
	}
	if g.Board().Score.White != 0 || g.Board().PieceAt(cell(t, "d5")).Color != board.Black {
		t.Error("capture not reverted")
	}
	g.Undo()
	g.Undo()
	if g.Board().FEN() != start || len(g.History()) != 0 {
		t.Error("undo to start failed")
	}
	if g.Undo() {
		t.Error("Undo succeeded with no history")
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := New()
	for _, m := range []string{"e2e4", "d7d5", "e4d5", "d8d5"} {
		if out := g.Play(move(t, m)); out != Applied {
			t.Fatalf("Play(%s) = %s", m, out)
		}
	}
	g.Select(cell(t, "b1"))

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Pending == nil || snap.Pending.Origin != cell(t, "b1") || len(snap.Pending.Destinations) != 2 {
		t.Errorf("pending view = %+v", snap.Pending)
	}

	r, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if r.Board().FEN() != g.Board().FEN() {
		t.Errorf("restored FEN %s, want %s", r.Board().FEN(), g.Board().FEN())
	}
	if r.Board().Score != g.Board().Score {
		t.Errorf("restored score %+v, want %+v", r.Board().Score, g.Board().Score)
	}
	if len(r.History()) != 4 || r.History()[2].Captured != board.Pawn {
		t.Errorf("restored history = %+v", r.History())
	}

	snap.Moves = append(snap.Moves, "a1a5")
	if _, err := Restore(snap); err == nil {
		t.Error("Restore accepted an illegal move")
	}
}

func TestPlayEngine(t *testing.T) {
	g := New()
	eng := engine.NewEngine(1 << 10)
	eng.SetDifficulty(engine.Easy)

	m, out := g.PlayEngine(context.Background(), eng)
	if out != Applied {
		t.Fatalf("engine move %s: %s", m, out)
	}
	if g.Board().SideToMove != board.Black {
		t.Error("engine move did not pass the turn")
	}
}
