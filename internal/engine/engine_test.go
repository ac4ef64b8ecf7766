package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

func cell(t *testing.T, s string) board.Cell {
	t.Helper()
	c, err := board.ParseCell(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestEvaluateStartIsZero(t *testing.T) {
	b := board.NewStandard()
	if got := Evaluate(b); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestAttackBalance(t *testing.T) {
	b := board.NewBoard()
	b.AddPiece(board.Rook, board.White, cell(t, "a1"))
	b.AddPiece(board.Knight, board.Black, cell(t, "a5"))

	if got := AttackBalance(b); got != 325 {
		t.Errorf("AttackBalance = %d, want 325", got)
	}
	if got := Evaluate(b); got != 10*(500-325)+325 {
		t.Errorf("Evaluate = %d, want %d", got, 10*(500-325)+325)
	}
}

func TestDeltaEvaluator(t *testing.T) {
	b := board.NewBoard()
	b.AddPiece(board.Rook, board.White, cell(t, "a1"))
	knight := b.AddPiece(board.Knight, board.Black, cell(t, "a5"))

	d := NewDeltaEvaluator(b)
	if got := d.Evaluate(b); got != 0 {
		t.Errorf("unchanged position scored %d, want 0", got)
	}

	b.Capture(knight, board.White)
	if got := d.Evaluate(b); got != 10*325-325 {
		t.Errorf("after capture scored %d, want %d", got, 10*325-325)
	}
	if got := d.Evaluate(b); got != 0 {
		t.Errorf("baseline not updated: second call scored %d", got)
	}

	d.Reset(board.NewStandard())
	if got := d.Evaluate(board.NewStandard()); got != 0 {
		t.Errorf("after Reset scored %d, want 0", got)
	}
}

func TestMakeMoveTakesHangingQueen(t *testing.T) {
	b := board.MustParseFEN("q6k/8/8/8/8/8/8/R1K5 w - - 0 1")
	before := b.FEN()
	eng := NewEngine(1 << 12)

	for _, depth := range []int{1, 2, DefaultDepth} {
		m, ok := eng.MakeMove(b, board.White, depth)
		if !ok {
			t.Fatalf("depth %d: no move", depth)
		}
		if m.String() != "a1a8" {
			t.Errorf("depth %d: got %s, want a1a8", depth, m)
		}
	}
	if b.FEN() != before {
		t.Errorf("search modified the board: %s", b.FEN())
	}
}

func TestFindsMateInOne(t *testing.T) {
	b := board.MustParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	eng := NewEngine(0)

	m, score := eng.SearchWithLimits(context.Background(), b, SearchLimits{Depth: 2})
	if m.String() != "a1a8" {
		t.Errorf("got %s, want a1a8", m)
	}
	if score <= MateScore-MaxPly {
		t.Errorf("score %d is not a mate score", score)
	}
	t.Logf("score: %s", ScoreToString(score))
}

func TestMakeMoveNoLegalMoves(t *testing.T) {
	b := board.MustParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	eng := NewEngine(0)
	if m, ok := eng.MakeMove(b, board.Black, 2); ok {
		t.Errorf("checkmated side got move %s", m)
	}
}

// referenceMinimax is plain minimax without pruning or tables.
func referenceMinimax(b *board.Board, side board.Color, depth, ply int) int {
	if depth == 0 {
		return Evaluate(b)
	}
	kids := children(b, side, board.NoMove)
	if len(kids) == 0 {
		if b.IsInCheck(side) {
			return -side.Sign() * (MateScore - ply)
		}
		return Evaluate(b)
	}
	best := worst(side)
	for _, k := range kids {
		v := referenceMinimax(k.board, side.Other(), depth-1, ply+1)
		if better(side, v, best) {
			best = v
		}
	}
	return best
}

func TestSearchMatchesPlainMinimax(t *testing.T) {
	positions := []string{
		board.StartFEN,
		"r3k3/ppp2ppp/2n5/3qp3/3P4/2N2N2/PPP2PPP/R2QK3 w - - 0 1",
		"4k3/8/3r4/8/3Q4/8/8/4K3 b - - 0 1",
	}
	for _, fen := range positions {
		b := board.MustParseFEN(fen)
		want := referenceMinimax(b, b.SideToMove, 2, 0)

		for _, tc := range []struct {
			name     string
			tt       *TranspositionTable
			parallel bool
		}{
			{"plain", nil, false},
			{"tt", NewTranspositionTable(1 << 12), false},
			{"parallel", NewTranspositionTable(1 << 12), true},
		} {
			s := NewSearcher(tc.tt)
			s.SetParallel(tc.parallel)
			_, got := s.Search(context.Background(), b, b.SideToMove, 2)
			if got != want {
				t.Errorf("%s %q: score %d, want %d", tc.name, fen, got, want)
			}
		}
	}
}

func TestSearchRespectsMoveTime(t *testing.T) {
	b := board.NewStandard()
	eng := NewEngine(1 << 12)

	m, _ := eng.SearchWithLimits(context.Background(), b, SearchLimits{Depth: 6, MoveTime: time.Millisecond})
	if !b.IsLegal(m) {
		t.Errorf("timed search returned illegal move %s", m)
	}
}

func TestSearchReportsInfo(t *testing.T) {
	eng := NewEngine(1 << 12)
	eng.SetDifficulty(Medium)
	var depths []int
	eng.OnInfo = func(info SearchInfo) {
		depths = append(depths, info.Depth)
	}
	m := eng.Search(context.Background(), board.NewStandard())
	if m.IsNone() {
		t.Fatal("Search returned NoMove for starting position")
	}
	if len(depths) != 2 || depths[0] != 1 || depths[1] != 2 {
		t.Errorf("info depths = %v, want [1 2]", depths)
	}
}

func TestPerft(t *testing.T) {
	eng := NewEngine(0)
	b := board.NewStandard()
	if n := eng.Perft(b, 1); n != 20 {
		t.Errorf("perft(1) = %d, want 20", n)
	}
	if n := eng.Perft(b, 2); n != 400 {
		t.Errorf("perft(2) = %d, want 400", n)
	}
}

func TestScoreToString(t *testing.T) {
	cases := map[int]string{
		0:               "0.00",
		150:             "1.50",
		-325:            "-3.25",
		MateScore - 1:   "Mate in 1",
		-MateScore + 2:  "Mated in 1",
	}
	for score, want := range cases {
		if got := ScoreToString(score); got != want {
			t.Errorf("ScoreToString(%d) = %q, want %q", score, got, want)
		}
	}
	if !strings.HasPrefix(ScoreToString(MateScore-3), "Mate in") {
		t.Error("mate score not recognised")
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if got := ParseDifficulty(d.String()); got != d {
			t.Errorf("ParseDifficulty(%q) = %v", d.String(), got)
		}
	}
}
