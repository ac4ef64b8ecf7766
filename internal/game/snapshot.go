package game

import (
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

// CheckFlags mirrors the board's per-side check flags.
type CheckFlags struct {
	White bool `json:"white"`
	Black bool `json:"black"`
}

// PendingView is the JSON form of a pending move.
type PendingView struct {
	Origin       board.Cell   `json:"origin"`
	Destinations []board.Cell `json:"destinations"`
}

// Snapshot is the serialisable state of a game. StartFEN and Moves are enough
// to rebuild it; the other fields are for display.
type Snapshot struct {
	StartFEN   string       `json:"start_fen"`
	Moves      []string     `json:"moves"`
	FEN        string       `json:"fen"`
	SideToMove board.Color  `json:"side_to_move"`
	Check      CheckFlags   `json:"check"`
	Score      board.Score  `json:"score"`
	History    []Record     `json:"history"`
	Checkmated bool         `json:"checkmated"`
	Pending    *PendingView `json:"pending,omitempty"`
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	b := g.board
	s := Snapshot{
		StartFEN:   g.startFEN,
		Moves:      make([]string, 0, len(g.history)),
		FEN:        b.FEN(),
		SideToMove: b.SideToMove,
		Check:      CheckFlags{White: b.InCheck(board.White), Black: b.InCheck(board.Black)},
		Score:      b.Score,
		History:    g.History(),
		Checkmated: g.Checkmated(),
	}
	for _, r := range g.history {
		s.Moves = append(s.Moves, r.Move.String())
	}
	if pm, ok := g.Pending(); ok {
		s.Pending = &PendingView{Origin: pm.Origin, Destinations: pm.Destinations.Cells()}
	}
	return s
}

// Restore rebuilds a game by replaying the snapshot's moves from its start
// position. Check flags are taken from the snapshot.
func Restore(s Snapshot) (*Game, error) {
	start := s.StartFEN
	if start == "" {
		start = board.StartFEN
	}
	g, err := FromFEN(start)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	for i, ms := range s.Moves {
		m, err := board.ParseMove(ms)
		if err != nil {
			return nil, fmt.Errorf("restore move %d: %w", i+1, err)
		}
		if out := g.Play(m); out != Applied {
			return nil, fmt.Errorf("restore move %d %s: %s", i+1, m, out)
		}
	}
	g.board.SetCheck(board.White, s.Check.White)
	g.board.SetCheck(board.Black, s.Check.Black)
	return g, nil
}
