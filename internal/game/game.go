// Package game implements the two-phase turn flow on top of the board:
// select a piece, then attempt a move to one of its destinations.
package game

import (
	"context"
	"log"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// State is the phase of the turn flow.
type State int

const (
	Idle State = iota
	PieceSelected
)

// String returns the state name.
func (s State) String() string {
	if s == PieceSelected {
		return "piece-selected"
	}
	return "idle"
}

// Outcome is the result of one input step.
type Outcome int

const (
	Ignored   Outcome = iota // nothing selected, nothing changed
	Selected                 // a piece of the side to move was selected
	Applied                  // the move was committed
	Rejected                 // the target was not a destination
	IntoCheck                // the move would leave the mover's king attacked
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	case IntoCheck:
		return "into-check"
	default:
		return "ignored"
	}
}

// PendingMove is the selected piece's origin and the cells it may move to.
type PendingMove struct {
	Origin       board.Cell    `json:"origin"`
	Destinations board.CellSet `json:"-"`
}

// IsDestination reports whether c is a destination of the pending move.
func (pm PendingMove) IsDestination(c board.Cell) bool {
	return pm.Destinations.Has(c)
}

// Record describes one committed move.
type Record struct {
	Move     board.Move      `json:"move"`
	Piece    board.PieceType `json:"piece"`
	Color    board.Color     `json:"color"`
	Captured board.PieceType `json:"captured"`
	Check    bool            `json:"check"`
	Swing    int             `json:"swing"`
}

// Game owns a board and drives it through the turn flow. A Game is not safe
// for concurrent use.
type Game struct {
	board    *board.Board
	startFEN string
	pending  *PendingMove
	history  []Record
	undo     []*board.Board
	delta    *engine.DeltaEvaluator
}

// New starts a game from the standard position.
func New() *Game {
	return FromBoard(board.NewStandard())
}

// FromFEN starts a game from a FEN position.
func FromFEN(fen string) (*Game, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return FromBoard(b), nil
}

// FromBoard starts a game that takes ownership of b.
func FromBoard(b *board.Board) *Game {
	return &Game{
		board:    b,
		startFEN: b.FEN(),
		delta:    engine.NewDeltaEvaluator(b),
	}
}

// Board returns the live board. Callers must not mutate it.
func (g *Game) Board() *board.Board {
	return g.board
}

// State returns the current phase.
func (g *Game) State() State {
	if g.pending != nil {
		return PieceSelected
	}
	return Idle
}

// Pending returns the pending move, if a piece is selected.
func (g *Game) Pending() (PendingMove, bool) {
	if g.pending == nil {
		return PendingMove{}, false
	}
	return *g.pending, true
}

// IsDestination reports whether c is a valid destination of the pending move.
func (g *Game) IsDestination(c board.Cell) bool {
	return g.pending != nil && g.pending.IsDestination(c)
}

// History returns the committed moves, oldest first.
func (g *Game) History() []Record {
	out := make([]Record, len(g.history))
	copy(out, g.history)
	return out
}

// Select makes the piece on c the pending move if it belongs to the side to
// move. Any other cell clears the selection.
func (g *Game) Select(c board.Cell) bool {
	p := g.board.PieceAt(c)
	if p == nil || p.Color != g.board.SideToMove {
		g.clearSelection()
		return false
	}
	g.pending = &PendingMove{
		Origin:       c,
		Destinations: g.board.AttackedSquares(p).Remove(c),
	}
	return true
}

// Deselect clears the pending move.
func (g *Game) Deselect() {
	g.clearSelection()
}

func (g *Game) clearSelection() {
	g.pending = nil
}

// Attempt tries to move the selected piece to target. The pending move is
// cleared whatever the outcome. A target outside the destinations is
// Rejected with no state change. A move that leaves the mover's king attacked
// is IntoCheck: the board is untouched except for the mover's check flag.
func (g *Game) Attempt(target board.Cell) Outcome {
	pm := g.pending
	defer g.clearSelection()

	if pm == nil || !pm.IsDestination(target) {
		return Rejected
	}
	p := g.board.PieceAt(pm.Origin)
	if p == nil || p.Color != g.board.SideToMove {
		return Rejected
	}

	m := board.NewMove(pm.Origin, target)
	if _, ok := g.board.TryMove(m); !ok {
		g.board.SetCheck(p.Color, true)
		log.Printf("[MOVE] %s %s rejected: king would be attacked", p.Color, m)
		return IntoCheck
	}

	g.commit(p, m)
	return Applied
}

func (g *Game) commit(p *board.Piece, m board.Move) {
	g.undo = append(g.undo, g.board.Clone())

	rec := Record{Move: m, Piece: p.Type, Color: p.Color, Captured: board.NoPieceType}
	if captured, _ := g.board.ApplyMove(p, m.To); captured != nil {
		rec.Captured = captured.Type
	}

	mover, opp := p.Color, p.Color.Other()
	g.board.SetCheck(mover, false)
	g.board.SetCheck(opp, g.board.IsInCheck(opp))
	rec.Check = g.board.InCheck(opp)
	rec.Swing = g.delta.Evaluate(g.board)
	g.history = append(g.history, rec)

	if rec.Captured != board.NoPieceType {
		log.Printf("[MOVE] %s %s %s takes %s", mover, p.Type, m, rec.Captured)
	} else {
		log.Printf("[MOVE] %s %s %s", mover, p.Type, m)
	}
	if rec.Check {
		log.Printf("[MOVE] %s is in check", opp)
	}
}

// Click drives the two-phase flow from a single cell. With nothing selected
// it selects. With a selection, clicking another piece of the side to move
// re-selects, clicking the origin deselects, and anything else is a move
// attempt.
func (g *Game) Click(c board.Cell) Outcome {
	if g.pending == nil {
		if g.Select(c) {
			return Selected
		}
		return Ignored
	}
	if c == g.pending.Origin {
		g.clearSelection()
		return Ignored
	}
	if p := g.board.PieceAt(c); p != nil && p.Color == g.board.SideToMove {
		g.Select(c)
		return Selected
	}
	return g.Attempt(c)
}

// Play selects m.From and attempts m.To.
func (g *Game) Play(m board.Move) Outcome {
	if !g.Select(m.From) {
		return Rejected
	}
	return g.Attempt(m.To)
}

// PlayEngine lets eng choose and play a move for the side to move. The search
// runs on a copy of the board.
func (g *Game) PlayEngine(ctx context.Context, eng *engine.Engine) (board.Move, Outcome) {
	m := eng.Search(ctx, g.board)
	if m.IsNone() {
		return m, Ignored
	}
	return m, g.Play(m)
}

// Undo reverts the last committed move.
func (g *Game) Undo() bool {
	n := len(g.undo)
	if n == 0 {
		return false
	}
	g.board = g.undo[n-1]
	g.undo = g.undo[:n-1]
	g.history = g.history[:len(g.history)-1]
	g.clearSelection()
	g.delta.Reset(g.board)
	log.Printf("[MOVE] undo, %s to move", g.board.SideToMove)
	return true
}

// Checkmated reports whether the side to move is in check with no legal move.
func (g *Game) Checkmated() bool {
	side := g.board.SideToMove
	return g.board.IsInCheck(side) && !g.board.HasLegalMove(side)
}
