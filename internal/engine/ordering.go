package engine

import (
	"slices"

	"github.com/hailam/chesscore/internal/board"
)

// Move ordering priorities
const (
	TTMoveScore  = 1000000 // TT move gets highest priority
	CaptureScore = 100000  // Base score for captures
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker) scores
// Higher score = search first
var mvvLva = [6][6]int{
	//       P    N    B    R    Q    K  (attacker)
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {65, 64, 64, 63, 62, 61},
}

type child struct {
	move  board.Move
	board *board.Board
	order int
}

// scoreMove rates m for search order: the TT move first, then captures by
// MVV-LVA, then quiet moves.
func scoreMove(b *board.Board, m, ttMove board.Move) int {
	if m == ttMove {
		return TTMoveScore
	}
	victim := b.PieceAt(m.To)
	if victim == nil {
		return 0
	}
	attacker := b.PieceAt(m.From)
	return CaptureScore + mvvLva[victim.Type][attacker.Type]
}

// children returns the legal successors of b for side in search order.
func children(b *board.Board, side board.Color, ttMove board.Move) []child {
	pseudo := b.GeneratePseudoMoves(side)
	out := make([]child, 0, len(pseudo))
	for _, m := range pseudo {
		next, ok := b.TryMove(m)
		if !ok {
			continue
		}
		out = append(out, child{move: m, board: next, order: scoreMove(b, m, ttMove)})
	}
	slices.SortStableFunc(out, func(a, b child) int {
		return b.order - a.order
	})
	return out
}
