package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// materialWeight scales material against attack balance.
const materialWeight = 10

// Material returns the material balance from White's point of view.
func Material(b *board.Board) int {
	return b.Material(board.White) - b.Material(board.Black)
}

// AttackBalance returns the net value of pieces each side could capture on its
// next ply, positive when White threatens more. Empty attacked cells count 0.
func AttackBalance(b *board.Board) int {
	sum := 0
	for _, p := range b.AllPieces() {
		b.AttackedSquares(p).ForEach(func(c board.Cell) {
			if q := b.PieceAt(c); q != nil {
				sum += q.Value * q.Color.Sign()
			}
		})
	}
	return -sum
}

// Evaluate returns the static score of a position from White's point of view.
// It has no state and is safe to call from concurrent searches.
func Evaluate(b *board.Board) int {
	return materialWeight*Material(b) + AttackBalance(b)
}

// DeltaEvaluator scores each position as the change since the previous call.
// It is not safe for concurrent use; each owner keeps its own baseline.
type DeltaEvaluator struct {
	material int
	attack   int
}

// NewDeltaEvaluator returns an evaluator whose baseline is b.
func NewDeltaEvaluator(b *board.Board) *DeltaEvaluator {
	d := &DeltaEvaluator{}
	d.Reset(b)
	return d
}

// Reset makes b the baseline.
func (d *DeltaEvaluator) Reset(b *board.Board) {
	d.material = Material(b)
	d.attack = AttackBalance(b)
}

// Evaluate returns 10*(material change) + (attack change) relative to the
// baseline and then makes b the new baseline.
func (d *DeltaEvaluator) Evaluate(b *board.Board) int {
	m, a := Material(b), AttackBalance(b)
	score := materialWeight*(m-d.material) + (a - d.attack)
	d.material, d.attack = m, a
	return score
}
