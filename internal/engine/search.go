package engine

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 1 << 30
	MateScore = Infinity - 1024
	MaxPly    = 64
)

// Evaluator scores a position from White's point of view.
type Evaluator func(*board.Board) int

// Searcher performs a fixed-depth minimax search with alpha-beta cut-offs.
// White maximises and Black minimises. Positions are explored on copies; the
// board passed in is never modified.
type Searcher struct {
	eval     Evaluator
	tt       *TranspositionTable
	parallel bool
	stopFlag atomic.Bool
	nodes    atomic.Uint64
}

// NewSearcher creates a searcher. A nil tt disables the transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{eval: Evaluate, tt: tt}
}

// SetEvaluator replaces the static evaluator.
func (s *Searcher) SetEvaluator(e Evaluator) {
	if e != nil {
		s.eval = e
	}
}

// SetParallel enables searching root moves concurrently.
func (s *Searcher) SetParallel(on bool) {
	s.parallel = on
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset prepares the searcher for a new search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes.Store(0)
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Search returns the best move for side at the given depth and its score from
// White's point of view. It returns NoMove when side has no legal move.
func (s *Searcher) Search(ctx context.Context, b *board.Board, side board.Color, depth int) (board.Move, int) {
	if depth < 1 {
		depth = 1
	}
	root := b.Clone()
	root.SideToMove = side

	ttMove := board.NoMove
	if e, ok := s.tt.Probe(root.Hash()); ok {
		ttMove = e.BestMove
	}
	kids := children(root, side, ttMove)
	if len(kids) == 0 {
		return board.NoMove, s.terminal(root, side, 0)
	}

	if s.parallel && len(kids) > 1 {
		return s.searchParallel(ctx, kids, side, depth)
	}

	alpha, beta := -Infinity, Infinity
	best, bestScore := kids[0].move, worst(side)
	for _, k := range kids {
		v := s.minimax(k.board, side.Other(), depth-1, alpha, beta, 1)
		if s.IsStopped() {
			break
		}
		if better(side, v, bestScore) {
			best, bestScore = k.move, v
		}
		if side == board.White {
			alpha = max(alpha, v)
		} else {
			beta = min(beta, v)
		}
	}
	return best, bestScore
}

// searchParallel evaluates each root move in its own goroutine with a full
// window. Every goroutine works on its own copy of the position.
func (s *Searcher) searchParallel(ctx context.Context, kids []child, side board.Color, depth int) (board.Move, int) {
	scores := make([]int, len(kids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, k := range kids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = s.minimax(k.board, side.Other(), depth-1, -Infinity, Infinity, 1)
			return nil
		})
	}
	_ = g.Wait()

	best, bestScore := kids[0].move, worst(side)
	for i, k := range kids {
		if better(side, scores[i], bestScore) {
			best, bestScore = k.move, scores[i]
		}
	}
	return best, bestScore
}

func (s *Searcher) minimax(b *board.Board, side board.Color, depth, alpha, beta, ply int) int {
	s.nodes.Add(1)
	if depth == 0 || ply >= MaxPly || s.IsStopped() {
		return s.eval(b)
	}

	key := b.Hash()
	ttMove := board.NoMove
	if e, ok := s.tt.Probe(key); ok {
		ttMove = e.BestMove
		if e.Depth == depth {
			switch e.Flag {
			case TTExact:
				return e.Score
			case TTLowerBound:
				alpha = max(alpha, e.Score)
			case TTUpperBound:
				beta = min(beta, e.Score)
			}
			if alpha >= beta {
				return e.Score
			}
		}
	}

	kids := children(b, side, ttMove)
	if len(kids) == 0 {
		return s.terminal(b, side, ply)
	}

	alphaOrig, betaOrig := alpha, beta
	best, bestScore := kids[0].move, worst(side)
	for _, k := range kids {
		v := s.minimax(k.board, side.Other(), depth-1, alpha, beta, ply+1)
		if better(side, v, bestScore) {
			best, bestScore = k.move, v
		}
		if side == board.White {
			alpha = max(alpha, v)
		} else {
			beta = min(beta, v)
		}
		if alpha >= beta {
			break
		}
	}

	if !s.IsStopped() && abs(bestScore) < MateScore-MaxPly {
		flag := TTExact
		switch {
		case bestScore <= alphaOrig:
			flag = TTUpperBound
		case bestScore >= betaOrig:
			flag = TTLowerBound
		}
		s.tt.Store(key, best, bestScore, depth, flag)
	}
	return bestScore
}

// terminal scores a node without legal moves: mate when in check, otherwise
// the static evaluation.
func (s *Searcher) terminal(b *board.Board, side board.Color, ply int) int {
	if b.IsInCheck(side) {
		return -side.Sign() * (MateScore - ply)
	}
	return s.eval(b)
}

func worst(side board.Color) int {
	if side == board.White {
		return -Infinity - 1
	}
	return Infinity + 1
}

func better(side board.Color, v, than int) bool {
	if side == board.White {
		return v > than
	}
	return v < than
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
