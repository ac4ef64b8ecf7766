package engine

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// DefaultDepth is the search depth used when none is given.
const DefaultDepth = 3

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth   int
	Score   int
	Nodes   uint64
	Time    time.Duration
	Move    board.Move
	HitRate int // Permille of TT probes that hit
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = DefaultDepth)
	MoveTime time.Duration // Time for this move (0 = no limit)
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name, defaulting to Hard.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return Easy
	case "medium":
		return Medium
	default:
		return Hard
	}
}

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 1, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 2, MoveTime: 2 * time.Second},
	Hard:   {Depth: DefaultDepth, MoveTime: 5 * time.Second},
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	tt         *TranspositionTable
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table of the given number
// of entries. Zero disables the table.
func NewEngine(ttEntries int) *Engine {
	var tt *TranspositionTable
	if ttEntries > 0 {
		tt = NewTranspositionTable(ttEntries)
	}
	return &Engine{
		searcher:   NewSearcher(tt),
		tt:         tt,
		difficulty: Hard,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetParallel enables concurrent search of root moves.
func (e *Engine) SetParallel(on bool) {
	e.searcher.SetParallel(on)
}

// MakeMove picks a move for color by minimax search to depth plies. The board
// is not modified. It reports false when color has no legal move.
func (e *Engine) MakeMove(b *board.Board, color board.Color, depth int) (board.Move, bool) {
	if depth < 1 {
		depth = DefaultDepth
	}
	m, _ := e.search(context.Background(), b, color, SearchLimits{Depth: depth})
	return m, !m.IsNone()
}

// Search finds the best move for the side to move using the difficulty limits.
func (e *Engine) Search(ctx context.Context, b *board.Board) board.Move {
	m, _ := e.SearchWithLimits(ctx, b, DifficultySettings[e.difficulty])
	return m
}

// SearchWithLimits finds the best move for the side to move with specific
// limits, returning the move and its score from White's point of view.
func (e *Engine) SearchWithLimits(ctx context.Context, b *board.Board, limits SearchLimits) (board.Move, int) {
	return e.search(ctx, b, b.SideToMove, limits)
}

func (e *Engine) search(ctx context.Context, b *board.Board, color board.Color, limits SearchLimits) (board.Move, int) {
	e.searcher.Reset()

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}
	if limits.MoveTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limits.MoveTime)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, e.searcher.Stop)
	defer stop()

	startTime := time.Now()
	bestMove, bestScore := board.NoMove, 0

	// Iterative deepening; an interrupted iteration is discarded.
	for depth := 1; depth <= maxDepth; depth++ {
		move, score := e.searcher.Search(ctx, b, color, depth)
		if e.searcher.IsStopped() && !bestMove.IsNone() {
			break
		}
		bestMove, bestScore = move, score

		if e.OnInfo != nil {
			info := SearchInfo{
				Depth: depth,
				Score: bestScore,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(startTime),
				Move:  bestMove,
			}
			if e.tt != nil {
				info.HitRate = e.tt.HitRate()
			}
			e.OnInfo(info)
		}

		if move.IsNone() || abs(score) > MateScore-MaxPly || e.searcher.IsStopped() {
			break
		}
	}

	log.Printf("[ENGINE] %s to move: %s (score %s, %d nodes, %v)",
		color, bestMove, ScoreToString(bestScore), e.searcher.Nodes(), time.Since(startTime).Round(time.Millisecond))
	return bestMove, bestScore
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear clears the transposition table.
func (e *Engine) Clear() {
	if e.tt != nil {
		e.tt.Clear()
	}
}

// Perft counts leaf positions at depth (for debugging move generation).
func (e *Engine) Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.GenerateLegalMoves(b.SideToMove)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		next := b.Clone()
		next.MakeMove(m)
		nodes += e.Perft(next, depth-1)
	}
	return nodes
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) int {
	return Evaluate(b)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return "Mate in " + strconv.Itoa((MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return "Mated in " + strconv.Itoa((MateScore+score+1)/2)
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + strconv.Itoa(score/100) + "." + strconv.Itoa(score%100/10) + strconv.Itoa(score%10)
}
