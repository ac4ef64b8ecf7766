// Package uci implements a UCI-style line protocol over the rules core.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine *engine.Engine
	game   *game.Game
	depth  int

	in    io.Reader
	out   io.Writer
	diag  io.Writer
	outMu sync.Mutex

	// Search state
	searchDone chan struct{}
	cancel     context.CancelFunc
}

// New creates a protocol handler reading commands from in and writing
// replies to out. Diagnostics ("info string") go to diag.
func New(eng *engine.Engine, in io.Reader, out, diag io.Writer) *UCI {
	return &UCI{
		engine: eng,
		game:   game.New(),
		depth:  engine.DefaultDepth,
		in:     in,
		out:    out,
		diag:   diag,
	}
}

// SetDepth sets the depth used by "go" without a depth argument.
func (u *UCI) SetDepth(d int) {
	if d > 0 {
		u.depth = d
	}
}

func (u *UCI) printf(format string, args ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) infof(format string, args ...any) {
	fmt.Fprintf(u.diag, "info string "+format+"\n", args...)
}

// Run reads commands until "quit" or end of input.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.printf("readyok\n")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.printf("%s\n", u.game.Board())
		case "eval":
			u.handleEval()
		case "attacks":
			u.handleAttacks(args)
		case "moves":
			u.handleMoves()
		case "perft":
			u.handlePerft(args)
		default:
			u.infof("Unknown command: %s", cmd)
		}
	}
	u.handleStop()
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.printf("id name chesscore\n")
	u.printf("id author chesscore\n")
	u.printf("\n")
	u.printf("option name Depth type spin default %d min 1 max %d\n", engine.DefaultDepth, engine.MaxPly)
	u.printf("option name Parallel type check default false\n")
	u.printf("uciok\n")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.handleStop()
	u.engine.Clear()
	u.game = game.New()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	u.handleStop()

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	switch args[0] {
	case "startpos":
		u.game = game.New()
	case "fen":
		g, err := game.FromFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.infof("Invalid FEN: %v", err)
			return
		}
		u.game = g
	default:
		return
	}

	if movesAt+1 >= len(args) {
		return
	}
	for _, moveStr := range args[movesAt+1:] {
		m, err := board.ParseMove(moveStr)
		if err != nil {
			u.infof("Invalid move: %s", moveStr)
			return
		}
		if out := u.game.Play(m); out != game.Applied {
			u.infof("Illegal move %s: %s", moveStr, out)
			return
		}
	}
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// parseGoOptions parses "go" command arguments.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.Infinite = true
		}
	}

	return opts
}

// handleGo starts a search with the given parameters.
func (u *UCI) handleGo(args []string) {
	u.handleStop()
	opts := parseGoOptions(args)

	limits := engine.SearchLimits{Depth: u.depth, MoveTime: opts.MoveTime}
	if opts.Depth > 0 {
		limits.Depth = opts.Depth
	}
	if opts.Infinite {
		limits.Depth = engine.MaxPly
		limits.MoveTime = 0
	}

	b := u.game.Board().Clone()
	side := b.SideToMove
	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(info, side)
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.searchDone = make(chan struct{})

	go func() {
		defer close(u.searchDone)
		m, _ := u.engine.SearchWithLimits(ctx, b, limits)
		u.printf("bestmove %s\n", m)
	}()
}

// sendInfo outputs search info in UCI format. Scores are from the side to
// move's point of view.
func (u *UCI) sendInfo(info engine.SearchInfo, side board.Color) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	score := info.Score * side.Sign()
	switch {
	case score > engine.MateScore-engine.MaxPly:
		parts = append(parts, fmt.Sprintf("score mate %d", (engine.MateScore-score+1)/2))
	case score < -engine.MateScore+engine.MaxPly:
		parts = append(parts, fmt.Sprintf("score mate %d", -(engine.MateScore+score+1)/2))
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if !info.Move.IsNone() {
		parts = append(parts, "pv "+info.Move.String())
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleStop stops the current search and waits for its bestmove.
func (u *UCI) handleStop() {
	if u.searchDone == nil {
		return
	}
	u.cancel()
	<-u.searchDone
	u.searchDone = nil
	u.cancel = nil
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "value":
			if i+1 < len(args) {
				value = args[i+1]
				i++
			}
		}
	}

	switch strings.ToLower(name) {
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil || d < 1 {
			u.infof("Invalid depth: %s", value)
			return
		}
		u.SetDepth(d)
	case "parallel":
		u.engine.SetParallel(value == "true")
	default:
		u.infof("Unknown option: %s", name)
	}
}

// handleEval prints the static evaluation of the current position.
func (u *UCI) handleEval() {
	b := u.game.Board()
	u.printf("material %d\n", engine.Material(b))
	u.printf("attack %d\n", engine.AttackBalance(b))
	u.printf("eval %d (%s)\n", engine.Evaluate(b), engine.ScoreToString(engine.Evaluate(b)))
}

// handleAttacks prints the attacked squares of the piece on a cell.
func (u *UCI) handleAttacks(args []string) {
	if len(args) == 0 {
		u.infof("Usage: attacks <cell>")
		return
	}
	c, err := board.ParseCell(args[0])
	if err != nil {
		u.infof("%v", err)
		return
	}
	b := u.game.Board()
	p := b.PieceAt(c)
	if p == nil {
		u.printf("attacks %s none\n", c)
		return
	}
	u.printf("attacks %s %s\n", c, b.AttackedSquares(p))
}

// handleMoves lists the legal moves of the side to move.
func (u *UCI) handleMoves() {
	b := u.game.Board()
	moves := b.GenerateLegalMoves(b.SideToMove)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	u.printf("moves %s\n", strings.Join(names, " "))
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			depth = d
		}
	}
	start := time.Now()
	nodes := u.engine.Perft(u.game.Board().Clone(), depth)
	u.printf("perft %d nodes %d time %d\n", depth, nodes, time.Since(start).Milliseconds())
}
