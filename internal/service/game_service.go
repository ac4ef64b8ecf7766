package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
)

// MaxEngineDepth bounds engine requests made through the API.
const MaxEngineDepth = 4

// engineMoveTime caps one engine move requested through the API.
const engineMoveTime = 5 * time.Second

// Evaluation is the static evaluation of a game's position.
type Evaluation struct {
	Material int    `json:"material"`
	Attack   int    `json:"attack"`
	Score    int    `json:"score"`
	Display  string `json:"display"`
}

// MoveResult is the outcome of a click, move or engine request.
type MoveResult struct {
	Outcome game.Outcome `json:"-"`
	Result  string       `json:"outcome"`
	Move    *board.Move  `json:"move,omitempty"`
	State   GameState    `json:"state"`
}

type GameService struct {
	gameManager  *GameManager
	defaultDepth int
}

func NewGameService(gameManager *GameManager, defaultDepth int) *GameService {
	if defaultDepth < 1 {
		defaultDepth = engine.DefaultDepth
	}
	return &GameService{gameManager: gameManager, defaultDepth: defaultDepth}
}

// Manager returns the underlying game manager.
func (gs *GameService) Manager() *GameManager {
	return gs.gameManager
}

// CreateGame starts a game from fen, or the standard position when fen is
// empty, and returns its id.
func (gs *GameService) CreateGame(fen string) (string, error) {
	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(gameID, fen); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// JoinGame seats playerID at the first free side and returns it. A player
// already seated gets their existing side back.
func (gs *GameService) JoinGame(gameID, playerID string) (board.Color, error) {
	color := board.NoColor
	_, err := gs.gameManager.update(gameID, func(s *session) error {
		switch playerID {
		case s.players.White:
			color = board.White
		case s.players.Black:
			color = board.Black
		default:
			switch {
			case s.players.White == "":
				s.players.White = playerID
				color = board.White
			case s.players.Black == "":
				s.players.Black = playerID
				color = board.Black
			default:
				return ErrGameFull
			}
		}
		return nil
	})
	return color, err
}

// GetGameState returns the current state of a game.
func (gs *GameService) GetGameState(gameID string) (GameState, error) {
	var st GameState
	err := gs.gameManager.view(gameID, func(s *session) error {
		st = s.state()
		return nil
	})
	return st, err
}

func result(out game.Outcome, st GameState) MoveResult {
	return MoveResult{Outcome: out, Result: out.String(), State: st}
}

// Click feeds one board click into the turn flow.
func (gs *GameService) Click(gameID, playerID string, c board.Cell) (MoveResult, error) {
	if !c.Valid() {
		return MoveResult{}, board.ErrInvalidCell
	}
	var out game.Outcome
	st, err := gs.gameManager.update(gameID, func(s *session) error {
		if err := s.authorize(playerID); err != nil {
			return err
		}
		out = s.game.Click(c)
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}
	return result(out, st), nil
}

// Move plays a complete move for the side to move.
func (gs *GameService) Move(gameID, playerID string, m board.Move) (MoveResult, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return MoveResult{}, board.ErrInvalidCell
	}
	var out game.Outcome
	st, err := gs.gameManager.update(gameID, func(s *session) error {
		if err := s.authorize(playerID); err != nil {
			return err
		}
		out = s.game.Play(m)
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}
	res := result(out, st)
	res.Move = &m
	return res, nil
}

// EngineMove lets the engine play the side to move. Seated sides may only be
// played by their own player; depth 0 uses the service default.
func (gs *GameService) EngineMove(ctx context.Context, gameID, playerID string, depth int) (MoveResult, error) {
	if depth < 1 {
		depth = gs.defaultDepth
	}
	depth = min(depth, MaxEngineDepth)

	ctx, cancel := context.WithTimeout(ctx, engineMoveTime)
	defer cancel()

	var (
		m   board.Move
		out game.Outcome
	)
	st, err := gs.gameManager.update(gameID, func(s *session) error {
		if err := s.authorize(playerID); err != nil {
			return err
		}
		m, _ = s.engine.SearchWithLimits(ctx, s.game.Board(), engine.SearchLimits{Depth: depth})
		if m.IsNone() {
			out = game.Ignored
			return nil
		}
		out = s.game.Play(m)
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}
	res := result(out, st)
	if !m.IsNone() {
		res.Move = &m
	}
	return res, nil
}

// Attacks returns the attacked squares of the piece on c. An empty cell has
// none.
func (gs *GameService) Attacks(gameID string, c board.Cell) ([]board.Cell, error) {
	if !c.Valid() {
		return nil, board.ErrInvalidCell
	}
	cells := []board.Cell{}
	err := gs.gameManager.view(gameID, func(s *session) error {
		b := s.game.Board()
		if p := b.PieceAt(c); p != nil {
			cells = append(cells, b.AttackedSquares(p).Cells()...)
		}
		return nil
	})
	return cells, err
}

// Evaluate returns the static evaluation of the game's position.
func (gs *GameService) Evaluate(gameID string) (Evaluation, error) {
	var ev Evaluation
	err := gs.gameManager.view(gameID, func(s *session) error {
		b := s.game.Board()
		ev.Material = engine.Material(b)
		ev.Attack = engine.AttackBalance(b)
		ev.Score = engine.Evaluate(b)
		ev.Display = engine.ScoreToString(ev.Score)
		return nil
	})
	return ev, err
}

// Undo reverts the last move. Only seated players, or anyone in an unseated
// game, may undo.
func (gs *GameService) Undo(gameID, playerID string) (bool, GameState, error) {
	var undone bool
	st, err := gs.gameManager.update(gameID, func(s *session) error {
		if s.players.White != "" || s.players.Black != "" {
			if playerID != s.players.White && playerID != s.players.Black {
				return ErrNotYourTurn
			}
		}
		undone = s.game.Undo()
		return nil
	})
	return undone, st, err
}

// RegisterConnection subscribes a websocket to a game's state pushes.
func (gs *GameService) RegisterConnection(gameID, playerID string, sub Subscriber) error {
	return gs.gameManager.Subscribe(gameID, playerID, sub)
}

// UnregisterConnection drops a websocket subscription.
func (gs *GameService) UnregisterConnection(gameID, playerID string, sub Subscriber) {
	gs.gameManager.Unsubscribe(gameID, playerID, sub)
}
