// Package service keeps the live games behind the HTTP and websocket API.
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/ws"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrGameFull     = errors.New("game is full")
	ErrGameExists   = errors.New("game already exists")
)

// Store persists game snapshots. *storage.Storage satisfies it.
type Store interface {
	SaveGame(id string, snap game.Snapshot) error
	LoadGame(id string) (game.Snapshot, error)
}

// Subscriber receives pushed game states. *websocket.Conn satisfies it.
type Subscriber interface {
	WriteJSON(v any) error
}

// Players holds the player ids seated at each side. An empty seat means
// anyone may move that side.
type Players struct {
	White string `json:"white,omitempty"`
	Black string `json:"black,omitempty"`
}

func (p Players) seat(c board.Color) string {
	if c == board.White {
		return p.White
	}
	return p.Black
}

// GameState is a game snapshot with its id and seating.
type GameState struct {
	ID      string  `json:"id"`
	Players Players `json:"players"`
	game.Snapshot
}

// session is one live game. All fields are guarded by mu.
type session struct {
	id      string
	mu      sync.Mutex
	game    *game.Game
	engine  *engine.Engine
	players Players
	subs    map[string]Subscriber
}

func (s *session) state() GameState {
	return GameState{ID: s.id, Players: s.players, Snapshot: s.game.Snapshot()}
}

// authorize checks that playerID may act for the side to move.
func (s *session) authorize(playerID string) error {
	seated := s.players.seat(s.game.Board().SideToMove)
	if seated != "" && seated != playerID {
		return ErrNotYourTurn
	}
	return nil
}

type GameManager struct {
	games     map[string]*session
	store     Store
	ttEntries int
	mu        sync.RWMutex
}

// NewGameManager creates a manager. A nil store keeps games in memory only.
func NewGameManager(store Store, ttEntries int) *GameManager {
	return &GameManager{
		games:     make(map[string]*session),
		store:     store,
		ttEntries: ttEntries,
	}
}

// CreateGame registers a new game under id. An empty fen starts from the
// standard position.
func (gm *GameManager) CreateGame(id, fen string) error {
	g := game.New()
	if fen != "" {
		var err error
		if g, err = game.FromFEN(fen); err != nil {
			return err
		}
	}

	gm.mu.Lock()
	if _, exists := gm.games[id]; exists {
		gm.mu.Unlock()
		return fmt.Errorf("%s: %w", id, ErrGameExists)
	}
	s := gm.newSession(id, g)
	gm.games[id] = s
	gm.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	gm.persist(s)
	return nil
}

func (gm *GameManager) newSession(id string, g *game.Game) *session {
	return &session{
		id:     id,
		game:   g,
		engine: engine.NewEngine(gm.ttEntries),
		subs:   make(map[string]Subscriber),
	}
}

// session returns the live game id, loading it from the store when it is
// not in memory.
func (gm *GameManager) session(id string) (*session, error) {
	gm.mu.RLock()
	s, ok := gm.games[id]
	gm.mu.RUnlock()
	if ok {
		return s, nil
	}
	if gm.store == nil {
		return nil, ErrGameNotFound
	}

	snap, err := gm.store.LoadGame(id)
	if err != nil {
		log.Printf("[STORE] load %s: %v", id, err)
		return nil, ErrGameNotFound
	}
	g, err := game.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if s, ok := gm.games[id]; ok {
		return s, nil
	}
	s = gm.newSession(id, g)
	gm.games[id] = s
	log.Printf("[STORE] restored game %s after %d moves", id, len(snap.Moves))
	return s, nil
}

// persist saves s. The caller holds s.mu.
func (gm *GameManager) persist(s *session) {
	if gm.store == nil {
		return
	}
	if err := gm.store.SaveGame(s.id, s.game.Snapshot()); err != nil {
		log.Printf("[STORE] save %s: %v", s.id, err)
	}
}

// broadcast pushes the current state to every subscriber. The caller holds
// s.mu. Subscribers whose write fails are dropped.
func (gm *GameManager) broadcast(s *session) {
	if len(s.subs) == 0 {
		return
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.state())
	if err != nil {
		log.Printf("[HTTP] encode state %s: %v", s.id, err)
		return
	}
	for playerID, sub := range s.subs {
		if err := sub.WriteJSON(msg); err != nil {
			log.Printf("[HTTP] drop subscriber %s of %s: %v", playerID, s.id, err)
			delete(s.subs, playerID)
		}
	}
}

// update runs fn on the game under its lock, then saves and broadcasts.
// Nothing is saved when fn fails.
func (gm *GameManager) update(id string, fn func(s *session) error) (GameState, error) {
	s, err := gm.session(id)
	if err != nil {
		return GameState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s); err != nil {
		return GameState{}, err
	}
	gm.persist(s)
	gm.broadcast(s)
	return s.state(), nil
}

// view runs fn on the game under its lock without saving.
func (gm *GameManager) view(id string, fn func(s *session) error) error {
	s, err := gm.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Subscribe registers sub for state pushes on game id and sends it the
// current state. A second subscription by the same player replaces the first.
func (gm *GameManager) Subscribe(id, playerID string, sub Subscriber) error {
	s, err := gm.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.state())
	if err != nil {
		return err
	}
	if err := sub.WriteJSON(msg); err != nil {
		return err
	}
	s.subs[playerID] = sub
	log.Printf("[HTTP] %s watching game %s", playerID, id)
	return nil
}

// Unsubscribe removes playerID's subscription if sub is still the current one.
func (gm *GameManager) Unsubscribe(id, playerID string, sub Subscriber) {
	gm.mu.RLock()
	s, ok := gm.games[id]
	gm.mu.RUnlock()
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[playerID] == sub {
		delete(s.subs, playerID)
	}
}

// Send writes msg to playerID's subscription only.
func (gm *GameManager) Send(id, playerID string, msg ws.Message) error {
	return gm.view(id, func(s *session) error {
		sub, ok := s.subs[playerID]
		if !ok {
			return nil
		}
		return sub.WriteJSON(msg)
	})
}
