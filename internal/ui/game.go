package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/game"
	"github.com/hailam/chesscore/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// lastGameID is the storage id of the game in progress.
const lastGameID = "last"

// Game implements ebiten.Game interface.
type Game struct {
	game       *game.Game
	lastMove   board.Move
	message    string
	started    time.Time
	gameOver   bool
	gameResult string

	// Settings
	mode        storage.GameMode
	difficulty  engine.Difficulty
	playerColor board.Color // Which color the human plays
	showDests   bool

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	// AI Engine
	engine     *engine.Engine
	aiThinking bool
	aiMove     chan board.Move
	aiCancel   context.CancelFunc

	// HiDPI scaling
	scale float64
}

// NewGame creates the desktop game, resuming the last unfinished game when
// one is stored.
func NewGame() *Game {
	g := &Game{
		lastMove:    board.NoMove,
		started:     time.Now(),
		mode:        storage.ModeHumanVsComputer,
		difficulty:  engine.Medium,
		playerColor: board.White,
		showDests:   true,
		renderer:    NewRenderer(BoardSize, SquareSize),
		input:       NewInputHandler(),
		engine:      engine.NewEngine(1 << 16),
		aiMove:      make(chan board.Move, 1),
		scale:       1.0,
	}
	g.panel = NewPanel(g.renderer.Theme())

	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("[STORE] Warning: Failed to initialize storage: %v", err)
	}

	g.loadPreferences()
	g.resume()

	if g.mode == storage.ModeHumanVsComputer && g.game.Board().SideToMove != g.playerColor {
		g.startAIThinking()
	}
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	if g.storage == nil {
		g.prefs = storage.DefaultPreferences()
		return
	}

	var err error
	g.prefs, err = g.storage.LoadPreferences()
	if err != nil {
		log.Printf("[STORE] Warning: Failed to load preferences: %v", err)
		g.prefs = storage.DefaultPreferences()
	}

	g.mode = g.prefs.GameMode
	g.showDests = g.prefs.ShowDestinations
	g.SetDifficulty(engine.ParseDifficulty(g.prefs.Difficulty))
	g.SetPlayerColor(g.prefs.PlayerColor)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}

	g.prefs.Difficulty = g.difficulty.String()
	g.prefs.GameMode = g.mode
	g.prefs.PlayerColor = g.playerColor
	g.prefs.ShowDestinations = g.showDests
	g.prefs.LastGameID = lastGameID

	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("[STORE] Warning: Failed to save preferences: %v", err)
	}
}

// resume restores the stored game in progress, or starts a fresh one.
func (g *Game) resume() {
	g.game = game.New()
	if g.storage == nil || g.prefs.LastGameID == "" {
		return
	}
	snap, err := g.storage.LoadGame(g.prefs.LastGameID)
	if err != nil {
		return
	}
	restored, err := game.Restore(snap)
	if err != nil {
		log.Printf("[STORE] Warning: Failed to restore game: %v", err)
		return
	}
	if restored.Checkmated() {
		return // Finished games were already recorded
	}
	g.game = restored
	if h := restored.History(); len(h) > 0 {
		g.lastMove = h[len(h)-1].Move
	}
	log.Printf("[STORE] Resumed game after %d moves", len(snap.Moves))
}

// saveGame stores the game in progress.
func (g *Game) saveGame() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SaveGame(lastGameID, g.game.Snapshot()); err != nil {
		log.Printf("[STORE] Warning: Failed to save game: %v", err)
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update(g.scale)

	g.handleKeys()
	g.handleBoardInput()
	g.checkAIMove()
	return nil
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)
	g.renderer.DrawBoard(screen)

	b := g.game.Board()
	for _, c := range []board.Color{board.White, board.Black} {
		if k := b.King(c); k != nil && b.InCheck(c) {
			g.renderer.DrawCheck(screen, b.CellOf(k))
		}
	}

	origin, dests := board.NoCell, board.CellSet(0)
	if pm, ok := g.game.Pending(); ok {
		origin = pm.Origin
		if g.showDests {
			dests = pm.Destinations
		}
	}
	g.renderer.DrawHighlights(screen, origin, dests, g.lastMove)
	g.renderer.DrawPieces(screen, b)

	g.panel.Draw(screen, g, g.scale)
}

// Layout returns the game's screen dimensions, scaled by the device factor
// for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleKeys processes keyboard shortcuts.
func (g *Game) handleKeys() {
	for _, key := range g.input.JustPressedKeys() {
		switch key {
		case ebiten.KeyN:
			g.NewGameAction()
		case ebiten.KeyU:
			g.UndoAction()
		case ebiten.KeyM:
			g.ToggleModeAction()
		case ebiten.KeyD:
			g.SetDifficulty((g.difficulty + 1) % (engine.Hard + 1))
			g.savePreferences()
		case ebiten.KeyH:
			g.showDests = !g.showDests
			g.savePreferences()
		case ebiten.KeyF:
			g.SetPlayerColor(g.playerColor.Other())
			g.savePreferences()
			if g.isComputerTurn() {
				g.startAIThinking()
			}
		}
	}
}

// handleBoardInput feeds board clicks into the turn flow.
func (g *Game) handleBoardInput() {
	if g.gameOver || g.aiThinking || !g.input.Clicked() {
		return
	}
	if g.isComputerTurn() {
		return
	}

	c := g.renderer.ScreenToCell(g.input.MousePosition())
	if !c.Valid() {
		return
	}

	switch g.game.Click(c) {
	case game.Applied:
		g.message = ""
		g.afterMove()
	case game.IntoCheck:
		g.message = "That move leaves your king in check"
	case game.Rejected:
		g.message = "Not a destination of that piece"
	default:
		g.message = ""
	}
}

func (g *Game) isComputerTurn() bool {
	return g.mode == storage.ModeHumanVsComputer && g.game.Board().SideToMove != g.playerColor
}

// afterMove updates the view after a committed move and hands the turn to
// the engine when it is the computer's side.
func (g *Game) afterMove() {
	h := g.game.History()
	g.lastMove = h[len(h)-1].Move
	g.saveGame()
	g.checkGameEnd()

	if !g.gameOver && g.isComputerTurn() {
		g.startAIThinking()
	}
}

// checkGameEnd detects checkmate of the side to move.
func (g *Game) checkGameEnd() {
	if !g.game.Checkmated() {
		return
	}
	loser := g.game.Board().SideToMove
	g.gameOver = true
	g.gameResult = fmt.Sprintf("%s wins by checkmate!", loser.Other())
	log.Printf("[MOVE] %s", g.gameResult)

	if g.mode == storage.ModeHumanVsComputer {
		g.recordResult(loser != g.playerColor, true)
	}
}

// recordResult adds the current game to the stored statistics.
func (g *Game) recordResult(won, finished bool) {
	if g.storage == nil {
		return
	}
	err := g.storage.RecordGame(storage.GameResult{
		Won:      won,
		Finished: finished,
		Moves:    len(g.game.History()),
		Captured: g.game.Board().Score.Of(g.playerColor),
		Duration: time.Since(g.started),
	})
	if err != nil {
		log.Printf("[STORE] Warning: Failed to record game: %v", err)
	}
}

// startAIThinking starts the engine search on a copy of the board.
func (g *Game) startAIThinking() {
	if g.aiThinking || g.gameOver {
		return
	}
	log.Printf("[ENGINE] Thinking for %s (%s)", g.game.Board().SideToMove, g.difficulty)
	g.aiThinking = true

	b := g.game.Board().Clone()
	ctx, cancel := context.WithCancel(context.Background())
	g.aiCancel = cancel

	go func() {
		g.aiMove <- g.engine.Search(ctx, b) // Always send, even NoMove
	}()
}

// stopAIThinking cancels a running search and discards its move.
func (g *Game) stopAIThinking() {
	if !g.aiThinking {
		return
	}
	g.aiCancel()
	<-g.aiMove
	g.aiThinking = false
}

// checkAIMove plays the engine's move once the search is done.
func (g *Game) checkAIMove() {
	if !g.aiThinking {
		return
	}

	select {
	case m := <-g.aiMove:
		g.aiThinking = false
		g.aiCancel()
		if m.IsNone() {
			g.message = "Computer has no legal move"
			return
		}
		if out := g.game.Play(m); out != game.Applied {
			log.Printf("[ENGINE] Move %s not applied: %s", m, out)
			return
		}
		g.afterMove()
	default:
		// Still thinking
	}
}

// NewGameAction starts over from the standard position. An abandoned game
// against the computer counts as unfinished.
func (g *Game) NewGameAction() {
	g.stopAIThinking()
	if g.mode == storage.ModeHumanVsComputer && !g.gameOver && len(g.game.History()) > 0 {
		g.recordResult(false, false)
	}

	g.game = game.New()
	g.lastMove = board.NoMove
	g.message = ""
	g.gameOver = false
	g.gameResult = ""
	g.started = time.Now()
	g.engine.Clear()
	g.saveGame()

	if g.isComputerTurn() {
		g.startAIThinking()
	}
}

// UndoAction takes back the last move, or the last full turn when playing
// the computer.
func (g *Game) UndoAction() {
	g.stopAIThinking()

	n := 1
	if g.mode == storage.ModeHumanVsComputer && !g.isComputerTurn() {
		n = 2
	}
	for i := 0; i < n; i++ {
		if !g.game.Undo() {
			break
		}
	}

	g.lastMove = board.NoMove
	if h := g.game.History(); len(h) > 0 {
		g.lastMove = h[len(h)-1].Move
	}
	g.gameOver = false
	g.gameResult = ""
	g.message = ""
	g.saveGame()

	if g.isComputerTurn() {
		g.startAIThinking()
	}
}

// ToggleModeAction toggles between Human vs Human and Human vs Computer.
func (g *Game) ToggleModeAction() {
	if g.mode == storage.ModeHumanVsHuman {
		g.mode = storage.ModeHumanVsComputer
	} else {
		g.stopAIThinking()
		g.mode = storage.ModeHumanVsHuman
	}
	g.savePreferences()
	if g.isComputerTurn() {
		g.startAIThinking()
	}
}

// SetPlayerColor sets which color the human controls. Black flips the board.
func (g *Game) SetPlayerColor(color board.Color) {
	g.playerColor = color
	g.renderer.SetFlipped(color == board.Black)
}

// SetDifficulty sets the AI difficulty.
func (g *Game) SetDifficulty(d engine.Difficulty) {
	g.difficulty = d
	g.engine.SetDifficulty(d)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.stopAIThinking()
	g.saveGame()
	if g.storage != nil {
		g.storage.Close()
	}
}
