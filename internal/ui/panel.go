package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

const (
	panelPadding = 16
	lineHeight   = 22
	historyRows  = 10
)

var keyHelp = []string{
	"N  new game",
	"U  undo",
	"M  toggle opponent",
	"D  difficulty",
	"H  destination dots",
	"F  switch sides",
}

// Panel draws the side panel: turn, scores, check state, history and keys.
type Panel struct {
	theme *Theme
}

// NewPanel creates a side panel.
func NewPanel(theme *Theme) *Panel {
	return &Panel{theme: theme}
}

// Draw renders the panel to the right of the board.
func (p *Panel) Draw(screen *ebiten.Image, g *Game, scale float64) {
	x0 := float32(BoardSize) * float32(scale)
	vector.DrawFilledRect(screen, x0, 0, float32(PanelWidth)*float32(scale), float32(ScreenHeight)*float32(scale), p.theme.Background, false)

	title := face(true, titleFontSize, scale)
	body := face(false, defaultFontSize, scale)

	x := float64(BoardSize+panelPadding) * scale
	y := float64(panelPadding) * scale
	line := func(s string, bold bool, c color.Color) {
		f := body
		if bold {
			f = title
		}
		drawText(screen, s, f, x, y, c)
		y += lineHeight * scale
	}
	text, dim, accent, warn := p.theme.TextColor, p.theme.DimTextColor, p.theme.AccentColor, p.theme.CheckColor

	b := g.game.Board()
	line("chesscore", true, accent)

	opponent := "Human vs Human"
	if g.mode == storage.ModeHumanVsComputer {
		opponent = fmt.Sprintf("vs Computer (%s), you play %s", g.difficulty, g.playerColor)
	}
	line(opponent, false, dim)
	y += lineHeight / 2 * scale

	switch {
	case g.gameOver:
		line(g.gameResult, true, accent)
	case g.aiThinking:
		line(fmt.Sprintf("%s to move, thinking...", b.SideToMove), true, text)
	default:
		line(fmt.Sprintf("%s to move", b.SideToMove), true, text)
	}
	for _, c := range []board.Color{board.White, board.Black} {
		if b.InCheck(c) {
			line(fmt.Sprintf("%s is in check", c), false, warn)
		}
	}
	if g.message != "" {
		line(g.message, false, warn)
	}
	y += lineHeight / 2 * scale

	line(fmt.Sprintf("Captured  White %d  Black %d", b.Score.White, b.Score.Black), false, text)
	line(fmt.Sprintf("Eval %s", engine.ScoreToString(engine.Evaluate(b))), false, text)
	y += lineHeight / 2 * scale

	history := g.game.History()
	start := max(0, len(history)-historyRows)
	for i := start; i < len(history); i++ {
		r := history[i]
		s := fmt.Sprintf("%3d. %-5s %s %s", i+1, r.Color, r.Piece, r.Move)
		if r.Captured != board.NoPieceType {
			s += " x" + r.Captured.String()
		}
		if r.Check {
			s += "+"
		}
		line(s, false, dim)
	}

	y = float64(ScreenHeight-panelPadding-len(keyHelp)*lineHeight) * scale
	for _, k := range keyHelp {
		line(k, false, dim)
	}
}
