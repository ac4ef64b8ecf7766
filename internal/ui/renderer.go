package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesscore/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	DestColor      color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
	DimTextColor   color.RGBA
	AccentColor    color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		DestColor:      color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
		DimTextColor:   color.RGBA{150, 150, 150, 255},
		AccentColor:    color.RGBA{247, 200, 90, 255},
	}
}

// Renderer handles all board drawing.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	boardSize  int
	squareSize int
	flipped    bool    // Black at the bottom
	scale      float64 // HiDPI scale factor
}

// NewRenderer creates a new renderer.
func NewRenderer(boardSize, squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		boardSize:  boardSize,
		squareSize: squareSize,
		scale:      1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
	r.sprites.SetScale(scale)
}

// SetFlipped puts Black at the bottom when true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is drawn at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the board squares.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			c := r.theme.LightSquare
			if (row+col)%2 == 0 {
				c = r.theme.DarkSquare
			}
			r.fillCell(screen, board.NewCell(col, row), c)
		}
	}
}

// DrawHighlights draws the last move, the pending origin and its
// destinations.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, origin board.Cell, dests board.CellSet, lastMove board.Move) {
	if !lastMove.IsNone() {
		r.fillCell(screen, lastMove.From, r.theme.LastMoveColor)
		r.fillCell(screen, lastMove.To, r.theme.LastMoveColor)
	}
	if origin.Valid() {
		r.fillCell(screen, origin, r.theme.SelectedSquare)
	}
	dests.ForEach(func(c board.Cell) {
		x, y := r.CellToScreen(c)
		cx := r.s(x) + r.s(r.squareSize)/2
		cy := r.s(y) + r.s(r.squareSize)/2
		vector.DrawFilledCircle(screen, cx, cy, r.s(r.squareSize)*0.15, r.theme.DestColor, true)
	})
}

// DrawCheck highlights the cell of a king in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingCell board.Cell) {
	r.fillCell(screen, kingCell, r.theme.CheckColor)
}

func (r *Renderer) fillCell(screen *ebiten.Image, c board.Cell, clr color.RGBA) {
	if !c.Valid() {
		return
	}
	x, y := r.CellToScreen(c)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(r.squareSize), r.s(r.squareSize), clr, false)
}

// DrawPieces draws every piece on b.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board) {
	for _, p := range b.AllPieces() {
		x, y := r.CellToScreen(b.CellOf(p))
		r.sprites.DrawPieceAt(screen, p, float64(r.s(x)), float64(r.s(y)))
	}
}

// CellToScreen converts a cell to the logical coordinates of its top-left
// corner.
func (r *Renderer) CellToScreen(c board.Cell) (int, int) {
	col, row := c.Col, 7-c.Row // Row 0 at the bottom
	if r.flipped {
		col, row = 7-c.Col, c.Row
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToCell converts logical coordinates to a cell, or NoCell when they
// fall outside the board.
func (r *Renderer) ScreenToCell(x, y int) board.Cell {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoCell
	}
	col, row := x/r.squareSize, 7-y/r.squareSize
	if r.flipped {
		col, row = 7-col, 7-row
	}
	return board.NewCell(col, row)
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
