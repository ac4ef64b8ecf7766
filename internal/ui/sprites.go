package ui

import (
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chesscore/internal/board"
)

// Piece glyphs on a 45x45 canvas. FILL and LINE are replaced per color.
var pieceGlyphs = [6]string{
	board.Pawn: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M22.5 9a4 4 0 0 0-3.2 6.4A6.5 6.5 0 0 0 17 25.5c-3 1.2-6 4.2-6 10.5h23c0-6.3-3-9.3-6-10.5a6.5 6.5 0 0 0-2.3-10.1A4 4 0 0 0 22.5 9z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
</svg>`,
	board.Knight: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M22 10c10.5 1 16.5 8 16 29H15c0-9 10-6.5 8-21" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M24 18c.4 2.9-5.5 7.4-8 9-3 2-2.8 4.3-5 4-1-.9 1.4-3 0-3-1 0 .2 1.2-1 2-1 0-4 1-4-4 0-2 6-12 6-12s1.9-1.9 2-3.5c-.7-1-.5-2-.5-3 1-1 3 2.5 3 2.5h2s.8-2 2.5-3c1 0 1 3 1 3" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="12" cy="24" r="1" fill="LINE"/>
</svg>`,
	board.Bishop: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M9 36c3.4-1 10.1.4 13.5-2 3.4 2.4 10.1 1 13.5 2 0 0 1.6.5 3 2-.7 1-1.6 1-3 .5-3.4-1-10.1.5-13.5-1-3.4 1.5-10.1 0-13.5 1-1.4.5-2.3.5-3-.5 1.4-2 3-2 3-2z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M15 32c2.5 2.5 12.5 2.5 15 0 .5-1.5 0-2 0-2 0-2.5-2.5-4-2.5-4 5.5-1.5 6-11.5-5-15.5-11 4-10.5 14-5 15.5 0 0-2.5 1.5-2.5 4 0 0-.5.5 0 2z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="22.5" cy="8" r="2.5" fill="FILL" stroke="LINE" stroke-width="1.5"/>
</svg>`,
	board.Rook: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M9 39h27v-3H9zM12 36v-4h21v4zM11 14V9h4v2h5V9h5v2h5V9h4v5" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M34 14l-3 3H14l-3-3zM31 17v12.5H14V17zM31 29.5l1.5 2.5h-20l1.5-2.5z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
</svg>`,
	board.Queen: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M9 26c8.5-1.5 21-1.5 27 0l2.5-12.5L31 25l-.3-14.1-5.2 13.6-3-14.5-3 14.5-5.2-13.6L14 25 6.5 13.5z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M9 26c0 2 1.5 2 2.5 4 1 1.5 1 1 .5 3.5-1.5 1-1.5 2.5-1.5 2.5-1.5 1.5.5 2.5.5 2.5 6.5 1 16.5 1 23 0 0 0 1.5-1 0-2.5 0 0 .5-1.5-1-2.5-.5-2.5-.5-2 .5-3.5 1-2 2.5-2 2.5-4-8.5-1.5-18.5-1.5-27 0z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<circle cx="6" cy="12" r="2" fill="FILL" stroke="LINE"/>
<circle cx="14" cy="9" r="2" fill="FILL" stroke="LINE"/>
<circle cx="22.5" cy="8" r="2" fill="FILL" stroke="LINE"/>
<circle cx="31" cy="9" r="2" fill="FILL" stroke="LINE"/>
<circle cx="39" cy="12" r="2" fill="FILL" stroke="LINE"/>
</svg>`,
	board.King: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45">
<path d="M22.5 11.6V6M20 8h5" fill="none" stroke="LINE" stroke-width="1.5"/>
<path d="M22.5 25s4.5-7.5 3-10.5c0 0-1-2.5-3-2.5s-3 2.5-3 2.5c-1.5 3 3 10.5 3 10.5" fill="FILL" stroke="LINE" stroke-width="1.5"/>
<path d="M11.5 37c5.5 3.5 15.5 3.5 21 0v-7s9-4.5 6-10.5c-4-6.5-13.5-3.5-16 4V27v-3.5c-3.5-7.5-13-10.5-16-4-3 6 5 10 5 10z" fill="FILL" stroke="LINE" stroke-width="1.5"/>
</svg>`,
}

var glyphColors = [2]*strings.Replacer{
	board.White: strings.NewReplacer("FILL", "#ffffff", "LINE", "#000000"),
	board.Black: strings.NewReplacer("FILL", "#202020", "LINE", "#000000"),
}

type spriteKey struct {
	Type  board.PieceType
	Color board.Color
}

// SpriteManager rasterizes the piece glyphs once per size.
type SpriteManager struct {
	pieces      map[spriteKey]*ebiten.Image
	size        int
	renderScale float64 // Render at higher resolution for quality
	scale       float64
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[spriteKey]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
		scale:       1.0,
	}
	sm.loadPieces()
	return sm
}

// SetScale sets the HiDPI scale used when drawing.
func (sm *SpriteManager) SetScale(scale float64) {
	sm.scale = scale
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for pt := board.Pawn; pt <= board.King; pt++ {
		for _, c := range []board.Color{board.White, board.Black} {
			src := glyphColors[c].Replace(pieceGlyphs[pt])
			icon, err := oksvg.ReadIconStream(strings.NewReader(src))
			if err != nil {
				log.Printf("Failed to parse glyph for %s %s: %v", c, pt, err)
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[spriteKey{pt, c}] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// DrawPieceAt draws a piece with its top-left corner at the given pixel
// coordinates (already scaled).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p *board.Piece, x, y float64) {
	if p == nil {
		return
	}
	sprite := sm.pieces[spriteKey{p.Type, p.Color}]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	s := sm.scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
