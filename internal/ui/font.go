// Package ui implements the desktop board using Ebitengine.
package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularSource *text.GoTextFaceSource
	boldSource    *text.GoTextFaceSource
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 18.0
)

func init() {
	var err error
	if regularSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Printf("Failed to load regular font: %v", err)
	}
	if boldSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Printf("Failed to load bold font: %v", err)
	}
}

// face returns a face of the given logical size, scaled for HiDPI.
func face(bold bool, size, scale float64) *text.GoTextFace {
	src := regularSource
	if bold {
		src = boldSource
	}
	if src == nil {
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size * scale}
}

// drawText draws s with its top-left corner at the given scaled coordinates.
func drawText(screen *ebiten.Image, s string, f *text.GoTextFace, x, y float64, clr color.Color) {
	if f == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, f, op)
}
