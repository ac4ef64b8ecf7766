package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler samples mouse and keyboard input once per frame.
type InputHandler struct {
	mouseX, mouseY int // Logical coordinates (unscaled)
	clicked        bool
	keys           []ebiten.Key
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update samples the input state. scale is the HiDPI factor of the screen.
func (ih *InputHandler) Update(scale float64) {
	rawX, rawY := ebiten.CursorPosition()
	if scale < 1.0 {
		scale = 1.0
	}
	ih.mouseX = int(float64(rawX) / scale)
	ih.mouseY = int(float64(rawY) / scale)
	ih.clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// Clicked reports whether the left button was pressed this frame.
func (ih *InputHandler) Clicked() bool {
	return ih.clicked
}

// JustPressedKeys returns the keys pressed this frame.
func (ih *InputHandler) JustPressedKeys() []ebiten.Key {
	return ih.keys
}
