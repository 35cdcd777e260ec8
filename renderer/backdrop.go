package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/theme"
)

// Backdrop paints the theme's vertical gradient behind the particle layer.
type Backdrop struct {
	width, height int32
	top, bottom   rl.Color
}

// NewBackdrop creates a backdrop for a w×h window.
func NewBackdrop(w, h int32) *Backdrop {
	return &Backdrop{width: w, height: h}
}

// SetPalette selects the dark or light gradient of p.
func (b *Backdrop) SetPalette(p theme.Palette, dark bool) {
	stops := p.Backdrop(dark)
	b.top = toRL(stops[0])
	b.bottom = toRL(stops[1])
}

// Resize updates the painted area.
func (b *Backdrop) Resize(w, h int32) {
	b.width, b.height = w, h
}

// Draw fills the window with the gradient.
func (b *Backdrop) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, b.top, b.bottom)
}
