package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func toRL(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
