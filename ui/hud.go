package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the status HUD shows.
type HUDData struct {
	Title       string
	Theme       string
	Motion      string
	Particles   int
	Connections int
	Reinits     int
	Tick        int32
	FPS         int32
	Paused      bool
	Dark        bool
	Hint        int
}

// HUD renders the status heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	height := int32(72)
	if data.Paused {
		height += 20
	}
	h.renderer.DrawPanel(4, 4, 540, height)

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(StatusLine(data), 10, 35, 16, rl.LightGray)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Regenerated: %d", data.Tick, data.FPS, data.Reinits),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// StatusLine formats the theme and particle summary line.
func StatusLine(data HUDData) string {
	mode := "dark"
	if !data.Dark {
		mode = "light"
	}
	line := fmt.Sprintf("%s (%s, %s) | Particles: %d | Lines: %d",
		data.Theme, data.Motion, mode, data.Particles, data.Connections)
	if data.Hint > 0 {
		line += fmt.Sprintf(" | Cap: %d", data.Hint)
	}
	return line
}
