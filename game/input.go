package game

import rl "github.com/gen2brain/raylib-go/raylib"

var themeKeys = [...]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Theme selection
	for i, key := range themeKeys {
		if rl.IsKeyPressed(key) && i < len(g.provider.Themes()) {
			g.provider.SelectIndex(i)
		}
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		g.provider.Next()
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		g.provider.Previous()
	}

	if rl.IsKeyPressed(rl.KeyD) {
		g.provider.ToggleDark()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.panel.Toggle()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if int32(w) == g.screenWidth && int32(h) == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = int32(w), int32(h)

	g.surface.Resize(w, h)
	g.layer.Resize(int32(w), int32(h))
	g.backdrop.Resize(int32(w), int32(h))
	g.panel.SetPosition(int32(w)-panelWidth-10, 10)

	// Regenerates the particle set
	g.host.resize(w, h)
}
