package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/theme"
	"github.com/pthm-cable/backdrop/ui"
)

const (
	layerOpacity = 0.3
	panelWidth   = 220
	controlsText = "1-6: Theme | </>: Cycle | D: Dark/Light | Space: Pause | H: HUD | P: Panel | F11: Fullscreen"
)

// Game runs the field in a raylib window over the theme backdrop.
type Game struct {
	*core

	surface  *renderer.Surface
	layer    *renderer.Layer
	backdrop *renderer.Backdrop

	hud   *ui.HUD
	panel *ui.ThemePanel

	screenWidth  int32
	screenHeight int32
	paused       bool
	showHUD      bool
}

// NewGame creates a window runner. The raylib window must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	c, err := newCore(cfg, opts, w, h)
	if err != nil {
		return nil, err
	}

	g := &Game{
		core:         c,
		surface:      renderer.NewSurface(w, h),
		layer:        renderer.NewLayer(int32(w), int32(h), layerOpacity),
		backdrop:     renderer.NewBackdrop(int32(w), int32(h)),
		hud:          ui.NewHUD(),
		panel:        ui.NewThemePanel(int32(w)-panelWidth-10, 10, panelWidth, cfg.Field.MaxParticles),
		screenWidth:  int32(w),
		screenHeight: int32(h),
		showHUD:      true,
	}
	g.layer.Init()
	g.updateBackdrop()

	g.cancels = append(g.cancels,
		c.provider.Subscribe(func(theme.Theme) { g.updateBackdrop() }),
		c.provider.SubscribeDark(func(bool) { g.updateBackdrop() }),
	)

	slog.Info("window field ready",
		"width", w,
		"height", h,
		"theme", c.provider.Current().Key,
		"particles", c.field.Set().Len(),
	)
	return g, nil
}

func (g *Game) updateBackdrop() {
	g.backdrop.SetPalette(g.provider.Current().Palette, g.provider.Dark())
}

// Update processes input and window events.
func (g *Game) Update() {
	g.handleInput()
}

// Draw renders one frame: backdrop, particle layer, then overlays.
// The field advances by the frame time unless paused.
func (g *Game) Draw() {
	dt := float64(rl.GetFrameTime())
	if g.paused {
		dt = 0
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.backdrop.Draw()

	g.layer.Begin()
	g.advance(dt, g.surface)
	g.layer.End()
	g.layer.Draw()

	if g.showHUD {
		g.drawHUD()
	}
	g.panel.Draw(g.provider)

	rl.EndDrawing()
	g.perf.RecordFrame()
}

func (g *Game) drawHUD() {
	th := g.field.Theme()
	particles := 0
	if set := g.field.Set(); set != nil {
		particles = set.Len()
	}
	g.hud.Draw(ui.HUDData{
		Title:       "Backdrop",
		Theme:       th.Name,
		Motion:      th.Motion.String(),
		Particles:   particles,
		Connections: g.field.LastConnections(),
		Reinits:     g.field.Reinits(),
		Tick:        g.tick,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		Dark:        g.provider.Dark(),
		Hint:        g.provider.ParticleHint(),
	})
	g.hud.DrawControls(g.screenHeight, controlsText)
}

// Tick returns the number of rendered frames.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases GPU resources and flushes output.
func (g *Game) Unload() {
	if err := g.close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.layer.Unload()
}
