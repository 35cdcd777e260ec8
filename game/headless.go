package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/canvas/raster"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/theme"
)

// Headless drives the field at a fixed timestep without a window. Frames go
// to a draw-call recorder, or to a raster surface on PNG export ticks.
type Headless struct {
	*core

	dt       float64
	recorder *canvas.Recorder
	raster   *raster.Surface

	frameEvery int
	framesDir  string
}

// NewHeadless creates a headless runner for a w×h surface.
func NewHeadless(cfg *config.Config, opts Options, w, h int) (*Headless, error) {
	c, err := newCore(cfg, opts, w, h)
	if err != nil {
		return nil, err
	}

	hl := &Headless{
		core:       c,
		dt:         cfg.Field.FrameDT,
		recorder:   canvas.NewRecorder(w, h),
		frameEvery: opts.FrameEvery,
		framesDir:  opts.FramesDir,
	}
	if hl.frameEvery <= 0 {
		hl.frameEvery = cfg.Headless.FrameEvery
	}
	if hl.framesDir != "" {
		if err := os.MkdirAll(hl.framesDir, 0o755); err != nil {
			c.close()
			return nil, fmt.Errorf("creating frames dir: %w", err)
		}
		hl.raster = raster.New(w, h)
	}

	slog.Info("headless field ready",
		"width", w,
		"height", h,
		"theme", c.provider.Current().Key,
		"particles", c.field.Set().Len(),
	)
	return hl, nil
}

// Step advances one tick.
func (hl *Headless) Step() {
	if hl.exportDue() {
		hl.raster.SetBackground(hl.provider.Current().Palette.Backdrop(hl.provider.Dark())[0])
		hl.advance(hl.dt, hl.raster)
		hl.exportFrame()
		return
	}
	hl.advance(hl.dt, hl.recorder)
}

func (hl *Headless) exportDue() bool {
	return hl.raster != nil && hl.frameEvery > 0 && (hl.tick+1)%int32(hl.frameEvery) == 0
}

func (hl *Headless) exportFrame() {
	path := filepath.Join(hl.framesDir, fmt.Sprintf("frame_%06d.png", hl.tick))
	if err := hl.raster.SavePNG(path); err != nil {
		slog.Error("failed to export frame", "path", path, "error", err)
	}
}

// Resize changes the surface size; the field regenerates for it.
func (hl *Headless) Resize(w, h int) {
	if !hl.host.resize(w, h) {
		return
	}
	hl.recorder = canvas.NewRecorder(w, h)
	if hl.raster != nil {
		hl.raster.Close()
		hl.raster = raster.New(w, h)
	}
	slog.Info("headless surface resized", "width", w, "height", h, "particles", hl.field.Set().Len())
}

// Tick returns the number of completed ticks.
func (hl *Headless) Tick() int32 {
	return hl.tick
}

// Field returns the running field.
func (hl *Headless) Field() *field.Field {
	return hl.field
}

// Provider returns the theme provider.
func (hl *Headless) Provider() *theme.Provider {
	return hl.provider
}

// Recorder returns the draw calls of the last non-exported frame.
func (hl *Headless) Recorder() *canvas.Recorder {
	return hl.recorder
}

// Close tears down the field and flushes output files.
func (hl *Headless) Close() error {
	if hl.raster != nil {
		hl.raster.Close()
		hl.raster = nil
	}
	return hl.close()
}
