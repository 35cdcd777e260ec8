package game

import (
	"fmt"
	"log/slog"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/theme"
)

// core is the state shared by the window and headless runners.
type core struct {
	cfg      *config.Config
	opts     Options
	provider *theme.Provider
	field    *field.Field
	host     signals
	tick     int32

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	cancels []func()
	closed  bool
}

func newCore(cfg *config.Config, opts Options, w, h int) (*core, error) {
	themes, err := theme.LoadAll(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}
	provider := theme.NewProvider(themes, cfg.Derived.DefaultThemeIndex)

	statePath := opts.StatePath
	if statePath == "" {
		statePath = cfg.State.Path
	}
	if statePath != "" {
		sel, ok, err := theme.LoadSelection(statePath)
		if err != nil {
			slog.Warn("ignoring saved theme selection", "path", statePath, "error", err)
		} else if ok {
			provider.Restore(sel)
		}
	}
	if opts.Theme != "" {
		if err := provider.Select(opts.Theme); err != nil {
			return nil, err
		}
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	c := &core{
		cfg:       cfg,
		opts:      opts,
		provider:  provider,
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(statsWindow, cfg.Derived.FrameDT32),
		output:    output,
	}
	c.host.width, c.host.height = w, h

	c.field = field.New(field.ConfigFrom(cfg.Field), opts.Seed,
		field.WithPerf(c.perf),
		field.WithCollector(c.collector),
	)
	c.field.Attach(&c.host, provider)
	c.cancels = append(c.cancels, theme.Persist(provider, statePath))

	return c, nil
}

// advance emits one frame to the field, then handles per-tick telemetry.
func (c *core) advance(dt float64, dst canvas.Surface) {
	c.host.frame(dt, dst)
	c.tick++
	c.flushTelemetry()
	c.writeSnapshot()
}

// flushTelemetry writes a stats window when one is complete.
func (c *core) flushTelemetry() {
	if !c.collector.ShouldFlush(c.tick) {
		return
	}

	stats := c.collector.Flush(c.tick, c.sample())
	perfStats := c.perf.Stats()

	if c.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := c.output.WriteStats(stats); err != nil {
		slog.Error("failed to write field stats", "error", err)
	}
	if err := c.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sample summarizes the current set for window stats.
func (c *core) sample() telemetry.FieldSample {
	th := c.field.Theme()
	s := telemetry.FieldSample{
		Theme:  th.Key,
		Motion: th.Motion.String(),
	}
	set := c.field.Set()
	if set == nil {
		return s
	}

	particles := set.Particles()
	s.Particles = len(particles)
	s.Opacities = make([]float64, len(particles))
	s.Speeds = make([]float64, len(particles))
	for i, p := range particles {
		s.Opacities[i] = p.Opacity
		s.Speeds[i] = math.Hypot(p.VX, p.VY)
	}
	return s
}

// snapshot captures the current set.
func (c *core) snapshot() *telemetry.Snapshot {
	th := c.field.Theme()
	w, h := c.host.Size()
	snap := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		Seed:    c.opts.Seed,
		Width:   w,
		Height:  h,
		Theme:   th.Key,
		Motion:  th.Motion.String(),
		Tick:    c.tick,
	}
	set := c.field.Set()
	if set == nil {
		return snap
	}

	snap.Clock = set.Clock()
	snap.BandPhase = set.BandPhase()
	for _, p := range set.Particles() {
		snap.Particles = append(snap.Particles, particleState(p))
	}
	return snap
}

// particleState flattens p, including its profile variant, for a snapshot.
func particleState(p field.Particle) telemetry.ParticleState {
	col, _ := colorful.MakeColor(p.Color)
	ps := telemetry.ParticleState{
		X:       p.X,
		Y:       p.Y,
		VX:      p.VX,
		VY:      p.VY,
		Radius:  p.Radius,
		Opacity: p.Opacity,
		Color:   col.Hex(),
		Angle:   p.Angle,
		Speed:   p.Speed,
		Life:    p.Life,
	}

	switch aux := p.Aux.(type) {
	case components.Wave:
		ps.Offset = aux.Offset
	case components.Flame:
		ps.Flicker = aux.Flicker
	case components.Orbit:
		ps.OrbitRadius = aux.Radius
		ps.OrbitSpeed = aux.Speed
	case components.Leaf:
		ps.Spin = aux.Spin
		ps.Sway = aux.Sway
	case components.Blade:
		ps.Spin = aux.Spin
		ps.Metallic = aux.Metallic
	}
	return ps
}

// writeSnapshot saves a snapshot when the snapshot interval is due.
func (c *core) writeSnapshot() {
	if c.opts.SnapshotEvery <= 0 || c.tick%int32(c.opts.SnapshotEvery) != 0 {
		return
	}
	path, err := c.output.WriteSnapshot(c.snapshot())
	if err != nil {
		slog.Error("failed to write snapshot", "error", err)
		return
	}
	if path != "" {
		slog.Info("snapshot saved", "path", path, "tick", c.tick)
	}
}

// close detaches the field and flushes output. Later calls do nothing.
func (c *core) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.field.Teardown()
	return c.output.Close()
}
