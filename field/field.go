package field

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/theme"
)

// State is the renderer lifecycle state.
type State uint8

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Host owns the drawable surface and the frame loop.
type Host interface {
	Size() (w, h int)
	OnResize(fn func(w, h int)) (cancel func())
	OnFrame(fn func(dt float64, dst canvas.Surface)) (cancel func())
}

// ThemeSource supplies the active theme and reports changes.
type ThemeSource interface {
	Current() theme.Theme
	Subscribe(fn func(theme.Theme)) (cancel func())
}

// Field is one particle background instance. It owns its random source and
// particle set; nothing is shared between instances.
type Field struct {
	cfg   Config
	rng   *rand.Rand
	state State

	set    *Set
	theme  theme.Theme
	width  int
	height int

	cancels []func()

	reinits         int
	lastConnections int

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
}

// Option configures a Field.
type Option func(*Field)

// WithPerf times each phase of every frame.
func WithPerf(p *telemetry.PerfCollector) Option {
	return func(f *Field) { f.perf = p }
}

// WithCollector reports frames and regenerations for window stats.
func WithCollector(c *telemetry.Collector) Option {
	return func(f *Field) { f.collector = c }
}

// New creates an inactive field. All particle randomness comes from seed.
func New(cfg Config, seed int64, opts ...Option) *Field {
	f := &Field{
		cfg: cfg.withDefaults(),
		rng: rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Initialize discards the current set, spawns a new one for a w×h surface
// and th, and makes the field active. Attach additionally schedules frames
// and change notifications.
func (f *Field) Initialize(w, h int, th theme.Theme) *Set {
	if f.set != nil {
		f.set.Close()
	}
	f.width, f.height, f.theme = w, h, th
	f.set = Spawn(f.rng, f.cfg, w, h, th)
	f.state = Active

	slog.Debug("particle set initialized",
		"theme", th.Key,
		"motion", th.Motion.String(),
		"particles", f.set.Len(),
		"width", w,
		"height", h,
	)
	return f.set
}

// Attach binds the field to a host and theme source and makes it active.
// Resize and theme notifications regenerate the set; each host frame steps
// and renders it. Attaching an active field tears it down first.
func (f *Field) Attach(host Host, themes ThemeSource) {
	if f.state == Active {
		f.Teardown()
	}

	w, h := host.Size()
	f.Initialize(w, h, themes.Current())

	f.cancels = append(f.cancels,
		host.OnFrame(f.Frame),
		host.OnResize(func(w, h int) {
			f.reinitialize(w, h, f.theme)
		}),
		themes.Subscribe(func(th theme.Theme) {
			f.reinitialize(f.width, f.height, th)
		}),
	)
	slog.Debug("particle field active", "theme", f.theme.Key)
}

func (f *Field) reinitialize(w, h int, th theme.Theme) {
	if f.state != Active {
		return
	}
	f.Initialize(w, h, th)
	f.reinits++
	if f.collector != nil {
		f.collector.RecordReinit()
	}
}

// Frame advances the set by dt and paints it onto dst.
func (f *Field) Frame(dt float64, dst canvas.Surface) {
	if f.set == nil {
		dst.Clear()
		return
	}

	if f.perf != nil {
		f.perf.StartTick()
		f.perf.StartPhase(telemetry.PhaseStep)
	}
	f.set.Step(dt)

	if f.perf != nil {
		f.perf.StartPhase(telemetry.PhaseRender)
	}
	f.set.paint(dst)

	if f.perf != nil {
		f.perf.StartPhase(telemetry.PhaseConnect)
	}
	f.lastConnections = f.set.connections(dst)

	if f.perf != nil {
		f.perf.EndTick()
	}
	if f.collector != nil {
		f.collector.RecordFrame(f.lastConnections)
	}
}

// Teardown deregisters every callback and drops the set. It is safe to call
// any number of times.
func (f *Field) Teardown() {
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil

	if f.set != nil {
		f.set.Close()
		f.set = nil
	}
	if f.state == Active {
		slog.Debug("particle field torn down", "theme", f.theme.Key)
	}
	f.state = Inactive
}

// State returns the lifecycle state.
func (f *Field) State() State {
	return f.state
}

// Set returns the current particle set, or nil when torn down.
func (f *Field) Set() *Set {
	return f.set
}

// Theme returns the theme the current set was spawned with.
func (f *Field) Theme() theme.Theme {
	return f.theme
}

// Reinits returns how many times a notification regenerated the set.
func (f *Field) Reinits() int {
	return f.reinits
}

// LastConnections returns the line count of the most recent frame.
func (f *Field) LastConnections() int {
	return f.lastConnections
}
