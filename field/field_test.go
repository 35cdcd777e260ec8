package field

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/event"
	"github.com/pthm-cable/backdrop/theme"
)

var allMotions = []theme.Motion{
	theme.MotionDrift,
	theme.MotionWave,
	theme.MotionFlame,
	theme.MotionOrbit,
	theme.MotionLeaf,
	theme.MotionBlade,
}

func testTheme(m theme.Motion) theme.Theme {
	return theme.Theme{
		Key:    m.String(),
		Motion: m,
		Palette: theme.Palette{
			Primary:  color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 255},
			Particle: color.NRGBA{R: 0x0e, G: 0xa5, B: 0xe9, A: 255},
		},
	}
}

func spawn(seed int64, w, h int, m theme.Motion) *Set {
	return Spawn(rand.New(rand.NewSource(seed)), DefaultConfig(), w, h, testTheme(m))
}

func TestCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		w, h int
		hint int
		want int
	}{
		{"800 wide", 800, 600, 0, 53},
		{"400 wide", 400, 600, 0, 26},
		{"capped", 2000, 1000, 0, 80},
		{"zero width", 0, 600, 0, 0},
		{"negative width", -100, 600, 0, 0},
		{"zero height", 800, 0, 0, 0},
		{"narrow", 14, 600, 0, 0},
		{"hint below", 800, 600, 10, 10},
		{"hint above", 800, 600, 500, 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(cfg, tt.w, tt.h, tt.hint); got != tt.want {
				t.Errorf("Count(%d, %d, %d) = %d, want %d", tt.w, tt.h, tt.hint, got, tt.want)
			}
		})
	}
}

func TestConnectionAlpha(t *testing.T) {
	tests := []struct {
		d    float64
		want float64
	}{
		{0, 0.2},
		{40, 0.1},
		{80, 0},
		{120, 0},
	}
	for _, tt := range tests {
		got := ConnectionAlpha(tt.d, 80, 0.2)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ConnectionAlpha(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestSpawnEmptySurface(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {-10, 200}, {200, -1}} {
		s := spawn(1, size[0], size[1], theme.MotionWave)
		if s.Len() != 0 {
			t.Errorf("size %v: expected empty set, got %d", size, s.Len())
		}
		s.Step(0.016)

		rec := canvas.NewRecorder(size[0], size[1])
		if n := s.Render(rec); n != 0 {
			t.Errorf("size %v: expected no connections, got %d", size, n)
		}
		if rec.Count(canvas.OpClear) != 1 {
			t.Errorf("size %v: expected surface cleared", size)
		}
	}
}

func TestSpawnRanges(t *testing.T) {
	for _, m := range allMotions {
		s := spawn(7, 800, 600, m)
		for _, p := range s.Particles() {
			if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
				t.Errorf("%v: spawn position out of surface: (%v, %v)", m, p.X, p.Y)
			}
			if p.Radius < 1 || p.Radius >= 3 {
				t.Errorf("%v: radius %v out of [1, 3)", m, p.Radius)
			}
			if p.Opacity < 0.2 || p.Opacity >= 0.7 {
				t.Errorf("%v: opacity %v out of [0.2, 0.7)", m, p.Opacity)
			}
			if p.Life < 50 || p.Life >= 150 {
				t.Errorf("%v: life %v out of [50, 150)", m, p.Life)
			}

			switch aux := p.Aux.(type) {
			case nil:
				if m != theme.MotionDrift {
					t.Errorf("%v: missing variant component", m)
				}
			case components.Wave:
				if m != theme.MotionWave || aux.Offset < 0 || aux.Offset >= 2*math.Pi {
					t.Errorf("%v: bad wave aux %+v", m, aux)
				}
			case components.Flame:
				if m != theme.MotionFlame || aux.Flicker < 0.05 || aux.Flicker >= 0.15 {
					t.Errorf("%v: bad flame aux %+v", m, aux)
				}
				if p.VY > -0.5 {
					t.Errorf("flame should rise, vy=%v", p.VY)
				}
			case components.Orbit:
				if m != theme.MotionOrbit || aux.Radius < 20 || aux.Radius >= 70 || aux.Speed < 0.01 || aux.Speed >= 0.03 {
					t.Errorf("%v: bad orbit aux %+v", m, aux)
				}
			case components.Leaf:
				if m != theme.MotionLeaf || aux.Spin < 0.01 || aux.Spin >= 0.06 || aux.Sway < 10 || aux.Sway >= 30 {
					t.Errorf("%v: bad leaf aux %+v", m, aux)
				}
				if p.VY < -0.25 || p.VY >= 0.25 {
					t.Errorf("leaf keeps its spawned vy, got %v", p.VY)
				}
			case components.Blade:
				if m != theme.MotionBlade || aux.Spin < 0.01 || aux.Spin >= 0.04 {
					t.Errorf("%v: bad blade aux %+v", m, aux)
				}
			default:
				t.Errorf("%v: unexpected aux type %T", m, aux)
			}
		}
	}
}

func TestWaveStep(t *testing.T) {
	s := spawn(42, 800, 600, theme.MotionWave)
	if s.Len() != 53 {
		t.Fatalf("expected 53 particles, got %d", s.Len())
	}

	before := s.Particles()
	s.Step(0.016)
	after := s.Particles()

	if len(after) != len(before) {
		t.Fatalf("particle count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		extra := after[i].Y - before[i].Y - before[i].VY
		if math.Abs(extra) > 0.5+1e-9 {
			t.Errorf("particle %d: wave term %v exceeds 0.5", i, extra)
		}
		if dx := after[i].X - before[i].X; math.Abs(dx-before[i].VX) > 1e-9 {
			t.Errorf("particle %d: x moved %v, want vx %v", i, dx, before[i].VX)
		}
	}
}

func TestLeafStep(t *testing.T) {
	s := spawn(42, 800, 600, theme.MotionLeaf)

	before := s.Particles()
	s.Step(0.016)
	after := s.Particles()

	rising := 0
	for i := range before {
		sway := after[i].X - before[i].X - before[i].VX
		if math.Abs(sway) > 0.1+1e-9 {
			t.Errorf("particle %d: sway term %v exceeds 0.1", i, sway)
		}
		if dy := after[i].Y - before[i].Y; math.Abs(dy-before[i].VY) > 1e-9 {
			t.Errorf("particle %d: y moved %v, want vy %v", i, dy, before[i].VY)
		}
		if before[i].VY < 0 {
			rising++
		}
	}
	if rising == 0 {
		t.Error("expected some leaves with negative vy")
	}
}

func TestStepIgnoresNonFiniteDT(t *testing.T) {
	for _, m := range allMotions {
		s := spawn(42, 800, 600, m)
		before := s.Particles()

		s.Step(math.Inf(1))
		s.Step(math.NaN())
		s.Step(-0.016)
		if s.Clock() != 0 {
			t.Errorf("%v: expected clock 0 after rejected steps, got %v", m, s.Clock())
		}
		for i, p := range s.Particles() {
			if p.X != before[i].X || p.Y != before[i].Y {
				t.Errorf("%v: particle %d moved on a rejected step", m, i)
				break
			}
		}

		s.Step(0.016)
		for i, p := range s.Particles() {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Opacity) {
				t.Errorf("%v: particle %d is NaN", m, i)
				break
			}
		}
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	s := spawn(3, 800, 600, theme.MotionOrbit)

	for tick := 0; tick < 300; tick++ {
		s.Step(0.016)
		for i, p := range s.Particles() {
			orbit := p.Aux.(components.Orbit)
			d := math.Hypot(p.X-400, p.Y-300)
			if math.Abs(d-orbit.Radius) > 1e-9 {
				t.Fatalf("tick %d particle %d: distance %v, radius %v", tick, i, d, orbit.Radius)
			}
		}
	}
}

func TestFlameOpacityFlicker(t *testing.T) {
	s := spawn(5, 800, 600, theme.MotionFlame)
	for tick := 0; tick < 500; tick++ {
		s.Step(0.016)
	}
	for _, p := range s.Particles() {
		if p.Opacity < 0.1-1e-9 || p.Opacity > 0.5+1e-9 {
			t.Errorf("flame opacity %v outside flicker band", p.Opacity)
		}
	}
}

func TestInvariantsHoldOverTime(t *testing.T) {
	sizes := [][2]int{{800, 600}, {30, 30}, {1920, 1080}}
	for _, m := range allMotions {
		for _, size := range sizes {
			s := spawn(11, size[0], size[1], m)
			w, h := float64(size[0]), float64(size[1])
			for tick := 0; tick < 2000; tick++ {
				// Vary dt, including a stall
				dt := 0.016
				if tick%97 == 0 {
					dt = 0.25
				}
				s.Step(dt)
				for _, p := range s.Particles() {
					if p.X < -50 || p.X > w+50 || p.Y < -50 || p.Y > h+50 {
						t.Fatalf("%v %v tick %d: position (%v, %v) outside wrap band", m, size, tick, p.X, p.Y)
					}
					if p.Opacity < 0 || p.Opacity > 1 {
						t.Fatalf("%v %v tick %d: opacity %v", m, size, tick, p.Opacity)
					}
				}
			}
			if s.Len() != Count(DefaultConfig(), size[0], size[1], 0) {
				t.Errorf("%v %v: set size changed to %d", m, size, s.Len())
			}
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	for _, m := range allMotions {
		a := spawn(99, 640, 480, m)
		b := spawn(99, 640, 480, m)

		dts := []float64{0.016, 0.016, 0.033, 0.008, 0.016}
		for i := 0; i < 400; i++ {
			dt := dts[i%len(dts)]
			a.Step(dt)
			b.Step(dt)
		}

		pa, pb := a.Particles(), b.Particles()
		if len(pa) != len(pb) {
			t.Fatalf("%v: lengths differ", m)
		}
		for i := range pa {
			if pa[i] != pb[i] {
				t.Fatalf("%v particle %d diverged: %+v vs %+v", m, i, pa[i], pb[i])
			}
		}
	}
}

func TestStepZeroDT(t *testing.T) {
	for _, m := range allMotions {
		if m == theme.MotionOrbit || m == theme.MotionFlame {
			// Position or opacity is recomputed from state even without motion
			continue
		}
		s := spawn(8, 800, 600, m)
		before := s.Particles()
		s.Step(0)
		after := s.Particles()
		for i := range before {
			if before[i] != after[i] {
				t.Errorf("%v: particle %d changed on zero dt", m, i)
			}
		}
	}
}

func TestRenderOps(t *testing.T) {
	for _, m := range allMotions {
		s := spawn(21, 800, 600, m)
		n := s.Len()
		rec := canvas.NewRecorder(800, 600)
		s.Render(rec)

		if rec.Ops[0].Kind != canvas.OpClear {
			t.Errorf("%v: first op should be clear, got %v", m, rec.Ops[0].Kind)
		}

		switch m {
		case theme.MotionDrift:
			if rec.Count(canvas.OpCircle) != n {
				t.Errorf("drift: expected %d circles, got %d", n, rec.Count(canvas.OpCircle))
			}
		case theme.MotionWave:
			if rec.Count(canvas.OpPolygon) != 3 {
				t.Errorf("wave: expected 3 bands, got %d", rec.Count(canvas.OpPolygon))
			}
			if rec.Count(canvas.OpCircle) != n || rec.Count(canvas.OpRing) != n {
				t.Errorf("wave: expected %d circles and ripples", n)
			}
			if rec.Ops[1].Kind != canvas.OpPolygon {
				t.Errorf("wave: bands should be painted before particles")
			}
		case theme.MotionFlame:
			ellipses := rec.Filter(canvas.OpEllipse)
			if len(ellipses) != n {
				t.Errorf("flame: expected %d ellipses, got %d", n, len(ellipses))
			}
			for _, op := range ellipses {
				if !op.Paint.Radial || op.Paint.Outer.R != 0xff || op.Paint.Outer.G != 0x66 {
					t.Errorf("flame: expected gradient to #ff6600, got %+v", op.Paint)
				}
				if math.Abs(op.RY-op.RX*1.5) > 1e-9 {
					t.Errorf("flame: expected ry = 1.5 rx, got %v %v", op.RX, op.RY)
				}
			}
		case theme.MotionOrbit:
			if rec.Count(canvas.OpCircle) != n || rec.Count(canvas.OpRing) != n {
				t.Errorf("orbit: expected %d planets and trails", n)
			}
			for _, op := range rec.Filter(canvas.OpRing) {
				if op.Paint.Inner.A > 255/10 {
					t.Errorf("orbit: trail alpha %d too strong", op.Paint.Inner.A)
				}
			}
		case theme.MotionLeaf:
			for _, op := range rec.Filter(canvas.OpEllipse) {
				c := op.Paint.Inner
				c.A = 255
				found := false
				for _, lc := range leafColors {
					if lc == c {
						found = true
					}
				}
				if !found {
					t.Errorf("leaf: color %v not a foliage color", c)
				}
			}
		case theme.MotionBlade:
			if rec.Count(canvas.OpRect) != n || rec.Count(canvas.OpPolygon) != n {
				t.Errorf("blade: expected %d bodies and tips", n)
			}
		}
	}
}

func TestRenderConnections(t *testing.T) {
	// On a 60×40 surface every pair is closer than 80 px, so all 4 particles connect.
	for _, m := range allMotions {
		s := spawn(13, 60, 40, m)
		if s.Len() != 4 {
			t.Fatalf("expected 4 particles, got %d", s.Len())
		}
		rec := canvas.NewRecorder(60, 40)
		lines := s.Render(rec)

		want := 0
		if m == theme.MotionWave || m == theme.MotionBlade {
			want = 6
		}
		if lines != want || rec.Count(canvas.OpLine) != want {
			t.Errorf("%v: expected %d lines, got %d (recorded %d)", m, want, lines, rec.Count(canvas.OpLine))
		}

		for _, op := range rec.Filter(canvas.OpLine) {
			d := math.Hypot(op.X2-op.X, op.Y2-op.Y)
			wantA := uint8(math.Floor((1 - d/80) * 0.2 * 255))
			if op.Paint.Inner.A != wantA {
				t.Errorf("%v: line alpha %d, want %d for d=%v", m, op.Paint.Inner.A, wantA, d)
			}
			if op.Width != 0.5 {
				t.Errorf("%v: line width %v, want 0.5", m, op.Width)
			}
		}
	}
}

func TestLeafColorIndex(t *testing.T) {
	tests := []struct {
		t, x float64
		want int
	}{
		{0, 0, 0},
		{0.5, 1.7, 2},
		{1, 2, 0},
		{0, -0.5, 2},
		{0, -50, 1},
	}
	for _, tt := range tests {
		if got := LeafColorIndex(tt.t, tt.x); got != tt.want {
			t.Errorf("LeafColorIndex(%v, %v) = %d, want %d", tt.t, tt.x, got, tt.want)
		}
	}
}

type frameArgs struct {
	dt  float64
	dst canvas.Surface
}

type fakeHost struct {
	w, h   int
	resize event.Signal[[2]int]
	frame  event.Signal[frameArgs]
}

func (h *fakeHost) Size() (int, int) { return h.w, h.h }

func (h *fakeHost) OnResize(fn func(w, h int)) func() {
	return h.resize.Subscribe(func(s [2]int) { fn(s[0], s[1]) })
}

func (h *fakeHost) OnFrame(fn func(dt float64, dst canvas.Surface)) func() {
	return h.frame.Subscribe(func(a frameArgs) { fn(a.dt, a.dst) })
}

func (h *fakeHost) setSize(w, hh int) {
	h.w, h.h = w, hh
	h.resize.Emit([2]int{w, hh})
}

type fakeThemes struct {
	cur theme.Theme
	sig event.Signal[theme.Theme]
}

func (f *fakeThemes) Current() theme.Theme { return f.cur }

func (f *fakeThemes) Subscribe(fn func(theme.Theme)) func() { return f.sig.Subscribe(fn) }

func (f *fakeThemes) set(th theme.Theme) {
	f.cur = th
	f.sig.Emit(th)
}

func TestFieldLifecycle(t *testing.T) {
	host := &fakeHost{w: 800, h: 600}
	themes := &fakeThemes{cur: testTheme(theme.MotionWave)}
	f := New(DefaultConfig(), 1)

	if f.State() != Inactive {
		t.Fatalf("new field should be inactive")
	}

	f.Attach(host, themes)
	if f.State() != Active {
		t.Fatalf("expected active after Attach")
	}
	if f.Set().Len() != 53 {
		t.Errorf("expected 53 particles, got %d", f.Set().Len())
	}
	if host.frame.Len() != 1 || host.resize.Len() != 1 || themes.sig.Len() != 1 {
		t.Errorf("expected one subscription each, got frame=%d resize=%d theme=%d",
			host.frame.Len(), host.resize.Len(), themes.sig.Len())
	}

	// Resize regenerates at the new width
	host.setSize(400, 600)
	if f.Set().Len() != 26 {
		t.Errorf("expected 26 particles after resize, got %d", f.Set().Len())
	}

	// Theme change regenerates with the new profile
	themes.set(testTheme(theme.MotionBlade))
	if f.Set().Motion() != theme.MotionBlade {
		t.Errorf("expected blade set, got %v", f.Set().Motion())
	}
	if f.Set().Len() != 26 {
		t.Errorf("theme change should keep the current size, got %d particles", f.Set().Len())
	}
	if f.Reinits() != 2 {
		t.Errorf("expected 2 reinits, got %d", f.Reinits())
	}

	// Frames step and render
	rec := canvas.NewRecorder(400, 600)
	host.frame.Emit(frameArgs{dt: 0.016, dst: rec})
	if f.Set().Clock() != 0.016 {
		t.Errorf("expected clock 0.016, got %v", f.Set().Clock())
	}
	if rec.Count(canvas.OpRect) != 26 {
		t.Errorf("expected 26 blades drawn, got %d", rec.Count(canvas.OpRect))
	}

	f.Teardown()
	if f.State() != Inactive || f.Set() != nil {
		t.Errorf("expected inactive with no set after teardown")
	}
	if host.frame.Len() != 0 || host.resize.Len() != 0 || themes.sig.Len() != 0 {
		t.Errorf("teardown left subscriptions: frame=%d resize=%d theme=%d",
			host.frame.Len(), host.resize.Len(), themes.sig.Len())
	}

	// Idempotent, and late notifications are ignored
	f.Teardown()
	host.setSize(800, 600)
	themes.set(testTheme(theme.MotionWave))
	if f.Set() != nil || f.Reinits() != 2 {
		t.Errorf("notifications after teardown should not regenerate")
	}
}

func TestFieldReattach(t *testing.T) {
	host := &fakeHost{w: 300, h: 200}
	themes := &fakeThemes{cur: testTheme(theme.MotionLeaf)}
	f := New(DefaultConfig(), 2)

	f.Attach(host, themes)
	f.Attach(host, themes)

	if host.frame.Len() != 1 {
		t.Errorf("re-attaching should not leak frame callbacks, got %d", host.frame.Len())
	}
	f.Teardown()
}

func TestFieldWithProvider(t *testing.T) {
	provider := theme.NewProvider([]theme.Theme{
		testTheme(theme.MotionWave),
		testTheme(theme.MotionOrbit),
	}, 0)
	host := &fakeHost{w: 800, h: 600}
	f := New(DefaultConfig(), 4)
	f.Attach(host, provider)
	defer f.Teardown()

	provider.Next()
	if f.Set().Motion() != theme.MotionOrbit {
		t.Errorf("expected orbit after provider change, got %v", f.Set().Motion())
	}

	provider.SetParticleHint(5)
	if f.Set().Len() != 5 {
		t.Errorf("expected hint to cap set at 5, got %d", f.Set().Len())
	}
}

func TestFieldSameSeedSameSet(t *testing.T) {
	a := New(DefaultConfig(), 77)
	b := New(DefaultConfig(), 77)
	th := testTheme(theme.MotionFlame)

	pa := a.Initialize(500, 400, th).Particles()
	pb := b.Initialize(500, 400, th).Particles()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs between same-seed fields", i)
		}
	}
}

func TestInitializeActivates(t *testing.T) {
	f := New(DefaultConfig(), 1)
	if f.State() != Inactive {
		t.Fatalf("expected new field inactive, got %s", f.State())
	}

	f.Initialize(300, 200, testTheme(theme.MotionDrift))
	if f.State() != Active {
		t.Errorf("expected active after initialize, got %s", f.State())
	}
	if f.Set() == nil || f.Set().Len() != 20 {
		t.Errorf("expected 20 particles after initialize")
	}

	f.Teardown()
	if f.State() != Inactive || f.Set() != nil {
		t.Errorf("expected inactive and no set after teardown, got %s", f.State())
	}
}
