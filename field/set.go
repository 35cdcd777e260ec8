package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/theme"
)

// Set is one generation of particles for a fixed surface size and theme.
// Each particle is an entity with the shared components plus the single
// variant component of the set's motion profile.
type Set struct {
	cfg     Config
	world   *ecs.World
	width   float64
	height  float64
	motion  theme.Motion
	palette theme.Palette
	count   int

	clock     float64 // Accumulated elapsed time
	bandPhase float64 // Wave background phase

	base    *ecs.Filter4[components.Position, components.Velocity, components.Appearance, components.Motion]
	profile profile

	// Connection pass scratch, reused across frames
	grid   *grid
	points []canvas.Point
	colors []color.NRGBA
}

// Particle is a read-only copy of one particle. Aux holds the profile
// variant component (components.Wave, components.Flame, ...) or nil for drift.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   color.NRGBA
	Angle   float64
	Speed   float64
	Life    float64
	Aux     any
}

// Spawn creates a particle set for a width×height surface using th's motion
// profile and particle color. All randomness is drawn here.
func Spawn(rng *rand.Rand, cfg Config, width, height int, th theme.Theme) *Set {
	cfg = cfg.withDefaults()
	world := ecs.NewWorld()

	s := &Set{
		cfg:     cfg,
		world:   world,
		width:   float64(width),
		height:  float64(height),
		motion:  th.Motion,
		palette: th.Palette,
		base: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Appearance,
			components.Motion,
		](world),
	}
	s.profile = newProfile(s)

	n := Count(cfg, width, height, th.ParticleHint)
	for i := 0; i < n; i++ {
		pos, vel, app, mot := spawnBase(rng, s.width, s.height, th.Palette.Particle)
		s.profile.spawn(rng, &pos, &vel, &app, &mot)
	}
	s.count = n

	return s
}

// spawnBase draws the shared state every profile starts from.
func spawnBase(rng *rand.Rand, w, h float64, col color.NRGBA) (components.Position, components.Velocity, components.Appearance, components.Motion) {
	pos := components.Position{
		X: rng.Float64() * w,
		Y: rng.Float64() * h,
	}
	vel := components.Velocity{
		X: (rng.Float64() - 0.5) * 0.5,
		Y: (rng.Float64() - 0.5) * 0.5,
	}
	app := components.Appearance{
		Radius:  rng.Float64()*2 + 1,
		Opacity: rng.Float64()*0.5 + 0.2,
		Color:   col,
	}
	mot := components.Motion{
		Angle: rng.Float64() * 2 * math.Pi,
		Speed: rng.Float64()*0.5 + 0.2,
		Life:  rng.Float64()*100 + 50,
	}
	return pos, vel, app, mot
}

// Len returns the number of particles.
func (s *Set) Len() int {
	return s.count
}

// Motion returns the profile the set was spawned with.
func (s *Set) Motion() theme.Motion {
	return s.motion
}

// Size returns the surface size the set was spawned for.
func (s *Set) Size() (w, h float64) {
	return s.width, s.height
}

// Clock returns the accumulated elapsed time.
func (s *Set) Clock() float64 {
	return s.clock
}

// BandPhase returns the wave background phase.
func (s *Set) BandPhase() float64 {
	return s.bandPhase
}

// Particles returns a snapshot in spawn order.
func (s *Set) Particles() []Particle {
	out := make([]Particle, 0, s.count)
	if s.world == nil {
		return out
	}
	query := s.base.Query()
	for query.Next() {
		pos, vel, app, mot := query.Get()
		out = append(out, Particle{
			X:       pos.X,
			Y:       pos.Y,
			VX:      vel.X,
			VY:      vel.Y,
			Radius:  app.Radius,
			Opacity: app.Opacity,
			Color:   app.Color,
			Angle:   mot.Angle,
			Speed:   mot.Speed,
			Life:    mot.Life,
			Aux:     s.profile.aux(query.Entity()),
		})
	}
	return out
}

// Step advances every particle by one frame of dt seconds and applies the
// wrap correction. Per-frame rates are scaled by dt relative to the
// reference frame time; dt=0 leaves positions unchanged. Negative, NaN and
// infinite dt are ignored.
func (s *Set) Step(dt float64) {
	if s.world == nil || !(dt >= 0) || math.IsInf(dt, 1) {
		return
	}
	k := dt / s.cfg.ReferenceDT
	k = min(k, maxFrameScale)

	s.clock += dt
	s.profile.advance(k)
	s.wrap()
}

// maxFrameScale bounds the catch-up after a long stall.
const maxFrameScale = 4

// wrap moves particles that left the surface plus margin to the opposite edge
// and clamps opacity.
func (s *Set) wrap() {
	m := s.cfg.WrapMargin
	query := s.base.Query()
	for query.Next() {
		pos, _, app, _ := query.Get()

		if pos.X < -m {
			pos.X = s.width + m
		} else if pos.X > s.width+m {
			pos.X = -m
		}
		if pos.Y < -m {
			pos.Y = s.height + m
		} else if pos.Y > s.height+m {
			pos.Y = -m
		}

		app.Opacity = canvas.Clamp01(app.Opacity)
	}
}

// Close releases the set's storage. A closed set is empty.
func (s *Set) Close() {
	s.world = nil
	s.profile = nil
	s.count = 0
}
