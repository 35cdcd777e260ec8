package field

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/backdrop/canvas"
	"github.com/pthm-cable/backdrop/components"
	"github.com/pthm-cable/backdrop/theme"
)

// profile is the per-motion behaviour of a set. Exactly one implementation is
// bound at spawn, and it only touches its own variant component.
type profile interface {
	spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion)
	advance(k float64)
	draw(dst canvas.Surface)
	aux(e ecs.Entity) any
}

func newProfile(s *Set) profile {
	switch s.motion {
	case theme.MotionWave:
		return newWaveProfile(s)
	case theme.MotionFlame:
		return newFlameProfile(s)
	case theme.MotionOrbit:
		return newOrbitProfile(s)
	case theme.MotionLeaf:
		return newLeafProfile(s)
	case theme.MotionBlade:
		return newBladeProfile(s)
	default:
		return newDriftProfile(s)
	}
}

// driftProfile moves particles in a straight line.
type driftProfile struct {
	set    *Set
	mapper *ecs.Map4[components.Position, components.Velocity, components.Appearance, components.Motion]
}

func newDriftProfile(s *Set) *driftProfile {
	return &driftProfile{
		set:    s,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Appearance, components.Motion](s.world),
	}
}

func (p *driftProfile) spawn(_ *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	p.mapper.NewEntity(pos, vel, app, mot)
}

func (p *driftProfile) advance(k float64) {
	query := p.set.base.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()
		pos.X += vel.X * k
		pos.Y += vel.Y * k
	}
}

func (p *driftProfile) aux(ecs.Entity) any { return nil }

// waveProfile bobs particles on a per-particle sine phase.
type waveProfile struct {
	set    *Set
	mapper *ecs.Map5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Wave]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Wave]
	waves  *ecs.Map1[components.Wave]
}

func newWaveProfile(s *Set) *waveProfile {
	return &waveProfile{
		set:    s,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Wave](s.world),
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Wave](s.world),
		waves:  ecs.NewMap1[components.Wave](s.world),
	}
}

func (p *waveProfile) spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	wave := components.Wave{Offset: rng.Float64() * 2 * math.Pi}
	p.mapper.NewEntity(pos, vel, app, mot, &wave)
}

func (p *waveProfile) advance(k float64) {
	t := p.set.clock
	p.set.bandPhase += bandPhaseRate * k

	query := p.filter.Query()
	for query.Next() {
		pos, vel, _, _, wave := query.Get()
		pos.X += vel.X * k
		pos.Y += (vel.Y + math.Sin(t+wave.Offset)*waveAmplitude) * k
	}
}

func (p *waveProfile) aux(e ecs.Entity) any { return *p.waves.Get(e) }

// flameProfile rises, sways and flickers.
type flameProfile struct {
	set    *Set
	mapper *ecs.Map5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Flame]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Flame]
	flames *ecs.Map1[components.Flame]
}

func newFlameProfile(s *Set) *flameProfile {
	return &flameProfile{
		set:    s,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Flame](s.world),
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Flame](s.world),
		flames: ecs.NewMap1[components.Flame](s.world),
	}
}

func (p *flameProfile) spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	vel.Y = -math.Abs(vel.Y) - 0.5
	flame := components.Flame{Flicker: rng.Float64()*0.1 + 0.05}
	p.mapper.NewEntity(pos, vel, app, mot, &flame)
}

func (p *flameProfile) advance(k float64) {
	t := p.set.clock
	query := p.filter.Query()
	for query.Next() {
		pos, vel, app, mot, flame := query.Get()
		pos.X += (vel.X + math.Sin(t*2+mot.Angle)*0.3) * k
		pos.Y += vel.Y * k
		app.Opacity = 0.3 + math.Sin(t*flame.Flicker)*0.2
	}
}

func (p *flameProfile) aux(e ecs.Entity) any { return *p.flames.Get(e) }

// orbitProfile circles the surface center.
type orbitProfile struct {
	set    *Set
	mapper *ecs.Map5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Orbit]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Orbit]
	orbits *ecs.Map1[components.Orbit]
}

func newOrbitProfile(s *Set) *orbitProfile {
	return &orbitProfile{
		set:    s,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Orbit](s.world),
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Orbit](s.world),
		orbits: ecs.NewMap1[components.Orbit](s.world),
	}
}

func (p *orbitProfile) spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	orbit := components.Orbit{
		Radius: rng.Float64()*50 + 20,
		Speed:  rng.Float64()*0.02 + 0.01,
	}
	p.mapper.NewEntity(pos, vel, app, mot, &orbit)
}

func (p *orbitProfile) advance(k float64) {
	cx, cy := p.set.width/2, p.set.height/2
	query := p.filter.Query()
	for query.Next() {
		pos, _, _, mot, orbit := query.Get()
		mot.Angle += orbit.Speed * k
		pos.X = cx + math.Cos(mot.Angle)*orbit.Radius
		pos.Y = cy + math.Sin(mot.Angle)*orbit.Radius
	}
}

func (p *orbitProfile) aux(e ecs.Entity) any { return *p.orbits.Get(e) }

// leafProfile drifts with a small sideways sway while spinning.
type leafProfile struct {
	set    *Set
	mapper *ecs.Map5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Leaf]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Leaf]
	leaves *ecs.Map1[components.Leaf]
}

func newLeafProfile(s *Set) *leafProfile {
	return &leafProfile{
		set:    s,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Leaf](s.world),
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Leaf](s.world),
		leaves: ecs.NewMap1[components.Leaf](s.world),
	}
}

func (p *leafProfile) spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	leaf := components.Leaf{
		Spin: rng.Float64()*0.05 + 0.01,
		Sway: rng.Float64()*20 + 10,
	}
	p.mapper.NewEntity(pos, vel, app, mot, &leaf)
}

func (p *leafProfile) advance(k float64) {
	t := p.set.clock
	query := p.filter.Query()
	for query.Next() {
		pos, vel, _, mot, leaf := query.Get()
		pos.X += (vel.X + math.Sin(t+mot.Angle)*leafSway) * k
		pos.Y += vel.Y * k
		mot.Angle += leaf.Spin * k
	}
}

func (p *leafProfile) aux(e ecs.Entity) any { return *p.leaves.Get(e) }

// bladeProfile drifts and spins.
type bladeProfile struct {
	set    *Set
	mapper *ecs.Map5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Blade]
	filter *ecs.Filter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Blade]
	blades *ecs.Map1[components.Blade]
}

func newBladeProfile(s *Set) *bladeProfile {
	return &bladeProfile{
		set:    s,
		mapper: ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Blade](s.world),
		filter: ecs.NewFilter5[components.Position, components.Velocity, components.Appearance, components.Motion, components.Blade](s.world),
		blades: ecs.NewMap1[components.Blade](s.world),
	}
}

func (p *bladeProfile) spawn(rng *rand.Rand, pos *components.Position, vel *components.Velocity, app *components.Appearance, mot *components.Motion) {
	blade := components.Blade{
		Spin:     rng.Float64()*0.03 + 0.01,
		Metallic: rng.Float64() > 0.5,
	}
	p.mapper.NewEntity(pos, vel, app, mot, &blade)
}

func (p *bladeProfile) advance(k float64) {
	query := p.filter.Query()
	for query.Next() {
		pos, vel, _, mot, blade := query.Get()
		pos.X += vel.X * k
		pos.Y += vel.Y * k
		mot.Angle += blade.Spin * k
	}
}

func (p *bladeProfile) aux(e ecs.Entity) any { return *p.blades.Get(e) }

const (
	waveAmplitude = 0.5
	bandPhaseRate = 0.02
	leafSway      = 0.1 // Horizontal sway per reference frame
)
