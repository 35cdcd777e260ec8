package components

import "image/color"

// Position is a particle's location in surface pixels.
type Position struct {
	X, Y float64
}

// Velocity is the per-frame displacement before profile perturbation.
type Velocity struct {
	X, Y float64
}

// Appearance holds what the renderer needs beyond position.
type Appearance struct {
	Radius  float64
	Opacity float64 // Always within [0, 1]
	Color   color.NRGBA
}

// Motion is shared kinematic state every profile may read.
type Motion struct {
	Angle float64 // Radians; heading, spin, or orbit phase depending on profile
	Speed float64
	Life  float64 // Spawn lifetime in frames; no profile expires particles by it
}

// The components below are profile variants. A particle carries at most one,
// matching the motion profile of the set it was spawned into.

// Wave marks a particle that bobs on a sine wave.
type Wave struct {
	Offset float64 // Phase, [0, 2π)
}

// Flame marks a rising, flickering particle.
type Flame struct {
	Flicker float64 // Opacity oscillation frequency
}

// Orbit marks a particle circling the surface center.
type Orbit struct {
	Radius float64
	Speed  float64 // Radians per frame
}

// Leaf marks a swaying, spinning particle.
type Leaf struct {
	Spin float64 // Radians per frame
	Sway float64 // Spawned sway amount; motion uses a fixed amplitude
}

// Blade marks a drifting, spinning blade.
type Blade struct {
	Spin     float64
	Metallic bool
}
