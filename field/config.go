// Package field implements the animated particle background: spawning a
// bounded particle set for a surface, advancing it per frame according to the
// active theme's motion profile, painting it, and regenerating it when the
// surface or theme changes.
package field

import (
	"math"

	"github.com/pthm-cable/backdrop/config"
)

// Config holds field tuning. Zero values are replaced by defaults in New.
type Config struct {
	MaxParticles    int
	SpacingDivisor  float64
	WrapMargin      float64
	ConnectDistance float64
	ConnectAlpha    float64
	ConnectWidth    float64
	ReferenceDT     float64 // Frame time at which per-frame rates apply unscaled
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxParticles:    80,
		SpacingDivisor:  15,
		WrapMargin:      50,
		ConnectDistance: 80,
		ConnectAlpha:    0.2,
		ConnectWidth:    0.5,
		ReferenceDT:     0.016,
	}
}

// ConfigFrom converts the loaded field section.
func ConfigFrom(fc config.FieldConfig) Config {
	return Config{
		MaxParticles:    fc.MaxParticles,
		SpacingDivisor:  fc.SpacingDivisor,
		WrapMargin:      fc.WrapMargin,
		ConnectDistance: fc.ConnectDistance,
		ConnectAlpha:    fc.ConnectAlpha,
		ConnectWidth:    fc.ConnectWidth,
		ReferenceDT:     fc.FrameDT,
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxParticles <= 0 {
		c.MaxParticles = d.MaxParticles
	}
	if c.SpacingDivisor <= 0 {
		c.SpacingDivisor = d.SpacingDivisor
	}
	if c.WrapMargin < 0 {
		c.WrapMargin = d.WrapMargin
	}
	if c.ConnectDistance <= 0 {
		c.ConnectDistance = d.ConnectDistance
	}
	if c.ConnectAlpha <= 0 {
		c.ConnectAlpha = d.ConnectAlpha
	}
	if c.ConnectWidth <= 0 {
		c.ConnectWidth = d.ConnectWidth
	}
	if c.ReferenceDT <= 0 {
		c.ReferenceDT = d.ReferenceDT
	}
	return c
}

// Count returns the set size for a surface: min(cap, floor(width/divisor)),
// further limited by hint when hint > 0. Non-positive dimensions give 0.
func Count(cfg Config, width, height, hint int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	cfg = cfg.withDefaults()
	n := int(math.Floor(float64(width) / cfg.SpacingDivisor))
	n = min(n, cfg.MaxParticles)
	if hint > 0 {
		n = min(n, hint)
	}
	return n
}

// ConnectionAlpha returns the line alpha for two particles d apart:
// (1 - d/threshold) * maxAlpha below threshold, 0 otherwise.
func ConnectionAlpha(d, threshold, maxAlpha float64) float64 {
	if threshold <= 0 || d >= threshold || d < 0 {
		return 0
	}
	return (1 - d/threshold) * maxAlpha
}
