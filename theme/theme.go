package theme

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/backdrop/config"
)

// lightBlend is how far a dark backdrop is pulled toward white when no light
// variant is configured.
const lightBlend = 0.85

// Palette holds the colors a theme paints with.
type Palette struct {
	Primary   color.NRGBA
	Secondary color.NRGBA
	Accent    color.NRGBA
	Particle  color.NRGBA

	// Vertical backdrop gradient, top then bottom.
	Dark  [2]color.NRGBA
	Light [2]color.NRGBA
}

// Backdrop returns the gradient stops for the given mode.
func (p Palette) Backdrop(dark bool) [2]color.NRGBA {
	if dark {
		return p.Dark
	}
	return p.Light
}

// Theme is one selectable look for the background.
type Theme struct {
	Key          string
	Name         string
	Motion       Motion
	Palette      Palette
	ParticleHint int
}

// FromConfig parses a configured theme. Unknown motion names fall back to drift.
func FromConfig(tc config.ThemeConfig) (Theme, error) {
	t := Theme{
		Key:          tc.Key,
		Name:         tc.Name,
		ParticleHint: tc.ParticleHint,
	}

	m, ok := ParseMotion(tc.Motion)
	if !ok && tc.Motion != "" {
		slog.Debug("unknown motion profile, using drift", "theme", tc.Key, "motion", tc.Motion)
	}
	t.Motion = m

	fields := []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"primary", tc.Primary, &t.Palette.Primary},
		{"secondary", tc.Secondary, &t.Palette.Secondary},
		{"accent", tc.Accent, &t.Palette.Accent},
		{"particle", tc.Particle, &t.Palette.Particle},
		{"backdrop top", tc.Backdrop[0], &t.Palette.Dark[0]},
		{"backdrop bottom", tc.Backdrop[1], &t.Palette.Dark[1]},
	}
	for _, f := range fields {
		c, err := ParseHex(f.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %q %s: %w", tc.Key, f.name, err)
		}
		*f.dst = c
	}

	for i, hex := range tc.LightBackdrop {
		if hex == "" {
			t.Palette.Light[i] = Lighten(t.Palette.Dark[i], lightBlend)
			continue
		}
		c, err := ParseHex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %q light backdrop: %w", tc.Key, err)
		}
		t.Palette.Light[i] = c
	}

	return t, nil
}

// LoadAll parses every configured theme in order.
func LoadAll(cfg *config.Config) ([]Theme, error) {
	themes := make([]Theme, 0, len(cfg.Themes))
	for _, tc := range cfg.Themes {
		t, err := FromConfig(tc)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, nil
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Lighten blends c toward white in Lab space by t in [0, 1].
func Lighten(c color.NRGBA, t float64) color.NRGBA {
	src := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	white := colorful.Color{R: 1, G: 1, B: 1}
	r, g, b := src.BlendLab(white, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}
