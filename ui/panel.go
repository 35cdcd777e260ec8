package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/theme"
)

// ThemePanel is the right-hand theme picker: one button per theme, a
// backdrop mode toggle and a particle cap slider.
type ThemePanel struct {
	renderer     *Renderer
	x, y         int32
	width        int32
	maxParticles int
	visible      bool
}

// NewThemePanel creates a hidden panel. maxParticles bounds the cap slider.
func NewThemePanel(x, y, width int32, maxParticles int) *ThemePanel {
	return &ThemePanel{
		renderer:     NewRenderer(),
		x:            x,
		y:            y,
		width:        width,
		maxParticles: maxParticles,
	}
}

// SetPosition updates the panel position.
func (p *ThemePanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *ThemePanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *ThemePanel) IsVisible() bool {
	return p.visible
}

// Height returns the panel height for n themes.
func (p *ThemePanel) Height(n int) int32 {
	s := p.renderer.Style
	rows := int32(n)*(s.ButtonHeight+4) + 2*(s.ButtonHeight+4)
	return s.Padding*2 + s.LineHeight*3 + rows + s.LineHeight
}

// Draw renders the panel and applies any interaction to provider.
func (p *ThemePanel) Draw(provider *theme.Provider) {
	if !p.visible {
		return
	}

	r := p.renderer
	s := r.Style
	themes := provider.Themes()
	r.DrawPanel(p.x, p.y, p.width, p.Height(len(themes)))

	x := p.x + s.Padding
	y := p.y + s.Padding
	inner := float32(p.width - s.Padding*2)

	y = r.DrawSectionHeader(x, y, "Themes")
	for i, th := range themes {
		bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: float32(s.ButtonHeight)}
		if gui.Button(bounds, fmt.Sprintf("%d  %s", i+1, th.Name)) {
			provider.SelectIndex(i)
		}
		if i == provider.Index() {
			rl.DrawRectangle(x-6, y+4, 3, s.ButtonHeight-8, s.ActiveColor)
		}
		y += s.ButtonHeight + 4
	}

	pal := provider.Current().Palette
	y = r.DrawSwatches(x, y+4, "Palette",
		toRL(pal.Primary), toRL(pal.Secondary), toRL(pal.Accent), toRL(pal.Particle))

	mode := "Light backdrop"
	if !provider.Dark() {
		mode = "Dark backdrop"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: float32(s.ButtonHeight)}, mode) {
		provider.ToggleDark()
	}
	y += s.ButtonHeight + 8

	hint := provider.ParticleHint()
	label := "auto"
	if hint > 0 {
		label = fmt.Sprintf("%d", hint)
	}
	y = r.DrawLabelValue(x, y, "Particle cap", label)
	v := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: float32(s.ButtonHeight - 8)},
		"", "",
		float32(hint), 0, float32(p.maxParticles),
	)
	provider.SetParticleHint(HintFromSlider(v, p.maxParticles))
}

// HintFromSlider converts a slider position to a particle cap; 0 means no cap.
func HintFromSlider(v float32, maxParticles int) int {
	n := int(math.Round(float64(v)))
	if n < 0 {
		return 0
	}
	return min(n, maxParticles)
}
