package theme

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/backdrop/event"
)

// ErrUnknownTheme is returned when selecting a key that is not in the catalogue.
var ErrUnknownTheme = errors.New("unknown theme")

// Provider owns the theme catalogue and the current selection.
// It is not safe for concurrent use; hosts call it from the frame loop.
type Provider struct {
	themes  []Theme
	index   map[string]int
	current int
	dark    bool
	hint    int // Overrides Theme.ParticleHint when > 0

	changed     event.Signal[Theme]
	darkChanged event.Signal[bool]
}

// NewProvider creates a provider over themes, starting at start.
// Panics if themes is empty.
func NewProvider(themes []Theme, start int) *Provider {
	if len(themes) == 0 {
		panic("theme: NewProvider called with no themes")
	}
	if start < 0 || start >= len(themes) {
		start = 0
	}
	p := &Provider{
		themes:  themes,
		index:   make(map[string]int, len(themes)),
		current: start,
		dark:    true,
	}
	for i, t := range themes {
		p.index[t.Key] = i
	}
	return p
}

// Current returns the active theme with any particle hint override applied.
func (p *Provider) Current() Theme {
	t := p.themes[p.current]
	if p.hint > 0 {
		t.ParticleHint = p.hint
	}
	return t
}

// Themes returns the catalogue in display order.
func (p *Provider) Themes() []Theme {
	return p.themes
}

// Index returns the position of the active theme in the catalogue.
func (p *Provider) Index() int {
	return p.current
}

// Select activates the theme with the given key. Selecting the active theme is a no-op.
func (p *Provider) Select(key string) error {
	idx, ok := p.index[key]
	if !ok {
		return fmt.Errorf("selecting %q: %w", key, ErrUnknownTheme)
	}
	p.SelectIndex(idx)
	return nil
}

// SelectIndex activates the theme at idx. Out of range or unchanged indices are ignored.
func (p *Provider) SelectIndex(idx int) {
	if idx < 0 || idx >= len(p.themes) || idx == p.current {
		return
	}
	p.current = idx
	t := p.Current()
	slog.Debug("theme changed", "theme", t.Key, "motion", t.Motion.String())
	p.changed.Emit(t)
}

// Next cycles forward through the catalogue.
func (p *Provider) Next() {
	p.SelectIndex((p.current + 1) % len(p.themes))
}

// Previous cycles backward through the catalogue.
func (p *Provider) Previous() {
	p.SelectIndex((p.current - 1 + len(p.themes)) % len(p.themes))
}

// SetParticleHint overrides the particle count hint of every theme; 0 clears it.
// Listeners are notified because the active set must be regenerated.
func (p *Provider) SetParticleHint(n int) {
	if n < 0 {
		n = 0
	}
	if n == p.hint {
		return
	}
	p.hint = n
	p.changed.Emit(p.Current())
}

// ParticleHint returns the current override (0 = none).
func (p *Provider) ParticleHint() int {
	return p.hint
}

// Dark reports whether the dark backdrop is active.
func (p *Provider) Dark() bool {
	return p.dark
}

// SetDark switches backdrop mode.
func (p *Provider) SetDark(dark bool) {
	if dark == p.dark {
		return
	}
	p.dark = dark
	p.darkChanged.Emit(dark)
}

// ToggleDark flips backdrop mode.
func (p *Provider) ToggleDark() {
	p.SetDark(!p.dark)
}

// Subscribe registers fn for theme changes.
func (p *Provider) Subscribe(fn func(Theme)) (cancel func()) {
	return p.changed.Subscribe(fn)
}

// SubscribeDark registers fn for backdrop mode changes.
func (p *Provider) SubscribeDark(fn func(bool)) (cancel func()) {
	return p.darkChanged.Subscribe(fn)
}

// Selection returns the persisted form of the current state.
func (p *Provider) Selection() Selection {
	return Selection{
		Theme:        p.themes[p.current].Key,
		DarkMode:     p.dark,
		ParticleHint: p.hint,
	}
}

// Restore applies a persisted selection without notifying listeners.
// Unknown theme keys leave the current theme in place.
func (p *Provider) Restore(sel Selection) {
	if idx, ok := p.index[sel.Theme]; ok {
		p.current = idx
	}
	p.dark = sel.DarkMode
	if sel.ParticleHint > 0 {
		p.hint = sel.ParticleHint
	}
}
