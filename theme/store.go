package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Selection is the user choice that survives restarts.
type Selection struct {
	Theme        string `yaml:"theme"`
	DarkMode     bool   `yaml:"dark_mode"`
	ParticleHint int    `yaml:"particle_hint,omitempty"`
}

// LoadSelection reads a selection file. A missing file is not an error and
// yields ok=false.
func LoadSelection(path string) (sel Selection, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Selection{}, false, nil
	}
	if err != nil {
		return Selection{}, false, fmt.Errorf("reading selection: %w", err)
	}
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return Selection{}, false, fmt.Errorf("parsing selection: %w", err)
	}
	return sel, true, nil
}

// SaveSelection writes sel to path, creating parent directories.
func SaveSelection(path string, sel Selection) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating selection directory: %w", err)
		}
	}
	data, err := yaml.Marshal(sel)
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing selection: %w", err)
	}
	return nil
}

// Persist saves the provider's selection to path after every theme or
// backdrop change. Save failures are logged, not returned.
func Persist(p *Provider, path string) (cancel func()) {
	if path == "" {
		return func() {}
	}
	save := func() {
		if err := SaveSelection(path, p.Selection()); err != nil {
			slog.Error("failed to save theme selection", "path", path, "error", err)
		}
	}
	cancelTheme := p.Subscribe(func(Theme) { save() })
	cancelDark := p.SubscribeDark(func(bool) { save() })
	return func() {
		cancelTheme()
		cancelDark()
	}
}
