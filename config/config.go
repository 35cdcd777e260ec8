// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all backdrop configuration parameters.
type Config struct {
	Screen       ScreenConfig    `yaml:"screen"`
	Field        FieldConfig     `yaml:"field"`
	Themes       []ThemeConfig   `yaml:"themes"`
	DefaultTheme string          `yaml:"default_theme"`
	State        StateConfig     `yaml:"state"`
	Telemetry    TelemetryConfig `yaml:"telemetry"`
	Headless     HeadlessConfig  `yaml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	MaxParticles    int     `yaml:"max_particles"`    // Hard cap on set size
	SpacingDivisor  float64 `yaml:"spacing_divisor"`  // One particle per this many px of width
	WrapMargin      float64 `yaml:"wrap_margin"`      // Off-screen band before a particle wraps
	ConnectDistance float64 `yaml:"connect_distance"` // Max distance for a connective line
	ConnectAlpha    float64 `yaml:"connect_alpha"`    // Line alpha at zero distance
	ConnectWidth    float64 `yaml:"connect_width"`
	FrameDT         float64 `yaml:"frame_dt"` // Time advanced per tick in headless mode
}

// ThemeConfig describes one selectable theme. Colors are hex strings.
type ThemeConfig struct {
	Key           string    `yaml:"key"`
	Name          string    `yaml:"name"`
	Motion        string    `yaml:"motion"`
	Primary       string    `yaml:"primary"`
	Secondary     string    `yaml:"secondary"`
	Accent        string    `yaml:"accent"`
	Particle      string    `yaml:"particle"`
	Backdrop      [2]string `yaml:"backdrop"`
	LightBackdrop [2]string `yaml:"light_backdrop"` // Empty = derived from Backdrop
	ParticleHint  int       `yaml:"particle_hint"`  // 0 = width-derived count only
}

// StateConfig holds persisted user selection settings.
type StateConfig struct {
	Path string `yaml:"path"` // Theme selection file (empty = not persisted)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// HeadlessConfig holds settings for runs without a window.
type HeadlessConfig struct {
	FrameEvery int `yaml:"frame_every"` // Export a PNG every N ticks when a frames dir is set
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ThemeIndex        map[string]int // key -> index into Themes
	DefaultThemeIndex int
	FrameDT32         float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file; a themes list replaces the default one.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports settings the field cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Field.MaxParticles <= 0 {
		errs = append(errs, fmt.Errorf("field.max_particles must be positive, got %d", c.Field.MaxParticles))
	}
	if c.Field.SpacingDivisor <= 0 {
		errs = append(errs, fmt.Errorf("field.spacing_divisor must be positive, got %v", c.Field.SpacingDivisor))
	}
	if c.Field.WrapMargin < 0 {
		errs = append(errs, fmt.Errorf("field.wrap_margin must not be negative, got %v", c.Field.WrapMargin))
	}
	if len(c.Themes) == 0 {
		errs = append(errs, errors.New("at least one theme is required"))
	}
	seen := make(map[string]bool, len(c.Themes))
	for i, t := range c.Themes {
		if t.Key == "" {
			errs = append(errs, fmt.Errorf("themes[%d]: key is required", i))
			continue
		}
		if seen[t.Key] {
			errs = append(errs, fmt.Errorf("themes[%d]: duplicate key %q", i, t.Key))
		}
		seen[t.Key] = true
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Field.FrameDT <= 0 {
		c.Field.FrameDT = 0.016
	}
	c.Derived.FrameDT32 = float32(c.Field.FrameDT)

	c.Derived.ThemeIndex = make(map[string]int, len(c.Themes))
	for i, t := range c.Themes {
		if t.Name == "" {
			c.Themes[i].Name = t.Key
		}
		c.Derived.ThemeIndex[t.Key] = i
	}

	// Unknown default falls back to the first theme
	c.Derived.DefaultThemeIndex = 0
	if idx, ok := c.Derived.ThemeIndex[c.DefaultTheme]; ok {
		c.Derived.DefaultThemeIndex = idx
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
