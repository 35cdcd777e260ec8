package game

// Options configures a runner.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // CSV logs, config and snapshots (empty = disabled)
	FramesDir      string  // Headless PNG frames (empty = disabled)
	FrameEvery     int     // Headless frame export interval in ticks (0 = use config)
	SnapshotEvery  int     // Particle snapshot interval in ticks (0 = disabled)
	Theme          string  // Initial theme key (empty = persisted or configured default)
	StatePath      string  // Selection file (empty = use config)
}
