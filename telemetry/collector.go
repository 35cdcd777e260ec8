package telemetry

// FieldSample is the state of the particle set at the end of a window.
type FieldSample struct {
	Theme     string
	Motion    string
	Particles int
	Opacities []float64
	Speeds    []float64 // Velocity magnitude per particle
}

// Collector accumulates frame events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Counters for the current window
	frames         int
	reinits        int
	connectionsSum int
	connectionsMax int
}

// NewCollector creates a stats collector.
// windowDurationSec: length of each window in simulated seconds
// dt: seconds per frame
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFrame records one rendered frame and its connection count.
func (c *Collector) RecordFrame(connections int) {
	c.frames++
	c.connectionsSum += connections
	if connections > c.connectionsMax {
		c.connectionsMax = connections
	}
}

// RecordReinit records a regeneration of the particle set.
func (c *Collector) RecordReinit() {
	c.reinits++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample FieldSample) WindowStats {
	var connMean float64
	if c.frames > 0 {
		connMean = float64(c.connectionsSum) / float64(c.frames)
	}

	opMean, opStd, opP10, opP50, opP90 := ComputeSeriesStats(sample.Opacities)
	spMean, spStd, _, _, spP90 := ComputeSeriesStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Theme:     sample.Theme,
		Motion:    sample.Motion,
		Particles: sample.Particles,

		Frames:          c.frames,
		Reinits:         c.reinits,
		ConnectionsMean: connMean,
		ConnectionsMax:  c.connectionsMax,

		OpacityMean: opMean,
		OpacityStd:  opStd,
		OpacityP10:  opP10,
		OpacityP50:  opP50,
		OpacityP90:  opP90,

		SpeedMean: spMean,
		SpeedStd:  spStd,
		SpeedP90:  spP90,
	}

	c.windowStartTick = currentTick
	c.frames = 0
	c.reinits = 0
	c.connectionsSum = 0
	c.connectionsMax = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
