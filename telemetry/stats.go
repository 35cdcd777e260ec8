package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Set at window end
	Theme     string `csv:"theme"`
	Motion    string `csv:"motion"`
	Particles int    `csv:"particles"`

	// Frame events during window
	Frames          int     `csv:"frames"`
	Reinits         int     `csv:"reinits"`
	ConnectionsMean float64 `csv:"connections_mean"`
	ConnectionsMax  int     `csv:"connections_max"`

	// Opacity distribution (sampled at window end)
	OpacityMean float64 `csv:"opacity_mean"`
	OpacityStd  float64 `csv:"opacity_std"`
	OpacityP10  float64 `csv:"opacity_p10"`
	OpacityP50  float64 `csv:"opacity_p50"`
	OpacityP90  float64 `csv:"opacity_p90"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation between closest ranks
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSeriesStats returns the mean, sample standard deviation and
// percentiles of values. Empty input gives zeros; a single value has std 0.
func ComputeSeriesStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("theme", s.Theme),
		slog.String("motion", s.Motion),
		slog.Int("particles", s.Particles),
		slog.Int("frames", s.Frames),
		slog.Int("reinits", s.Reinits),
		slog.Float64("connections_mean", s.ConnectionsMean),
		slog.Int("connections_max", s.ConnectionsMax),
		slog.Float64("opacity_mean", s.OpacityMean),
		slog.Float64("opacity_std", s.OpacityStd),
		slog.Float64("opacity_p10", s.OpacityP10),
		slog.Float64("opacity_p50", s.OpacityP50),
		slog.Float64("opacity_p90", s.OpacityP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"theme", s.Theme,
		"motion", s.Motion,
		"particles", s.Particles,
		"frames", s.Frames,
		"reinits", s.Reinits,
		"connections_mean", s.ConnectionsMean,
		"connections_max", s.ConnectionsMax,
		"opacity_mean", s.OpacityMean,
		"opacity_p50", s.OpacityP50,
		"speed_mean", s.SpeedMean,
	)
}
