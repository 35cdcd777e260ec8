package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// Phase is one timed section of a field frame.
type Phase uint8

const (
	PhaseStep Phase = iota
	PhaseRender
	PhaseConnect
	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseStep:
		return "step"
	case PhaseRender:
		return "render"
	case PhaseConnect:
		return "connect"
	}
	return "unknown"
}

// frameSample is the CPU time of one field frame, split by phase.
type frameSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector times field frames over a rolling window and tracks
// wall-clock frame pacing separately.
type PerfCollector struct {
	now func() time.Time

	samples []frameSample
	next    int
	filled  int

	current    frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a collector over the last windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:     time.Now,
		samples: make([]frameSample, windowSize),
	}
}

// StartTick begins timing a field frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = p.now()
	p.current = frameSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < phaseCount {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the frame and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.current.total = now.Sub(p.frameStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.filled < len(p.samples) {
		p.filled++
	}
}

// RecordFrame marks a presented window frame; the gap between two calls
// gives the displayed FPS.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	Frames   int
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P95Frame time.Duration

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64 // Share of the average frame

	// CPU-bound frames per second the field could sustain
	Throughput float64

	PresentGap time.Duration
	FPS        float64
}

// Stats aggregates the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Frames: p.filled, PresentGap: p.presentGap}
	if p.presentGap > 0 {
		s.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, 0, p.filled)
	var sum time.Duration
	var phaseSum [phaseCount]time.Duration
	for i, f := range p.samples[:p.filled] {
		sum += f.total
		if i == 0 || f.total < s.MinFrame {
			s.MinFrame = f.total
		}
		if f.total > s.MaxFrame {
			s.MaxFrame = f.total
		}
		for ph, d := range f.phases {
			phaseSum[ph] += d
		}
		totals = append(totals, float64(f.total))
	}
	sort.Float64s(totals)
	s.P95Frame = time.Duration(Percentile(totals, 0.95))

	n := time.Duration(p.filled)
	s.AvgFrame = sum / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.Throughput = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int("throughput", int(s.Throughput)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := Phase(0); ph < phaseCount; ph++ {
		// One decimal is enough for a share
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd  int32   `csv:"window_end"`
	Frames     int     `csv:"frames"`
	AvgFrameUS int64   `csv:"avg_frame_us"`
	MinFrameUS int64   `csv:"min_frame_us"`
	MaxFrameUS int64   `csv:"max_frame_us"`
	P95FrameUS int64   `csv:"p95_frame_us"`
	Throughput float64 `csv:"throughput"`
	FPS        float64 `csv:"fps"`
	StepPct    float64 `csv:"step_pct"`
	RenderPct  float64 `csv:"render_pct"`
	ConnectPct float64 `csv:"connect_pct"`
}

// ToCSV flattens the stats for perf.csv.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:  windowEnd,
		Frames:     s.Frames,
		AvgFrameUS: s.AvgFrame.Microseconds(),
		MinFrameUS: s.MinFrame.Microseconds(),
		MaxFrameUS: s.MaxFrame.Microseconds(),
		P95FrameUS: s.P95Frame.Microseconds(),
		Throughput: s.Throughput,
		FPS:        s.FPS,
		StepPct:    s.PhasePct[PhaseStep],
		RenderPct:  s.PhasePct[PhaseRender],
		ConnectPct: s.PhasePct[PhaseConnect],
	}
}
