package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

// frame records one field frame with the given phase durations.
func frame(pc *PerfCollector, clock *fakeClock, step, render, connect time.Duration) {
	pc.StartTick()
	pc.StartPhase(PhaseStep)
	clock.advance(step)
	pc.StartPhase(PhaseRender)
	clock.advance(render)
	pc.StartPhase(PhaseConnect)
	clock.advance(connect)
	pc.EndTick()
}

func TestPerfCollectorPhases(t *testing.T) {
	pc, clock := newFakeCollector(10)
	for i := 0; i < 4; i++ {
		frame(pc, clock, 200*time.Microsecond, 500*time.Microsecond, 300*time.Microsecond)
	}

	s := pc.Stats()
	if s.Frames != 4 {
		t.Errorf("expected 4 frames, got %d", s.Frames)
	}
	if s.AvgFrame != time.Millisecond {
		t.Errorf("expected 1ms average frame, got %v", s.AvgFrame)
	}
	if s.PhaseAvg[PhaseRender] != 500*time.Microsecond {
		t.Errorf("expected 500us render, got %v", s.PhaseAvg[PhaseRender])
	}

	want := map[Phase]float64{PhaseStep: 20, PhaseRender: 50, PhaseConnect: 30}
	for ph, pct := range want {
		if got := s.PhasePct[ph]; got < pct-0.001 || got > pct+0.001 {
			t.Errorf("%s: expected %v%%, got %v%%", ph, pct, got)
		}
	}
	if s.Throughput < 999 || s.Throughput > 1001 {
		t.Errorf("expected ~1000 frames/s throughput, got %v", s.Throughput)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clock := newFakeCollector(3)

	// Slow frames fall out of the window
	for i := 0; i < 3; i++ {
		frame(pc, clock, 10*time.Millisecond, 0, 0)
	}
	for i := 0; i < 3; i++ {
		frame(pc, clock, time.Millisecond, 0, 0)
	}

	s := pc.Stats()
	if s.Frames != 3 {
		t.Errorf("expected window of 3, got %d", s.Frames)
	}
	if s.MaxFrame != time.Millisecond {
		t.Errorf("expected max 1ms after rollover, got %v", s.MaxFrame)
	}
}

func TestPerfCollectorMinMaxP95(t *testing.T) {
	pc, clock := newFakeCollector(20)
	for i := 1; i <= 20; i++ {
		frame(pc, clock, time.Duration(i)*time.Millisecond, 0, 0)
	}

	s := pc.Stats()
	if s.MinFrame != time.Millisecond || s.MaxFrame != 20*time.Millisecond {
		t.Errorf("expected min 1ms max 20ms, got %v %v", s.MinFrame, s.MaxFrame)
	}
	if s.P95Frame < 19*time.Millisecond || s.P95Frame > 20*time.Millisecond {
		t.Errorf("expected p95 between 19 and 20ms, got %v", s.P95Frame)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	pc, _ := newFakeCollector(10)

	s := pc.Stats()
	if s.Frames != 0 || s.AvgFrame != 0 || s.Throughput != 0 {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestPerfCollectorPresentedFPS(t *testing.T) {
	pc, clock := newFakeCollector(10)

	pc.RecordFrame()
	if pc.Stats().FPS != 0 {
		t.Error("expected no FPS after a single frame")
	}
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	s := pc.Stats()
	if s.PresentGap != 20*time.Millisecond {
		t.Errorf("expected 20ms gap, got %v", s.PresentGap)
	}
	if s.FPS < 49.9 || s.FPS > 50.1 {
		t.Errorf("expected 50 FPS, got %v", s.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseConnect.String() != "connect" || Phase(9).String() != "unknown" {
		t.Errorf("unexpected phase names: %s, %s", PhaseConnect, Phase(9))
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.Frames = 60
	s.AvgFrame = 1500 * time.Microsecond
	s.PhasePct[PhaseStep] = 20
	s.PhasePct[PhaseRender] = 50
	s.PhasePct[PhaseConnect] = 30

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgFrameUS != 1500 || row.Frames != 60 {
		t.Errorf("unexpected row fields: %+v", row)
	}
	if row.StepPct != 20 || row.RenderPct != 50 || row.ConnectPct != 30 {
		t.Errorf("unexpected phase percentages: %+v", row)
	}
}
