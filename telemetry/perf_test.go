package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseSelection)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseUpdate)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseSelection]; !ok {
		t.Error("expected selection phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseUpdate]; !ok {
		t.Error("expected population_update phase to be tracked")
	}
	if stats.MinFrame > stats.MaxFrame {
		t.Errorf("MinFrame %v > MaxFrame %v", stats.MinFrame, stats.MaxFrame)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseUpdate)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(2 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgFrame != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_RenderTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordRender()
	time.Sleep(16 * time.Millisecond)
	pc.RecordRender()

	stats := pc.Stats()
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want in (0, 70] for a 16ms gap", stats.FPS)
	}
}

func TestPerfStatsRecord(t *testing.T) {
	s := PerfStats{
		AvgFrame: 1500 * time.Microsecond,
		PhasePct: map[string]float64{PhaseUpdate: 80, PhaseSelection: 5},
	}
	r := s.Record(12)
	if r.Generation != 12 || r.AvgFrameUS != 1500 || r.UpdatePct != 80 || r.SelectionPct != 5 {
		t.Errorf("Record() = %+v", r)
	}
}
