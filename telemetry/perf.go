package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase names for one simulation frame.
const (
	PhaseSelection    = "selection"
	PhaseReproduction = "reproduction"
	PhaseUpdate       = "population_update"
	PhaseTelemetry    = "telemetry"
)

var phaseOrder = []string{PhaseSelection, PhaseReproduction, PhaseUpdate, PhaseTelemetry}

// Phases returns the phase names in display order.
func Phases() []string {
	return slices.Clone(phaseOrder)
}

// frameSample holds timing data for one frame.
type frameSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps frame timings over a rolling window.
type PerfCollector struct {
	ring  []frameSample
	next  int
	count int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      string

	lastRender time.Time
	renderGap  time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ring:    make([]frameSample, window),
		current: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a simulation frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration)
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens another.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndFrame records the frame into the window.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = frameSample{total: now.Sub(p.frameStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordRender marks a presented frame in graphics mode.
func (p *PerfCollector) RecordRender() {
	now := time.Now()
	if !p.lastRender.IsZero() {
		p.renderGap = now.Sub(p.lastRender)
	}
	p.lastRender = now
}

// PerfStats holds aggregated timings.
type PerfStats struct {
	AvgFrame        time.Duration
	MinFrame        time.Duration
	MaxFrame        time.Duration
	PhaseAvg        map[string]time.Duration
	PhasePct        map[string]float64
	FramesPerSecond float64 // simulation throughput
	FPS             float64 // presented frames, graphics mode only
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.renderGap > 0 {
		s.FPS = float64(time.Second) / float64(p.renderGap)
	}
	if p.count == 0 {
		return s
	}

	var sum time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.count; i++ {
		fs := p.ring[i]
		sum += fs.total
		if i == 0 || fs.total < s.MinFrame {
			s.MinFrame = fs.total
		}
		s.MaxFrame = max(s.MaxFrame, fs.total)
		for name, d := range fs.phases {
			phaseSum[name] += d
		}
	}

	s.AvgFrame = sum / time.Duration(p.count)
	for name, d := range phaseSum {
		avg := d / time.Duration(p.count)
		s.PhaseAvg[name] = avg
		if s.AvgFrame > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, name := range phaseOrder {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRecord is the flat CSV form of PerfStats.
type PerfRecord struct {
	Generation      int     `csv:"generation"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MinFrameUS      int64   `csv:"min_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	FramesPerSec    float64 `csv:"frames_per_sec"`
	FPS             float64 `csv:"fps"`
	SelectionPct    float64 `csv:"selection_pct"`
	ReproductionPct float64 `csv:"reproduction_pct"`
	UpdatePct       float64 `csv:"population_update_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// Record flattens s for CSV output.
func (s PerfStats) Record(generation int) PerfRecord {
	return PerfRecord{
		Generation:      generation,
		AvgFrameUS:      s.AvgFrame.Microseconds(),
		MinFrameUS:      s.MinFrame.Microseconds(),
		MaxFrameUS:      s.MaxFrame.Microseconds(),
		FramesPerSec:    s.FramesPerSecond,
		FPS:             s.FPS,
		SelectionPct:    s.PhasePct[PhaseSelection],
		ReproductionPct: s.PhasePct[PhaseReproduction],
		UpdatePct:       s.PhasePct[PhaseUpdate],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
