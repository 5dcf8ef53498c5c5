// Package simulation drives the frame and generation cycle.
//
// Each Update advances every rocket by one frame. When the frame index wraps
// to 0 the finished generation is scored and the next one is bred before
// the first frame of the new generation runs.
package simulation

import (
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/population"
	"github.com/pthm-cable/rockets/rocket"
	"github.com/pthm-cable/rockets/telemetry"
	"github.com/pthm-cable/rockets/world"
)

// Options configures optional collaborators. The zero value is valid.
type Options struct {
	// Perf, if set, times the phases of every Update.
	Perf *telemetry.PerfCollector

	// OnGenerationEnd is called after a generation has been scored, with
	// the cohort as it stood at the end of its life.
	OnGenerationEnd func(generation int, cohort population.CohortStats, selectionErr error)

	// OnGenerationStart is called after the next cohort has been bred.
	OnGenerationStart func(generation int, bred bool)
}

// NewRNG returns the generator a run with the given seed uses.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Simulation owns the population and the frame counters.
type Simulation struct {
	cfg      *config.Config
	world    *world.World
	pop      *population.Population
	opts     Options
	lifespan int

	obstacles []world.Rect

	generation int
	frame      int
	lastErr    error
}

// New builds a simulation with a fresh random population.
func New(cfg *config.Config, w *world.World, rng *rand.Rand, opts Options) *Simulation {
	metric := rocket.MetricFor(cfg, w)
	return &Simulation{
		cfg:      cfg,
		world:    w,
		pop:      population.New(cfg, rng, metric),
		opts:     opts,
		lifespan: cfg.Rocket.Lifespan,

		obstacles: w.Obstacles(),
	}
}

// Generation returns the current generation number. It is 0 until the
// first Update.
func (s *Simulation) Generation() int { return s.generation }

// Frame returns the frame index last applied, in [0, lifespan).
func (s *Simulation) Frame() int { return s.frame }

// Lifespan returns frames per generation.
func (s *Simulation) Lifespan() int { return s.lifespan }

// Population returns the live population.
func (s *Simulation) Population() *population.Population { return s.pop }

// World returns the obstacle map.
func (s *Simulation) World() *world.World { return s.world }

// LastSelectionErr returns the error of the most recent selection, or nil.
func (s *Simulation) LastSelectionErr() error { return s.lastErr }

// Update advances the simulation by one frame.
func (s *Simulation) Update() {
	perf := s.opts.Perf
	if perf != nil {
		perf.StartFrame()
		defer perf.EndFrame()
	}

	if s.frame == 0 {
		s.endGeneration()
		s.startGeneration()
	}

	s.frame = (s.frame + 1) % s.lifespan
	if perf != nil {
		perf.StartPhase(telemetry.PhaseUpdate)
	}
	s.pop.Update(s.frame, s.world)
}

// StepGeneration runs Update until the current generation has used all of
// its frames.
func (s *Simulation) StepGeneration() {
	s.Update()
	for s.frame != 0 {
		s.Update()
	}
}

func (s *Simulation) endGeneration() {
	if s.generation == 0 {
		return
	}
	s.frame = 0

	cohort := s.pop.Stats()
	if s.opts.Perf != nil {
		s.opts.Perf.StartPhase(telemetry.PhaseSelection)
	}
	s.lastErr = s.pop.Selection()
	if s.lastErr != nil {
		slog.Warn("selection failed, keeping cohort",
			"generation", s.generation,
			"error", s.lastErr,
		)
	}

	if s.opts.OnGenerationEnd != nil {
		if s.opts.Perf != nil {
			s.opts.Perf.StartPhase(telemetry.PhaseTelemetry)
		}
		s.opts.OnGenerationEnd(s.generation, cohort, s.lastErr)
	}
}

func (s *Simulation) startGeneration() {
	s.generation++
	if s.opts.Perf != nil {
		s.opts.Perf.StartPhase(telemetry.PhaseReproduction)
	}
	bred := s.pop.Reproduction()
	if s.opts.OnGenerationStart != nil {
		s.opts.OnGenerationStart(s.generation, bred)
	}
}
