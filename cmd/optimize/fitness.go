package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/population"
	"github.com/pthm-cable/rockets/simulation"
	"github.com/pthm-cable/rockets/telemetry"
	"github.com/pthm-cable/rockets/world"
)

// Weight of the normalized closest-approach distance. Completion rate is in
// [0, 1] and dominates once any rocket arrives.
const distanceWeight = 0.1

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []uint64
	baseConfig  *config.Config
	world       *world.World

	mu             sync.Mutex
	lastCompletion float64 // completion rate from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. The world is shared by all
// runs and only read.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []uint64, baseCfg *config.Config, w *world.World) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		world:       w,
	}
}

// LastCompletion returns the mean completion rate of the most recent
// evaluation.
func (fe *FitnessEvaluator) LastCompletion() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCompletion
}

// runResult holds the per-generation stats of a single run.
type runResult struct {
	stats []telemetry.GenerationStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel on independent simulations.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	completion := make([]float64, len(results))
	for i, r := range results {
		fitness[i], completion[i] = fe.computeFitness(r, cfg)
	}

	fe.mu.Lock()
	fe.lastCompletion = stat.Mean(completion, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes one headless run for the configured number of
// generations.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed uint64) runResult {
	var result runResult
	collector := telemetry.NewCollector()

	sim := simulation.New(cfg, fe.world, simulation.NewRNG(seed), simulation.Options{
		OnGenerationEnd: func(gen int, cohort population.CohortStats, err error) {
			result.stats = append(result.stats, collector.Flush(gen, cohort, err))
		},
	})

	for i := 0; i < fe.generations; i++ {
		sim.StepGeneration()
	}
	// The last generation is scored on the next frame
	sim.Update()

	return result
}

// computeFitness scores a run on its final quarter of generations:
// -(completion rate) + distanceWeight * (closest approach / screen size).
func (fe *FitnessEvaluator) computeFitness(r runResult, cfg *config.Config) (fitness, completion float64) {
	if len(r.stats) == 0 {
		return math.Inf(1), 0
	}
	tail := r.stats[len(r.stats)-max(len(r.stats)/4, 1):]

	rates := make([]float64, len(tail))
	dists := make([]float64, len(tail))
	for i, s := range tail {
		rates[i] = s.CompletionRate()
		dists[i] = s.MinDistance / float64(cfg.Screen.Size)
	}
	completion = stat.Mean(rates, nil)
	return -completion + distanceWeight*stat.Mean(dists, nil), completion
}
