package telemetry

import (
	"math"

	"github.com/pthm-cable/rockets/population"
)

// Collector turns end-of-generation cohort snapshots into GenerationStats
// and keeps run-wide totals.
type Collector struct {
	generations      int
	totalCompleted   int
	bestEver         float64
	bestGeneration   int
	selectionFailure int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{bestGeneration: -1}
}

// Flush builds the stats row for a finished generation.
func (c *Collector) Flush(generation int, cohort population.CohortStats, selectionErr error) GenerationStats {
	fs := SummarizeFitness(cohort.Fitness)

	stats := GenerationStats{
		Generation:      generation,
		Alive:           cohort.Alive,
		Crashed:         cohort.Crashed,
		Completed:       cohort.Completed,
		BestFitness:     fs.Best,
		MeanFitness:     fs.Mean,
		StdFitness:      fs.Std,
		P10Fitness:      fs.P10,
		P50Fitness:      fs.P50,
		P90Fitness:      fs.P90,
		MinDistance:     cohort.MinDistance,
		MeanFrames:      cohort.MeanFrames,
		Selfed:          cohort.Selfed,
		SelectionFailed: selectionErr != nil,
	}
	if math.IsInf(stats.MinDistance, 1) {
		stats.MinDistance = 0
	}

	c.generations++
	c.totalCompleted += cohort.Completed
	if stats.SelectionFailed {
		c.selectionFailure++
	}
	if c.bestGeneration < 0 || fs.Best > c.bestEver {
		c.bestEver = fs.Best
		c.bestGeneration = generation
	}
	return stats
}

// Generations returns how many generations were flushed.
func (c *Collector) Generations() int { return c.generations }

// TotalCompleted returns completions summed over every generation.
func (c *Collector) TotalCompleted() int { return c.totalCompleted }

// SelectionFailures returns how many generations had no usable gene pool.
func (c *Collector) SelectionFailures() int { return c.selectionFailure }

// BestEver returns the best fitness seen and the generation it occurred in.
// The generation is -1 before the first flush.
func (c *Collector) BestEver() (float64, int) {
	return c.bestEver, c.bestGeneration
}
