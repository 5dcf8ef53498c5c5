package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one finished generation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	Alive     int `csv:"alive"`
	Crashed   int `csv:"crashed"`
	Completed int `csv:"completed"`

	BestFitness float64 `csv:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`
	StdFitness  float64 `csv:"std_fitness"`
	P10Fitness  float64 `csv:"p10_fitness"`
	P50Fitness  float64 `csv:"p50_fitness"`
	P90Fitness  float64 `csv:"p90_fitness"`

	MinDistance float64 `csv:"min_distance"`
	MeanFrames  float64 `csv:"mean_frames"`
	Selfed      int     `csv:"selfed"`

	SelectionFailed bool `csv:"selection_failed"`
}

// CompletionRate returns the fraction of the cohort that reached the target.
func (s GenerationStats) CompletionRate() float64 {
	n := s.Alive + s.Crashed + s.Completed
	if n == 0 {
		return 0
	}
	return float64(s.Completed) / float64(n)
}

// Percentile returns the p-th percentile of a sorted slice using linear
// interpolation between closest ranks. p is clamped to [0, 1].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return 0
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}

	pos := p * float64(n-1)
	lo := int(pos)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

// FitnessSummary holds distribution statistics of one cohort's fitness.
type FitnessSummary struct {
	Best, Mean, Std float64
	P10, P50, P90   float64
}

// SummarizeFitness computes the fitness distribution. Infinite values are
// counted in Best but excluded from the moments so one rocket sitting on the
// target does not turn every column into +Inf.
func SummarizeFitness(values []float64) FitnessSummary {
	var s FitnessSummary
	if len(values) == 0 {
		return s
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsInf(v, 1) {
			s.Best = v
			continue
		}
		if math.IsNaN(v) {
			continue
		}
		finite = append(finite, v)
	}
	if len(finite) == 0 {
		return s
	}

	sort.Float64s(finite)
	if !math.IsInf(s.Best, 1) {
		s.Best = finite[len(finite)-1]
	}
	s.Mean, s.Std = stat.PopMeanStdDev(finite, nil)
	s.P10 = Percentile(finite, 0.10)
	s.P50 = Percentile(finite, 0.50)
	s.P90 = Percentile(finite, 0.90)
	return s
}

// LogValue implements slog.LogValuer.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("alive", s.Alive),
		slog.Int("crashed", s.Crashed),
		slog.Int("completed", s.Completed),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("p50_fitness", s.P50Fitness),
		slog.Float64("min_distance", s.MinDistance),
		slog.Float64("mean_frames", s.MeanFrames),
		slog.Bool("selection_failed", s.SelectionFailed),
	)
}

// LogStats logs the generation at info level.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
