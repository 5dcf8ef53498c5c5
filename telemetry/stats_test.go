package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
		{"negative p clamps", []float64{2, 4}, -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarizeFitness(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5, 0.3, 0.7, 0.2, 0.4, 0.6, 0.8, 1.0}
	s := SummarizeFitness(values)

	if s.Best != 1.0 {
		t.Errorf("Best = %v, want 1.0", s.Best)
	}
	if math.Abs(s.Mean-0.55) > 1e-9 {
		t.Errorf("Mean = %v, want 0.55", s.Mean)
	}
	if math.Abs(s.P10-0.19) > 1e-9 {
		t.Errorf("P10 = %v, want 0.19", s.P10)
	}
	if math.Abs(s.P90-0.91) > 1e-9 {
		t.Errorf("P90 = %v, want 0.91", s.P90)
	}
	// Population std of 0.1..1.0
	if math.Abs(s.Std-0.2872281) > 1e-6 {
		t.Errorf("Std = %v, want ~0.287", s.Std)
	}
}

func TestSummarizeFitnessInfinite(t *testing.T) {
	s := SummarizeFitness([]float64{math.Inf(1), 1, 3})

	if !math.IsInf(s.Best, 1) {
		t.Errorf("Best = %v, want +Inf", s.Best)
	}
	if s.Mean != 2 {
		t.Errorf("Mean = %v, want 2 over finite values", s.Mean)
	}
}

func TestSummarizeFitnessEmpty(t *testing.T) {
	if s := SummarizeFitness(nil); s != (FitnessSummary{}) {
		t.Errorf("SummarizeFitness(nil) = %+v, want zero", s)
	}
}

func TestCompletionRate(t *testing.T) {
	s := GenerationStats{Alive: 1, Crashed: 2, Completed: 1}
	if got := s.CompletionRate(); got != 0.25 {
		t.Errorf("CompletionRate() = %v, want 0.25", got)
	}
	if got := (GenerationStats{}).CompletionRate(); got != 0 {
		t.Errorf("empty CompletionRate() = %v, want 0", got)
	}
}
