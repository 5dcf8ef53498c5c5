package main

import (
	"math"
	"strings"
	"testing"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/telemetry"
	"github.com/pthm-cable/rockets/world"
)

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Defaults())

	def := pv.DefaultVector()
	if def[0] != 10 || def[1] != 0.5 {
		t.Fatalf("DefaultVector() = %v, want [10 0.5]", def)
	}

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("param %d: %v -> %v", i, def[i], back[i])
		}
	}
}

func TestParamVectorApply(t *testing.T) {
	pv := NewParamVector(config.Defaults())
	cfg := config.Defaults()

	if err := pv.ApplyToConfig(cfg, []float64{500, -3}); err != nil {
		t.Fatal(err)
	}
	if cfg.Mutation.Probability != 100 || cfg.Mutation.Variation != 0.05 {
		t.Errorf("applied = %v, %v; want clamped 100, 0.05", cfg.Mutation.Probability, cfg.Mutation.Variation)
	}
	if cfg.Derived.MutationRate != 0.1 {
		t.Errorf("MutationRate = %v, want 0.1", cfg.Derived.MutationRate)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 100 || got[1] != 0.05 {
		t.Errorf("ExtractFromConfig() = %v", got)
	}
}

func TestComputeFitness(t *testing.T) {
	cfg := config.Defaults()
	fe := &FitnessEvaluator{}

	tests := []struct {
		name           string
		stats          []telemetry.GenerationStats
		wantFitness    float64
		wantCompletion float64
	}{
		{
			name:        "no generations",
			wantFitness: math.Inf(1),
		},
		{
			name: "distance only",
			stats: []telemetry.GenerationStats{
				{Crashed: 10, MinDistance: 72},
			},
			wantFitness: 0.1 * 0.1,
		},
		{
			name: "scores final quarter",
			stats: []telemetry.GenerationStats{
				{Crashed: 10, MinDistance: 360},
				{Crashed: 10, MinDistance: 360},
				{Crashed: 10, MinDistance: 360},
				{Completed: 5, Crashed: 5, MinDistance: 0},
			},
			wantFitness:    -0.5,
			wantCompletion: 0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, c := fe.computeFitness(runResult{stats: tt.stats}, cfg)
			if math.IsInf(tt.wantFitness, 1) {
				if !math.IsInf(f, 1) {
					t.Errorf("fitness = %v, want +Inf", f)
				}
				return
			}
			if math.Abs(f-tt.wantFitness) > 1e-9 || math.Abs(c-tt.wantCompletion) > 1e-9 {
				t.Errorf("computeFitness() = %v, %v; want %v, %v", f, c, tt.wantFitness, tt.wantCompletion)
			}
		})
	}
}

func TestEvaluateRunsEveryGeneration(t *testing.T) {
	cfg := config.Defaults()
	cfg.Simulation.NumRockets = 20
	cfg.Rocket.Lifespan = 30
	w, err := world.Load(strings.NewReader(strings.Repeat(strings.Repeat("1", 30)+"\n", 30)), cfg)
	if err != nil {
		t.Fatal(err)
	}

	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 3, []uint64{1, 2}, cfg, w)

	r := fe.runSimulation(cfg, 1)
	if len(r.stats) != 3 {
		t.Fatalf("run scored %d generations, want 3", len(r.stats))
	}
	for i, s := range r.stats {
		if s.Generation != i+1 {
			t.Errorf("stats[%d].Generation = %d", i, s.Generation)
		}
	}

	f := fe.Evaluate(pv.DefaultVector())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		t.Errorf("Evaluate() = %v", f)
	}
	if c := fe.LastCompletion(); c < 0 || c > 1 {
		t.Errorf("LastCompletion() = %v", c)
	}
}
