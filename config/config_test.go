package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Size != 720 {
		t.Errorf("Screen.Size = %d, want 720", cfg.Screen.Size)
	}
	if cfg.Simulation.NumRockets != 750 {
		t.Errorf("NumRockets = %d, want 750", cfg.Simulation.NumRockets)
	}
	if cfg.Rocket.Lifespan != 200 {
		t.Errorf("Lifespan = %d, want 200", cfg.Rocket.Lifespan)
	}
	if cfg.Grid.CellPixels != 24 {
		t.Errorf("CellPixels = %d, want 24", cfg.Grid.CellPixels)
	}
	if cfg.Fitness.Metric != MetricEuclidean {
		t.Errorf("Fitness.Metric = %q, want %q", cfg.Fitness.Metric, MetricEuclidean)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Defaults()

	if got, want := cfg.Derived.MutationRate, float32(0.01); got != want {
		t.Errorf("MutationRate = %v, want %v", got, want)
	}
	if got := cfg.Derived.HalfScreen; got != 360 {
		t.Errorf("HalfScreen = %v, want 360", got)
	}
	if got := cfg.Derived.TargetX32; got != 330 {
		t.Errorf("TargetX32 = %v, want 330", got)
	}
	if got := cfg.Derived.SpawnX32; got != -350 {
		t.Errorf("SpawnX32 = %v, want -350", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := "mutation:\n  probability: 50\nsimulation:\n  num_rockets: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.NumRockets != 10 {
		t.Errorf("NumRockets = %d, want 10", cfg.Simulation.NumRockets)
	}
	if got, want := cfg.Derived.MutationRate, float32(0.05); got != want {
		t.Errorf("MutationRate = %v, want %v", got, want)
	}
	// Untouched sections keep defaults
	if cfg.Mutation.Variation != 0.5 {
		t.Errorf("Variation = %v, want 0.5", cfg.Mutation.Variation)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"zero lifespan", "rocket:\n  lifespan: 0\n", "rocket.lifespan"},
		{"negative rockets", "simulation:\n  num_rockets: -1\n", "num_rockets"},
		{"bad metric", "fitness:\n  metric: manhattan\n", "fitness.metric"},
		{"probability too large", "mutation:\n  probability: 2000\n", "mutation.probability"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Colors.Target != cfg.Colors.Target {
		t.Errorf("Colors.Target = %+v, want %+v", loaded.Colors.Target, cfg.Colors.Target)
	}
}

func TestCloneAndRefresh(t *testing.T) {
	base := Defaults()
	c := base.Clone()
	c.Mutation.Probability = 50
	c.Mutation.Variation = 1.25

	if err := c.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.Derived.MutationRate != 0.05 || c.Derived.Variation32 != 1.25 {
		t.Errorf("derived = %v, %v; want 0.05, 1.25", c.Derived.MutationRate, c.Derived.Variation32)
	}
	if base.Mutation.Probability != 10 || base.Derived.MutationRate != 0.01 {
		t.Error("Clone shares state with the original")
	}

	c.Fitness.Metric = "manhattan"
	if err := c.Refresh(); err == nil {
		t.Error("Refresh accepted an unknown metric")
	}
}
