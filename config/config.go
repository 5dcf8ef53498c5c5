// Package config provides configuration loading for the rockets simulation.
//
// A Config is loaded once at startup and passed explicitly to every
// component that needs it. It is never mutated after Load returns.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Fitness metric names accepted by FitnessConfig.Metric.
const (
	MetricEuclidean = "euclidean"
	MetricGeodesic  = "geodesic"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Target     TargetConfig     `yaml:"target"`
	Grid       GridConfig       `yaml:"grid"`
	Rocket     RocketConfig     `yaml:"rocket"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Fitness    FitnessConfig    `yaml:"fitness"`
	Colors     ColorsConfig     `yaml:"colors"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The window is always square.
type ScreenConfig struct {
	Size      int `yaml:"size"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds population settings.
type SimulationConfig struct {
	NumRockets int `yaml:"num_rockets"`
}

// TargetConfig describes the goal circle in world units.
type TargetConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// GridConfig holds obstacle map settings.
type GridConfig struct {
	MapPath    string `yaml:"map_path"`
	CellPixels int    `yaml:"cell_pixels"` // Collision lookup divisor, independent of draw block size
}

// RocketConfig holds agent parameters.
type RocketConfig struct {
	Lifespan int     `yaml:"lifespan"` // Genome length and frames per generation
	SpawnX   float64 `yaml:"spawn_x"`
	SpawnY   float64 `yaml:"spawn_y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Probability float64 `yaml:"probability"` // Per-mille chance that a gene mutates
	Variation   float64 `yaml:"variation"`   // Scale of the uniform [-1,1] perturbation
}

// FitnessConfig selects the distance metric used for scoring.
type FitnessConfig struct {
	Metric string `yaml:"metric"`
}

// RGB is an opaque colour.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// ColorsConfig holds the render palette.
type ColorsConfig struct {
	Background      RGB `yaml:"background"`
	Grid            RGB `yaml:"grid"`
	Target          RGB `yaml:"target"`
	RocketAlive     RGB `yaml:"rocket_alive"`
	RocketStroke    RGB `yaml:"rocket_stroke"`
	RocketCompleted RGB `yaml:"rocket_completed"`
	RocketCrashed   RGB `yaml:"rocket_crashed"`
	Text            RGB `yaml:"text"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	Breakthrough BreakthroughConfig `yaml:"breakthrough"`
	Stagnation   StagnationConfig   `yaml:"stagnation"`
	Convergence  ConvergenceConfig  `yaml:"convergence"`
}

// BreakthroughConfig fires when best fitness jumps well above the recent mean.
type BreakthroughConfig struct {
	Multiplier float64 `yaml:"multiplier"`
}

// StagnationConfig fires when best fitness has not improved for a while.
type StagnationConfig struct {
	Generations int `yaml:"generations"`
}

// ConvergenceConfig fires when most of a cohort completes.
type ConvergenceConfig struct {
	CompletedFraction float64 `yaml:"completed_fraction"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MutationRate float32 // Mutation.Probability / 1000
	Variation32  float32
	HalfScreen   float32
	Screen32     float32
	TargetX32    float32
	TargetY32    float32
	TargetR32    float32
	SpawnX32     float32
	SpawnY32     float32
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file overwrite defaults
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// Refresh validates c and recomputes derived values. Call it after editing
// fields in code.
func (c *Config) Refresh() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.Screen.Size <= 0:
		return fmt.Errorf("screen.size must be positive, got %d", c.Screen.Size)
	case c.Simulation.NumRockets <= 0:
		return fmt.Errorf("simulation.num_rockets must be positive, got %d", c.Simulation.NumRockets)
	case c.Rocket.Lifespan <= 0:
		return fmt.Errorf("rocket.lifespan must be positive, got %d", c.Rocket.Lifespan)
	case c.Grid.CellPixels <= 0:
		return fmt.Errorf("grid.cell_pixels must be positive, got %d", c.Grid.CellPixels)
	case c.Mutation.Probability < 0 || c.Mutation.Probability > 1000:
		return fmt.Errorf("mutation.probability must be within [0, 1000], got %g", c.Mutation.Probability)
	}
	switch c.Fitness.Metric {
	case MetricEuclidean, MetricGeodesic:
	default:
		return fmt.Errorf("unknown fitness.metric %q", c.Fitness.Metric)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MutationRate = float32(c.Mutation.Probability / 1000)
	c.Derived.Variation32 = float32(c.Mutation.Variation)
	c.Derived.Screen32 = float32(c.Screen.Size)
	c.Derived.HalfScreen = float32(c.Screen.Size) / 2
	c.Derived.TargetX32 = float32(c.Target.X)
	c.Derived.TargetY32 = float32(c.Target.Y)
	c.Derived.TargetR32 = float32(c.Target.Radius)
	c.Derived.SpawnX32 = float32(c.Rocket.SpawnX)
	c.Derived.SpawnY32 = float32(c.Rocket.SpawnY)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
