// Package game runs the simulation inside a raylib window or headless.
package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/rockets/camera"
	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/floodfill"
	"github.com/pthm-cable/rockets/population"
	"github.com/pthm-cable/rockets/simulation"
	"github.com/pthm-cable/rockets/telemetry"
	"github.com/pthm-cable/rockets/ui"
	"github.com/pthm-cable/rockets/world"
)

// Options configures a game.
type Options struct {
	Seed           uint64
	LogStats       bool   // log every generation and bookmark via slog
	OutputDir      string // CSV, chart and config output; empty disables
	Headless       bool   // skip all raylib calls
	StepsPerUpdate int    // simulation frames per Update
}

// Game holds the simulation plus everything around it.
type Game struct {
	cfg   *config.Config
	world *world.World
	sim   *simulation.Simulation

	// Telemetry
	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	logStats  bool

	lastStats telemetry.GenerationStats

	// Run state
	headless       bool
	paused         bool
	stepsPerUpdate int

	// Graphics mode only
	camera    *camera.Camera
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlPanel
	overlays  *ui.OverlayRegistry
	field     *floodfill.Field
	scene     []simulation.RocketView

	screenW, screenH float32
}

// NewGame wires a simulation to telemetry and, unless headless, to the
// UI. The output directory is created when set.
func NewGame(cfg *config.Config, w *world.World, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		world:          w,
		collector:      telemetry.NewCollector(),
		bookmarks:      telemetry.NewBookmarkDetector(cfg),
		output:         output,
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		stepsPerUpdate: ui.ClampSpeed(opts.StepsPerUpdate),
		screenW:        float32(cfg.Screen.Size),
		screenH:        float32(cfg.Screen.Size),
	}

	g.sim = simulation.New(cfg, w, simulation.NewRNG(opts.Seed), simulation.Options{
		Perf:              g.perf,
		OnGenerationEnd:   g.onGenerationEnd,
		OnGenerationStart: g.onGenerationStart,
	})

	if !g.headless {
		g.camera = camera.New(g.screenW, g.screenH, g.screenW, g.screenH)
		g.hud = ui.NewHUD(ui.Color(cfg.Colors.Text))
		g.perfPanel = ui.NewPerfPanel(10, int32(g.screenH)-140)
		g.controls = ui.NewControlPanel(int32(g.screenW)-210, 10, 200)
		g.overlays = ui.NewOverlayRegistry()
		g.field = w.DistanceField()
		g.scene = make([]simulation.RocketView, 0, cfg.Simulation.NumRockets)
	}

	return g, nil
}

// Update handles input then advances the simulation.
func (g *Game) Update() {
	g.handleInput()
	if g.paused {
		return
	}
	g.step(g.stepsPerUpdate)
}

// UpdateHeadless advances the simulation without touching raylib.
func (g *Game) UpdateHeadless() {
	g.step(g.stepsPerUpdate)
}

func (g *Game) step(n int) {
	for i := 0; i < n; i++ {
		g.sim.Update()
	}
}

// Generation returns the current generation.
func (g *Game) Generation() int { return g.sim.Generation() }

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *simulation.Simulation { return g.sim }

// LastStats returns the most recently flushed generation.
func (g *Game) LastStats() telemetry.GenerationStats { return g.lastStats }

// Collector returns the run-wide totals.
func (g *Game) Collector() *telemetry.Collector { return g.collector }

// Unload flushes output and logs a run summary.
func (g *Game) Unload() {
	best, bestGen := g.collector.BestEver()
	slog.Info("run finished",
		"generations", g.collector.Generations(),
		"total_completed", g.collector.TotalCompleted(),
		"selection_failures", g.collector.SelectionFailures(),
		"best_fitness", best,
		"best_generation", bestGen,
	)
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if dir := g.output.Dir(); dir != "" {
		slog.Info("output written", "dir", dir)
	}
}

// onGenerationEnd records a finished generation.
func (g *Game) onGenerationEnd(generation int, cohort population.CohortStats, selErr error) {
	stats := g.collector.Flush(generation, cohort, selErr)
	g.lastStats = stats

	if g.logStats {
		stats.LogStats()
	}

	if err := g.output.WriteGeneration(stats); err != nil {
		slog.Warn("failed to write generation", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), generation); err != nil {
		slog.Warn("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Warn("failed to write bookmark", "error", err)
		}
	}
}

func (g *Game) onGenerationStart(generation int, bred bool) {
	slog.Debug("generation started", "generation", generation, "bred", bred)
}
