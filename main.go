package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/game"
	"github.com/pthm-cable/rockets/world"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mapPath := flag.String("map", "", "Path to map file (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, chart and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation frames per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *mapPath != "" {
		cfg.Grid.MapPath = *mapPath
	}

	w, err := world.LoadFile(cfg.Grid.MapPath, cfg)
	if err != nil {
		slog.Error("failed to load map", "path", cfg.Grid.MapPath, "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	done := func(g *game.Game) bool {
		return *maxGenerations > 0 && g.Generation() > *maxGenerations
	}

	if *headless {
		g, err := game.NewGame(cfg, w, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"map", cfg.Grid.MapPath,
			"rockets", cfg.Simulation.NumRockets,
			"max_generations", *maxGenerations,
			"steps_per_update", *stepsPerUpdate,
		)

		for !done(g) {
			g.UpdateHeadless()
		}
		slog.Info("max generations reached", "generation", g.Generation()-1)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Size), int32(cfg.Screen.Size), "Rockets")
	defer rl.CloseWindow()
	rl.SetWindowState(rl.FlagWindowResizable)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, w, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && !done(g) {
		g.Update()
		g.Draw()
	}
}
