package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/rockets/camera"
	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/rocket"
	"github.com/pthm-cable/rockets/simulation"
	"github.com/pthm-cable/rockets/ui"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

func headlessGame(t *testing.T, dir string) *Game {
	t.Helper()
	cfg := config.Defaults()
	cfg.Simulation.NumRockets = 40
	cfg.Rocket.Lifespan = 50

	src := strings.Repeat(strings.Repeat("1", 30)+"\n", 30)
	w, err := world.Load(strings.NewReader(src), cfg)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGame(cfg, w, Options{Seed: 7, OutputDir: dir, Headless: true, StepsPerUpdate: 10})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestHeadlessRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	g := headlessGame(t, dir)

	for g.Generation() < 4 {
		g.UpdateHeadless()
	}
	g.Unload()

	if got := g.Collector().Generations(); got != 3 {
		t.Errorf("flushed %d generations, want 3", got)
	}
	if g.LastStats().Generation != 3 {
		t.Errorf("LastStats().Generation = %d, want 3", g.LastStats().Generation)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 4 {
		t.Errorf("generations.csv has %d lines, want header + 3", n)
	}
	for _, name := range []string{"config.yaml", "perf.csv", "progress.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestHeadlessStepsPerUpdateClamped(t *testing.T) {
	g := headlessGame(t, "")
	g.stepsPerUpdate = 1

	g.UpdateHeadless()
	if g.Simulation().Frame() != 1 {
		t.Errorf("Frame() = %d after one step, want 1", g.Simulation().Frame())
	}

	cfg := config.Defaults()
	w, err := world.Load(strings.NewReader("11\n11\n"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewGame(cfg, w, Options{Headless: true, StepsPerUpdate: 0})
	if err != nil {
		t.Fatal(err)
	}
	if g2.stepsPerUpdate != ui.MinSpeed {
		t.Errorf("stepsPerUpdate = %d, want %d", g2.stepsPerUpdate, ui.MinSpeed)
	}
}

func TestRocketRect(t *testing.T) {
	cam := camera.New(720, 720, 720, 720)
	size := vecmath.Vec2{X: 5, Y: 20}

	tests := []struct {
		name    string
		heading float32
		wantRot float32
	}{
		{"moving right lies flat", 0, 90},
		{"moving up stands upright", math.Pi / 2, 0},
		{"moving down stands upright", -math.Pi / 2, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := simulation.RocketView{Pos: vecmath.Vec2{X: 10, Y: 20}, Heading: tt.heading}
			rect, origin, rot := rocketRect(cam, view, size)
			if math.Abs(float64(rot-tt.wantRot)) > 1e-3 {
				t.Errorf("rotation = %v, want %v", rot, tt.wantRot)
			}
			if rect.X != 370 || rect.Y != 340 {
				t.Errorf("position = (%v, %v), want (370, 340)", rect.X, rect.Y)
			}
			if rect.Width != 5 || rect.Height != 20 || origin.X != 2.5 || origin.Y != 10 {
				t.Errorf("rect = %+v, origin = %+v", rect, origin)
			}
		})
	}
}

func TestStateColor(t *testing.T) {
	colors := config.Defaults().Colors
	tests := []struct {
		state rocket.State
		want  config.RGB
	}{
		{rocket.Alive, colors.RocketAlive},
		{rocket.Crashed, colors.RocketCrashed},
		{rocket.Completed, colors.RocketCompleted},
	}
	for _, tt := range tests {
		if got := stateColor(colors, tt.state); got != ui.Color(tt.want) {
			t.Errorf("stateColor(%v) = %v, want %v", tt.state, got, ui.Color(tt.want))
		}
	}
}

func TestHeatColor(t *testing.T) {
	near := heatColor(0, 10)
	far := heatColor(10, 10)
	if near.R <= far.R || near.B >= far.B {
		t.Errorf("heatColor near = %v, far = %v; want near warmer", near, far)
	}
	if clamped := heatColor(20, 10); clamped != far {
		t.Errorf("heatColor past max = %v, want %v", clamped, far)
	}
}
