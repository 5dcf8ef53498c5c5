package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rockets/camera"
	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/rocket"
	"github.com/pthm-cable/rockets/simulation"
	"github.com/pthm-cable/rockets/telemetry"
	"github.com/pthm-cable/rockets/ui"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

const controlsLegend = "[Space] pause  [,/.] speed  [F] flood  [V] velocity  [G] grid  [P] perf  [Tab] panel  [wheel] zoom"

// Draw renders one frame.
func (g *Game) Draw() {
	g.perf.RecordRender()
	scene := g.sim.Scene(g.scene)
	g.scene = scene.Rockets
	colors := g.cfg.Colors

	rl.BeginDrawing()
	rl.ClearBackground(ui.Color(colors.Background))

	if g.overlays.IsEnabled(ui.OverlayFloodFill) {
		g.drawFloodFill()
	}

	gridColor := ui.Color(colors.Grid)
	for _, r := range scene.Obstacles {
		g.drawWorldRect(r, gridColor)
	}

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.drawGridLines()
	}

	tx, ty := g.camera.WorldToScreen(scene.Target.Pos.X, scene.Target.Pos.Y)
	rl.DrawCircle(int32(tx), int32(ty), g.camera.ScaleToScreen(scene.Target.Radius), ui.Color(colors.Target))

	stroke := ui.Color(colors.RocketStroke)
	for _, r := range scene.Rockets {
		if !g.camera.IsVisible(r.Pos.X, r.Pos.Y, scene.RocketSize.Y) {
			continue
		}
		rect, origin, rot := rocketRect(g.camera, r, scene.RocketSize)
		outline := rect
		outline.Width += 2
		outline.Height += 2
		rl.DrawRectanglePro(outline, rl.Vector2{X: origin.X + 1, Y: origin.Y + 1}, rot, stroke)
		rl.DrawRectanglePro(rect, origin, rot, stateColor(colors, r.State))
	}

	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		g.drawVelocities(scene.Rockets)
	}

	g.drawUI(scene)

	rl.EndDrawing()
}

func (g *Game) drawUI(scene simulation.Scene) {
	pop := g.sim.Population().Stats()
	best, _ := g.collector.BestEver()
	g.hud.Draw(ui.HUDData{
		Generation:  scene.Generation,
		Frame:       scene.Frame,
		Lifespan:    g.sim.Lifespan(),
		Alive:       pop.Alive,
		Crashed:     pop.Crashed,
		Completed:   pop.Completed,
		BestFitness: g.lastStats.BestFitness,
		BestEver:    best,
		FPS:         rl.GetFPS(),
		Speed:       g.stepsPerUpdate,
		Paused:      g.paused,
	})
	g.hud.DrawControls(int32(g.screenH), controlsLegend)

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perf.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg: stats.PhaseAvg,
			PhasePct: stats.PhasePct,
			AvgFrame: stats.AvgFrame,
			Order:    telemetry.Phases(),
		})
	}

	state := ui.ControlState{Paused: g.paused, Speed: g.stepsPerUpdate}
	actions := g.controls.Draw(&state, g.overlays)
	g.paused = state.Paused
	g.stepsPerUpdate = state.Speed
	if actions.SkipGeneration {
		g.sim.StepGeneration()
	}
	if actions.ResetCamera {
		g.camera.Reset()
	}
}

// drawWorldRect fills a world rectangle given by its top-left corner.
func (g *Game) drawWorldRect(r world.Rect, color rl.Color) {
	sx, sy := g.camera.WorldToScreen(r.X, r.Y)
	rl.DrawRectangleRec(rl.Rectangle{
		X:      sx,
		Y:      sy,
		Width:  g.camera.ScaleToScreen(r.W),
		Height: g.camera.ScaleToScreen(r.H),
	}, color)
}

// drawFloodFill shades every reachable cell by its distance to the target.
func (g *Game) drawFloodFill() {
	maxHops := g.field.Max() - 1
	if maxHops <= 0 {
		return
	}
	for row := 0; row < g.world.Rows(); row++ {
		for col := 0; col < g.world.GridSize(); col++ {
			hops, ok := g.field.Distance(row, col)
			if !ok {
				continue
			}
			g.drawWorldRect(g.world.CellRect(row, col), heatColor(hops, maxHops))
		}
	}
}

func (g *Game) drawGridLines() {
	c := ui.WithAlpha(ui.Color(g.cfg.Colors.Grid), 90)
	for row := 0; row < g.world.Rows(); row++ {
		for col := 0; col < g.world.GridSize(); col++ {
			r := g.world.CellRect(row, col)
			sx, sy := g.camera.WorldToScreen(r.X, r.Y)
			rl.DrawRectangleLinesEx(rl.Rectangle{
				X:      sx,
				Y:      sy,
				Width:  g.camera.ScaleToScreen(r.W),
				Height: g.camera.ScaleToScreen(r.H),
			}, 1, c)
		}
	}
}

func (g *Game) drawVelocities(rockets []simulation.RocketView) {
	const scale = 4
	for _, r := range rockets {
		if r.State != rocket.Alive {
			continue
		}
		x0, y0 := g.camera.WorldToScreen(r.Pos.X, r.Pos.Y)
		tip := r.Pos.Add(r.Vel.Scale(scale))
		x1, y1 := g.camera.WorldToScreen(tip.X, tip.Y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, rl.Yellow)
	}
}

// rocketRect returns the screen rectangle, rotation origin and rotation in
// degrees for drawing r with its long side along the direction of travel.
func rocketRect(cam *camera.Camera, r simulation.RocketView, size vecmath.Vec2) (rl.Rectangle, rl.Vector2, float32) {
	sx, sy := cam.WorldToScreen(r.Pos.X, r.Pos.Y)
	w := cam.ScaleToScreen(size.X)
	h := cam.ScaleToScreen(size.Y)
	// Screen Y points down, so world angles flip sign. A rectangle at 0
	// degrees stands upright.
	rot := 90 - r.Heading*180/math.Pi
	return rl.Rectangle{X: sx, Y: sy, Width: w, Height: h}, rl.Vector2{X: w / 2, Y: h / 2}, rot
}

func stateColor(c config.ColorsConfig, s rocket.State) rl.Color {
	switch s {
	case rocket.Completed:
		return ui.Color(c.RocketCompleted)
	case rocket.Crashed:
		return ui.Color(c.RocketCrashed)
	default:
		return ui.Color(c.RocketAlive)
	}
}

// heatColor fades from warm at the target to cool at the farthest cell.
func heatColor(hops, maxHops int) rl.Color {
	t := float32(hops) / float32(maxHops)
	t = min(max(t, 0), 1)
	return rl.Color{
		R: uint8(220 * (1 - t)),
		G: uint8(60 + 60*(1-t)),
		B: uint8(80 + 150*t),
		A: 110,
	}
}
