// Flood fill preview tool. Prints the hop distance of every map cell from
// the target (or a chosen start cell), or shows it interactively.
//
// Usage: go run ./cmd/floodpreview -map assets/map.txt [-window]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/floodfill"
	"github.com/pthm-cable/rockets/world"
)

const (
	previewSize = 600
	panelWidth  = 260
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	mapPath := flag.String("map", "", "Map file (empty = use config)")
	row := flag.Int("row", -1, "Start row (-1 = target cell)")
	col := flag.Int("col", -1, "Start column (-1 = target cell)")
	window := flag.Bool("window", false, "Show an interactive preview instead of printing")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *mapPath != "" {
		cfg.Grid.MapPath = *mapPath
	}
	w, err := world.LoadFile(cfg.Grid.MapPath, cfg)
	if err != nil {
		log.Fatalf("failed to load map: %v", err)
	}

	ff := floodfill.New(w.Labels(), floodfill.Wall, floodfill.NoWall)
	start := startCell(w, *row, *col)

	if !*window {
		if err := renderText(os.Stdout, ff.Field(start)); err != nil {
			log.Fatal(err)
		}
		return
	}
	runWindow(w, ff, start)
}

// startCell returns (row, col) when both are set, otherwise the target's
// cell.
func startCell(w *world.World, row, col int) floodfill.Cell {
	if row >= 0 && col >= 0 {
		return floodfill.Cell{Row: row, Col: col}
	}
	c, r := w.WindowToGrid(w.Target().Pos)
	return floodfill.Cell{Row: r, Col: c}
}

func runWindow(w *world.World, ff *floodfill.FloodFill, start floodfill.Cell) {
	rl.InitWindow(previewSize+panelWidth+30, previewSize+20, "Flood Fill Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	field := ff.Field(start)
	cell := float32(previewSize) / float32(max(w.GridSize(), w.Rows()))
	var cutoff float32 = 1

	for !rl.WindowShouldClose() {
		// Click a cell to flood from it
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			m := rl.GetMousePosition()
			c, r := int((m.X-10)/cell), int((m.Y-10)/cell)
			if m.X >= 10 && m.Y >= 10 && r < w.Rows() && c < w.GridSize() {
				start = floodfill.Cell{Row: r, Col: c}
				field = ff.Field(start)
			}
		}

		maxHops := max(field.Max()-1, 1)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		for r := 0; r < w.Rows(); r++ {
			for c := 0; c < w.GridSize(); c++ {
				x := 10 + float32(c)*cell
				y := 10 + float32(r)*cell
				rect := rl.Rectangle{X: x, Y: y, Width: cell - 1, Height: cell - 1}

				hops, ok := field.Distance(r, c)
				switch {
				case w.IsWallGrid(r, c):
					rl.DrawRectangleRec(rect, rl.DarkGray)
				case !ok:
					rl.DrawRectangleRec(rect, rl.LightGray)
				case float32(hops) <= cutoff*float32(maxHops):
					t := float32(hops) / float32(maxHops)
					rl.DrawRectangleRec(rect, lerpColor(rl.Red, rl.Blue, t))
				default:
					rl.DrawRectangleRec(rect, rl.Color{R: 230, G: 230, B: 240, A: 255})
				}
			}
		}
		rl.DrawRectangleLines(int32(10+float32(start.Col)*cell), int32(10+float32(start.Row)*cell), int32(cell), int32(cell), rl.Black)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Flood Fill", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35
		rl.DrawText(fmt.Sprintf("Start: row %d col %d", start.Row, start.Col), int32(panelX), int32(panelY), 16, rl.Gray)
		panelY += 22
		rl.DrawText(fmt.Sprintf("Farthest: %d hops", field.Max()-1), int32(panelX), int32(panelY), 16, rl.Gray)
		panelY += 35

		rl.DrawText("Show cells within", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		cutoff = gui.SliderBar(
			rl.Rectangle{X: panelX + 20, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0%", "100%",
			cutoff, 0, 1,
		)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Target cell") {
			start = startCell(w, -1, -1)
			field = ff.Field(start)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 100, Height: 30}, "Print") {
			if err := renderText(os.Stdout, field); err != nil {
				log.Print(err)
			}
		}

		rl.DrawText("Click a cell to flood from it", int32(panelX), int32(previewSize-10), 12, rl.LightGray)
		rl.EndDrawing()
	}
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
