package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the main HUD shows.
type HUDData struct {
	Generation  int
	Frame       int
	Lifespan    int
	Alive       int
	Crashed     int
	Completed   int
	BestFitness float64 // best of the last scored generation
	BestEver    float64
	FPS         int32
	Speed       int
	Paused      bool
}

// Lines returns the HUD text, one entry per row.
func (d HUDData) Lines() []string {
	status := "running"
	if d.Paused {
		status = "PAUSED"
	}
	return []string{
		fmt.Sprintf("Generation: %d", d.Generation),
		fmt.Sprintf("Frame: %d/%d", d.Frame, d.Lifespan),
		fmt.Sprintf("Alive: %d  Crashed: %d  Completed: %d", d.Alive, d.Crashed, d.Completed),
		fmt.Sprintf("Best: %s  (ever %s)", FormatFitness(d.BestFitness), FormatFitness(d.BestEver)),
		fmt.Sprintf("FPS: %d  Speed: %dx  %s", d.FPS, d.Speed, status),
	}
}

// FormatFitness renders a fitness value compactly. A rocket sitting on the
// target has infinite fitness.
func FormatFitness(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case f == 0:
		return "0"
	case f < 1e-3 || f >= 1e4:
		return fmt.Sprintf("%.3e", f)
	default:
		return fmt.Sprintf("%.4f", f)
	}
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	text     rl.Color
}

// NewHUD creates a HUD drawing in the given text colour.
func NewHUD(text rl.Color) *HUD {
	return &HUD{renderer: NewRenderer(), text: text}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	y := int32(10)
	for i, line := range data.Lines() {
		size := int32(16)
		if i == 0 {
			size = 20
		}
		rl.DrawText(line, 10, y, size, h.text)
		y += size + 4
	}

	total := data.Alive + data.Crashed + data.Completed
	if total > 0 {
		rate := float32(data.Completed) / float32(total)
		h.renderer.DrawBar(10, y+4, "Completed", rate, 260, h.renderer.Theme.BarFill)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	AvgFrame time.Duration
	Order    []string
}

// PerfPanel renders per-phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y
	y = p.renderer.DrawSectionHeader(x, y, "Frame time")
	rl.DrawText(fmt.Sprintf("Avg: %s", data.AvgFrame.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 14

	for _, name := range data.Order {
		pct := data.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-18s %8s %5.1f%%", name, data.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
