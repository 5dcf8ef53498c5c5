package telemetry

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ProgressChart accumulates per-generation series for a PNG chart.
type ProgressChart struct {
	completed plotter.XYs
	crashed   plotter.XYs
	closest   plotter.XYs
}

// NewProgressChart returns an empty chart.
func NewProgressChart() *ProgressChart {
	return &ProgressChart{}
}

// Add appends one generation.
func (c *ProgressChart) Add(s GenerationStats) {
	x := float64(s.Generation)
	c.completed = append(c.completed, plotter.XY{X: x, Y: float64(s.Completed)})
	c.crashed = append(c.crashed, plotter.XY{X: x, Y: float64(s.Crashed)})
	if !math.IsInf(s.MinDistance, 0) && !math.IsNaN(s.MinDistance) {
		c.closest = append(c.closest, plotter.XY{X: x, Y: s.MinDistance})
	}
}

// Len returns the number of generations added.
func (c *ProgressChart) Len() int {
	return len(c.completed)
}

// Save renders the chart to path. The format follows the file extension.
func (c *ProgressChart) Save(path string) error {
	if c.Len() == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "Rockets per generation"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Count / distance"

	series := []struct {
		name string
		xys  plotter.XYs
	}{
		{"completed", c.completed},
		{"crashed", c.crashed},
		{"closest distance", c.closest},
	}
	for i, s := range series {
		if len(s.xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(s.xys)
		if err != nil {
			return fmt.Errorf("building %s series: %w", s.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
