package rocket

import (
	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/floodfill"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

// DistanceMetric measures how far a position is from the target.
type DistanceMetric func(p vecmath.Vec2) float32

// EuclideanMetric is straight-line distance to the target.
func EuclideanMetric(target world.Target) DistanceMetric {
	return func(p vecmath.Vec2) float32 {
		return p.Dist(target.Pos)
	}
}

// GeodesicMetric measures distance around obstacles using a flood fill from
// the target's cell. Hop counts are scaled by the collision cell size and
// never undercut the straight-line distance. Cells the flood never reached
// (walls, sealed pockets, off-grid) score as the farthest reachable cell.
func GeodesicMetric(w *world.World, field *floodfill.Field) DistanceMetric {
	target := w.Target()
	cell := w.CellPixels()
	worst := float32(field.Max()) * cell

	return func(p vecmath.Vec2) float32 {
		euclid := p.Dist(target.Pos)
		col, row := w.WindowToGrid(p)
		hops, ok := field.Distance(row, col)
		switch {
		case !ok:
			return max(euclid, worst)
		case hops == 0:
			return euclid
		default:
			return max(euclid, float32(hops)*cell)
		}
	}
}

// MetricFor returns the metric named by cfg.Fitness.Metric.
func MetricFor(cfg *config.Config, w *world.World) DistanceMetric {
	if cfg.Fitness.Metric == config.MetricGeodesic {
		return GeodesicMetric(w, w.DistanceField())
	}
	return EuclideanMetric(w.Target())
}
