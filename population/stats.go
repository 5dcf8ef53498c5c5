package population

import (
	"math"

	"github.com/pthm-cable/rockets/rocket"
)

// CohortStats summarises the current cohort.
type CohortStats struct {
	Alive       int
	Crashed     int
	Completed   int
	Fitness     []float64 // unordered
	MinDistance float64
	MeanFrames  float64
	Founders    int
	Selfed      int

	// FastestCompletion is the fewest frames any rocket flew before
	// reaching the target, or -1 if none did.
	FastestCompletion int
}

// Stats walks every rocket entity and tallies its state.
func (p *Population) Stats() CohortStats {
	s := CohortStats{
		Fitness:           make([]float64, 0, len(p.entities)),
		MinDistance:       math.Inf(1),
		FastestCompletion: -1,
	}
	var frames int

	query := p.filter.Query()
	for query.Next() {
		r, lin := query.Get()

		switch r.State {
		case rocket.Alive:
			s.Alive++
		case rocket.Crashed:
			s.Crashed++
		case rocket.Completed:
			s.Completed++
			if s.FastestCompletion < 0 || r.Frames < s.FastestCompletion {
				s.FastestCompletion = r.Frames
			}
		}
		if lin.Founder() {
			s.Founders++
		} else if lin.Selfed() {
			s.Selfed++
		}

		s.Fitness = append(s.Fitness, float64(r.Fitness(p.metric)))
		s.MinDistance = math.Min(s.MinDistance, float64(p.metric(r.Pos)))
		frames += r.Frames
	}

	if n := len(s.Fitness); n > 0 {
		s.MeanFrames = float64(frames) / float64(n)
	}
	return s
}
