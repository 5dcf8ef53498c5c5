package simulation

import (
	"github.com/pthm-cable/rockets/components"
	"github.com/pthm-cable/rockets/rocket"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

// RocketView is what a renderer needs to draw one rocket.
type RocketView struct {
	Pos     vecmath.Vec2
	Vel     vecmath.Vec2
	Heading float32 // radians, direction of travel
	State   rocket.State
}

// Scene is the render geometry for one frame.
type Scene struct {
	Obstacles  []world.Rect
	Target     world.Target
	Rockets    []RocketView
	RocketSize vecmath.Vec2 // width, height
	Generation int
	Frame      int
}

// Scene exports the current frame. Rockets are appended to buf[:0] so a
// caller can reuse the slice across frames.
func (s *Simulation) Scene(buf []RocketView) Scene {
	buf = buf[:0]
	s.pop.Each(func(_ int, r *rocket.Rocket, _ *components.Lineage) {
		buf = append(buf, RocketView{
			Pos:     r.Pos,
			Vel:     r.Vel,
			Heading: r.Heading(),
			State:   r.State,
		})
	})

	return Scene{
		Obstacles: s.obstacles,
		Target:    s.world.Target(),
		Rockets:   buf,
		RocketSize: vecmath.Vec2{
			X: float32(s.cfg.Rocket.Width),
			Y: float32(s.cfg.Rocket.Height),
		},
		Generation: s.generation,
		Frame:      s.frame,
	}
}
