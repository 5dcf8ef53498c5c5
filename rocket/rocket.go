// Package rocket implements a single agent: a point mass driven frame by
// frame by its genome until it reaches the target or crashes.
package rocket

import (
	"math/rand/v2"

	"github.com/pthm-cable/rockets/genetics"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

// State is a rocket's lifecycle state. Crashed and Completed are terminal.
type State uint8

const (
	Alive State = iota
	Crashed
	Completed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Crashed:
		return "crashed"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s != Alive
}

// Rocket is a single agent.
type Rocket struct {
	Pos   vecmath.Vec2
	Vel   vecmath.Vec2
	Acc   vecmath.Vec2
	State State
	DNA   *genetics.Genome

	Frames   int // frames spent alive and moving
	EndFrame int // frame index at which a terminal state was entered, -1 while alive
}

// New returns a live rocket at spawn with zero velocity.
func New(spawn vecmath.Vec2, dna *genetics.Genome) Rocket {
	return Rocket{
		Pos:      spawn,
		State:    Alive,
		DNA:      dna,
		EndFrame: -1,
	}
}

// Update advances the rocket by one frame. Reaching the target takes
// precedence over a collision.
func (r *Rocket) Update(frame int, colliding bool, target world.Target) {
	if r.State.Terminal() {
		return
	}
	if r.Pos.Dist(target.Pos) <= target.Radius {
		r.State = Completed
		r.EndFrame = frame
		return
	}
	if colliding {
		r.State = Crashed
		r.EndFrame = frame
		return
	}

	r.Acc = r.Acc.Add(r.DNA.Get(frame))
	r.Vel = r.Vel.Add(r.Acc)
	r.Pos = r.Pos.Add(r.Vel)
	r.Acc = vecmath.Vec2{}
	r.Frames++
}

// Fitness scores the rocket as (1/d)^2 where d is metric(Pos). A distance of
// zero gives +Inf.
func (r *Rocket) Fitness(metric DistanceMetric) float32 {
	d := metric(r.Pos)
	f := 1 / d
	return f * f
}

// Heading returns the direction of travel in radians.
func (r *Rocket) Heading() float32 {
	return r.Vel.Angle()
}

// Reproduce breeds a child at spawn whose genome is the mutated crossover
// of both parents.
func Reproduce(rng *rand.Rand, a, b *Rocket, spawn vecmath.Vec2, rate, variation float32) Rocket {
	child := genetics.Crossover(rng, a.DNA, b.DNA).Mutate(rng, rate, variation)
	return New(spawn, child)
}
