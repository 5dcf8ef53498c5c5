// Package population manages one cohort of rockets and breeds the next.
//
// Rockets live as entities in an ark ECS world carrying a rocket.Rocket and
// a components.Lineage. The cohort order is kept separately so that updates
// and parent indices are deterministic for a given random stream.
package population

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/rockets/components"
	"github.com/pthm-cable/rockets/config"
	"github.com/pthm-cable/rockets/genetics"
	"github.com/pthm-cable/rockets/rocket"
	"github.com/pthm-cable/rockets/vecmath"
	"github.com/pthm-cable/rockets/world"
)

// Environment is what rockets are updated against.
type Environment interface {
	IsWallWorld(p vecmath.Vec2) bool
	Target() world.Target
}

// Population is a cohort of rockets plus the gene pool built from the
// previous selection.
type Population struct {
	size      int
	lifespan  int
	spawn     vecmath.Vec2
	rate      float32
	variation float32
	metric    rocket.DistanceMetric
	rng       *rand.Rand

	world    *ecs.World
	mapper   *ecs.Map2[rocket.Rocket, components.Lineage]
	filter   *ecs.Filter2[rocket.Rocket, components.Lineage]
	rockets  *ecs.Map1[rocket.Rocket]
	entities []ecs.Entity

	pool       *genetics.GenePool
	generation int
	nextID     uint32
}

// New builds cfg.Simulation.NumRockets founders with random genomes at the
// spawn point. metric scores rockets during Selection; nil selects the
// straight-line distance to cfg's target.
func New(cfg *config.Config, rng *rand.Rand, metric rocket.DistanceMetric) *Population {
	d := cfg.Derived
	if metric == nil {
		metric = rocket.EuclideanMetric(world.Target{
			Pos:    vecmath.Vec2{X: d.TargetX32, Y: d.TargetY32},
			Radius: d.TargetR32,
		})
	}

	w := ecs.NewWorld()
	p := &Population{
		size:      cfg.Simulation.NumRockets,
		lifespan:  cfg.Rocket.Lifespan,
		spawn:     vecmath.Vec2{X: d.SpawnX32, Y: d.SpawnY32},
		rate:      d.MutationRate,
		variation: d.Variation32,
		metric:    metric,
		rng:       rng,
		world:     w,
		mapper:    ecs.NewMap2[rocket.Rocket, components.Lineage](w),
		filter:    ecs.NewFilter2[rocket.Rocket, components.Lineage](w),
		rockets:   ecs.NewMap1[rocket.Rocket](w),
	}

	p.entities = make([]ecs.Entity, 0, p.size)
	for i := 0; i < p.size; i++ {
		r := rocket.New(p.spawn, genetics.NewRandom(rng, p.lifespan))
		lin := components.Lineage{ID: p.newID(), ParentA: -1, ParentB: -1}
		p.entities = append(p.entities, p.mapper.NewEntity(&r, &lin))
	}
	return p
}

func (p *Population) newID() uint32 {
	id := p.nextID
	p.nextID++
	return id
}

// Len returns the cohort size.
func (p *Population) Len() int {
	return len(p.entities)
}

// Generation returns how many times the cohort has been replaced.
func (p *Population) Generation() int {
	return p.generation
}

// HasGenePool reports whether the last selection succeeded.
func (p *Population) HasGenePool() bool {
	return p.pool != nil
}

// At returns a copy of the i-th rocket in cohort order.
func (p *Population) At(i int) rocket.Rocket {
	return *p.rockets.Get(p.entities[i])
}

// Each calls fn for every rocket in cohort order. fn may modify the rocket.
func (p *Population) Each(fn func(i int, r *rocket.Rocket, lin *components.Lineage)) {
	for i, e := range p.entities {
		r, lin := p.mapper.Get(e)
		fn(i, r, lin)
	}
}

// Update advances every rocket by one frame. Each rocket's collision flag
// is its own position tested against env.
func (p *Population) Update(frame int, env Environment) {
	target := env.Target()
	for _, e := range p.entities {
		r := p.rockets.Get(e)
		r.Update(frame, env.IsWallWorld(r.Pos), target)
	}
}

// Fitness returns every rocket's fitness in cohort order.
func (p *Population) Fitness() []float64 {
	out := make([]float64, len(p.entities))
	for i, e := range p.entities {
		out[i] = float64(p.rockets.Get(e).Fitness(p.metric))
	}
	return out
}

// Selection scores the cohort and builds the gene pool. Fitness is
// normalised against the best rocket into [0, 100]. If the best is +Inf,
// every +Inf rocket weighs 100 and the rest 0. When no usable distribution
// results, the gene pool is cleared and the error wraps
// genetics.ErrDegenerateWeights.
func (p *Population) Selection() error {
	weights := Normalize(p.Fitness())

	pool, err := genetics.NewGenePool(weights, p.rng)
	if err != nil {
		p.pool = nil
		return fmt.Errorf("selection of generation %d: %w", p.generation, err)
	}
	p.pool = pool
	return nil
}

// Normalize maps fitness values into [0, 100] relative to the maximum.
// NaN inputs count as 0. The input is not modified.
func Normalize(fitness []float64) []float64 {
	w := make([]float64, len(fitness))
	for i, f := range fitness {
		if !math.IsNaN(f) {
			w[i] = f
		}
	}
	if len(w) == 0 {
		return w
	}

	best := floats.Max(w)
	switch {
	case math.IsInf(best, 1):
		for i, f := range w {
			if math.IsInf(f, 1) {
				w[i] = 100
			} else {
				w[i] = 0
			}
		}
	case best > 0:
		floats.Scale(100/best, w)
	}
	return w
}

// Reproduction replaces the cohort with children bred from the gene pool.
// Without a gene pool it does nothing and returns false.
func (p *Population) Reproduction() bool {
	if p.pool == nil {
		return false
	}

	parents := make([]rocket.Rocket, len(p.entities))
	for i, e := range p.entities {
		parents[i] = *p.rockets.Get(e)
	}

	p.generation++
	children := make([]rocket.Rocket, p.size)
	lineage := make([]components.Lineage, p.size)
	for i := range children {
		a := p.pool.Sample()
		b := p.pool.Sample()
		children[i] = rocket.Reproduce(p.rng, &parents[a], &parents[b], p.spawn, p.rate, p.variation)
		lineage[i] = components.Lineage{
			ID:         p.newID(),
			Generation: p.generation,
			ParentA:    int32(a),
			ParentB:    int32(b),
		}
	}

	for _, e := range p.entities {
		p.world.RemoveEntity(e)
	}
	p.entities = p.entities[:0]
	for i := range children {
		p.entities = append(p.entities, p.mapper.NewEntity(&children[i], &lineage[i]))
	}
	return true
}
