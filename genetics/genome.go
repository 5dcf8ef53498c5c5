// Package genetics implements the rocket genome and its operators.
//
// A Genome is an immutable sequence of 2D force vectors, one per frame of a
// rocket's life. Crossover and Mutate never modify their inputs; they always
// return a genome with its own backing array.
package genetics

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/rockets/vecmath"
)

// Genome is a fixed-length sequence of force vectors.
type Genome struct {
	genes []vecmath.Vec2
}

// NewRandom creates a genome of the given length with every component drawn
// uniformly from [-1, 1].
func NewRandom(rng *rand.Rand, lifespan int) *Genome {
	genes := make([]vecmath.Vec2, lifespan)
	for i := range genes {
		genes[i] = vecmath.Vec2{X: uniform(rng), Y: uniform(rng)}
	}
	return &Genome{genes: genes}
}

// NewFrom creates a genome holding a copy of genes. The length is not checked
// against any lifespan.
func NewFrom(genes []vecmath.Vec2) *Genome {
	g := make([]vecmath.Vec2, len(genes))
	copy(g, genes)
	return &Genome{genes: g}
}

// Len returns the number of genes.
func (g *Genome) Len() int {
	return len(g.genes)
}

// Get returns the gene at index i. It panics if i is out of range.
func (g *Genome) Get(i int) vecmath.Vec2 {
	if i < 0 || i >= len(g.genes) {
		panic(fmt.Sprintf("genetics: gene index %d out of range [0, %d)", i, len(g.genes)))
	}
	return g.genes[i]
}

// Genes returns a copy of the gene sequence.
func (g *Genome) Genes() []vecmath.Vec2 {
	out := make([]vecmath.Vec2, len(g.genes))
	copy(out, g.genes)
	return out
}

// Crossover performs single-point crossover at a split drawn uniformly from
// [0, first.Len()).
func Crossover(rng *rand.Rand, first, second *Genome) *Genome {
	if first.Len() == 0 {
		return NewFrom(nil)
	}
	return CrossoverAt(first, second, rng.IntN(first.Len()))
}

// CrossoverAt builds a child from first[:split] followed by second[split:].
// Both parents must have the same length and split must lie in [0, Len()].
func CrossoverAt(first, second *Genome, split int) *Genome {
	if first.Len() != second.Len() {
		panic(fmt.Sprintf("genetics: crossover of genomes with lengths %d and %d", first.Len(), second.Len()))
	}
	child := make([]vecmath.Vec2, first.Len())
	copy(child[:split], first.genes[:split])
	copy(child[split:], second.genes[split:])
	return &Genome{genes: child}
}

// Mutate returns a copy of g where each gene, with probability rate, has
// uniform[-1,1]*variation added to both of its components.
func (g *Genome) Mutate(rng *rand.Rand, rate, variation float32) *Genome {
	out := g.Genes()
	for i := range out {
		if rng.Float32() >= rate {
			continue
		}
		out[i].X += uniform(rng) * variation
		out[i].Y += uniform(rng) * variation
	}
	return &Genome{genes: out}
}

// uniform returns a float32 in [-1, 1).
func uniform(rng *rand.Rand) float32 {
	return rng.Float32()*2 - 1
}
