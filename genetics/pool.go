package genetics

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// ErrDegenerateWeights is returned when selection weights cannot form a
// sampling distribution.
var ErrDegenerateWeights = errors.New("degenerate selection weights")

// GenePool draws parent indices in proportion to their weights, with
// replacement.
type GenePool struct {
	weights []float64
	sampler sampleuv.Weighted
}

// NewGenePool builds a pool over weights. Weights must be finite and
// non-negative with a positive sum.
func NewGenePool(weights []float64, rng *rand.Rand) (*GenePool, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrDegenerateWeights)
	}
	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrDegenerateWeights, i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrDegenerateWeights)
	}

	w := make([]float64, len(weights))
	copy(w, weights)
	return &GenePool{
		weights: w,
		sampler: sampleuv.NewWeighted(w, rng),
	}, nil
}

// Len returns the number of candidates in the pool.
func (p *GenePool) Len() int {
	return len(p.weights)
}

// Weight returns the weight of candidate i.
func (p *GenePool) Weight(i int) float64 {
	return p.weights[i]
}

// Sample draws one index. The pool is unchanged afterwards.
func (p *GenePool) Sample() int {
	idx, ok := p.sampler.Take()
	if !ok {
		// Unreachable for a validated pool.
		panic("genetics: sample from empty gene pool")
	}
	// Take zeroes the drawn weight; restore it so draws are with replacement.
	p.sampler.Reweight(idx, p.weights[idx])
	return idx
}
