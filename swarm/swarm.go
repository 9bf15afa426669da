// Package swarm implements particle swarm optimization over continuous,
// box-bounded search spaces.  Particles carry uniform scalar bounds shared
// by every coordinate; the solver mutates the population in place.
package swarm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/edwinb-ai/newtman"
)

// DefaultSize is the particle count used when a population is built from a
// dimension alone.
const DefaultSize = 5

// Rand supplies the draws consumed by randomized particle and population
// construction.  Reseed it for reproducible populations.
var Rand Rng = rand.New(rand.NewSource(1))

type Rng interface {
	Float64() float64
}

type Particle struct {
	Id  int
	Pos []float64
	Vel []float64
	// Best is the particle's personal best position.
	Best []float64
	// Val is the objective value at Pos from the most recent evaluation.
	Val float64
	// Lower and Upper bound every coordinate of Pos.
	Lower float64
	Upper float64
}

// NewParticle creates a particle of dimension dim with Pos and Vel drawn
// coordinate-wise uniform on [lower, upper).  Best is drawn uniform on
// [0, 1) rather than starting at Pos; personal-best tracking only begins
// once a solver starts iterating.
func NewParticle(lower, upper float64, dim int) (*Particle, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("swarm: dimension must be positive, got %v", dim)
	}
	if lower >= upper {
		return nil, fmt.Errorf("swarm: lower bound %v is not below upper bound %v", lower, upper)
	}

	p := &Particle{
		Pos:   make([]float64, dim),
		Vel:   make([]float64, dim),
		Best:  make([]float64, dim),
		Lower: lower,
		Upper: upper,
	}
	for i := 0; i < dim; i++ {
		p.Pos[i] = lower + Rand.Float64()*(upper-lower)
		p.Vel[i] = lower + Rand.Float64()*(upper-lower)
	}
	for i := 0; i < dim; i++ {
		p.Best[i] = Rand.Float64()
	}
	return p, nil
}

// NewParticleFrom builds a particle from explicit position, velocity, and
// personal-best vectors.  The three vectors must share one length.
func NewParticleFrom(pos, vel, best []float64, lower, upper float64) (*Particle, error) {
	if len(pos) == 0 {
		return nil, fmt.Errorf("swarm: dimension must be positive, got %v", len(pos))
	}
	if len(vel) != len(pos) || len(best) != len(pos) {
		return nil, fmt.Errorf("swarm: mismatched vector lengths: pos=%v, vel=%v, best=%v",
			len(pos), len(vel), len(best))
	}
	if lower >= upper {
		return nil, fmt.Errorf("swarm: lower bound %v is not below upper bound %v", lower, upper)
	}

	p := &Particle{
		Pos:   append([]float64{}, pos...),
		Vel:   append([]float64{}, vel...),
		Best:  append([]float64{}, best...),
		Lower: lower,
		Upper: upper,
	}
	return p, nil
}

// Clamp enforces the particle's box bounds in place.  Position coordinates
// are clamped two-sided into [Lower, Upper].  The velocity bound is the
// largest velocity coordinate - NOT the largest magnitude - and every
// velocity coordinate is then clamped into [-vmax, vmax].  When the largest
// coordinate is negative, the inverted interval collapses every coordinate
// to vmax.  Clamp is idempotent.
func (p *Particle) Clamp() {
	for i, x := range p.Pos {
		if x > p.Upper {
			p.Pos[i] = p.Upper
		} else if x < p.Lower {
			p.Pos[i] = p.Lower
		}
	}

	vmax := floats.Max(p.Vel)
	for i, v := range p.Vel {
		p.Vel[i] = math.Min(math.Max(v, -vmax), vmax)
	}
}

type Population []*Particle

// NewPopulation creates a population of n randomized particles of dimension
// dim, all sharing the bounds [lower, upper].  Construction draws from Rand.
func NewPopulation(n, dim int, lower, upper float64) (Population, error) {
	if n <= 0 {
		return nil, fmt.Errorf("swarm: particle count must be positive, got %v", n)
	}

	pop := make(Population, n)
	for i := range pop {
		p, err := NewParticle(lower, upper, dim)
		if err != nil {
			return nil, err
		}
		p.Id = i
		pop[i] = p
	}
	return pop, nil
}

// NewPopulationDefault is NewPopulation with a particle count of
// DefaultSize.
func NewPopulationDefault(dim int, lower, upper float64) (Population, error) {
	return NewPopulation(DefaultSize, dim, lower, upper)
}

func (pop Population) Points() []newtman.Point {
	points := make([]newtman.Point, len(pop))
	for i, p := range pop {
		points[i] = newtman.NewPoint(p.Pos, p.Val)
	}
	return points
}

// Best returns the particle with the lowest current objective value.
func (pop Population) Best() *Particle {
	if len(pop) == 0 {
		return nil
	}

	best := pop[0]
	for _, p := range pop[1:] {
		if p.Val < best.Val {
			best = p
		}
	}
	return best
}
