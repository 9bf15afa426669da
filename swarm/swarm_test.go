package swarm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedrng(seed int64) {
	Rand = rand.New(rand.NewSource(seed))
}

func TestNewPopulation(t *testing.T) {
	seedrng(1)

	cases := []struct {
		n, dim       int
		lower, upper float64
	}{
		{1, 1, -1, 1},
		{5, 3, -10, 10},
		{30, 30, -10, 10},
		{35, 2, -100, 100},
	}

	for _, c := range cases {
		pop, err := NewPopulation(c.n, c.dim, c.lower, c.upper)
		require.NoError(t, err)
		require.Len(t, pop, c.n)

		for i, p := range pop {
			assert.Equal(t, i, p.Id)
			assert.Len(t, p.Pos, c.dim)
			assert.Len(t, p.Vel, c.dim)
			assert.Len(t, p.Best, c.dim)
			assert.Equal(t, c.lower, p.Lower)
			assert.Equal(t, c.upper, p.Upper)

			for j := 0; j < c.dim; j++ {
				assert.GreaterOrEqual(t, p.Pos[j], c.lower)
				assert.Less(t, p.Pos[j], c.upper)
				assert.GreaterOrEqual(t, p.Vel[j], c.lower)
				assert.Less(t, p.Vel[j], c.upper)
				assert.GreaterOrEqual(t, p.Best[j], 0.0)
				assert.Less(t, p.Best[j], 1.0)
			}
		}
	}
}

func TestNewPopulationDefault(t *testing.T) {
	seedrng(1)

	pop, err := NewPopulationDefault(4, -2, 2)
	require.NoError(t, err)
	assert.Len(t, pop, DefaultSize)
}

func TestNewPopulationBadArgs(t *testing.T) {
	cases := []struct {
		name         string
		n, dim       int
		lower, upper float64
	}{
		{"zero count", 0, 3, -1, 1},
		{"negative count", -2, 3, -1, 1},
		{"zero dim", 5, 0, -1, 1},
		{"negative dim", 5, -1, -1, 1},
		{"inverted bounds", 5, 3, 1, -1},
		{"equal bounds", 5, 3, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewPopulation(c.n, c.dim, c.lower, c.upper)
			assert.Error(t, err)
		})
	}
}

func TestNewParticleFrom(t *testing.T) {
	p, err := NewParticleFrom([]float64{1, 2}, []float64{0, 0}, []float64{0.5, 0.5}, -5, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, p.Pos)

	// the particle must own its vectors
	pos := []float64{1, 2}
	p, err = NewParticleFrom(pos, []float64{0, 0}, []float64{0, 0}, -5, 5)
	require.NoError(t, err)
	pos[0] = 99
	assert.Equal(t, 1.0, p.Pos[0])
}

func TestNewParticleFromBadArgs(t *testing.T) {
	_, err := NewParticleFrom([]float64{1, 2}, []float64{0}, []float64{0, 0}, -5, 5)
	assert.Error(t, err, "mismatched velocity length")

	_, err = NewParticleFrom([]float64{1, 2}, []float64{0, 0}, []float64{0}, -5, 5)
	assert.Error(t, err, "mismatched best length")

	_, err = NewParticleFrom(nil, nil, nil, -5, 5)
	assert.Error(t, err, "empty vectors")

	_, err = NewParticleFrom([]float64{1}, []float64{0}, []float64{0}, 5, -5)
	assert.Error(t, err, "inverted bounds")
}

func TestParticleClampPosition(t *testing.T) {
	p, err := NewParticleFrom(
		[]float64{-7, 0, 7},
		[]float64{1, 1, 1},
		[]float64{0, 0, 0},
		-5, 5,
	)
	require.NoError(t, err)

	p.Clamp()
	assert.Equal(t, []float64{-5, 0, 5}, p.Pos)
}

func TestParticleClampVelocity(t *testing.T) {
	p, err := NewParticleFrom(
		[]float64{0, 0, 0},
		[]float64{5, -7, 2},
		[]float64{0, 0, 0},
		-100, 100,
	)
	require.NoError(t, err)

	// vmax is the largest coordinate (5), so -7 rises to -5
	p.Clamp()
	assert.Equal(t, []float64{5, -5, 2}, p.Vel)
}

func TestParticleClampVelocityNegativeMax(t *testing.T) {
	p, err := NewParticleFrom(
		[]float64{0, 0, 0},
		[]float64{-3, -1, -2},
		[]float64{0, 0, 0},
		-100, 100,
	)
	require.NoError(t, err)

	// the bound is the largest coordinate, not the largest magnitude: with
	// vmax = -1 the interval [-vmax, vmax] is inverted and every
	// coordinate collapses to vmax
	p.Clamp()
	assert.Equal(t, []float64{-1, -1, -1}, p.Vel)
}

func TestParticleClampIdempotent(t *testing.T) {
	seedrng(42)

	p, err := NewParticle(-1, 1, 5)
	require.NoError(t, err)
	for i := range p.Pos {
		p.Pos[i] *= 3
		p.Vel[i] *= 3
	}

	p.Clamp()
	pos := append([]float64{}, p.Pos...)
	vel := append([]float64{}, p.Vel...)

	p.Clamp()
	assert.Equal(t, pos, p.Pos)
	assert.Equal(t, vel, p.Vel)
}

func TestPopulationBest(t *testing.T) {
	seedrng(1)

	pop, err := NewPopulation(3, 2, -1, 1)
	require.NoError(t, err)
	pop[0].Val = 3
	pop[1].Val = -2
	pop[2].Val = 7

	assert.Same(t, pop[1], pop.Best())
	assert.Nil(t, Population{}.Best())
}
