package swarm

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/edwinb-ai/newtman"
)

// Name tags results produced by this package.
const Name = "PSO"

// Common starting values for the velocity equation - for details see:
//
//     Eberhart, R.C.; Yuhui Shi, "Particle swarm optimization: developments,
//     applications and resources," Evolutionary Computation, 2001. Proceedings of
//     the 2001 Congress on , vol.1, no., pp.81,86 vol. 1, 2001 doi:
//     10.1109/CEC.2001.934374
const (
	DefaultInertia   = 0.9
	DefaultCognition = 2.0
	DefaultSocial    = 2.0
	// InertiaFloor is the weight the linear schedule anneals toward.
	InertiaFloor = 0.4
)

// LinearInertia decays an inertia weight linearly from w0 toward
// InertiaFloor over kmax decay steps.  The schedule is open-ended: nothing
// clamps W at the floor, so applying more than kmax steps keeps subtracting
// and the weight passes below it.
type LinearInertia struct {
	W    float64
	Step float64
}

func NewLinearInertia(w0 float64, kmax int) *LinearInertia {
	return &LinearInertia{
		W:    w0,
		Step: (w0 - InertiaFloor) / float64(kmax),
	}
}

// Decay applies one annealing step.
func (li *LinearInertia) Decay() { li.W -= li.Step }

type Option func(*Solver)

// LearnFactors sets the cognition (c1) and social (c2) acceleration
// coefficients.
func LearnFactors(cognition, social float64) Option {
	return func(s *Solver) {
		s.Cognition = cognition
		s.Social = social
	}
}

// Inertia sets the starting inertia weight w0.
func Inertia(w0 float64) Option {
	return func(s *Solver) {
		s.Inertia = w0
	}
}

// Seed fixes the solver's random stream so that repeated runs with equal
// populations and budgets produce identical results.  Without it the
// stream is seeded from the clock.
func Seed(seed int64) Option {
	return func(s *Solver) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithEvaler replaces the evaluator used for the initialization scan.
func WithEvaler(ev newtman.Evaler) Option {
	return func(s *Solver) {
		s.Evaler = ev
	}
}

// DB enables per-iteration recording of particle and swarm state into the
// given database.
func DB(db *sql.DB) Option {
	return func(s *Solver) {
		s.Db = db
	}
}

type Solver struct {
	Cognition float64
	Social    float64
	// Inertia is the starting weight w0 of the linear annealing schedule.
	Inertia float64
	// Evaler performs the initialization scan over particle positions.
	Evaler newtman.Evaler
	Db     *sql.DB
	rng    *rand.Rand
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{
		Cognition: DefaultCognition,
		Social:    DefaultSocial,
		Inertia:   DefaultInertia,
		Evaler:    newtman.SerialEvaler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Solve minimizes obj over pop for exactly kmax iterations and returns the
// run summary.  There is no early exit; the budget is always spent.
//
// The swarm updates asynchronously: particles are processed in population
// order within each iteration, sharing one random stream and one best point
// that earlier particles may improve for later ones in the same pass.  A
// parallel variant would have to redefine that consistency model.
//
// The reported Solution is particle 0's personal best.  The best position
// tracked across the whole swarm drives the velocity updates and is
// returned separately in Best/BestValue; the two need not agree.
func (s *Solver) Solve(obj newtman.Objectiver, pop Population, kmax int) (*newtman.Result, error) {
	if len(pop) == 0 {
		return nil, fmt.Errorf("swarm: population is empty")
	}
	if kmax < 0 {
		return nil, fmt.Errorf("swarm: iteration budget must not be negative, got %v", kmax)
	}
	dim := len(pop[0].Pos)

	// The scan covers current positions only; personal bests are not
	// evaluated until the update loop.
	results, _, err := s.Evaler.Eval(obj, pop.Points()...)
	if err != nil {
		return nil, err
	}
	bestPos := make([]float64, dim)
	bestVal := math.Inf(1)
	for i, res := range results {
		pop[i].Val = res.Val
		if res.Val < bestVal {
			bestVal = res.Val
			copy(bestPos, pop[i].Pos)
		}
	}

	if err := s.initdb(dim); err != nil {
		return nil, err
	}

	sched := NewLinearInertia(s.Inertia, kmax)
	r1 := make([]float64, dim)
	r2 := make([]float64, dim)
	// objective values at each particle's personal best, for the recorder
	pbVals := make([]float64, len(pop))
	for k := 0; k < kmax; k++ {
		for j, p := range pop {
			// r1 is drawn in full before r2; the draw order is part of
			// the seeded reproducibility contract.
			for i := range r1 {
				r1[i] = s.rng.Float64()
			}
			for i := range r2 {
				r2[i] = s.rng.Float64()
			}

			for i, v := range p.Vel {
				p.Vel[i] = sched.W*v +
					s.Cognition*r1[i]*(p.Best[i]-p.Pos[i]) +
					s.Social*r2[i]*(bestPos[i]-p.Pos[i])
			}
			for i := range p.Pos {
				p.Pos[i] += p.Vel[i]
			}
			p.Clamp()

			y, err := obj.Objective(p.Pos)
			if err != nil {
				return nil, err
			}
			p.Val = y
			if y < bestVal {
				bestVal = y
				copy(bestPos, p.Pos)
			}

			// The personal-best value is recomputed here every pass
			// rather than cached, so each particle costs two objective
			// evaluations per iteration.
			pb, err := obj.Objective(p.Best)
			if err != nil {
				return nil, err
			}
			pbVals[j] = pb
			if y < pb {
				copy(p.Best, p.Pos)
				pbVals[j] = y
			}
		}
		sched.Decay()

		if err := s.updatedb(pop, pbVals, k, bestPos, bestVal); err != nil {
			return nil, err
		}
	}

	sol := append([]float64{}, pop[0].Best...)
	val, err := obj.Objective(sol)
	if err != nil {
		return nil, err
	}
	return &newtman.Result{
		Solution:   sol,
		Value:      val,
		Best:       bestPos,
		BestValue:  bestVal,
		Algorithm:  Name,
		Iterations: kmax,
	}, nil
}

// PSO minimizes a plain objective function.
func PSO(f func([]float64) float64, pop Population, kmax int, opts ...Option) (*newtman.Result, error) {
	return NewSolver(opts...).Solve(newtman.Func(f), pop, kmax)
}

// PSOBenchmark minimizes a tagged benchmark objective.  Both entry points
// delegate into the same Solve core.
func PSOBenchmark(b newtman.Benchmark, pop Population, kmax int, opts ...Option) (*newtman.Result, error) {
	return NewSolver(opts...).Solve(newtman.Func(b.Eval), pop, kmax)
}
