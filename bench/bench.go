// Package bench provides tools for testing solvers against benchmark
// optimization functions from
// http://en.wikipedia.org/wiki/Test_functions_for_optimization.
package bench

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/edwinb-ai/newtman"
)

var (
	sin  = math.Sin
	cos  = math.Cos
	abs  = math.Abs
	exp  = math.Exp
	sqrt = math.Sqrt
)

var AllFuncs = []Func{
	Sphere{NDim: 2},
	Sphere{NDim: 30},
	Easom{},
	Ackley{},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
	GoldsteinPrice{},
	Beale{},
	Levy{NDim: 2},
	Levy{NDim: 10},
	Eggholder{},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
}

type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	Optima() []newtman.Point
	Name() string
}

type Sphere struct {
	NDim int
}

func (fn Sphere) Name() string { return fmt.Sprintf("Sphere_%vD", fn.NDim) }

func (fn Sphere) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	return floats.Dot(v, v)
}

func (fn Sphere) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -10, 10)
}

func (fn Sphere) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint(make([]float64, fn.NDim), 0),
	}
}

type Easom struct{}

func (fn Easom) Name() string { return "Easom" }

func (fn Easom) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -cos(x) * cos(y) * exp(-(math.Pow(x-math.Pi, 2) + math.Pow(y-math.Pi, 2)))
}

func (fn Easom) Bounds() (low, up []float64) {
	return []float64{-100, -100}, []float64{100, 100}
}

func (fn Easom) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint([]float64{math.Pi, math.Pi}, -1),
	}
}

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }

func (fn Ackley) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) {
	return []float64{-5, -5}, []float64{5, 5}
}

func (fn Ackley) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint([]float64{0, 0}, 0),
	}
}

type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return fmt.Sprintf("Rosenbrock_%vD", fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot += 100*math.Pow(x[i+1]-x[i]*x[i], 2) + math.Pow(x[i]-1, 2)
	}
	return tot
}

func (fn Rosenbrock) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -30, 30)
}

func (fn Rosenbrock) Optima() []newtman.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []newtman.Point{
		newtman.NewPoint(pos, 0),
	}
}

type GoldsteinPrice struct{}

func (fn GoldsteinPrice) Name() string { return "GoldsteinPrice" }

func (fn GoldsteinPrice) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	a := 1 + math.Pow(x+y+1, 2)*(19-14*x+3*x*x-14*y+6*x*y+3*y*y)
	b := 30 + math.Pow(2*x-3*y, 2)*(18-32*x+12*x*x+48*y-36*x*y+27*y*y)
	return a * b
}

func (fn GoldsteinPrice) Bounds() (low, up []float64) {
	return []float64{-2, -2}, []float64{2, 2}
}

func (fn GoldsteinPrice) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint([]float64{0, -1}, 3),
	}
}

type Beale struct{}

func (fn Beale) Name() string { return "Beale" }

func (fn Beale) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return math.Pow(1.5-x+x*y, 2) +
		math.Pow(2.25-x+x*y*y, 2) +
		math.Pow(2.625-x+x*y*y*y, 2)
}

func (fn Beale) Bounds() (low, up []float64) {
	return []float64{-4.5, -4.5}, []float64{4.5, 4.5}
}

func (fn Beale) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint([]float64{3, 0.5}, 0),
	}
}

type Levy struct {
	NDim int
}

func (fn Levy) Name() string { return fmt.Sprintf("Levy_%vD", fn.NDim) }

func (fn Levy) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	w := make([]float64, len(x))
	for i, v := range x {
		w[i] = 1 + (v-1)/4
	}

	tot := math.Pow(sin(math.Pi*w[0]), 2)
	for i := 0; i < len(w)-1; i++ {
		tot += math.Pow(w[i]-1, 2) * (1 + 10*math.Pow(sin(math.Pi*w[i]+1), 2))
	}
	last := w[len(w)-1]
	tot += math.Pow(last-1, 2) * (1 + math.Pow(sin(2*math.Pi*last), 2))
	return tot
}

func (fn Levy) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -10, 10)
}

func (fn Levy) Optima() []newtman.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = 1
	}
	return []newtman.Point{
		newtman.NewPoint(pos, 0),
	}
}

type Eggholder struct{}

func (fn Eggholder) Name() string { return "Eggholder" }

func (fn Eggholder) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}

	x := v[0]
	y := v[1]
	return -(y+47)*sin(sqrt(abs(y+x/2+47))) - x*sin(sqrt(abs(x-(y+47))))
}

func (fn Eggholder) Bounds() (low, up []float64) {
	return []float64{-512, -512}, []float64{512, 512}
}

func (fn Eggholder) Optima() []newtman.Point {
	return []newtman.Point{
		newtman.NewPoint([]float64{512, 404.2319}, -959.6407),
	}
}

type Styblinski struct {
	NDim int
}

func (fn Styblinski) Name() string { return fmt.Sprintf("Styblinski_%vD", fn.NDim) }

func (fn Styblinski) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}

	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) {
	return uniformBounds(fn.NDim, -5, 5)
}

func (fn Styblinski) Optima() []newtman.Point {
	pos := make([]float64, fn.NDim)
	for i := range pos {
		pos[i] = -2.903534
	}
	return []newtman.Point{
		newtman.NewPoint(pos, -39.16599*float64(fn.NDim)),
	}
}

// Benchmark runs solve against fn and reports whether the best value found
// came within tol (relative to the known optimum, with an absolute floor of
// 0.001) of optimal.
func Benchmark(fn Func, solve func(obj newtman.Objectiver) (*newtman.Result, error), tol float64) (res *newtman.Result, ok bool, err error) {
	optimum := fn.Optima()[0].Val
	thresh := tol * abs(optimum)
	if 0.001 > thresh {
		thresh = 0.001
	}

	res, err = solve(newtman.Func(fn.Eval))
	if err != nil {
		return nil, false, err
	}
	return res, abs(res.BestValue-optimum) < thresh, nil
}

func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}

func uniformBounds(ndim int, l, u float64) (low, up []float64) {
	low = make([]float64, ndim)
	up = make([]float64, ndim)
	for i := range low {
		low[i] = l
		up[i] = u
	}
	return low, up
}
