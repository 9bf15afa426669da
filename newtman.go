// Package newtman provides the shared surface of a small numerical
// optimization library: objective interfaces, evaluation helpers, and the
// point and result records produced by the solvers in its subpackages.
package newtman

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
)

type Point struct {
	pos []float64
	Val float64
}

func NewPoint(pos []float64, val float64) Point {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return Point{pos: cpos, Val: val}
}

func (p Point) At(i int) float64 { return p.pos[i] }

func (p Point) Len() int { return len(p.pos) }

func (p Point) Pos() []float64 {
	pos := make([]float64, len(p.pos))
	copy(pos, p.pos)
	return pos
}

// hashPoint keys a point by its position only; the stored value plays no
// part in cache identity.
func hashPoint(p Point) [sha1.Size]byte {
	data := make([]byte, p.Len()*8)
	for i := 0; i < p.Len(); i++ {
		binary.BigEndian.PutUint64(data[i*8:], math.Float64bits(p.At(i)))
	}
	return sha1.Sum(data)
}

type Objectiver interface {
	// Objective evaluates the variables in v and returns the objective
	// function value.  The objective function must be framed so that lower
	// values are better.  Any returned error aborts the run consuming it.
	Objective(v []float64) (float64, error)
}

// Func adapts a plain objective function into an Objectiver.
type Func func([]float64) float64

func (f Func) Objective(v []float64) (float64, error) { return f(v), nil }

// Benchmark is an objective carried by a tagged benchmark object rather
// than a bare function.  Solvers accept either form through thin entry
// points that share one core.
type Benchmark interface {
	Eval(v []float64) float64
}

type Evaler interface {
	// Eval evaluates each point using obj and returns the values and number
	// of function evaluations n.  Unevaluated points should not be returned
	// in the results slice.
	Eval(obj Objectiver, points ...Point) (results []Point, n int, err error)
}

type SerialEvaler struct {
	ContinueOnErr bool
}

func (ev SerialEvaler) Eval(obj Objectiver, points ...Point) (results []Point, n int, err error) {
	results = make([]Point, 0, len(points))
	for _, p := range points {
		p.Val, err = obj.Objective(p.Pos())
		results = append(results, p)
		if err != nil && !ev.ContinueOnErr {
			return results, len(results), err
		}
	}
	return results, len(results), nil
}

type CacheEvaler struct {
	ev    Evaler
	cache map[[sha1.Size]byte]float64
}

func NewCacheEvaler(ev Evaler) *CacheEvaler {
	return &CacheEvaler{
		ev:    ev,
		cache: map[[sha1.Size]byte]float64{},
	}
}

func (ev *CacheEvaler) Eval(obj Objectiver, points ...Point) (results []Point, n int, err error) {
	fromnew := make([]int, 0, len(points))
	newp := make([]Point, 0, len(points))
	for i, p := range points {
		if val, ok := ev.cache[hashPoint(p)]; ok {
			points[i].Val = val
		} else {
			fromnew = append(fromnew, i)
			newp = append(newp, p)
		}
	}

	newresults, n, err := ev.ev.Eval(obj, newp...)
	for i, p := range newresults {
		ev.cache[hashPoint(p)] = p.Val
		points[fromnew[i]].Val = p.Val
	}

	if err != nil {
		// drop everything past the last completed evaluation
		if len(newresults) == 0 {
			return points[:0], n, err
		}
		return points[:fromnew[len(newresults)-1]+1], n, err
	}
	return points, n, err
}

type ObjectivePrinter struct {
	Objectiver
	Count int
}

func NewObjectivePrinter(obj Objectiver) *ObjectivePrinter {
	return &ObjectivePrinter{Objectiver: obj}
}

func (op *ObjectivePrinter) Objective(v []float64) (float64, error) {
	val, err := op.Objectiver.Objective(v)

	op.Count++
	fmt.Print(op.Count, " ")
	for _, x := range v {
		fmt.Print(x, " ")
	}
	fmt.Println("    ", val)

	return val, err
}

// Result is the immutable summary of a completed optimization run.
// Solution and Value report the answer under the solver's return contract;
// Best and BestValue carry the best point tracked across the whole run,
// which a solver may distinguish from the reported solution.
type Result struct {
	Solution   []float64
	Value      float64
	Best       []float64
	BestValue  float64
	Algorithm  string
	Iterations int
}

// Clamp clamps every coordinate of xs into [low, up] in place.  It panics
// if low >= up.
func Clamp(xs []float64, low, up float64) {
	if low >= up {
		panic(fmt.Sprintf("clamp bounds are inverted: low=%v, up=%v", low, up))
	}
	for i, x := range xs {
		if x > up {
			xs[i] = up
		} else if x < low {
			xs[i] = low
		}
	}
}
