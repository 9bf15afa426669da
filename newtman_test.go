package newtman

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const errcount = 3

type ErrObj struct {
	count int
}

func (o *ErrObj) Objective(x []float64) (float64, error) {
	o.count++
	if o.count >= errcount {
		return math.Inf(1), errors.New("fake error")
	}
	return 0, nil
}

func TestSerialEvalerErr(t *testing.T) {
	obj := &ErrObj{}
	ev := SerialEvaler{}

	results, n, err := ev.Eval(obj, Point{}, Point{}, Point{}, Point{}, Point{})
	if len(results) != errcount {
		t.Errorf("returned wrong number of results: expected %v, got %v", errcount, len(results))
	}
	if n != errcount {
		t.Errorf("returned wrong evaluation count: expected %v, got %v", errcount, n)
	}
	if err == nil {
		t.Errorf("did not propogate error through return")
	}
}

type CountObj struct {
	count int
}

func (o *CountObj) Objective(x []float64) (float64, error) {
	o.count++
	return x[0] * x[0], nil
}

func TestCacheEvaler(t *testing.T) {
	obj := &CountObj{}
	ev := NewCacheEvaler(SerialEvaler{})
	p := NewPoint([]float64{3}, math.Inf(1))

	results, n, err := ev.Eval(obj, p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || obj.count != 1 {
		t.Errorf("first pass: expected 1 evaluation, got n=%v count=%v", n, obj.count)
	}
	if results[0].Val != 9 {
		t.Errorf("first pass: expected val 9, got %v", results[0].Val)
	}

	results, n, err = ev.Eval(obj, p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || obj.count != 1 {
		t.Errorf("second pass should hit cache: got n=%v count=%v", n, obj.count)
	}
	if results[0].Val != 9 {
		t.Errorf("second pass: cached val not propagated, got %v", results[0].Val)
	}
}

func TestFuncObjective(t *testing.T) {
	f := Func(func(v []float64) float64 { return v[0] + v[1] })
	val, err := f.Objective([]float64{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, 3.0, val)
}

func TestClamp(t *testing.T) {
	xs := []float64{-5, -1, 0, 1, 5}
	Clamp(xs, -1, 1)
	assert.Equal(t, []float64{-1, -1, 0, 1, 1}, xs)

	// second application changes nothing
	dup := append([]float64{}, xs...)
	Clamp(xs, -1, 1)
	assert.Equal(t, dup, xs)
}

func TestClampInvertedBounds(t *testing.T) {
	assert.Panics(t, func() { Clamp([]float64{0}, 1, -1) })
	assert.Panics(t, func() { Clamp([]float64{0}, 1, 1) })
}

func TestPointCopies(t *testing.T) {
	pos := []float64{1, 2}
	p := NewPoint(pos, 0)
	pos[0] = 99
	assert.Equal(t, 1.0, p.At(0), "NewPoint must copy its position")

	got := p.Pos()
	got[1] = 99
	assert.Equal(t, 2.0, p.At(1), "Pos must return a copy")
}
