package environment

import (
	"math"
	"testing"

	ts "github.com/samuelfneumann/gobowl/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestSpecContains(t *testing.T) {
	continuous := NewSpec(
		mat.NewVecDense(2, nil),
		Action,
		mat.NewVecDense(2, []float64{-1, -1}),
		mat.NewVecDense(2, []float64{1, 1}),
		Continuous,
	)
	discrete := NewSpec(
		mat.NewVecDense(1, nil),
		Action,
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{2}),
		Discrete,
	)

	tests := []struct {
		name string
		spec Spec
		v    *mat.VecDense
		want bool
	}{
		{"continuous in bounds", continuous, mat.NewVecDense(2, []float64{0.5, -1}), true},
		{"continuous out of bounds", continuous, mat.NewVecDense(2, []float64{1.5, 0}), false},
		{"continuous wrong length", continuous, mat.NewVecDense(3, nil), false},
		{"continuous NaN", continuous, mat.NewVecDense(2, []float64{math.NaN(), 0}), false},
		{"discrete legal", discrete, mat.NewVecDense(1, []float64{2}), true},
		{"discrete fractional", discrete, mat.NewVecDense(1, []float64{0.5}), false},
		{"discrete too large", discrete, mat.NewVecDense(1, []float64{3}), false},
	}

	for _, test := range tests {
		if have := test.spec.Contains(test.v); have != test.want {
			t.Errorf("%v: want(%v) have(%v)", test.name, test.want, have)
		}
	}
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)
	for i := 0; i < 3; i++ {
		step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, nil), i)
		if limit.End(&step) {
			t.Errorf("step %v: episode should not end before limit", i)
		}
	}

	step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, nil), 3)
	if !limit.End(&step) {
		t.Fatal("end: episode should end at limit")
	}
	if !step.Truncated() || step.EndType() != ts.Timeout {
		t.Errorf("end: want timeout truncation, have %v", step)
	}

	unlimited := NewStepLimit(0)
	step = ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, nil), 1_000_000)
	if unlimited.End(&step) {
		t.Error("end: a limit of 0 should never end episodes")
	}
}

func TestIntervalLimit(t *testing.T) {
	limit := NewIntervalLimit(
		[]r1.Interval{{Min: 50, Max: math.Inf(1)}},
		[]int{1},
		ts.OutOfBounds,
	)

	inside := ts.New(ts.Mid, 0, 1, mat.NewVecDense(2, []float64{0, 50}), 1)
	if limit.End(&inside) {
		t.Error("end: feature on the interval boundary should not end")
	}

	outside := ts.New(ts.Mid, 0, 1, mat.NewVecDense(2, []float64{0, 49}), 1)
	if !limit.End(&outside) {
		t.Fatal("end: feature outside interval should end episode")
	}
	if !outside.Truncated() {
		t.Errorf("end: want truncated step, have %v", outside)
	}
}

func TestFunctionEnder(t *testing.T) {
	ender := NewFunctionEnder(func(v *mat.VecDense) bool {
		return v.AtVec(0) < 0
	}, ts.TerminalStateReached)

	step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, []float64{-1}), 1)
	if !ender.End(&step) || !step.Terminated() {
		t.Errorf("end: want terminated step, have %v", step)
	}
}

func TestUniformStarterSeed(t *testing.T) {
	bounds := []r1.Interval{{Min: 0, Max: 10}, {Min: 5, Max: 5}}
	s := NewUniformStarter(bounds, 42)

	first := s.Start()
	if first.AtVec(1) != 5 {
		t.Errorf("start: degenerate interval should give 5, have %v",
			first.AtVec(1))
	}
	if first.AtVec(0) < 0 || first.AtVec(0) > 10 {
		t.Errorf("start: %v outside of %v", first.AtVec(0), bounds[0])
	}

	s.Seed(42)
	again := s.Start()
	if !mat.Equal(first, again) {
		t.Errorf("seed: reseeding should repeat starts: %v != %v",
			mat.Formatted(first.T()), mat.Formatted(again.T()))
	}
}

func TestNewResetConfig(t *testing.T) {
	c := NewResetConfig()
	if c.Seed != nil || c.Options != nil {
		t.Errorf("newResetConfig: want zero config, have %+v", c)
	}

	c = NewResetConfig(WithSeed(7), WithOptions(map[string]interface{}{"a": 1}))
	if c.Seed == nil || *c.Seed != 7 {
		t.Errorf("newResetConfig: want seed 7, have %v", c.Seed)
	}
	if c.Options["a"] != 1 {
		t.Errorf("newResetConfig: want option a=1, have %v", c.Options)
	}
}
