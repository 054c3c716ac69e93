package bowling

import (
	"fmt"

	env "github.com/samuelfneumann/gobowl/environment"
	ts "github.com/samuelfneumann/gobowl/timestep"
	"github.com/samuelfneumann/gobowl/utils/matutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	ContinuousActionDims int     = 2
	MinContinuousAction  float64 = -1.0
	MaxContinuousAction  float64 = 1.0
)

// Continuous implements the bowling environment with continuous
// actions. In this environment, the agent moves a ball around a lane
// and must knock down all the pins before the ball passes the far end
// of the lane.
//
// State features are the ball's centre followed by the centre of each
// pin, in layout order. Knocked down pins have both coordinates set to
// Sentinel, so observations always have ObservationDims features.
//
// Actions are 2-dimensional and continuous: the ball's velocity in x
// and y, each in [-1, 1], scaled by BallSpeed. Actions outside this
// range are rejected with environment.ErrInvalidAction and leave the
// environment unchanged.
//
// Continuous implements the environment.Environment interface
type Continuous struct {
	*base
}

// NewContinuous creates a new Continuous action bowling environment
// with the argument task. The environment must be reset before use.
func NewContinuous(t env.Task, discount float64, s Settings) (*Continuous,
	error) {
	b, err := newBase(t, discount, s)
	if err != nil {
		return nil, fmt.Errorf("newContinuous: %w", err)
	}

	return &Continuous{b}, nil
}

// ActionSpec returns the action specification of the environment
func (c *Continuous) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ContinuousActionDims, nil)
	lowerBound := mat.NewVecDense(ContinuousActionDims,
		[]float64{MinContinuousAction, MinContinuousAction})
	upperBound := mat.NewVecDense(ContinuousActionDims,
		[]float64{MaxContinuousAction, MaxContinuousAction})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended.
func (c *Continuous) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a == nil || !c.ActionSpec().Contains(a) {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w: %v",
			env.ErrInvalidAction, matutils.Format(a))
	}

	displacement := r2.Vec{
		X: a.AtVec(0) * BallSpeed,
		Y: a.AtVec(1) * BallSpeed,
	}
	return c.update(a, displacement)
}
