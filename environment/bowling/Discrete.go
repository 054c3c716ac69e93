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
	DiscreteActionDims int = 1

	// Discrete actions
	MoveLeft    int = 0
	MoveRight   int = 1
	MoveForward int = 2

	MinDiscreteAction int = MoveLeft
	MaxDiscreteAction int = MoveForward
)

// displacements maps discrete actions to ball displacements
var displacements = map[int]r2.Vec{
	MoveLeft:    {X: -BallSpeed},
	MoveRight:   {X: BallSpeed},
	MoveForward: {Y: -BallSpeed},
}

// Discrete implements the bowling environment with discrete actions.
// The environment is the same as Continuous, except that each action
// moves the ball a fixed distance:
//
//	Action		Meaning
//	  0			Move left
//	  1			Move right
//	  2			Move forward, toward the pins
//
// Illegal actions are rejected with environment.ErrInvalidAction.
//
// Discrete implements the environment.Environment interface
type Discrete struct {
	*base
}

// NewDiscrete creates a new Discrete action bowling environment with
// the argument task. The environment must be reset before use.
func NewDiscrete(t env.Task, discount float64, s Settings) (*Discrete,
	error) {
	b, err := newBase(t, discount, s)
	if err != nil {
		return nil, fmt.Errorf("newDiscrete: %w", err)
	}

	return &Discrete{b}, nil
}

// ActionSpec returns the action specification of the environment
func (d *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(DiscreteActionDims, nil)
	lowerBound := mat.NewVecDense(DiscreteActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(DiscreteActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the next
// timestep as a timestep.TimeStep and a bool indicating whether or not
// the episode has ended. Legal actions are in the set {0, 1, 2}.
func (d *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a == nil || !d.ActionSpec().Contains(a) {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w: %v ∉ "+
			"(0, 1, 2)", env.ErrInvalidAction, matutils.Format(a))
	}

	return d.update(a, displacements[int(a.AtVec(0))])
}
