// Package random implements an agent that selects actions uniformly at
// random from its environment's action space. The agent does not learn
// and is used to exercise environments.
package random

import (
	"fmt"

	"github.com/samuelfneumann/gobowl/environment"
	"github.com/samuelfneumann/gobowl/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random implements an agent with a uniform random policy. Discrete
// actions are sampled from a categorical distribution with equal
// probability over each legal action. Continuous actions are sampled
// uniformly and independently within the bounds of each action
// dimension.
//
// Random implements the agent.Agent interface
type Random struct {
	discrete bool
	low      float64 // lowest discrete action
	actions  *distuv.Categorical
	uniform  []distuv.Uniform

	eval bool
}

// New creates a new Random agent for the action space of env
func New(env environment.Environment, seed uint64) (*Random, error) {
	spec := env.ActionSpec()
	source := rand.NewSource(seed)

	switch spec.Cardinality {
	case environment.Discrete:
		if spec.Shape.Len() != 1 {
			return nil, fmt.Errorf("new: discrete actions should be " +
				"1-dimensional")
		}
		low := spec.LowerBound.AtVec(0)
		n := int(spec.UpperBound.AtVec(0)-low) + 1
		if n < 1 {
			return nil, fmt.Errorf("new: empty discrete action space")
		}

		weights := make([]float64, n)
		for i := range weights {
			weights[i] = 1.0
		}
		dist := distuv.NewCategorical(weights, source)

		return &Random{discrete: true, low: low, actions: &dist}, nil

	case environment.Continuous:
		uniform := make([]distuv.Uniform, spec.Shape.Len())
		for i := range uniform {
			uniform[i] = distuv.Uniform{
				Min: spec.LowerBound.AtVec(i),
				Max: spec.UpperBound.AtVec(i),
				Src: source,
			}
		}

		return &Random{uniform: uniform}, nil
	}

	return nil, fmt.Errorf("new: unknown action cardinality %v",
		spec.Cardinality)
}

// SelectAction returns a random action
func (r *Random) SelectAction(timestep.TimeStep) *mat.VecDense {
	if r.discrete {
		return mat.NewVecDense(1, []float64{r.low + r.actions.Rand()})
	}

	action := make([]float64, len(r.uniform))
	for i := range r.uniform {
		action[i] = r.uniform[i].Rand()
	}
	return mat.NewVecDense(len(action), action)
}

// Eval sets the agent to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the agent to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }

// ObserveFirst observes and records the first episodic timestep
func (r *Random) ObserveFirst(timestep.TimeStep) error { return nil }

// Observe observes and records any timestep other than the first
// timestep
func (r *Random) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// Step updates the agent. The Random agent never learns.
func (r *Random) Step() error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (r *Random) EndEpisode() {}
