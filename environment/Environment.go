// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"errors"

	ts "github.com/samuelfneumann/gobowl/timestep"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Errors returned by environments. Environments wrap these with the
// name of the failing operation, so use errors.Is to match them.
var (
	ErrInvalidAction     = errors.New("action outside of action space")
	ErrUsedBeforeReset   = errors.New("environment used before reset")
	ErrEpisodeEnded      = errors.New("episode has ended, reset required")
	ErrRenderUnavailable = errors.New("rendering unavailable in this mode")
	ErrClosed            = errors.New("environment is closed")
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Seeder is a Starter whose random source can be reseeded. Environments
// reseed their Starter when reset with a seed.
type Seeder interface {
	Seed(seed uint64)
}

// Ender determines when episodes should be ended
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	Starter
	Ender
	GetReward(state, a, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool
	Min() float64 // returns the min possible reward
	Max() float64 // returns the max possible reward
	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a Task to
// complete.
//
// Environments are used sequentially by a single caller: Reset begins
// an episode, Step advances it, Render draws it and Close releases any
// resources. Step and Render return ErrUsedBeforeReset if called
// before the first Reset.
type Environment interface {
	Task
	Reset(opts ...ResetOption) (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep
	Render() (*tensor.Dense, error)
	Close() error

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// ResetConfig holds the optional arguments of a call to Reset
type ResetConfig struct {
	Seed    *uint64
	Options map[string]interface{}
}

// ResetOption configures a call to Reset
type ResetOption func(*ResetConfig)

// WithSeed reseeds the environment's start state distribution before
// resetting. Environments with deterministic start states accept and
// ignore the seed.
func WithSeed(seed uint64) ResetOption {
	return func(c *ResetConfig) {
		c.Seed = &seed
	}
}

// WithOptions passes environment-specific options to Reset
func WithOptions(options map[string]interface{}) ResetOption {
	return func(c *ResetConfig) {
		c.Options = options
	}
}

// NewResetConfig applies opts in order and returns the result
func NewResetConfig(opts ...ResetOption) ResetConfig {
	var c ResetConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
