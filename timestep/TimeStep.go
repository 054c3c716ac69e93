// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. A TimeStep that is not the
// last in its episode has EndType Unended.
//
// TerminalStateReached means the goal of the Task was reached and the
// episode is terminated. OutOfBounds and Timeout mean the episode was
// cut short for some reason unrelated to the goal and the episode is
// truncated.
type EndType int

const (
	Unended EndType = iota
	TerminalStateReached
	OutOfBounds
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case OutOfBounds:
		return "OutOfBounds"
	case Timeout:
		return "Timeout"
	default:
		return "Unended"
	}
}

// Info holds auxiliary diagnostic data about a TimeStep. Environments
// return an empty Info unless they have something to report.
type Info map[string]interface{}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	Info        Info

	endType EndType
}

// New constructs a new TimeStep with an empty Info
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
		Info:        Info{},
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the ending type of the TimeStep. This does not change
// the StepType, which Enders set separately.
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the reason the episode ended at this TimeStep
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// Terminated returns whether the episode ended at this TimeStep
// because the goal was reached
func (t *TimeStep) Terminated() bool {
	return t.Last() && t.endType == TerminalStateReached
}

// Truncated returns whether the episode ended at this TimeStep for a
// reason other than reaching the goal
func (t *TimeStep) Truncated() bool {
	return t.Last() && (t.endType == OutOfBounds || t.endType == Timeout)
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
