package environment

import (
	ts "github.com/samuelfneumann/gobowl/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever a single feature in a feature vector leaves some interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   ts.EndType
}

// NewIntervalLimit creates and returns a new inteval limit. The endType
// argument determines what the episode end should be considered as.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType ts.EndType) *IntervalLimit {
	if len(limits) != len(obsIndices) {
		panic("limits should have same length as observation indices")
	}

	return &IntervalLimit{limits, obsIndices, endType}
}

// Outside returns whether any tracked feature of obs lies outside its
// interval
func (i *IntervalLimit) Outside(obs mat.Vector) bool {
	for index := range i.indices {
		feature := obs.AtVec(i.indices[index])
		interval := i.intervals[index]

		if feature > interval.Max || feature < interval.Min {
			return true
		}
	}
	return false
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type.
func (i *IntervalLimit) End(t *ts.TimeStep) bool {
	if i.Outside(t.Observation) {
		t.StepType = ts.Last
		t.SetEnd(i.endType)
		return true
	}
	return false
}
