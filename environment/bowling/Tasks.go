package bowling

import (
	"math"

	env "github.com/samuelfneumann/gobowl/environment"
	ts "github.com/samuelfneumann/gobowl/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	StrikeReward    float64 = 10  // per pin knocked down
	ClearBonus      float64 = 50  // for knocking down the last pin
	TruncatePenalty float64 = -10 // for ending the episode with pins standing
)

// KnockDown implements the task of knocking down every pin on the lane.
//
// Rewards are StrikeReward for each pin knocked down on a step. The
// step that knocks down the last pin earns an extra ClearBonus and
// terminates the episode. A step that moves the top edge of the ball
// past EndOfLane with pins still standing earns TruncatePenalty and truncates the
// episode. Clearing the lane takes priority when both happen on the
// same step.
//
// Episodes may also be truncated after a step limit, which earns
// TruncatePenalty as well. A step limit of 0 disables the limit.
type KnockDown struct {
	env.Starter
	pins int

	goalEnder *env.FunctionEnder
	laneEnder *env.IntervalLimit
	stepEnder *env.StepLimit
}

// NewKnockDown creates and returns a new KnockDown task on a lane of
// pins pins. The Starter determines the starting position of the ball.
func NewKnockDown(s env.Starter, pins, episodeSteps int) *KnockDown {
	k := &KnockDown{
		Starter:   s,
		pins:      pins,
		stepEnder: env.NewStepLimit(episodeSteps),
	}

	k.goalEnder = env.NewFunctionEnder(func(obs *mat.VecDense) bool {
		return k.AtGoal(obs)
	}, ts.TerminalStateReached)

	// Observations hold the ball centre
	k.laneEnder = env.NewIntervalLimit(
		[]r1.Interval{{Min: EndOfLane + BallSize/2, Max: math.Inf(1)}},
		[]int{ballY},
		ts.OutOfBounds,
	)

	return k
}

// NewStarter returns a Starter placing the ball at its canonical start
// position, shifted horizontally by a uniform random amount in
// [-jitter, jitter]
func NewStarter(jitter float64, seed uint64) *env.UniformStarter {
	return env.NewUniformStarter([]r1.Interval{
		{Min: BallStartX - jitter, Max: BallStartX + jitter},
		{Min: BallStartY, Max: BallStartY},
	}, seed)
}

// Seed reseeds the Starter if it can be reseeded
func (k *KnockDown) Seed(seed uint64) {
	if s, ok := k.Starter.(env.Seeder); ok {
		s.Seed(seed)
	}
}

// Pins returns the number of pins the task is defined over
func (k *KnockDown) Pins() int {
	return k.pins
}

// Struck returns the number of pins standing in state that are down in
// nextState
func (k *KnockDown) Struck(state, nextState mat.Vector) int {
	struck := 0
	for i := 0; i < k.pins; i++ {
		if PinStanding(state, i) && !PinStanding(nextState, i) {
			struck++
		}
	}
	return struck
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (k *KnockDown) GetReward(state, _, nextState mat.Vector) float64 {
	reward := StrikeReward * float64(k.Struck(state, nextState))

	if k.AtGoal(nextState) {
		reward += ClearBonus
	} else if k.laneEnder.Outside(nextState) {
		reward += TruncatePenalty
	}
	return reward
}

// AtGoal returns whether all pins are down in state
func (k *KnockDown) AtGoal(state mat.Matrix) bool {
	rows, cols := state.Dims()
	if cols != 1 || rows != 2+2*k.pins {
		return false
	}

	for i := 0; i < k.pins; i++ {
		x, y := pinSlot(i)
		if state.At(x, 0) != Sentinel || state.At(y, 0) != Sentinel {
			return false
		}
	}
	return true
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last, sets its EndType and
// returns true. Otherwise, the function does not adjust the TimeStep
// and returns false.
func (k *KnockDown) End(t *ts.TimeStep) bool {
	if end := k.goalEnder.End(t); end {
		return true
	}
	if end := k.laneEnder.End(t); end {
		return true
	}
	if end := k.stepEnder.End(t); end {
		t.Reward += TruncatePenalty
		return true
	}
	return false
}

// Min returns the minimum possible reward that can be received in the
// environment
func (k *KnockDown) Min() float64 {
	return TruncatePenalty
}

// Max returns the maximum possible reward that can be received in the
// environment
func (k *KnockDown) Max() float64 {
	return StrikeReward*float64(k.pins) + ClearBonus
}

// RewardSpec returns the reward specification for the environment
func (k *KnockDown) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{k.Min()})
	upperBound := mat.NewVecDense(1, []float64{k.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}
