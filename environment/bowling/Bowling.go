// Package bowling implements a bowling lane environment in which the
// agent rolls a ball down a lane to knock down pins.
package bowling

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/gobowl/environment"
	ts "github.com/samuelfneumann/gobowl/timestep"
	"github.com/samuelfneumann/gobowl/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
	"gorgonia.org/tensor"
)

const (
	// Lane geometry. The origin is the top-left corner of the lane and
	// y grows toward the bowler.
	LaneWidth  float64 = 800
	LaneHeight float64 = 600

	BallSize   float64 = 20
	BallStartX float64 = 400
	BallStartY float64 = 500

	PinWidth  float64 = 20
	PinHeight float64 = 40
	Pins      int     = 10

	// The episode is truncated once the top edge of the ball passes
	// above this line with pins still standing
	EndOfLane float64 = 50

	// Distance the ball moves per step at full speed
	BallSpeed float64 = 10

	// Observation slot value of a knocked down pin
	Sentinel float64 = -1

	ObservationDims int = 2 + 2*Pins
)

// Phase is the stage of the episode lifecycle an environment is in
type Phase int

const (
	Uninitialized Phase = iota // constructed, never reset
	Ready                      // reset, no steps taken yet
	Running
	Ended // terminated or truncated
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Ended:
		return "Ended"
	default:
		return "Uninitialized"
	}
}

// Settings configures the lane and rendering of a bowling environment.
// The zero value uses the Triangle formation and disables rendering.
type Settings struct {
	Formation  Formation
	RenderMode RenderMode

	// FrameDir is the directory that RenderHuman writes frames to
	FrameDir string
}

// base implements the underlying bowling environment. It tracks the
// scene state, applies ball displacements and resolves collisions, but
// does not convert actions into displacements. The Discrete and
// Continuous structs each embed a base environment and calculate
// displacements from actions.
//
// The pin layout is computed once at construction and never changes.
// Knocked down pins are tracked by identity (their index in the
// layout), so the layout is restored on reset simply by standing all
// pins back up.
type base struct {
	env.Task
	discount float64

	formation Formation
	original  []Rect
	down      []bool
	ball      Rect
	score     int

	laneX r1.Interval
	laneY r1.Interval

	phase    Phase
	closed   bool
	lastStep ts.TimeStep
	renderer *renderer
}

// newBase creates a new base environment with the argument task. The
// environment must be reset before it can be stepped.
func newBase(t env.Task, discount float64, s Settings) (*base, error) {
	pins, err := Layout(s.Formation)
	if err != nil {
		return nil, fmt.Errorf("newBase: %w", err)
	}

	if k, ok := t.(*KnockDown); ok && k.Pins() != len(pins) {
		return nil, fmt.Errorf("newBase: task expects %v pins but "+
			"formation %q has %v", k.Pins(), s.Formation, len(pins))
	}

	r, err := newRenderer(s.RenderMode, s.FrameDir)
	if err != nil {
		return nil, fmt.Errorf("newBase: %w", err)
	}

	formation := s.Formation
	if formation == "" {
		formation = Triangle
	}

	return &base{
		Task:      t,
		discount:  discount,
		formation: formation,
		original:  pins,
		down:      make([]bool, len(pins)),
		laneX:     r1.Interval{Min: 0, Max: LaneWidth},
		laneY:     r1.Interval{Min: 0, Max: LaneHeight},
		phase:     Uninitialized,
		renderer:  r,
	}, nil
}

// Reset resets the environment, standing all pins back up and placing
// the ball at a starting position drawn from the Task's Starter. If a
// seed is given, the Starter is reseeded first when it supports it.
// Reset options are accepted but currently unused.
func (b *base) Reset(opts ...env.ResetOption) (ts.TimeStep, error) {
	if b.closed {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", env.ErrClosed)
	}

	config := env.NewResetConfig(opts...)
	if config.Seed != nil {
		if seeder, ok := b.Task.(env.Seeder); ok {
			seeder.Seed(*config.Seed)
		}
	}

	start := b.Start()
	if err := validateStart(start, b.laneX, b.laneY); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	b.ball = Rect{
		Center: r2.Vec{X: start.AtVec(0), Y: start.AtVec(1)},
		W:      BallSize,
		H:      BallSize,
	}
	for i := range b.down {
		b.down[i] = false
	}
	b.score = 0
	b.phase = Ready

	startStep := ts.New(ts.First, 0, b.discount, b.observation(), 0)
	b.lastStep = startStep

	return startStep, nil
}

// update moves the ball by displacement, knocks down every standing pin
// that the ball overlaps and computes the resulting TimeStep. The
// reward and episode ending are determined by the Task, using the pins
// knocked down in this same step.
//
// The action argument must already be validated; it is only passed on
// to the Task's reward function.
func (b *base) update(action *mat.VecDense, displacement r2.Vec) (ts.TimeStep,
	bool, error) {
	switch {
	case b.closed:
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", env.ErrClosed)
	case b.phase == Uninitialized:
		return ts.TimeStep{}, false, fmt.Errorf("step: %w",
			env.ErrUsedBeforeReset)
	case b.phase == Ended:
		return ts.TimeStep{}, true, fmt.Errorf("step: %w",
			env.ErrEpisodeEnded)
	}

	// Move the ball, keeping it on the lane
	b.ball.Center.X = floatutils.ClipInterval(b.ball.Center.X+displacement.X,
		b.laneX)
	b.ball.Center.Y = floatutils.ClipInterval(b.ball.Center.Y+displacement.Y,
		b.laneY)

	struck := b.collide()
	b.score += struck

	// Create the new timestep
	state := b.observation()
	reward := b.GetReward(b.lastStep.Observation, action, state)
	nextStep := ts.New(ts.Mid, reward, b.discount, state,
		b.lastStep.Number+1)

	// Check if the step is the last in the episode and adjust step type
	// if necessary
	if b.End(&nextStep) {
		b.phase = Ended
	} else {
		b.phase = Running
	}

	b.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// collide knocks down all standing pins overlapping the ball and
// returns how many were knocked down
func (b *base) collide() int {
	struck := 0
	for i, pin := range b.original {
		if !b.down[i] && b.ball.Overlaps(pin) {
			b.down[i] = true
			struck++
		}
	}
	return struck
}

// observation encodes the current scene
func (b *base) observation() *mat.VecDense {
	return encode(b.ball, b.original, b.down)
}

// CurrentTimeStep returns the last TimeStep returned by Reset or Step
func (b *base) CurrentTimeStep() ts.TimeStep {
	return b.lastStep
}

// Phase returns the lifecycle phase of the current episode
func (b *base) Phase() Phase {
	return b.phase
}

// Score returns the number of pins knocked down in the current episode
func (b *base) Score() int {
	return b.score
}

// Ball returns the ball
func (b *base) Ball() Rect {
	return b.ball
}

// Formation returns the pin formation of the lane
func (b *base) Formation() Formation {
	return b.formation
}

// Original returns a copy of the pin layout the environment was
// constructed with
func (b *base) Original() []Rect {
	pins := make([]Rect, len(b.original))
	copy(pins, b.original)
	return pins
}

// Remaining returns the standing pins in layout order
func (b *base) Remaining() []Rect {
	pins := make([]Rect, 0, len(b.original))
	for i, pin := range b.original {
		if !b.down[i] {
			pins = append(pins, pin)
		}
	}
	return pins
}

// Render draws the current scene according to the environment's render
// mode. For RenderRGBArray the frame is returned as a (height, width, 3)
// uint8 tensor; other modes return a nil tensor.
func (b *base) Render() (*tensor.Dense, error) {
	if b.closed {
		return nil, fmt.Errorf("render: %w", env.ErrClosed)
	}
	if b.phase == Uninitialized {
		return nil, fmt.Errorf("render: %w", env.ErrUsedBeforeReset)
	}

	frame, err := b.renderer.render(scene{ball: b.ball, pins: b.Remaining()})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return frame, nil
}

// Close releases the rendering resources held by the environment. Close
// may be called any number of times.
func (b *base) Close() error {
	b.renderer.close()
	b.closed = true
	return nil
}

// ObservationSpec returns the observation specification of the
// environment
func (b *base) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lower := make([]float64, ObservationDims)
	upper := make([]float64, ObservationDims)

	lower[ballX], upper[ballX] = b.laneX.Min, b.laneX.Max
	lower[ballY], upper[ballY] = b.laneY.Min, b.laneY.Max
	for i := 0; i < Pins; i++ {
		x, y := pinSlot(i)
		lower[x], upper[x] = Sentinel, b.laneX.Max
		lower[y], upper[y] = Sentinel, b.laneY.Max
	}

	return env.NewSpec(shape, env.Observation,
		mat.NewVecDense(ObservationDims, lower),
		mat.NewVecDense(ObservationDims, upper), env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (b *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{b.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// String returns a string representation of the environment
func (b *base) String() string {
	str := "Bowling  |  Ball: (%v, %v)  |  Pins Standing: %v/%v  |  " +
		"Score: %v  |  Phase: %v"
	return fmt.Sprintf(str, b.ball.Center.X, b.ball.Center.Y,
		len(b.Remaining()), len(b.original), b.score, b.phase)
}

// validateStart ensures that a starting ball position is 2-dimensional
// and lies on the lane
func validateStart(start *mat.VecDense, xBounds, yBounds r1.Interval) error {
	if start == nil || start.Len() != 2 {
		return fmt.Errorf("starting values should be 2-dimensional")
	}

	x, y := start.AtVec(0), start.AtVec(1)
	if math.IsNaN(x) || x < xBounds.Min || x > xBounds.Max {
		return fmt.Errorf("x position out of bounds, expected x ϵ [%v, %v] "+
			"but got x = %v", xBounds.Min, xBounds.Max, x)
	}
	if math.IsNaN(y) || y < yBounds.Min || y > yBounds.Max {
		return fmt.Errorf("y position out of bounds, expected y ϵ [%v, %v] "+
			"but got y = %v", yBounds.Min, yBounds.Max, y)
	}
	return nil
}
