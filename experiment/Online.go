package experiment

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/samuelfneumann/gobowl/agent"
	env "github.com/samuelfneumann/gobowl/environment"
	"github.com/samuelfneumann/gobowl/experiment/tracker"
	ts "github.com/samuelfneumann/gobowl/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Each episode follows the same protocol: the environment is reset,
// then stepped with the agent's actions until a TimeStep of type Last
// is returned, rendering after every transition if rendering is
// enabled. The environment is closed by Close.
type Online struct {
	env.Environment
	agent.Agent

	id           uuid.UUID
	maxSteps     uint
	maxEpisodes  uint
	currentSteps uint
	episodes     uint
	render       bool
	trackers     []tracker.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines the
// maximum number of timesteps the experiment is run for, and episodes
// the maximum number of episodes; a value of 0 disables either limit,
// but not both. The t parameter is a slice of tracker.Tracker which
// determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps, episodes uint,
	t ...tracker.Tracker) (*Online, error) {
	if steps == 0 && episodes == 0 {
		return nil, fmt.Errorf("newOnline: at least one of the step " +
			"or episode limits must be set")
	}

	return &Online{
		Environment: e,
		Agent:       a,
		id:          uuid.New(),
		maxSteps:    steps,
		maxEpisodes: episodes,
		trackers:    t,
	}, nil
}

// ID returns the unique identifier of the experiment run
func (o *Online) ID() uuid.UUID {
	return o.id
}

// SetRender sets whether the environment is rendered after every
// transition
func (o *Online) SetRender(render bool) {
	o.render = render
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment. It returns
// whether or not the experiment has reached its step or episode limit.
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)
	if err := o.renderFrame(); err != nil {
		return true, err
	}

	var episodeReturn float64
	for !step.Last() && !o.stepLimitReached() {
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		episodeReturn += step.Reward

		o.track(step)
		if err := o.renderFrame(); err != nil {
			return true, err
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()

	if step.Last() {
		o.episodes++
		log.Printf("run %v: episode %v ended (%v) after %v steps with "+
			"return %v", o.id, o.episodes, step.EndType(), step.Number,
			episodeReturn)
	}

	return o.stepLimitReached() || o.episodeLimitReached(), nil
}

// Run runs the entire experiment until the step or episode limit is
// reached
func (o *Online) Run() error {
	for ended := false; !ended; {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return err
		}
	}

	log.Printf("run %v: finished %v episodes in %v steps", o.id,
		o.episodes, o.currentSteps)
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// Close closes the environment
func (o *Online) Close() error {
	return o.Environment.Close()
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// renderFrame renders the environment if rendering is enabled
func (o *Online) renderFrame() error {
	if !o.render {
		return nil
	}

	_, err := o.Environment.Render()
	if errors.Is(err, env.ErrRenderUnavailable) {
		// Environments configured without a display are not fatal to
		// the experiment, stop trying to render them
		log.Printf("run %v: disabling rendering: %v", o.id, err)
		o.render = false
		return nil
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (o *Online) stepLimitReached() bool {
	return o.maxSteps > 0 && o.currentSteps >= o.maxSteps
}

func (o *Online) episodeLimitReached() bool {
	return o.maxEpisodes > 0 && o.episodes >= o.maxEpisodes
}
