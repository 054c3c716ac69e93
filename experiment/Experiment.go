// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gobowl/agent"
	"github.com/samuelfneumann/gobowl/environment/envconfig"
	"github.com/samuelfneumann/gobowl/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function will then take
// all cached data and save it to disk. This is usually performed after
// an experiment has been run. The Run() method will run all episodes
// until the step or episode limit is reached. The RunEpisode() function
// will run a single episode.
//
// In order to save data, Experiments use Trackers. Experiments send
// each TimeStep to Trackers using the Tracker's Track() method. The
// Tracker then determines which data from the TimeStep it caches and
// saves.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the experiment is done

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// Close releases the resources of the experiment's environment
	Close() error
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type        `json:"type" yaml:"type"`
	MaxSteps    uint             `json:"maxSteps" yaml:"maxSteps"`
	MaxEpisodes uint             `json:"maxEpisodes" yaml:"maxEpisodes"`
	Render      bool             `json:"render" yaml:"render"`
	EnvConf     envconfig.Config `json:"envConf" yaml:"envConf"`
}

// CreateExp creates the experiment described by the Config, running
// the agent described by agentConf
func (c Config) CreateExp(seed uint64, agentConf agent.Config,
	t ...tracker.Tracker) (Experiment, error) {
	if err := agentConf.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: invalid agent config: %w", err)
	}

	e, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: "+
			"%w", err)
	}

	a, err := agentConf.CreateAgent(e, seed)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	switch c.Type {
	case OnlineExp, "":
		o, err := NewOnline(e, a, c.MaxSteps, c.MaxEpisodes, t...)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("createExp: %w", err)
		}
		o.SetRender(c.Render)
		return o, nil
	}

	e.Close()
	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}
