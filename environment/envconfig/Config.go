// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON and YAML serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/samuelfneumann/gobowl/environment"
	"github.com/samuelfneumann/gobowl/environment/bowling"
	"gopkg.in/yaml.v3"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Bowling EnvName = "Bowling"
)

// TaskName stores the tasks that can be configured with this package.
// The tasks that can be used with each environment are as follows:
//
//	Environment			Task
//	Bowling				KnockDown
type TaskName string

// Tasks available for configuration
const (
	KnockDown TaskName = "KnockDown"
)

// Config implements a specific configuration of a specific environment
// and specific task
type Config struct {
	Environment       EnvName  `json:"environment" yaml:"environment"`
	Task              TaskName `json:"task" yaml:"task"`
	ContinuousActions bool     `json:"continuousActions" yaml:"continuousActions"`

	// EpisodeCutoff is the maximum number of steps in an episode, 0
	// means no limit
	EpisodeCutoff uint    `json:"episodeCutoff" yaml:"episodeCutoff"`
	Discount      float64 `json:"discount" yaml:"discount"`

	Formation   bowling.Formation  `json:"formation" yaml:"formation"`
	StartJitter float64            `json:"startJitter" yaml:"startJitter"`
	RenderMode  bowling.RenderMode `json:"renderMode" yaml:"renderMode"`
	FrameDir    string             `json:"frameDir,omitempty" yaml:"frameDir,omitempty"`
}

// Default returns the default configuration: the KnockDown task on a
// triangle of pins with continuous actions, no step limit and no
// rendering
func Default() Config {
	return Config{
		Environment:       Bowling,
		Task:              KnockDown,
		ContinuousActions: true,
		EpisodeCutoff:     0,
		Discount:          1.0,
		Formation:         bowling.Triangle,
		StartJitter:       0,
		RenderMode:        bowling.RenderNone,
	}
}

// Load reads a Config from a JSON or YAML file, chosen by the file
// extension. Fields missing from the file keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return Config{}, fmt.Errorf("load: unknown config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load: could not decode %v: %w", path,
			err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// Save writes the Config to a JSON or YAML file, chosen by the file
// extension
func (c Config) Save(path string) error {
	var data []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(c, "", "\t")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("save: unknown config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate returns an error describing why the Config is invalid, or
// nil if the Config is valid
func (c Config) Validate() error {
	if c.Environment != Bowling {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Task != KnockDown {
		return fmt.Errorf("validate: %v environment has no task %q",
			c.Environment, c.Task)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount %v outside of [0, 1]",
			c.Discount)
	}
	if c.StartJitter < 0 || c.StartJitter > bowling.BallStartX {
		return fmt.Errorf("validate: start jitter %v outside of [0, %v]",
			c.StartJitter, bowling.BallStartX)
	}
	if _, err := bowling.Layout(c.Formation); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	switch c.RenderMode {
	case "", bowling.RenderNone, bowling.RenderRGBArray:
	case bowling.RenderHuman:
		if c.FrameDir == "" {
			return fmt.Errorf("validate: render mode %q needs a frame "+
				"directory", c.RenderMode)
		}
	default:
		return fmt.Errorf("validate: no such render mode %q", c.RenderMode)
	}

	return nil
}

// Create returns the environment described by the Config. The
// environment must be reset before it is used.
func (c Config) Create(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	return CreateBowling(c.ContinuousActions, c.Task, int(c.EpisodeCutoff),
		seed, c.Discount, c.StartJitter, c.settings())
}

func (c Config) settings() bowling.Settings {
	return bowling.Settings{
		Formation:  c.Formation,
		RenderMode: c.RenderMode,
		FrameDir:   c.FrameDir,
	}
}

// CreateBowling is a factory for creating the Bowling environment with
// the default lane and the given task parameters
func CreateBowling(continuousActions bool, taskName TaskName, cutoff int,
	seed uint64, discount, jitter float64, s bowling.Settings) (
	env.Environment, error) {
	starter := bowling.NewStarter(jitter, seed)

	var task env.Task
	switch taskName {
	case KnockDown:
		task = bowling.NewKnockDown(starter, bowling.Pins, cutoff)

	default:
		return nil, fmt.Errorf("createBowling: Bowling environment has "+
			"no task %v", taskName)
	}

	var e env.Environment
	var err error
	if continuousActions {
		e, err = bowling.NewContinuous(task, discount, s)
	} else {
		e, err = bowling.NewDiscrete(task, discount, s)
	}
	if err != nil {
		return nil, fmt.Errorf("createBowling: %w", err)
	}
	return e, nil
}
