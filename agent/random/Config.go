package random

import (
	"github.com/samuelfneumann/gobowl/agent"
	"github.com/samuelfneumann/gobowl/environment"
)

// Config represents a configuration for the Random agent
type Config struct{}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	r, err := New(env, seed)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	return nil
}
