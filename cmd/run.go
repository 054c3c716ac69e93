package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/samuelfneumann/gobowl/agent/random"
	"github.com/samuelfneumann/gobowl/environment/bowling"
	"github.com/samuelfneumann/gobowl/environment/envconfig"
	"github.com/samuelfneumann/gobowl/experiment"
	"github.com/samuelfneumann/gobowl/experiment/tracker"
	ts "github.com/samuelfneumann/gobowl/timestep"
	"github.com/samuelfneumann/gobowl/utils/progressbar"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

// loadConfig returns the config in configFile, or the default config
// if no file was given
func loadConfig() (envconfig.Config, error) {
	if configFile == "" {
		return envconfig.Default(), nil
	}
	return envconfig.Load(configFile)
}

// Run rolls out episodes of the bowling environment with a random
// agent and logs the return and length of each
func Run(episodes uint, frameDir, returnsFile string) error {
	conf, err := loadConfig()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if frameDir != "" {
		conf.RenderMode = bowling.RenderHuman
		conf.FrameDir = frameDir
	}

	returns := tracker.NewReturn(returnsFile)
	lengths := tracker.NewEpisodeLength("")
	bar := progress{progressbar.NewManualProgressBar(os.Stderr, 40,
		int(episodes))}
	exp, err := experiment.Config{
		Type:        experiment.OnlineExp,
		MaxEpisodes: episodes,
		Render:      conf.RenderMode != bowling.RenderNone && conf.RenderMode != "",
		EnvConf:     conf,
	}.CreateExp(seed, random.Config{}, returns, lengths, bar)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer exp.Close()

	if err := exp.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if err := exp.Save(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	r, l := returns.Data(), lengths.Data()
	for i := range r {
		log.Printf("episode %v: return %v, length %v", i+1, r[i], l[i])
	}
	if len(r) > 0 {
		log.Printf("mean return over %v episodes: %.2f, mean length: %.2f",
			len(r), stat.Mean(r, nil), stat.Mean(l, nil))
	}
	return nil
}

// progress is a tracker.Tracker which advances a progress bar at the
// end of every episode
type progress struct {
	bar *progressbar.ManualProgressBar
}

func (p progress) Track(t ts.TimeStep) {
	if t.Last() {
		p.bar.Increment()
		p.bar.Display()
	}
}

func (p progress) Save() error {
	fmt.Fprintln(os.Stderr)
	return nil
}

func RunCommand() *cobra.Command {
	var episodes uint
	var frameDir string
	var returnsFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Roll out episodes with a uniformly random agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(episodes, frameDir, returnsFile)
		},
	}
	cmd.Flags().UintVarP(&episodes, "episodes", "e", 5,
		"Number of episodes to run")
	cmd.Flags().StringVar(&frameDir, "frames", "",
		"Save a PNG frame of every step to this directory")
	cmd.Flags().StringVar(&returnsFile, "returns", "",
		"Save the episodic returns to this file")
	return cmd
}
