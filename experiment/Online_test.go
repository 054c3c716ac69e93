package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gobowl/agent/random"
	"github.com/samuelfneumann/gobowl/environment/bowling"
	"github.com/samuelfneumann/gobowl/environment/envconfig"
	"github.com/samuelfneumann/gobowl/experiment/tracker"
)

func TestOnlineEpisodes(t *testing.T) {
	conf := envconfig.Default()
	conf.ContinuousActions = false
	conf.EpisodeCutoff = 25

	e, err := conf.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a, err := random.New(e, 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	returns := tracker.NewReturn("")
	lengths := tracker.NewEpisodeLength("")
	o, err := NewOnline(e, a, 0, 4, returns, lengths)
	if err != nil {
		t.Fatalf("newOnline: %v", err)
	}

	if err := o.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := o.Close(); err != nil {
		t.Errorf("close: %v", err)
	}

	if len(returns.Data()) != 4 || len(lengths.Data()) != 4 {
		t.Fatalf("run: want 4 episodes, have %v returns and %v lengths",
			len(returns.Data()), len(lengths.Data()))
	}
	for i, length := range lengths.Data() {
		if length < 1 || length > 25 {
			t.Errorf("episode %v: length %v outside of [1, 25]", i, length)
		}
	}
	for i, ret := range returns.Data() {
		if ret < bowling.TruncatePenalty ||
			ret > float64(bowling.Pins)*bowling.StrikeReward+bowling.ClearBonus {
			t.Errorf("episode %v: return %v out of range", i, ret)
		}
	}
}

func TestOnlineStepLimit(t *testing.T) {
	e, err := envconfig.Default().Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a, _ := random.New(e, 1)

	lengths := tracker.NewEpisodeLength("")
	o, err := NewOnline(e, a, 10, 0, lengths)
	if err != nil {
		t.Fatalf("newOnline: %v", err)
	}
	if err := o.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if o.currentSteps != 10 {
		t.Errorf("run: want 10 steps, have %v", o.currentSteps)
	}
}

func TestOnlineRunEpisodeAfterStepLimit(t *testing.T) {
	e, err := envconfig.Default().Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	a, _ := random.New(e, 1)

	returns := tracker.NewReturn("")
	o, err := NewOnline(e, a, 5, 0, returns)
	if err != nil {
		t.Fatalf("newOnline: %v", err)
	}
	defer o.Close()

	// The step limit stops the first episode part way through
	for i := 0; i < 2; i++ {
		done, err := o.RunEpisode()
		if err != nil {
			t.Fatalf("runEpisode %v: %v", i, err)
		}
		if !done {
			t.Errorf("runEpisode %v: step limit should be reached", i)
		}
	}
	if len(returns.Data()) != 0 {
		t.Errorf("runEpisode: no episode finished, have returns %v",
			returns.Data())
	}
}

func TestOnlineRender(t *testing.T) {
	dir := t.TempDir()
	conf := envconfig.Default()
	conf.EpisodeCutoff = 3
	conf.RenderMode = bowling.RenderHuman
	conf.FrameDir = dir

	exp, err := Config{
		Type:        OnlineExp,
		MaxEpisodes: 1,
		Render:      true,
		EnvConf:     conf,
	}.CreateExp(1, random.Config{})
	if err != nil {
		t.Fatalf("createExp: %v", err)
	}
	defer exp.Close()

	if err := exp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	// One frame after reset, one after each of the three steps
	frames, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(frames) != 4 {
		t.Errorf("run: want 4 frames, have %v", len(frames))
	}
}

func TestOnlineRenderUnavailable(t *testing.T) {
	exp, err := Config{
		MaxEpisodes: 1,
		Render:      true,
		EnvConf:     envconfig.Default(),
	}.CreateExp(1, random.Config{})
	if err != nil {
		t.Fatalf("createExp: %v", err)
	}
	defer exp.Close()

	if err := exp.Run(); err != nil {
		t.Errorf("run: unavailable rendering should not fail the run: %v",
			err)
	}
}

func TestNewOnlineNoLimit(t *testing.T) {
	e, _ := envconfig.Default().Create(1)
	a, _ := random.New(e, 1)
	if _, err := NewOnline(e, a, 0, 0); err == nil {
		t.Error("newOnline: want error without step or episode limit")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	returnsFile := filepath.Join(dir, "returns.bin")

	conf := envconfig.Default()
	conf.EpisodeCutoff = 5
	exp, err := Config{MaxEpisodes: 2, EnvConf: conf}.CreateExp(1,
		random.Config{}, tracker.NewReturn(returnsFile))
	if err != nil {
		t.Fatalf("createExp: %v", err)
	}
	defer exp.Close()

	if err := exp.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := exp.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(returnsFile); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := tracker.LoadData(returnsFile)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("loadData: want 2 returns, have %v", len(data))
	}
}
