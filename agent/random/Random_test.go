package random

import (
	"testing"

	"github.com/samuelfneumann/gobowl/agent"
	"github.com/samuelfneumann/gobowl/environment/bowling"
	"github.com/samuelfneumann/gobowl/timestep"
)

func TestRandomDiscrete(t *testing.T) {
	task := bowling.NewKnockDown(bowling.NewStarter(0, 1), bowling.Pins, 0)
	env, err := bowling.NewDiscrete(task, 1, bowling.Settings{})
	if err != nil {
		t.Fatalf("newDiscrete: %v", err)
	}

	r, err := New(env, 3)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	seen := make(map[float64]bool)
	for i := 0; i < 300; i++ {
		a := r.SelectAction(timestep.TimeStep{})
		if !env.ActionSpec().Contains(a) {
			t.Fatalf("selectAction: illegal action %v", a.AtVec(0))
		}
		seen[a.AtVec(0)] = true
	}
	if len(seen) != 3 {
		t.Errorf("selectAction: want all 3 actions sampled, have %v", seen)
	}
}

func TestRandomContinuous(t *testing.T) {
	task := bowling.NewKnockDown(bowling.NewStarter(0, 1), bowling.Pins, 0)
	env, err := bowling.NewContinuous(task, 1, bowling.Settings{})
	if err != nil {
		t.Fatalf("newContinuous: %v", err)
	}

	var a agent.Agent
	a, err = Config{}.CreateAgent(env, 3)
	if err != nil {
		t.Fatalf("createAgent: %v", err)
	}

	for i := 0; i < 300; i++ {
		action := a.SelectAction(timestep.TimeStep{})
		if !env.ActionSpec().Contains(action) {
			t.Fatalf("selectAction: illegal action (%v, %v)",
				action.AtVec(0), action.AtVec(1))
		}
	}
}

func TestRandomSeeded(t *testing.T) {
	task := bowling.NewKnockDown(bowling.NewStarter(0, 1), bowling.Pins, 0)
	env, err := bowling.NewContinuous(task, 1, bowling.Settings{})
	if err != nil {
		t.Fatalf("newContinuous: %v", err)
	}

	first, _ := New(env, 42)
	second, _ := New(env, 42)
	for i := 0; i < 10; i++ {
		a := first.SelectAction(timestep.TimeStep{})
		b := second.SelectAction(timestep.TimeStep{})
		if a.AtVec(0) != b.AtVec(0) || a.AtVec(1) != b.AtVec(1) {
			t.Fatalf("selectAction: same seed gave different actions")
		}
	}
}

func TestEvalMode(t *testing.T) {
	r := &Random{}
	r.Eval()
	if !r.IsEval() {
		t.Error("eval: agent should be in evaluation mode")
	}
	r.Train()
	if r.IsEval() {
		t.Error("train: agent should be in training mode")
	}
}
