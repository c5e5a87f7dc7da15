package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionFlap)
	if !f.Has(ActionFlap) || f.Has(ActionRestart) {
		t.Error("Has should report exactly the set actions")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionFlap) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputOf(t *testing.T) {
	f := InputOf(ActionToggleVolume, ActionMusicUp)
	if !f.Has(ActionToggleVolume) || !f.Has(ActionMusicUp) {
		t.Error("InputOf should set every given action")
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []Event{EventFlap, EventScore}}
	if !r.Has(EventScore) || r.Has(EventHit) {
		t.Error("Has should report exactly the recorded events")
	}
	if EventNewHighScore.String() != "new_high_score" {
		t.Errorf("unexpected event name %q", EventNewHighScore.String())
	}
}
