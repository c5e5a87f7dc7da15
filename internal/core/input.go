package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionFlap                // Space, W, Up - upward impulse / start a round
	ActionRestart             // R - back to the start screen after game over
	ActionToggleVolume        // V - open/close the volume overlay
	ActionMusicUp             // M - raise music volume (overlay only)
	ActionMusicDown           // N - lower music volume (overlay only)
	ActionEffectsUp           // K - raise effects volume (overlay only)
	ActionEffectsDown         // L - lower effects volume (overlay only)
	ActionQuit                // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionRestart:
		return "Restart"
	case ActionToggleVolume:
		return "ToggleVolume"
	case ActionMusicUp:
		return "MusicUp"
	case ActionMusicDown:
		return "MusicDown"
	case ActionEffectsUp:
		return "EffectsUp"
	case ActionEffectsDown:
		return "EffectsDown"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// InputOf is a shorthand for a frame with the given actions set.
func InputOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
