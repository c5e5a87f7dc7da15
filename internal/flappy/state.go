package flappy

// Phase is the game state machine's current state.
type Phase int

const (
	PhaseStart    Phase = iota // Waiting for the first flap
	PhasePlaying               // Physics engine active
	PhaseGameOver              // Frozen, awaiting restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// trigger is an input or engine signal that may move the state machine.
type trigger int

const (
	triggerFlap trigger = iota
	triggerCollision
	triggerRestart
)

// next returns the phase reached from p on t, and whether a transition happened.
// Start --flap--> Playing --collision--> GameOver --restart--> Start.
// Every other pair is a no-op.
func (p Phase) next(t trigger) (Phase, bool) {
	switch {
	case p == PhaseStart && t == triggerFlap:
		return PhasePlaying, true
	case p == PhasePlaying && t == triggerCollision:
		return PhaseGameOver, true
	case p == PhaseGameOver && t == triggerRestart:
		return PhaseStart, true
	}
	return p, false
}
