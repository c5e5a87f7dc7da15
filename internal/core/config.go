package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is a snapshot of the game for the platform layer.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score known to the game
	Started   bool // A round is in progress or finished (not on the start screen)
	GameOver  bool // Whether the round has ended
	Overlay   bool // Whether the volume overlay is open (simulation frozen)
}

// Event is something that happened during a tick that the platform may
// react to (play a sound, persist settings, record a run).
type Event int

const (
	EventFlap          Event = iota + 1 // Bird flapped
	EventScore                          // A pipe was passed
	EventHit                            // Bird hit a pipe or the ground
	EventNewHighScore                   // Round ended above the previous best
	EventRestart                        // Returned to the start screen
	EventVolumeChanged                  // Music or effects level changed
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventFlap:
		return "flap"
	case EventScore:
		return "score"
	case EventHit:
		return "hit"
	case EventNewHighScore:
		return "new_high_score"
	case EventRestart:
		return "restart"
	case EventVolumeChanged:
		return "volume_changed"
	default:
		return "unknown"
	}
}

// StepResult is returned by Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event occurred this tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
