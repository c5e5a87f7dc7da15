// Package flappy implements the Flappy Bird game engine: bird physics, pipe
// movement, collision, scoring and the start/playing/game-over state machine.
// It draws into a core.Screen and never touches the terminal, audio or disk
// directly; those are reached through the HighScores interface and the
// events returned from Step.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ID names the game in screenshot files.
const ID = "flappy"

// HighScores is the persisted best-score collaborator.
type HighScores interface {
	// Best returns the current best score.
	Best() int
	// Submit offers a finished round's score. It persists and returns
	// true only when score beats the current best.
	Submit(score int) (bool, error)
}

// Game holds all state for one player. It is the context passed to every
// update and render call; there is no package-level game state.
type Game struct {
	cfg        config.FlappyConfig
	runtime    core.RuntimeConfig
	field      Field
	bird       Bird
	pipes      *PipeManager
	ground     Ground
	difficulty *config.DifficultyManager
	scores     HighScores

	phase        Phase
	score        int
	newHighScore bool // Last round beat the previous best
	tickCount    int  // Playing ticks since the round started
	volume       core.Volume
	overlay      bool // Volume overlay open; simulation frozen
	noMusic      bool // No music track; music keys are ignored
}

// New creates a game from a validated config. scores may be nil, in which
// case the best score lives only as long as the Game.
// Panics on an invalid config: the engine cannot run with, say, a negative gap.
func New(cfg config.FlappyConfig, scores HighScores) *Game {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("flappy: %v", err))
	}
	if scores == nil {
		scores = &sessionBest{}
	}
	return &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		scores:     scores,
		volume: core.Volume{
			Music:   cfg.Audio.MusicVolume,
			Effects: cfg.Audio.EffectsVolume,
		}.Clamped(),
	}
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset initializes the game for the given screen and seed and puts it on
// the start screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.field = newField(rc.ScreenW, rc.ScreenH, g.cfg)
	g.bird = newBird(g.cfg.Player.X, g.cfg.Player.Width, g.cfg.Player.Height, g.field)
	if g.pipes == nil {
		g.pipes = NewPipeManager(rc.Seed, rc.TickRate, g.cfg, g.difficulty)
	} else {
		g.pipes.Reset(rc.Seed)
	}
	g.resetRound()
	g.overlay = false
}

// resetRound clears per-round entities and returns to the start screen.
func (g *Game) resetRound() {
	g.bird.reset()
	g.pipes.clear()
	g.ground = Ground{}
	g.phase = PhaseStart
	g.score = 0
	g.newHighScore = false
	g.tickCount = 0
}

// Resize adapts the field to a new screen size without restarting the round.
func (g *Game) Resize(screenW, screenH int) {
	g.runtime.ScreenW = screenW
	g.runtime.ScreenH = screenH
	g.field = newField(screenW, screenH, g.cfg)

	startY := core.ClampF(float64(screenH)/2, 0, g.field.Floor)
	g.bird.StartY = startY
	if g.phase == PhaseStart {
		g.bird.Y = startY
	} else {
		g.bird.Y = core.ClampF(g.bird.Y, 0, g.field.Floor)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	if in.Has(core.ActionToggleVolume) {
		g.overlay = !g.overlay
	}
	if g.overlay {
		events = g.adjustVolume(in, events)
		return core.StepResult{State: g.State(), Events: events}
	}

	switch g.phase {
	case PhaseStart:
		if in.Has(core.ActionFlap) {
			g.phase, _ = g.phase.next(triggerFlap)
			events = g.tick(true, events)
		}
	case PhasePlaying:
		events = g.tick(in.Has(core.ActionFlap), events)
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.phase, _ = g.phase.next(triggerRestart)
			g.resetRound()
			events = append(events, core.EventRestart)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// tick runs one frame of physics, scoring and collision.
func (g *Game) tick(flap bool, events []core.Event) []core.Event {
	g.tickCount++

	g.bird.step(flap, g.cfg.Physics.Gravity, g.cfg.Physics.FlapImpulse, g.field.Floor)
	if flap {
		events = append(events, core.EventFlap)
	}
	g.ground.scroll(g.cfg.Physics.GroundSpeed)

	passed := g.pipes.Update(g.bird.X, g.field, g.score, g.tickCount)
	for i := 0; i < passed; i++ {
		g.score++
		events = append(events, core.EventScore)
	}

	if g.bird.outOfBounds(g.field.Floor) || g.pipes.CheckCollision(g.bird.Box(), g.field) {
		g.phase, _ = g.phase.next(triggerCollision)
		events = append(events, core.EventHit)

		// Persistence failures are logged by the tracker; the round still ends
		improved, _ := g.scores.Submit(g.score)
		if improved {
			g.newHighScore = true
			events = append(events, core.EventNewHighScore)
		}
	}

	return events
}

// adjustVolume applies overlay key presses.
func (g *Game) adjustVolume(in core.InputFrame, events []core.Event) []core.Event {
	actions := []core.Action{
		core.ActionMusicUp, core.ActionMusicDown,
		core.ActionEffectsUp, core.ActionEffectsDown,
	}
	changed := false
	for _, a := range actions {
		if !in.Has(a) {
			continue
		}
		if g.noMusic && (a == core.ActionMusicUp || a == core.ActionMusicDown) {
			continue
		}
		var ok bool
		g.volume, ok = g.volume.Adjust(a, g.cfg.Audio.VolumeStep)
		changed = changed || ok
	}
	if changed {
		events = append(events, core.EventVolumeChanged)
	}
	return events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.scores.Best(),
		Started:   g.phase != PhaseStart,
		GameOver:  g.phase == PhaseGameOver,
		Overlay:   g.overlay,
	}
}

// Phase returns the state machine's current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Ticks returns the number of playing ticks in the current round.
func (g *Game) Ticks() int {
	return g.tickCount
}

// Volume returns the current mixer levels.
func (g *Game) Volume() core.Volume {
	return g.volume
}

// SetVolume replaces the mixer levels, e.g. with persisted settings.
func (g *Game) SetVolume(v core.Volume) {
	g.volume = v.Clamped()
}

// SetMusicAvailable tells the game whether a music track is playing.
// Without one the overlay shows music as off and ignores its keys.
func (g *Game) SetMusicAvailable(ok bool) {
	g.noMusic = !ok
}

// sessionBest is the in-memory HighScores used when no store is available.
type sessionBest struct {
	best int
}

func (s *sessionBest) Best() int {
	return s.best
}

func (s *sessionBest) Submit(score int) (bool, error) {
	if score <= s.best {
		return false, nil
	}
	s.best = score
	return true, nil
}
