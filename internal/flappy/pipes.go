package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe represents a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X         float64 // Horizontal position (left edge)
	Width     int     // Column count
	GapCenter int     // Row at the middle of the gap
	GapHeight int     // Height of the passable gap
	Passed    bool    // Whether the bird has passed this pipe (for scoring)
}

// GapTop returns the first row of the gap.
func (p Pipe) GapTop() int {
	return p.GapCenter - p.GapHeight/2
}

// GapBottom returns the first row below the gap.
func (p Pipe) GapBottom() int {
	return p.GapTop() + p.GapHeight
}

// Right returns the x-coordinate of the trailing edge.
func (p Pipe) Right() float64 {
	return p.X + float64(p.Width)
}

// Box returns the pipe's full-height column span for horizontal tests.
func (p Pipe) Box(f Field) core.Box {
	return core.NewBox(p.X, 0, float64(p.Width), float64(f.GroundY))
}

// Hits reports whether the bird box overlaps the pipe's columns while
// any part of it is outside the gap.
func (p Pipe) Hits(bird core.Box, f Field) bool {
	if !bird.OverlapsX(p.Box(f)) {
		return false
	}
	return !bird.WithinY(float64(p.GapTop()), float64(p.GapBottom()))
}

// PipeManager handles spawning, movement, scoring and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	sinceSpawn int // Ticks since the last pipe was spawned
	cfg        config.FlappyObstacles
	physics    config.FlappyPhysics
	minGap     int
	spawnTicks int
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
// tickRate converts the configured spawn interval into ticks.
func NewPipeManager(seed int64, tickRate int, cfg config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	pm := &PipeManager{
		pipes:      make([]Pipe, 0, 8),
		cfg:        cfg.Obstacles,
		physics:    cfg.Physics,
		minGap:     cfg.Player.Height + 1,
		spawnTicks: cfg.Obstacles.SpawnTicks(tickRate),
		difficulty: diff,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes, the spawn timer and the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
	pm.sinceSpawn = 0
}

// clear drops all pipes and restarts the spawn timer, keeping the RNG stream.
func (pm *PipeManager) clear() {
	pm.pipes = pm.pipes[:0]
	pm.sinceSpawn = 0
}

// Update moves pipes left, scores passed pipes, drops off-screen pipes
// and spawns a new pipe once the spawn interval has elapsed.
// Returns the number of pipes passed this tick.
func (pm *PipeManager) Update(birdX float64, f Field, score, ticks int) int {
	speed := pm.difficulty.Speed(pm.physics.PipeSpeed, score, ticks)

	for i := range pm.pipes {
		pm.pipes[i].X -= speed
	}

	// A pipe counts once its trailing edge is behind the bird
	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && pm.pipes[i].Right() < birdX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	visible := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.Right() >= 0 {
			visible = append(visible, p)
		}
	}
	pm.pipes = visible

	pm.sinceSpawn++
	if pm.sinceSpawn >= pm.difficulty.SpawnTicks(pm.spawnTicks, score, ticks) {
		pm.spawn(f, score, ticks)
		pm.sinceSpawn = 0
	}

	return passed
}

// spawn appends a pipe at the right edge with a random gap center.
func (pm *PipeManager) spawn(f Field, score, ticks int) {
	gap := pm.difficulty.GapHeight(pm.cfg.GapHeight, pm.minGap, score, ticks)

	// Keep the whole gap between the margins
	minCenter := pm.cfg.TopMargin + gap/2
	maxCenter := f.GroundY - pm.cfg.BottomMargin - (gap - gap/2)
	if maxCenter < minCenter {
		maxCenter = minCenter // Edge case for very small screens
	}

	center := minCenter
	if maxCenter > minCenter {
		center = minCenter + pm.rng.Intn(maxCenter-minCenter+1)
	}

	pm.pipes = append(pm.pipes, Pipe{
		X:         float64(f.Width),
		Width:     pm.cfg.PipeWidth,
		GapCenter: center,
		GapHeight: gap,
	})
}

// Pipes returns the current pipes, oldest first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests whether the bird box hits any pipe.
func (pm *PipeManager) CheckCollision(bird core.Box, f Field) bool {
	for _, p := range pm.pipes {
		if p.Hits(bird, f) {
			return true
		}
	}
	return false
}
