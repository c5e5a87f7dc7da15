package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
// With progression disabled every method returns its base value unchanged,
// so pipes move at a constant speed.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the pipe speed for the current difficulty.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	if !d.IsEnabled() {
		return baseSpeed
	}
	level := d.Level(score, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// GapHeight returns the gap height for the current difficulty, never below minGap.
func (d *DifficultyManager) GapHeight(baseGap, minGap int, score int, ticks int) int {
	if !d.IsEnabled() {
		return baseGap
	}
	level := d.Level(score, ticks)
	result := baseGap - int(level*float64(d.cfg.Scaling.GapReduction))
	if result < minGap {
		result = minGap
	}
	return result
}

// SpawnTicks returns the spawn interval in ticks for the current difficulty.
// The interval never shrinks below half of the base.
func (d *DifficultyManager) SpawnTicks(baseTicks int, score int, ticks int) int {
	if !d.IsEnabled() {
		return baseTicks
	}
	level := d.Level(score, ticks)
	reduction := clampF(level*d.cfg.Scaling.IntervalReduction, 0.0, 0.5)
	result := int(math.Round(float64(baseTicks) * (1.0 - reduction)))
	if result < 1 {
		result = 1
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
