// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate for configs the engine cannot run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
	Storage    StorageConfig    `yaml:"storage"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// FlappyPhysics defines per-tick physics parameters, in cells.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every playing tick
	FlapImpulse float64 `yaml:"flap_impulse"` // Velocity set on flap (negative = up)
	PipeSpeed   float64 `yaml:"pipe_speed"`   // Leftward pipe movement per tick
	GroundSpeed float64 `yaml:"ground_speed"` // Leftward ground scroll per tick
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	PipeWidth     int           `yaml:"pipe_width"`
	GapHeight     int           `yaml:"gap_height"`
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	TopMargin     int           `yaml:"top_margin"`    // Min rows between screen top and a gap
	BottomMargin  int           `yaml:"bottom_margin"` // Min rows between a gap and the ground
	GroundHeight  int           `yaml:"ground_height"` // Rows occupied by the ground strip
}

// FlappyPlayer defines the bird's hitbox.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AudioConfig holds mixer defaults. Volumes are linear in [0, 1].
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MusicVolume   float64 `yaml:"music_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
	VolumeStep    float64 `yaml:"volume_step"`
}

// StorageConfig selects where the high score and run history live.
type StorageConfig struct {
	HighScoreBackend string `yaml:"highscore_backend"` // "file" or "sqlite"
	HighScoreFile    string `yaml:"highscore_file"`
	DBPath           string `yaml:"db_path"`
}

// AssetsConfig lists downloadable assets and where they are cached.
type AssetsConfig struct {
	CacheDir string            `yaml:"cache_dir"`
	Timeout  time.Duration     `yaml:"timeout"`
	Sounds   map[string]string `yaml:"sounds"` // name -> URL
	Music    string            `yaml:"music"`  // optional local path or URL
}

// SpawnTicks converts the spawn interval to simulation ticks at the given rate.
// Never returns less than one tick.
func (o FlappyObstacles) SpawnTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(o.SpawnInterval * time.Duration(tickRate) / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Validate checks invariants the engine relies on.
func (c FlappyConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.FlapImpulse < 0, "physics.flap_impulse must be negative, got %v", c.Physics.FlapImpulse)
	check(c.Physics.PipeSpeed > 0, "physics.pipe_speed must be positive, got %v", c.Physics.PipeSpeed)
	check(c.Physics.GroundSpeed >= 0, "physics.ground_speed must not be negative, got %v", c.Physics.GroundSpeed)
	check(c.Obstacles.PipeWidth > 0, "obstacles.pipe_width must be positive, got %d", c.Obstacles.PipeWidth)
	check(c.Obstacles.GapHeight > c.Player.Height, "obstacles.gap_height (%d) must exceed player.height (%d)",
		c.Obstacles.GapHeight, c.Player.Height)
	check(c.Obstacles.SpawnInterval > 0, "obstacles.spawn_interval must be positive, got %v", c.Obstacles.SpawnInterval)
	check(c.Obstacles.TopMargin >= 0 && c.Obstacles.BottomMargin >= 0, "obstacles margins must not be negative")
	check(c.Obstacles.GroundHeight >= 1, "obstacles.ground_height must be at least 1, got %d", c.Obstacles.GroundHeight)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player width/height must be positive")
	check(c.Player.X >= 0, "player.x must not be negative, got %d", c.Player.X)
	check(c.Audio.VolumeStep > 0 && c.Audio.VolumeStep <= 1, "audio.volume_step must be in (0, 1], got %v", c.Audio.VolumeStep)
	check(c.Storage.HighScoreBackend == BackendFile || c.Storage.HighScoreBackend == BackendSQLite,
		"storage.highscore_backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.HighScoreBackend)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// High score backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to pipe speed at max difficulty
	GapReduction      int     `yaml:"gap_reduction"`      // Gap height reduction at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means "keep the config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
