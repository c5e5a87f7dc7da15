package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// Asset base for the stock sound effects.
const soundBaseURL = "https://raw.githubusercontent.com/sourabhv/FlapPyBird/master/assets/audio/"

// DefaultFlappyConfig returns the built-in configuration.
// Kept in sync with defaults/flappy.yaml and used if the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:     0.08,
			FlapImpulse: -1.0,
			PipeSpeed:   0.5,
			GroundSpeed: 0.5,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     5,
			GapHeight:     8,
			SpawnInterval: 1500 * time.Millisecond,
			TopMargin:     2,
			BottomMargin:  2,
			GroundHeight:  1,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				GapReduction:      3,
				IntervalReduction: 0.3,
			},
		},
		Audio: AudioConfig{
			Enabled:       true,
			MusicVolume:   0.4,
			EffectsVolume: 0.5,
			VolumeStep:    0.05,
		},
		Storage: StorageConfig{
			HighScoreBackend: BackendFile,
			HighScoreFile:    "~/.flappy/highscore.txt",
			DBPath:           "~/.flappy/scores.db",
		},
		Assets: AssetsConfig{
			CacheDir: "~/.flappy/assets",
			Timeout:  5 * time.Second,
			Sounds: map[string]string{
				"flap":  soundBaseURL + "wing.wav",
				"hit":   soundBaseURL + "hit.wav",
				"score": soundBaseURL + "point.wav",
			},
			Music: "bg.ogg",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
