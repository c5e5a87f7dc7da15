package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults() failed: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultFlappyConfig()) {
		t.Errorf("embedded YAML and DefaultFlappyConfig differ:\nyaml: %+v\ngo:   %+v", cfg, DefaultFlappyConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadFlappyFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Obstacles.SpawnInterval != 1500*time.Millisecond {
		t.Errorf("spawn interval = %v, expected 1.5s", cfg.Obstacles.SpawnInterval)
	}
}

func TestLoadFlappyCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  gravity: 0.5\nobstacles:\n  spawn_interval: 2s\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy(path)
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}

	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("gravity = %v, expected override 0.5", cfg.Physics.Gravity)
	}
	if cfg.Obstacles.SpawnInterval != 2*time.Second {
		t.Errorf("spawn interval = %v, expected 2s", cfg.Obstacles.SpawnInterval)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.FlapImpulse != -1.0 {
		t.Errorf("flap impulse = %v, expected default -1.0", cfg.Physics.FlapImpulse)
	}
	if cfg.Assets.Sounds["flap"] == "" {
		t.Error("sound manifest should keep default entries")
	}
}

func TestLoadFlappyLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "flappy.yaml"), []byte("obstacles:\n  gap_height: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFlappy("")
	if err != nil {
		t.Fatalf("LoadFlappy() failed: %v", err)
	}
	if cfg.Obstacles.GapHeight != 10 {
		t.Errorf("gap height = %d, expected 10 from ./configs", cfg.Obstacles.GapHeight)
	}
}

func TestLoadFlappyErrors(t *testing.T) {
	if _, err := LoadFlappy(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  gap_height: -3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFlappy(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative gap should yield ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FlappyConfig)
	}{
		{"zero gravity", func(c *FlappyConfig) { c.Physics.Gravity = 0 }},
		{"downward flap", func(c *FlappyConfig) { c.Physics.FlapImpulse = 1 }},
		{"gap smaller than bird", func(c *FlappyConfig) { c.Obstacles.GapHeight = c.Player.Height }},
		{"no spawn interval", func(c *FlappyConfig) { c.Obstacles.SpawnInterval = 0 }},
		{"unknown backend", func(c *FlappyConfig) { c.Storage.HighScoreBackend = "redis" }},
		{"volume step too large", func(c *FlappyConfig) { c.Audio.VolumeStep = 2 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFlappyConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSpawnTicks(t *testing.T) {
	o := FlappyObstacles{SpawnInterval: 1500 * time.Millisecond}

	if got := o.SpawnTicks(60); got != 90 {
		t.Errorf("SpawnTicks(60) = %d, expected 90", got)
	}
	if got := (FlappyObstacles{SpawnInterval: time.Millisecond}).SpawnTicks(60); got != 1 {
		t.Errorf("tiny interval should round up to 1 tick, got %d", got)
	}
}

func TestPresets(t *testing.T) {
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should fail")
	}

	cfg := DefaultFlappyConfig()
	ApplyFlappyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}
	if cfg.Difficulty.Progression.Type != "score" {
		t.Errorf("preset should enable score progression, got %q", cfg.Difficulty.Progression.Type)
	}

	ApplyFlappyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyDisabledIsConstant(t *testing.T) {
	d := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	for _, score := range []int{0, 10, 1000} {
		if got := d.Speed(0.5, score, score*60); got != 0.5 {
			t.Errorf("Speed at score %d = %v, expected constant 0.5", score, got)
		}
		if got := d.GapHeight(8, 3, score, 0); got != 8 {
			t.Errorf("GapHeight at score %d = %d, expected 8", score, got)
		}
		if got := d.SpawnTicks(90, score, 0); got != 90 {
			t.Errorf("SpawnTicks at score %d = %d, expected 90", score, got)
		}
	}
}

func TestDifficultyProgression(t *testing.T) {
	cfg := DefaultFlappyConfig().Difficulty
	cfg.Enabled = true
	cfg.Progression = ProgressionConfig{Type: "score", MaxAt: 10}
	d := NewDifficultyManager(cfg)

	if got := d.Level(5, 0); got != 0.5 {
		t.Errorf("Level(5) = %v, expected 0.5", got)
	}
	if got := d.Level(100, 0); got != 1.0 {
		t.Errorf("Level past max_at = %v, expected 1.0", got)
	}
	if got := d.Speed(0.5, 10, 0); got != 1.0 {
		t.Errorf("Speed at max = %v, expected 1.0", got)
	}
	if got := d.GapHeight(8, 6, 10, 0); got != 6 {
		t.Errorf("GapHeight should clamp at min, got %d", got)
	}
	if got := d.SpawnTicks(90, 10, 0); got != 63 {
		t.Errorf("SpawnTicks at max = %d, expected 63", got)
	}
}
