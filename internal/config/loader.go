package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFlappy loads the game configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Files found on the search path are layered over the defaults, so a partial
// file only overrides the keys it sets. The result is validated.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return cfg, err
	}

	// Try custom path first; errors here are fatal since the user asked for it
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered, _ := loadDefaults()
		if err := yaml.Unmarshal(data, &layered); err != nil {
			continue
		}
		if err := layered.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		return layered, nil
	}

	return cfg, cfg.Validate()
}

// loadDefaults parses the embedded YAML, falling back to the hardcoded defaults.
func loadDefaults() (FlappyConfig, error) {
	var cfg FlappyConfig
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil
	}
	return cfg, nil
}

// searchPaths returns the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		paths = append(paths, userCfgPath)
	}
	return append(paths, filepath.Join("configs", "flappy.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged if home cannot be resolved.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Dump renders the effective config as YAML.
func Dump(cfg FlappyConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return out, nil
}

// ApplyFlappyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Progression.Type == "none" || cfg.Difficulty.Progression.Type == "" {
			cfg.Difficulty.Progression.Type = "score"
		}
	}
}
