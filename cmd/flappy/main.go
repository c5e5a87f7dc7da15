// flappy is a Flappy Bird clone for the terminal.
//
// Usage:
//
//	flappy [play]          - Play a round (default)
//	flappy scores [-i]     - Show the high score and run history
//	flappy serve           - Start SSH server for remote play
//	flappy assets fetch    - Download sound assets into the cache
//	flappy config dump     - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible pipes
//	--db <path>            - Set database path (default: from config)
//	--log <path>           - Set log file (default: ~/.flappy/flappy.log)
//	--config <path>        - Use a custom config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--no-audio             - Disable sound
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogPath    string
	flagConfig     string
	flagDifficulty string
	flagNoAudio    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flap through the pipes for as long as you can.

Available commands:
  play     - Play a round (default)
  scores   - View the high score and run history
  serve    - Start SSH server for remote play
  assets   - Manage downloaded sound assets
  config   - Inspect the configuration

Examples:
  flappy
  flappy --difficulty hard
  flappy scores -i
  flappy serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default: storage.db_path)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.flappy/flappy.log", "Path to log file")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound effects and music")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config and applies the --difficulty and --db flags.
func loadConfig() (config.FlappyConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, "", err
	}

	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}
	if preset == "" {
		preset = config.DifficultyFixed
		if cfg.Difficulty.Enabled {
			preset = config.DifficultyPreset("custom")
		}
	}
	return cfg, preset, nil
}

// openLogFile creates a logger writing to path. The TUI owns the terminal,
// so local play never logs to stderr.
func openLogFile(path string) (*log.Logger, func(), error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
