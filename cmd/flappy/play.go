package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/settings"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game. This is also what running flappy without a command does.

Controls:
  Space/Up/W - Flap (also starts the round)
  R          - Restart (after game over)
  V          - Open/close the volume overlay
  M/N        - Music volume up/down (overlay open)
  K/L        - Effects volume up/down (overlay open)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, constant speed (default)

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --no-audio --seed 42
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

const screenshotDir = "~/.flappy/screenshots"

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(flagLogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Run history is optional; the game still works without it
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("cannot open run history", "path", cfg.Storage.DBPath, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	tracker := highscore.NewTracker(highScoreBackend(cfg, store, logger), logger)
	game := flappy.New(cfg, tracker)

	prefs := settings.Open(settings.AppName, core.Volume{
		Music:   cfg.Audio.MusicVolume,
		Effects: cfg.Audio.EffectsVolume,
	}, logger)
	game.SetVolume(prefs.Volume())
	if !prefs.Persistent() {
		logger.Warn("volume settings will not be saved this session")
	}

	opts := tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Sink:          openAudio(cfg, game.Volume(), logger),
		Settings:      prefs,
		Logger:        logger,
		Difficulty:    string(preset),
		ScreenshotDir: config.ExpandHome(screenshotDir),
	}
	if store != nil {
		opts.Runs = store
	}

	logger.Info("starting game", "best", tracker.Best(), "difficulty", preset, "seed", flagSeed)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// highScoreBackend picks where the high score is persisted. The sqlite
// backend falls back to the file when the database is unavailable.
func highScoreBackend(cfg config.FlappyConfig, store *storage.Store, logger *log.Logger) highscore.Backend {
	if cfg.Storage.HighScoreBackend == config.BackendSQLite {
		if store != nil {
			return storage.HighScoreBackend{Store: store}
		}
		logger.Warn("sqlite high score backend unavailable, using file", "path", cfg.Storage.HighScoreFile)
	}
	return highscore.NewFile(cfg.Storage.HighScoreFile)
}

// openAudio fetches assets and opens the speaker. Any failure leaves the
// game silent rather than stopping it.
func openAudio(cfg config.FlappyConfig, v core.Volume, logger *log.Logger) audio.Sink {
	if !cfg.Audio.Enabled {
		return audio.Nop{}
	}

	provider := assets.New(cfg.Assets, logger)
	paths := provider.FetchAll(context.Background())

	player, err := audio.Open(paths, v, logger)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
		return audio.Nop{}
	}
	return player
}
