package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the flappy SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game, without sound. All sessions share
one high score and record into the same run history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappy/host_key

Examples:
  flappy serve                           # Listen on :23234 with auto-generated key
  flappy serve --ssh :2222               # Listen on port 2222
  flappy serve --host-key ./my_host_key  # Use specific host key
  flappy serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-ssh",
	})

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("run history disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(serverCfg, tui.SSHDeps{
		Game:       cfg,
		Difficulty: string(preset),
		Scores:     highscore.NewTracker(highScoreBackend(cfg, store, logger), logger),
		Store:      store,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting flappy SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
