package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagPlayer      string
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score and run history",
	Long: `Display the persisted high score and the best recorded runs.

Use -i to browse top and recent runs in an interactive table.
--clear deletes the run history but keeps the high score.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --player alice
  flappy scores -i
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in an interactive table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only list runs by this player (SSH user name or \"local\")")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "flappy", Level: log.WarnLevel})

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	best, err := highScoreBackend(cfg, store, logger).Load()
	if err != nil {
		logger.Warn("cannot read high score", "error", err)
	}

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("error clearing runs: %w", err)
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, best, width, height)
	}

	var runs []storage.Run
	if flagPlayer != "" {
		runs, err = store.PlayerRuns(flagPlayer, flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Println("High Scores - Flappy Bird")
	fmt.Println()
	fmt.Printf("Best: %d\n", best)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %-10s  %s\n", "Rank", "Score", "Player", "Difficulty", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %-10s  %s\n", "----", "-----", "------", "----------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-12s  %-10s  %s\n",
			i+1, r.Score, r.Player, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetStats(); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Avg: %.1f  Total: %d\n", stats.Runs, stats.AvgScore, stats.TotalScore)
	}
	return nil
}
