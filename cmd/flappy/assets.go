package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage downloaded sound assets",
}

var assetsFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download all sound assets into the cache",
	Long: `Download every asset in the manifest that is not cached yet.
Play does this automatically; fetch is useful before going offline.

Examples:
  flappy assets fetch
  flappy assets fetch --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runAssetsFetch,
}

func init() {
	assetsCmd.AddCommand(assetsFetchCmd)
}

func runAssetsFetch(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "flappy"})

	provider := assets.New(cfg.Assets, logger)
	paths := provider.FetchAll(context.Background())

	fmt.Printf("Cache: %s\n\n", provider.CacheDir())
	for _, name := range provider.Names() {
		path, ok := paths[name]
		if !ok {
			path = "(unavailable)"
		}
		fmt.Printf("  %-6s  %s\n", name, path)
	}

	if len(paths) < len(provider.Names()) {
		return fmt.Errorf("fetched %d of %d assets", len(paths), len(provider.Names()))
	}
	return nil
}
