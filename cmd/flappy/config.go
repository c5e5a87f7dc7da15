package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var flagDefaults bool

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after the search path, --config, --difficulty,
--db and --no-audio have been applied. The output is a valid config file.
With --defaults, print the built-in defaults instead.

Examples:
  flappy config dump > ~/.flappy/configs/flappy.yaml
  flappy config dump --difficulty hard
  flappy config dump --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := config.Dump(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
