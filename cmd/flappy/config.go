package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config as YAML after the search path and command-line
overrides have been applied. Redirect it to a file to start a custom config.

Config search order:
  1. --config <path>
  2. ~/.flappy/flappy.yaml
  3. ./configs/flappy.yaml
  4. built-in defaults

Examples:
  flappy config
  flappy config --gravity 0.3 > ~/.flappy/flappy.yaml
  flappy config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(cmd *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadGameConfig(cmd)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		logger.Fatal("cannot encode config", "error", err)
	}
	os.Stdout.Write(data)
}
