// flappy is a terminal Flappy Bird with deterministic replays.
//
// Usage:
//
//	flappy play              - Play in this terminal
//	flappy simulate          - Run a headless game with scripted flaps
//	flappy replays           - List recorded replays
//	flappy replay <id>       - Verify or watch a recorded replay
//	flappy config            - Print the effective game config
//	flappy serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.flappy/replays.db)
//	--config <path>    - Load game config from a YAML file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagGravity    float64
	flagVelocityUp float64
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "flappy",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Flappy Bird for the terminal. Flap through the gaps between pipes;
every run is recorded and can be verified or watched again later.

Available commands:
  play      - Play in this terminal
  simulate  - Headless run with a fixed flap cadence
  replays   - List recorded replays
  replay    - Verify or watch a replay
  config    - Print the effective game config
  serve     - Start SSH server for remote play

Examples:
  flappy play
  flappy play --seed 42 --gravity 0.25
  flappy simulate --ticks 600 --jump-every 14
  flappy replays --browse
  flappy replay 3f2c1a9e-... --watch
  flappy serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().Float64Var(&flagGravity, "gravity", 0, "Override gravity (per tick)")
	rootCmd.PersistentFlags().Float64Var(&flagVelocityUp, "velocity-up", 0, "Override flap impulse")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGameConfig loads the YAML config and applies command-line overrides.
func loadGameConfig(cmd *cobra.Command) (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("gravity") {
		o.Gravity = &flagGravity
	}
	if flags.Changed("velocity-up") {
		o.VelocityUp = &flagVelocityUp
	}
	o.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid overrides: %w", err)
	}
	logger.Debug("config loaded",
		"path", flagConfig,
		"gravity", cfg.Physics.Gravity,
		"velocity_up", cfg.Physics.VelocityUp,
	)
	return cfg, nil
}

// runtimeConfig builds the runtime settings from global flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
