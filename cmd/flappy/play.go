package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W - Flap
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Every run is saved as a replay when it ends.

Examples:
  flappy play
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml
  flappy play --gravity 0.3 --velocity-up 6`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to save replays under (default: $USER)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	game, err := flappy.New(cfg)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	width, height := terminalSize()
	opts := []tui.ModelOption{
		tui.WithPlayer(playerName()),
		tui.WithLogger(logger),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		// Continue without storage - game still works
	} else {
		opts = append(opts, tui.WithStore(store))
	}

	runErr := tui.Run(game, runtimeConfig(width, height), opts...)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		logger.Fatal("error running game", "error", runErr)
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
