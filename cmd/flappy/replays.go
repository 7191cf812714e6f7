package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagReplaysLimit  int
	flagReplaysPlayer string
	flagReplaysBrowse bool
	flagReplaysStats  bool

	flagReplayWatch  bool
	flagReplayDelete bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "List recorded replays",
	Long: `List the most recent replays, newest first.

Examples:
  flappy replays
  flappy replays --player alice --limit 5
  flappy replays --stats
  flappy replays --browse`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Verify or watch a replay",
	Long: `Re-simulate a stored replay and check that it reaches the recorded
tick count and score. With --watch the replay is played back in the terminal.

Examples:
  flappy replay 3f2c1a9e-0d4b-4a47-9a43-5d0f3e1c2b7a
  flappy replay 3f2c1a9e-0d4b-4a47-9a43-5d0f3e1c2b7a --watch
  flappy replay 3f2c1a9e-0d4b-4a47-9a43-5d0f3e1c2b7a --delete`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of replays to list")
	replaysCmd.Flags().StringVar(&flagReplaysPlayer, "player", "", "Only list replays of this player")
	replaysCmd.Flags().BoolVar(&flagReplaysBrowse, "browse", false, "Pick a replay to watch interactively")
	replaysCmd.Flags().BoolVar(&flagReplaysStats, "stats", false, "Show totals instead of a list")

	replayCmd.Flags().BoolVarP(&flagReplayWatch, "watch", "w", false, "Play the replay back in the terminal")
	replayCmd.Flags().BoolVar(&flagReplayDelete, "delete", false, "Delete the replay")
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open replay database", "error", err)
	}
	return store
}

func runReplays(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	if flagReplaysStats {
		printStats(store)
		return
	}

	if flagReplaysBrowse {
		width, height := terminalSize()
		id, err := tui.RunBrowser(store, width, height)
		if err != nil {
			logger.Error("browser failed", "error", err)
			return
		}
		if id != "" {
			watchReplay(store, id)
		}
		return
	}

	var (
		entries []storage.ReplayEntry
		err     error
	)
	if flagReplaysPlayer != "" {
		entries, err = store.PlayerReplays(flagReplaysPlayer, flagReplaysLimit)
	} else {
		entries, err = store.RecentReplays(flagReplaysLimit)
	}
	if err != nil {
		logger.Error("cannot list replays", "error", err)
		return
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record one!")
		return
	}

	fmt.Printf("  %-36s  %-12s  %5s  %6s  %-5s  %s\n", "ID", "Player", "Score", "Ticks", "End", "Date")
	fmt.Printf("  %-36s  %-12s  %5s  %6s  %-5s  %s\n", "--", "------", "-----", "-----", "---", "----")
	for _, e := range entries {
		end := "quit"
		if e.Finished {
			end = "crash"
		}
		fmt.Printf("  %-36s  %-12s  %5d  %6d  %-5s  %s\n",
			e.ID, e.Player, e.Score, e.Ticks, end, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		logger.Error("cannot read stats", "error", err)
		return
	}

	fmt.Printf("Runs:        %d\n", stats.Runs)
	fmt.Printf("Players:     %d\n", stats.Players)
	fmt.Printf("Total ticks: %d\n", stats.TotalTicks)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
}

func runReplay(_ *cobra.Command, args []string) {
	id := args[0]
	store := openStore()
	defer store.Close()

	if flagReplayDelete {
		deleted, err := store.DeleteReplay(id)
		if err != nil {
			logger.Error("cannot delete replay", "id", id, "error", err)
			return
		}
		if !deleted {
			logger.Warn("no such replay", "id", id)
			return
		}
		logger.Info("replay deleted", "id", id)
		return
	}

	if flagReplayWatch {
		watchReplay(store, id)
		return
	}

	r := loadReplay(store, id)
	if r == nil {
		return
	}

	fmt.Printf("id      %s\n", r.ID)
	fmt.Printf("player  %s\n", r.Player)
	fmt.Printf("seed    %d\n", r.Seed)
	fmt.Printf("ticks   %d\n", r.Ticks)
	fmt.Printf("score   %d\n", r.Score)
	fmt.Printf("flaps   %d\n", len(r.Jumps))
	fmt.Printf("played  %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	err := replay.Verify(*r)
	switch {
	case err == nil:
		fmt.Println("verify  ok")
	case errors.Is(err, replay.ErrMismatch):
		fmt.Println("verify  MISMATCH")
		logger.Warn("replay does not reproduce", "error", err)
	default:
		logger.Error("cannot re-simulate replay", "error", err)
	}
}

func loadReplay(store *storage.Store, id string) *replay.Replay {
	r, err := store.Replay(id)
	if err != nil {
		logger.Error("cannot load replay", "id", id, "error", err)
		return nil
	}
	if r == nil {
		logger.Warn("no such replay", "id", id)
		return nil
	}
	return r
}

func watchReplay(store *storage.Store, id string) {
	r := loadReplay(store, id)
	if r == nil {
		return
	}

	game, err := r.NewGame()
	if err != nil {
		logger.Error("cannot rebuild game", "id", id, "error", err)
		return
	}

	width, height := terminalSize()
	if err := tui.Run(game, runtimeConfig(width, height), tui.WithReplay(*r)); err != nil {
		logger.Error("error running playback", "error", err)
	}
}
