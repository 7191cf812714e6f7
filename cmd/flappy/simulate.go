package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimTicks     int
	flagSimJumpEvery int
	flagSimSave      bool
	flagSimShow      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with scripted flaps",
	Long: `Run the game without a terminal UI. The bird flaps on every tick that
is a multiple of --jump-every (0 = never) until it crashes or --ticks
have elapsed, then the final state is printed.

Examples:
  flappy simulate --seed 7
  flappy simulate --ticks 1000 --jump-every 14 --show
  flappy simulate --seed 7 --jump-every 12 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 600, "Maximum number of ticks to run")
	simulateCmd.Flags().IntVar(&flagSimJumpEvery, "jump-every", 14, "Flap on every Nth tick (0 = never)")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the run as a replay")
	simulateCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final frame")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	game, err := flappy.New(cfg)
	if err != nil {
		logger.Fatal("cannot create game", "error", err)
	}

	rt := runtimeConfig(80, 24)
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	game.Reset(rt)

	rec := replay.NewRecorder(cfg, rt.Seed)
	state := simulate(game, rec, flagSimTicks, flagSimJumpEvery)

	result := "still flying"
	if state.GameOver {
		result = "crashed"
	}
	fmt.Printf("seed   %d\n", rt.Seed)
	fmt.Printf("ticks  %d\n", state.Tick)
	fmt.Printf("score  %d\n", state.Score)
	fmt.Printf("result %s\n", result)

	if flagSimShow {
		screen := core.NewScreen(rt.ScreenW, rt.ScreenH)
		game.Render(screen)
		fmt.Println()
		fmt.Println(screen.String())
	}

	if flagSimSave {
		saveSimulation(rec.Finish(playerName()))
	}
}

// simulate steps the game, flapping on every jumpEvery-th tick.
func simulate(game *flappy.Game, rec *replay.Recorder, maxTicks, jumpEvery int) core.GameState {
	for game.Tick() < maxTicks {
		in := core.NewInputFrame()
		next := game.Tick() + 1
		if jumpEvery > 0 && next%jumpEvery == 0 {
			in.Set(core.ActionJump)
		}

		res := game.Step(in)
		rec.Observe(res)
		if res.State.GameOver {
			break
		}
	}
	return game.State()
}

func saveSimulation(r replay.Replay) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open replay database", "error", err)
	}
	defer store.Close()

	if err := store.SaveReplay(r); err != nil {
		logger.Error("cannot save replay", "error", err)
		return
	}
	logger.Info("replay saved", "id", r.ID)
}
