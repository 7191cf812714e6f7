// Package replay records and re-simulates games. Pipe heights come from a
// seeded generator and everything else is derived from the tick counter, so
// a seed, a config and the list of jump ticks reproduce a run exactly.
package replay

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// FormatVersion is bumped whenever the encoded layout changes.
const FormatVersion = 1

// ErrMismatch is returned by Verify when re-simulation disagrees with the
// recorded outcome.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Replay is one recorded run.
type Replay struct {
	ID        string              `msgpack:"id"`
	Player    string              `msgpack:"player"`
	Seed      int64               `msgpack:"seed"`
	Config    config.FlappyConfig `msgpack:"config"`
	Jumps     []int               `msgpack:"jumps"` // Ticks on which an impulse was applied, ascending
	Ticks     int                 `msgpack:"ticks"`
	Score     int                 `msgpack:"score"`
	Finished  bool                `msgpack:"finished"` // Ended in game over rather than being abandoned
	CreatedAt time.Time           `msgpack:"created_at"`
}

type envelope struct {
	Version int    `msgpack:"v"`
	Replay  Replay `msgpack:"r"`
}

// Encode serializes a replay with msgpack.
func Encode(r Replay) ([]byte, error) {
	data, err := msgpack.Marshal(envelope{Version: FormatVersion, Replay: r})
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a replay produced by Encode.
func Decode(data []byte) (Replay, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Replay{}, fmt.Errorf("replay: decode: %w", err)
	}
	if env.Version != FormatVersion {
		return Replay{}, fmt.Errorf("replay: unsupported format version %d", env.Version)
	}
	if !sort.IntsAreSorted(env.Replay.Jumps) {
		return Replay{}, errors.New("replay: jump ticks are not sorted")
	}
	return env.Replay, nil
}

// Recorder collects the inputs of a run as it is played.
type Recorder struct {
	cfg   config.FlappyConfig
	seed  int64
	jumps []int
	last  core.GameState
}

// NewRecorder starts recording a run with the given config and seed.
func NewRecorder(cfg config.FlappyConfig, seed int64) *Recorder {
	return &Recorder{cfg: cfg, seed: seed}
}

// Observe records the result of one step.
func (r *Recorder) Observe(res core.StepResult) {
	if res.Jumped {
		r.jumps = append(r.jumps, res.State.Tick)
	}
	r.last = res.State
}

// Restart drops everything recorded so far and starts over with a new seed.
func (r *Recorder) Restart(seed int64) {
	r.seed = seed
	r.jumps = nil
	r.last = core.GameState{}
}

// Ticks returns the number of ticks observed so far.
func (r *Recorder) Ticks() int {
	return r.last.Tick
}

// Finish builds the replay for the run observed so far.
func (r *Recorder) Finish(player string) Replay {
	jumps := make([]int, len(r.jumps))
	copy(jumps, r.jumps)
	return Replay{
		ID:        uuid.NewString(),
		Player:    player,
		Seed:      r.seed,
		Config:    r.cfg,
		Jumps:     jumps,
		Ticks:     r.last.Tick,
		Score:     r.last.Score,
		Finished:  r.last.GameOver,
		CreatedAt: time.Now().UTC(),
	}
}

// Script feeds recorded jumps back into a game tick by tick.
type Script struct {
	jumps []int
	next  int
}

// NewScript creates a script from ascending jump ticks.
func NewScript(jumps []int) *Script {
	return &Script{jumps: jumps}
}

// Frame returns the input for the given (upcoming) tick.
// Ticks must be requested in increasing order.
func (s *Script) Frame(tick int) core.InputFrame {
	in := core.NewInputFrame()
	for s.next < len(s.jumps) && s.jumps[s.next] < tick {
		s.next++
	}
	if s.next < len(s.jumps) && s.jumps[s.next] == tick {
		in.Set(core.ActionJump)
		s.next++
	}
	return in
}

// Rewind starts the script over.
func (s *Script) Rewind() {
	s.next = 0
}

// RuntimeConfig returns the runtime settings that reproduce the replay.
func (r Replay) RuntimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = r.Seed
	return rt
}

// NewGame builds a game positioned at tick 0 of the replay.
func (r Replay) NewGame(opts ...flappy.Option) (*flappy.Game, error) {
	g, err := flappy.New(r.Config, opts...)
	if err != nil {
		return nil, err
	}
	g.Reset(r.RuntimeConfig())
	return g, nil
}

// Run re-simulates the replay headlessly and returns the final state.
func Run(r Replay, opts ...flappy.Option) (core.GameState, error) {
	g, err := r.NewGame(opts...)
	if err != nil {
		return core.GameState{}, err
	}

	script := NewScript(r.Jumps)
	for g.Tick() < r.Ticks {
		res := g.Step(script.Frame(g.Tick() + 1))
		if res.State.GameOver {
			break
		}
	}
	return g.State(), nil
}

// Verify re-simulates the replay and checks it against the recorded outcome.
func Verify(r Replay) error {
	got, err := Run(r)
	if err != nil {
		return err
	}
	want := core.GameState{Tick: r.Ticks, Score: r.Score, GameOver: r.Finished}
	if got != want {
		return fmt.Errorf("%w: recorded %+v, simulated %+v", ErrMismatch, want, got)
	}
	return nil
}
