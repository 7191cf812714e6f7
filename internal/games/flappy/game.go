// Package flappy implements a Flappy Bird-style game.
// The bird keeps a fixed column while the world scrolls one pixel per tick;
// every position is derived from a single tick counter.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the game's lifecycle state.
type Phase int

const (
	PhaseActive Phase = iota
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRandFactory replaces the generator used for pipe heights.
// The factory is called with the seed on every reset.
func WithRandFactory(f func(seed int64) Rand) Option {
	return func(g *Game) {
		g.newRand = f
	}
}

func defaultRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Game implements the Flappy game logic.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	newRand func(seed int64) Rand

	tick     int     // Ticks since the last reset
	score    int     // Pipes passed
	birdY    float64 // Top of the bird's hitbox
	velocity float64 // Positive is downward
	phase    Phase
	track    *Track
}

// New validates cfg and returns a game reset with the default runtime config.
func New(cfg config.FlappyConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "config", Reason: "validation failed", Err: err}
	}

	g := &Game{
		cfg:     cfg,
		newRand: defaultRand,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.reset(core.DefaultConfig()); err != nil {
		return nil, err
	}
	return g, nil
}

// Title returns the display name for this game, used as the window title.
func (g *Game) Title() string {
	return "Flappy BioBirb"
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Reset replaces the whole game state: tick, score, bird and a new track
// seeded from rt.Seed.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if err := g.reset(rt); err != nil {
		// New has already built a track from the same config.
		panic(err)
	}
}

func (g *Game) reset(rt core.RuntimeConfig) error {
	track, err := NewTrack(g.cfg.Track, g.newRand(rt.Seed))
	if err != nil {
		return err
	}

	g.runtime = rt
	g.tick = 0
	g.score = 0
	g.birdY = g.cfg.Bird.StartY
	g.velocity = 0
	g.phase = PhaseActive
	g.track = track
	return nil
}

// Step advances the game by one tick. The jump action must already be edge
// filtered: at most one impulse is applied per call. After game over Step is
// a no-op until Reset.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.phase == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.birdY = core.ClampF(g.birdY+g.velocity, g.posMin(), g.posMax())

	g.track.Advance(g.tick)
	delta := g.track.ScoreDelta(g.tick, g.cfg.Bird.X)
	g.score += delta

	// Impulse then gravity. The hitbox below still uses the position computed
	// above, so velocity changes show up on the next tick.
	jumped := in.Has(core.ActionJump)
	if jumped {
		g.velocity -= g.cfg.Physics.VelocityUp
	}
	g.velocity += g.cfg.Physics.Gravity

	if g.track.Collides(g.tick, g.Hitbox()) {
		g.phase = PhaseGameOver
	}

	return core.StepResult{
		State:  g.State(),
		Scored: delta > 0,
		Jumped: jumped,
	}
}

// posMin is the ceiling: the top of the world.
func (g *Game) posMin() float64 {
	return 0
}

// posMax keeps the bird resting on the ground line.
func (g *Game) posMax() float64 {
	return float64(g.cfg.Track.GroundLevel - g.cfg.Bird.Height)
}

// Hitbox returns the bird's collision rectangle.
func (g *Game) Hitbox() core.RectF {
	return core.NewRectF(float64(g.cfg.Bird.X), g.birdY, float64(g.cfg.Bird.Width), float64(g.cfg.Bird.Height))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Tick:     g.tick,
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
	}
}

// Tick returns the ticks elapsed since the last reset.
func (g *Game) Tick() int { return g.tick }

// Score returns the number of pipes passed.
func (g *Game) Score() int { return g.score }

// BirdY returns the top of the bird's hitbox.
func (g *Game) BirdY() float64 { return g.birdY }

// Velocity returns the bird's vertical velocity.
func (g *Game) Velocity() float64 { return g.velocity }

// Phase returns the lifecycle state.
func (g *Game) Phase() Phase { return g.phase }

// Track returns the obstacle track.
func (g *Game) Track() *Track { return g.track }
