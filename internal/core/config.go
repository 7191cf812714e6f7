package core

// RuntimeConfig contains platform settings passed to the game on reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for pipe heights
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// The tick rate matches the 30 FPS the game was tuned for.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the renderer-facing summary of a game.
type GameState struct {
	Tick     int  // Ticks elapsed since the last reset
	Score    int  // Pipes passed
	GameOver bool // Whether the bird has crashed
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
	// Scored is true on the tick a pipe crossed the bird's column.
	Scored bool
	// Jumped is true when an impulse was applied on this tick.
	Jumped bool
}
