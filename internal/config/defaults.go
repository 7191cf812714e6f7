package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot
// be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: Physics{
			Gravity:    0.2,
			VelocityUp: 5,
		},
		Track: Track{
			PipeDistance:   50,
			GapSize:        30,
			Capacity:       5,
			PlayableHeight: 96,
			MinHeight:      20,
			GroundLevel:    105,
			FirstPipeX:     30,
			SpawnOffset:    50,
			PipeWidth:      18,
		},
		Bird: Bird{
			X:      32,
			StartY: 50,
			Width:  18,
			Height: 13,
		},
		World: World{
			Width:  196,
			Height: 128,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
