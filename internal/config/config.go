// Package config provides YAML-based game configuration loading and
// validation.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Physics Physics `yaml:"physics" msgpack:"physics"`
	Track   Track   `yaml:"track" msgpack:"track"`
	Bird    Bird    `yaml:"bird" msgpack:"bird"`
	World   World   `yaml:"world" msgpack:"world"`
}

// Physics defines the bird's vertical motion.
type Physics struct {
	Gravity    float64 `yaml:"gravity" msgpack:"gravity"`
	VelocityUp float64 `yaml:"velocity_up" msgpack:"velocity_up"`
}

// Track defines pipe spawning and geometry.
type Track struct {
	PipeDistance   int `yaml:"pipe_distance" msgpack:"pipe_distance"`
	GapSize        int `yaml:"gap_size" msgpack:"gap_size"`
	Capacity       int `yaml:"capacity" msgpack:"capacity"`
	PlayableHeight int `yaml:"playable_height" msgpack:"playable_height"`
	MinHeight      int `yaml:"min_height" msgpack:"min_height"`
	GroundLevel    int `yaml:"ground_level" msgpack:"ground_level"`
	FirstPipeX     int `yaml:"first_pipe_x" msgpack:"first_pipe_x"`
	SpawnOffset    int `yaml:"spawn_offset" msgpack:"spawn_offset"`
	PipeWidth      int `yaml:"pipe_width" msgpack:"pipe_width"`
}

// MaxHeight is the tallest upper segment that still leaves room for the gap
// and a minimum-height lower segment.
func (t Track) MaxHeight() int {
	return t.PlayableHeight - t.GapSize - t.MinHeight
}

// Bird defines the player's fixed column, start height and hitbox.
type Bird struct {
	X      int     `yaml:"x" msgpack:"x"`
	StartY float64 `yaml:"start_y" msgpack:"start_y"`
	Width  int     `yaml:"width" msgpack:"width"`
	Height int     `yaml:"height" msgpack:"height"`
}

// World is the logical canvas size the renderer scales from.
type World struct {
	Width  int `yaml:"width" msgpack:"width"`
	Height int `yaml:"height" msgpack:"height"`
}

// Overrides holds values set from the command line. Nil fields are ignored.
type Overrides struct {
	Gravity    *float64
	VelocityUp *float64
}

// Apply copies every non-nil override into cfg.
func (o Overrides) Apply(cfg *FlappyConfig) {
	if o.Gravity != nil {
		cfg.Physics.Gravity = *o.Gravity
	}
	if o.VelocityUp != nil {
		cfg.Physics.VelocityUp = *o.VelocityUp
	}
}

// Validate reports every field that cannot produce a playable game.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}

	positive("track.pipe_distance", c.Track.PipeDistance)
	positive("track.gap_size", c.Track.GapSize)
	positive("track.capacity", c.Track.Capacity)
	positive("track.playable_height", c.Track.PlayableHeight)
	positive("track.pipe_width", c.Track.PipeWidth)
	positive("bird.width", c.Bird.Width)
	positive("bird.height", c.Bird.Height)
	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)

	if c.Track.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("track.min_height must not be negative, got %d", c.Track.MinHeight))
	}
	if c.Track.MaxHeight() < c.Track.MinHeight {
		errs = append(errs, fmt.Errorf("track: no room for gap: playable_height %d - gap_size %d - 2*min_height %d < 0",
			c.Track.PlayableHeight, c.Track.GapSize, c.Track.MinHeight))
	}
	if c.Track.GroundLevel < c.Track.PlayableHeight {
		errs = append(errs, fmt.Errorf("track.ground_level %d is above playable_height %d",
			c.Track.GroundLevel, c.Track.PlayableHeight))
	}
	if c.Bird.Height > c.Track.GroundLevel {
		errs = append(errs, fmt.Errorf("bird.height %d does not fit above ground_level %d",
			c.Bird.Height, c.Track.GroundLevel))
	}
	if c.Physics.Gravity < 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must not be negative, got %g", c.Physics.Gravity))
	}

	return errors.Join(errs...)
}
