package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Rand is the source of pipe heights. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Pipe is a two-segment obstacle. Its horizontal position is derived from the
// tick, so a pipe never changes after it is spawned.
type Pipe struct {
	SpawnX int // X position at tick 0
	GapTop int // Height of the upper segment
}

// X returns the pipe's left edge at the given tick.
func (p Pipe) X(tick int) int {
	return p.SpawnX - tick
}

// UpperRect returns the upper segment, from the top of the world down to the gap.
func (p Pipe) UpperRect(tick, width int) core.Rect {
	return core.NewRect(p.X(tick), 0, width, p.GapTop)
}

// LowerRect returns the lower segment, from gapSize below the upper segment
// down to the ground.
func (p Pipe) LowerRect(tick, width, gapSize, groundLevel int) core.Rect {
	top := p.GapTop + gapSize
	return core.NewRect(p.X(tick), top, width, groundLevel-top)
}

// PipeGeometry is the pair of segment rectangles for one pipe at one tick.
type PipeGeometry struct {
	Upper core.Rect
	Lower core.Rect
}

// Track owns a fixed-capacity ring of pipes in spawn order.
type Track struct {
	cfg        config.Track
	rng        Rand
	ring       []Pipe
	head       int // Index of the oldest pipe
	count      int
	lastSpawnX int
}

// NewTrack builds a track and seeds it with Capacity-1 pipes, leaving one slot
// for the first spawn during play.
func NewTrack(cfg config.Track, rng Rand) (*Track, error) {
	if err := checkTrack(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &ConfigurationError{Field: "rng", Reason: "generator is nil"}
	}

	t := &Track{
		cfg:        cfg,
		rng:        rng,
		ring:       make([]Pipe, cfg.Capacity),
		lastSpawnX: cfg.FirstPipeX,
	}
	for i := 0; i < cfg.Capacity-1; i++ {
		t.SpawnNext()
	}
	return t, nil
}

func checkTrack(cfg config.Track) error {
	switch {
	case cfg.Capacity < 1:
		return &ConfigurationError{Field: "track.capacity", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.Capacity)}
	case cfg.PipeDistance < 1:
		return &ConfigurationError{Field: "track.pipe_distance", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.PipeDistance)}
	case cfg.GapSize < 1:
		return &ConfigurationError{Field: "track.gap_size", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.GapSize)}
	case cfg.PipeWidth < 1:
		return &ConfigurationError{Field: "track.pipe_width", Reason: fmt.Sprintf("must be at least 1, got %d", cfg.PipeWidth)}
	case cfg.MaxHeight() < cfg.MinHeight:
		return &ConfigurationError{
			Field: "track.min_height",
			Reason: fmt.Sprintf("max height %d (playable %d - gap %d - min %d) is below min height %d",
				cfg.MaxHeight(), cfg.PlayableHeight, cfg.GapSize, cfg.MinHeight, cfg.MinHeight),
		}
	}
	return nil
}

// SpawnNext appends a pipe one PipeDistance after the previous one with a
// uniformly random gap top in [MinHeight, MaxHeight]. At capacity the oldest
// pipe is overwritten in place.
func (t *Track) SpawnNext() {
	t.lastSpawnX += t.cfg.PipeDistance
	p := Pipe{
		SpawnX: t.lastSpawnX,
		GapTop: t.cfg.MinHeight + t.rng.Intn(t.cfg.MaxHeight()-t.cfg.MinHeight+1),
	}

	if t.count == len(t.ring) {
		t.ring[t.head] = p
		t.head = (t.head + 1) % len(t.ring)
		return
	}
	t.ring[(t.head+t.count)%len(t.ring)] = p
	t.count++
}

// Advance spawns one pipe on ticks where (tick + SpawnOffset) is a multiple
// of PipeDistance.
func (t *Track) Advance(tick int) bool {
	d := t.cfg.PipeDistance
	if ((tick+t.cfg.SpawnOffset)%d+d)%d != 0 {
		return false
	}
	t.SpawnNext()
	return true
}

// ScoreDelta returns 1 when a pipe's left edge is exactly on the actor's
// column at this tick, 0 otherwise.
func (t *Track) ScoreDelta(tick, actorX int) int {
	for i := 0; i < t.count; i++ {
		if t.at(i).X(tick) == actorX {
			return 1
		}
	}
	return 0
}

// Collides reports whether the hitbox overlaps any pipe segment at this tick.
func (t *Track) Collides(tick int, hitbox core.RectF) bool {
	for i := 0; i < t.count; i++ {
		g := t.geometry(t.at(i), tick)
		if hitbox.Intersects(g.Upper.Float()) || hitbox.Intersects(g.Lower.Float()) {
			return true
		}
	}
	return false
}

// Geometry returns one rectangle pair per buffered pipe, oldest first.
// Every call builds a fresh slice.
func (t *Track) Geometry(tick int) []PipeGeometry {
	out := make([]PipeGeometry, 0, t.count)
	for i := 0; i < t.count; i++ {
		out = append(out, t.geometry(t.at(i), tick))
	}
	return out
}

func (t *Track) geometry(p Pipe, tick int) PipeGeometry {
	return PipeGeometry{
		Upper: p.UpperRect(tick, t.cfg.PipeWidth),
		Lower: p.LowerRect(tick, t.cfg.PipeWidth, t.cfg.GapSize, t.cfg.GroundLevel),
	}
}

// Pipes returns a copy of the buffered pipes, oldest first.
func (t *Track) Pipes() []Pipe {
	out := make([]Pipe, t.count)
	for i := range out {
		out[i] = t.at(i)
	}
	return out
}

// Len returns the number of buffered pipes.
func (t *Track) Len() int {
	return t.count
}

// LastSpawnX returns the spawn position of the newest pipe.
func (t *Track) LastSpawnX() int {
	return t.lastSpawnX
}

// at returns the i-th pipe counting from the oldest.
func (t *Track) at(i int) Pipe {
	return t.ring[(t.head+i)%len(t.ring)]
}
