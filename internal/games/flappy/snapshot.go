package flappy

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       int
	Score      int
	BirdY      float64
	Velocity   float64
	Phase      Phase
	Pipes      []Pipe
	LastSpawnX int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Score:      g.score,
		BirdY:      g.birdY,
		Velocity:   g.velocity,
		Phase:      g.phase,
		Pipes:      g.track.Pipes(),
		LastSpawnX: g.track.LastSpawnX(),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Tick != o.Tick || s.Score != o.Score || s.BirdY != o.BirdY ||
		s.Velocity != o.Velocity || s.Phase != o.Phase || s.LastSpawnX != o.LastSpawnX {
		return false
	}
	if len(s.Pipes) != len(o.Pipes) {
		return false
	}
	for i := range s.Pipes {
		if s.Pipes[i] != o.Pipes[i] {
			return false
		}
	}
	return true
}
