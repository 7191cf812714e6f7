package tui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

type fakeSaver struct {
	saved []replay.Replay
	err   error
}

func (f *fakeSaver) SaveReplay(r replay.Replay) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}

func seqSeeds(start int64) func() int64 {
	next := start
	return func() int64 {
		next++
		return next
	}
}

func newTestModel(t *testing.T, opts ...ModelOption) Model {
	t.Helper()
	game, err := flappy.New(config.DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("flappy.New: %v", err)
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 30}
	return NewModel(game, cfg, opts...)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, TickMsg{})
	return m
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// tickUntilOver ticks without input until the bird crashes.
func tickUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 1000 && !m.State().GameOver; i++ {
		m = tick(t, m)
	}
	if !m.State().GameOver {
		t.Fatal("game never ended")
	}
	return m
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, WithSeedSource(seqSeeds(100)))

	if m.config.Seed != 101 {
		t.Errorf("Seed = %d, want 101", m.config.Seed)
	}
	if m.State() != (core.GameState{}) {
		t.Errorf("initial state = %+v", m.State())
	}
	if m.screen.Height() != 24 {
		t.Errorf("playfield height = %d, want 24", m.screen.Height())
	}
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t)

	m, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.State().Tick != 1 {
		t.Errorf("Tick = %d, want 1", m.State().Tick)
	}
}

func TestModelHeldJumpFlapsOnce(t *testing.T) {
	m := newTestModel(t)

	steps := []struct {
		press bool
		want  float64
	}{
		{true, -4.8},  // press
		{true, -4.6},  // still held
		{false, -4.4}, // released
		{true, -9.2},  // pressed again
	}

	for i, s := range steps {
		if s.press {
			m, _ = send(t, m, space())
		}
		m = tick(t, m)
		if got := m.game.Velocity(); !approx(got, s.want) {
			t.Fatalf("step %d: velocity = %v, want %v", i, got, s.want)
		}
	}
}

func TestModelTapCadence(t *testing.T) {
	tests := []struct {
		name  string
		taps  []int // jump key events before each tick
		wants []float64
	}{
		{
			name:  "idle tick re-arms",
			taps:  []int{1, 0, 1},
			wants: []float64{-4.8, -4.6, -9.4},
		},
		{
			name:  "back-to-back taps read as a hold",
			taps:  []int{1, 1, 1},
			wants: []float64{-4.8, -4.6, -4.4},
		},
		{
			name:  "several events in one tick flap once",
			taps:  []int{3, 0},
			wants: []float64{-4.8, -4.6},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			for i, n := range tc.taps {
				for j := 0; j < n; j++ {
					m, _ = send(t, m, space())
				}
				m = tick(t, m)
				if got := m.game.Velocity(); !approx(got, tc.wants[i]) {
					t.Fatalf("tick %d: velocity = %v, want %v", i+1, got, tc.wants[i])
				}
			}
		})
	}
}

func TestModelSavesOnceOnGameOver(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, WithStore(saver), WithPlayer("alice"), WithSeedSource(seqSeeds(0)))

	m = tickUntilOver(t, m)
	over := m.State()
	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d replays, want 1", len(saver.saved))
	}
	r := saver.saved[0]
	if r.Player != "alice" || r.Seed != 1 || !r.Finished {
		t.Errorf("saved replay = %+v", r)
	}
	if r.Ticks != over.Tick || r.Score != over.Score {
		t.Errorf("saved ticks/score = %d/%d, want %d/%d", r.Ticks, r.Score, over.Tick, over.Score)
	}
	if err := replay.Verify(r); err != nil {
		t.Errorf("saved replay does not verify: %v", err)
	}
}

func TestModelSaveErrorIsNotFatal(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModel(t, WithStore(saver))

	m = tickUntilOver(t, m)
	m = tick(t, m)
	if !m.State().GameOver {
		t.Error("model should stay in game over")
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, WithSeedSource(seqSeeds(10)))

	// Restart is ignored while playing.
	m = tick(t, m)
	m, _ = send(t, m, runeKey('r'))
	m = tick(t, m)
	if m.State().Tick != 2 {
		t.Fatalf("Tick = %d, want 2", m.State().Tick)
	}

	m = tickUntilOver(t, m)
	m, _ = send(t, m, runeKey('r'))
	m = tick(t, m)

	if m.State() != (core.GameState{}) {
		t.Errorf("state after restart = %+v", m.State())
	}
	if m.config.Seed != 12 {
		t.Errorf("Seed = %d, want 12", m.config.Seed)
	}

	// No tick runs on the restart frame; the next one is tick 1.
	m = tick(t, m)
	if m.State().Tick != 1 {
		t.Errorf("Tick = %d, want 1", m.State().Tick)
	}
}

func TestModelQuitSavesAbandonedRun(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, WithStore(saver))

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}
	m, cmd := send(t, m, runeKey('q'))

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d replays, want 1", len(saver.saved))
	}
	if saver.saved[0].Finished || saver.saved[0].Ticks != 5 {
		t.Errorf("saved replay = %+v", saver.saved[0])
	}
}

func TestModelQuitBeforeFirstTick(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, WithStore(saver))

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if len(saver.saved) != 0 {
		t.Errorf("saved %d replays, want 0", len(saver.saved))
	}
}

func TestModelWatchMode(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestModel(t, WithStore(saver))
	for i := 1; i <= 200 && !m.State().GameOver; i++ {
		if i%14 == 0 {
			m, _ = send(t, m, space())
		}
		m = tick(t, m)
	}
	m, _ = send(t, m, runeKey('q'))
	if len(saver.saved) != 1 {
		t.Fatalf("saved %d replays, want 1", len(saver.saved))
	}
	rec := saver.saved[0]

	watchSaver := &fakeSaver{}
	w := newTestModel(t, WithReplay(rec), WithStore(watchSaver))
	if w.config.Seed != rec.Seed {
		t.Fatalf("watch seed = %d, want %d", w.config.Seed, rec.Seed)
	}

	for i := 0; i < 300; i++ {
		// Keyboard jumps are ignored during playback.
		w, _ = send(t, w, space())
		w = tick(t, w)
	}

	want := core.GameState{Tick: rec.Ticks, Score: rec.Score, GameOver: rec.Finished}
	if w.State() != want {
		t.Errorf("playback ended at %+v, want %+v", w.State(), want)
	}
	if len(watchSaver.saved) != 0 {
		t.Error("playback must not be saved")
	}

	// R rewinds the playback.
	w, _ = send(t, w, runeKey('r'))
	w = tick(t, w)
	if w.State().Tick != 0 {
		t.Errorf("Tick after rewind = %d, want 0", w.State().Tick)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	m = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, want 100x39", m.screen.Width(), m.screen.Height())
	}
	if m.State().Tick != 1 {
		t.Error("resize must not reset the game")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	if !strings.Contains(view, "Score: 0") {
		t.Error("view should show the score")
	}
	if !strings.Contains(view, "flap") {
		t.Error("view should show the help footer")
	}
}
