package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

// helpHeight is the number of rows reserved below the playfield.
const helpHeight = 1

// ReplaySaver persists finished runs. *storage.Store satisfies it.
type ReplaySaver interface {
	SaveReplay(r replay.Replay) error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithStore saves every run as a replay.
func WithStore(s ReplaySaver) ModelOption {
	return func(m *Model) { m.store = s }
}

// WithPlayer sets the name replays are saved under.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// WithSeedSource sets how a new seed is picked on restart.
func WithSeedSource(f func() int64) ModelOption {
	return func(m *Model) { m.newSeed = f }
}

// WithReplay plays back a recorded run instead of reading the keyboard.
// The game must be built from the replay's config (see replay.Replay.NewGame).
func WithReplay(r replay.Replay) ModelOption {
	return func(m *Model) { m.watch = &r }
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	game    *flappy.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	store   ReplaySaver
	player  string
	logger  *log.Logger
	newSeed func() int64

	// Terminals report no key releases, so a key is "down" on any tick that
	// saw a jump key event. A tick without one re-arms the trigger. Taps on
	// back-to-back ticks are indistinguishable from autorepeat and flap once.
	jump     core.EdgeTrigger
	jumpSeen bool // A jump key arrived since the last tick
	pending  core.InputFrame

	recorder *replay.Recorder
	saved    bool

	watch  *replay.Replay
	script *replay.Script

	gameState core.GameState
	quitting  bool
}

// NewModel creates a model for the given game and resets it.
// In watch mode the replay's seed replaces cfg.Seed.
func NewModel(game *flappy.Game, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		game:    game,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		player:  "local",
		logger:  log.New(io.Discard),
		newSeed: func() int64 { return time.Now().UnixNano() },
		pending: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.watch != nil {
		cfg.Seed = m.watch.Seed
		m.script = replay.NewScript(m.watch.Jumps)
	} else if cfg.Seed == 0 {
		cfg.Seed = m.newSeed()
	}

	m.config = cfg
	m.screen = core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH))
	m.recorder = replay.NewRecorder(game.Config(), cfg.Seed)
	m.game.Reset(cfg)
	m.gameState = m.game.State()
	return m
}

func playfieldHeight(h int) int {
	return max(h-helpHeight, 0)
}

// Init sets the window title and starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.game.Title()), tickCmd(m.config.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Keys are latched until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.saveReplay()
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.jumpSeen = true
	case core.ActionRestart:
		if m.gameState.GameOver || m.watchEnded() {
			m.pending.Set(core.ActionRestart)
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.pending.Has(core.ActionRestart) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	var in core.InputFrame
	if m.watch != nil {
		if m.watchEnded() {
			return m, tickCmd(m.config.TickRate)
		}
		in = m.script.Frame(m.game.Tick() + 1)
	} else {
		in = core.NewInputFrame()
		if m.jumpSeen {
			in.Set(core.ActionJump)
		}
		m.jump.Filter(&in, core.ActionJump)
	}
	m.jumpSeen = false

	result := m.game.Step(in)
	m.gameState = result.State
	if m.watch == nil {
		m.recorder.Observe(result)
		if m.gameState.GameOver {
			m.saveReplay()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run. Watch mode replays the same run from the start.
func (m *Model) restart() {
	if m.watch != nil {
		m.script.Rewind()
	} else {
		m.saveReplay()
		m.config.Seed = m.newSeed()
		m.recorder.Restart(m.config.Seed)
		m.saved = false
	}

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.jump.Reset()
	m.jumpSeen = false
	m.pending.Clear()
}

// watchEnded reports whether playback has reached the end of the recording.
func (m Model) watchEnded() bool {
	if m.watch == nil {
		return false
	}
	return m.gameState.GameOver || m.gameState.Tick >= m.watch.Ticks
}

// saveReplay stores the current run once. Runs with no ticks are skipped.
func (m *Model) saveReplay() {
	if m.saved || m.watch != nil || m.recorder.Ticks() == 0 {
		return
	}
	m.saved = true
	if m.store == nil {
		return
	}

	r := m.recorder.Finish(m.player)
	if err := m.store.SaveReplay(r); err != nil {
		m.logger.Warn("could not save replay", "id", r.ID, "error", err)
		return
	}
	m.logger.Debug("replay saved", "id", r.ID, "player", r.Player, "score", r.Score, "ticks", r.Ticks)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.watch != nil {
		footer = "replay " + shortID(m.watch.ID) + "  " + footer
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program with the given model.
func Run(game *flappy.Game, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
