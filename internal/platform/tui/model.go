package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// RunRecorder stores finished runs.
type RunRecorder interface {
	SaveRun(run storage.Run) (int64, error)
}

// VolumeStore persists volume levels.
type VolumeStore interface {
	SaveVolume(v core.Volume) error
}

// Options wires a Model to its collaborators. Only Game is required.
type Options struct {
	Game          *flappy.Game
	Runtime       core.RuntimeConfig
	Sink          audio.Sink  // nil plays nothing
	Settings      VolumeStore // nil keeps volume for this session only
	Runs          RunRecorder // nil records nothing
	Logger        *log.Logger
	Player        string // Recorded with each run
	Difficulty    string // Recorded with each run
	ScreenshotDir string // Empty disables screenshots
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one game.
type Model struct {
	opts       Options
	game       *flappy.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a model and resets the game to the start screen.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Sink == nil {
		opts.Sink = audio.Nop{}
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		opts:       opts,
		game:       opts.Game,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
	}
	w, h := m.playfieldSize(cfg.ScreenW, cfg.ScreenH)
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen = core.NewScreen(w, h)
	m.game.Reset(m.config)
	m.game.SetMusicAvailable(opts.Sink.HasMusic())
	opts.Sink.SetVolume(m.game.Volume())
	return m
}

// playfieldSize reserves the bottom row for the help line.
func (m Model) playfieldSize(w, h int) (int, int) {
	return w, core.Max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey buffers game input until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.shutdown()
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the round going at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	w, h := m.playfieldSize(msg.Width, msg.Height)
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	m.game.Resize(w, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick steps the game once and dispatches its events.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	for _, e := range result.Events {
		m.dispatch(e, result.State)
	}

	return m, tickCmd(m.config.TickRate)
}

// dispatch routes one game event to audio, settings and run history.
func (m Model) dispatch(e core.Event, state core.GameState) {
	if s, ok := audio.ForEvent(e); ok {
		m.opts.Sink.Play(s)
	}

	switch e {
	case core.EventVolumeChanged:
		v := m.game.Volume()
		m.opts.Sink.SetVolume(v)
		if m.opts.Settings != nil {
			if err := m.opts.Settings.SaveVolume(v); err != nil {
				m.logger.Warn("cannot save volume", "error", err)
			}
		}

	case core.EventHit:
		m.logger.Debug("round over", "player", m.opts.Player, "score", state.Score, "ticks", m.game.Ticks())
		if m.opts.Runs == nil || state.Score <= 0 {
			return
		}
		run := storage.Run{
			Player:     m.opts.Player,
			Score:      state.Score,
			Ticks:      m.game.Ticks(),
			Seed:       m.config.Seed,
			Difficulty: m.opts.Difficulty,
		}
		if _, err := m.opts.Runs.SaveRun(run); err != nil {
			m.logger.Warn("cannot record run", "error", err)
		}

	case core.EventNewHighScore:
		m.logger.Info("new high score", "player", m.opts.Player, "score", state.Score)
	}
}

// shutdown releases audio on quit.
func (m Model) shutdown() {
	if err := m.opts.Sink.Close(); err != nil {
		m.logger.Warn("cannot close audio", "error", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", flappy.ID, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for a local game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
