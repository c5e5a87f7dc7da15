package tui

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeSink struct {
	played  []audio.Sound
	volumes []core.Volume
	music   bool
	closed  bool
}

func (f *fakeSink) Play(s audio.Sound) { f.played = append(f.played, s) }

func (f *fakeSink) SetVolume(v core.Volume) { f.volumes = append(f.volumes, v) }

func (f *fakeSink) HasMusic() bool { return f.music }

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

type fakeRuns struct {
	runs []storage.Run
	err  error
}

func (f *fakeRuns) SaveRun(r storage.Run) (int64, error) {
	f.runs = append(f.runs, r)
	return int64(len(f.runs)), f.err
}

type fakeSettings struct {
	saved []core.Volume
}

func (f *fakeSettings) SaveVolume(v core.Volume) error {
	f.saved = append(f.saved, v)
	return nil
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Game == nil {
		opts.Game = flappy.New(config.DefaultFlappyConfig(), nil)
	}
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 1}
	}
	opts.Logger = log.New(io.Discard)
	return NewModel(opts)
}

// send feeds messages through Update and returns the resulting model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFlap},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{runeKey('w'), core.ActionFlap},
		{runeKey('r'), core.ActionRestart},
		{runeKey('v'), core.ActionToggleVolume},
		{runeKey('m'), core.ActionMusicUp},
		{runeKey('n'), core.ActionMusicDown},
		{runeKey('k'), core.ActionEffectsUp},
		{runeKey('l'), core.ActionEffectsDown},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestModelReservesHelpLine(t *testing.T) {
	m := newTestModel(t, Options{})

	if m.screen.Height() != 24 {
		t.Errorf("playfield height = %d, want 24", m.screen.Height())
	}
	view := m.View()
	if !strings.Contains(view, "flap") {
		t.Error("view should end with the help line")
	}
}

func TestModelFlapPlaysSound(t *testing.T) {
	sink := &fakeSink{}
	m := newTestModel(t, Options{Sink: sink})

	m = send(t, m, runeKey('w'), TickMsg{})

	if m.game.Phase() != flappy.PhasePlaying {
		t.Fatalf("phase = %v, want playing", m.game.Phase())
	}
	if len(sink.played) != 1 || sink.played[0] != audio.SoundFlap {
		t.Errorf("played = %v, want [flap]", sink.played)
	}
	if !m.inputFrame.Empty() {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelVolumeChangeIsSaved(t *testing.T) {
	sink := &fakeSink{music: true}
	settings := &fakeSettings{}
	m := newTestModel(t, Options{Sink: sink, Settings: settings})

	m = send(t, m, runeKey('v'), TickMsg{}, runeKey('m'), TickMsg{})

	if len(settings.saved) != 1 {
		t.Fatalf("saved %d times, want 1", len(settings.saved))
	}
	want := core.Volume{Music: 0.45, Effects: 0.5}
	if settings.saved[0] != want {
		t.Errorf("saved %+v, want %+v", settings.saved[0], want)
	}
	if last := sink.volumes[len(sink.volumes)-1]; last != want {
		t.Errorf("sink volume %+v, want %+v", last, want)
	}
}

func TestModelShowsMusicOffWithoutTrack(t *testing.T) {
	m := newTestModel(t, Options{Sink: &fakeSink{}})

	m = send(t, m, runeKey('v'), TickMsg{})

	if !strings.Contains(m.View(), "Music Volume: off") {
		t.Error("a sink without music should show music as off")
	}
}

func TestModelRecordsScoredRuns(t *testing.T) {
	runs := &fakeRuns{}
	m := newTestModel(t, Options{Runs: runs, Player: "alice", Difficulty: "hard"})

	m.dispatch(core.EventHit, core.GameState{Score: 0, GameOver: true})
	if len(runs.runs) != 0 {
		t.Fatalf("runs with score 0 should not be recorded, got %v", runs.runs)
	}

	m.dispatch(core.EventHit, core.GameState{Score: 3, GameOver: true})
	if len(runs.runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs.runs))
	}
	r := runs.runs[0]
	if r.Player != "alice" || r.Score != 3 || r.Difficulty != "hard" || r.Seed != 1 {
		t.Errorf("unexpected run: %+v", r)
	}

	// A failing recorder is logged, not fatal
	runs.err = errors.New("locked")
	m.dispatch(core.EventHit, core.GameState{Score: 5, GameOver: true})
}

func TestModelRoundEndsOnGround(t *testing.T) {
	sink := &fakeSink{}
	m := newTestModel(t, Options{Sink: sink})

	m = send(t, m, runeKey('w'), TickMsg{})
	for i := 0; i < 600 && m.game.Phase() == flappy.PhasePlaying; i++ {
		m = send(t, m, TickMsg{})
	}

	if m.game.Phase() != flappy.PhaseGameOver {
		t.Fatalf("bird should eventually hit the ground, phase=%v", m.game.Phase())
	}
	if sink.played[len(sink.played)-1] != audio.SoundHit {
		t.Errorf("last sound = %v, want hit", sink.played[len(sink.played)-1])
	}
	if !strings.Contains(m.View(), "Press R to Restart") {
		t.Error("game over banner missing")
	}

	m = send(t, m, runeKey('r'), TickMsg{})
	if m.game.Phase() != flappy.PhaseStart {
		t.Errorf("restart should return to start, phase=%v", m.game.Phase())
	}
}

func TestModelQuitClosesAudio(t *testing.T) {
	sink := &fakeSink{}
	m := newTestModel(t, Options{Sink: sink})

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !sink.closed {
		t.Error("quit should close the audio sink")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})

	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ScreenshotDir: dir})

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "flappy_") {
		t.Fatalf("expected one flappy screenshot, got %v", entries)
	}
	data, _ := os.ReadFile(dir + "/" + entries[0].Name())
	if !strings.Contains(string(data), "FLAPPY BIRD") {
		t.Error("screenshot should contain the start banner")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorGreen)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '█', core.ColorOrange)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("first line missing text: %q", lines[0])
	}
	if !strings.Contains(lines[1], "█") {
		t.Errorf("second line missing block: %q", lines[1])
	}
}

func TestSSHSessionModel(t *testing.T) {
	s := &SSHServer{
		config: DefaultSSHServerConfig(),
		deps:   SSHDeps{Game: config.DefaultFlappyConfig()},
		logger: log.New(io.Discard),
	}

	m := s.newSessionModel("bob", 90, 30)
	if m.opts.Player != "bob" {
		t.Errorf("player = %q, want bob", m.opts.Player)
	}
	if m.opts.Runs != nil {
		t.Error("no store means no run recorder")
	}
	if _, ok := m.opts.Sink.(audio.Nop); !ok {
		t.Errorf("ssh sessions should be silent, sink=%T", m.opts.Sink)
	}
	if m.screen.Width() != 90 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 90x29", m.screen.Width(), m.screen.Height())
	}
}
