package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Flap        key.Binding
	Restart     key.Binding
	Volume      key.Binding
	MusicUp     key.Binding
	MusicDown   key.Binding
	EffectsUp   key.Binding
	EffectsDown key.Binding
	Screenshot  key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flap, k.Restart, k.Volume, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flap, k.Restart, k.Quit},
		{k.Volume, k.MusicUp, k.MusicDown, k.EffectsUp, k.EffectsDown},
		{k.Screenshot},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "flap"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Volume: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "volume"),
		),
		MusicUp: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "music +"),
		),
		MusicDown: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "music -"),
		),
		EffectsUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "sfx +"),
		),
		EffectsDown: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "sfx -"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
// Returns ActionNone for keys that are not game input.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Flap):
		return core.ActionFlap
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Volume):
		return core.ActionToggleVolume
	case key.Matches(msg, k.MusicUp):
		return core.ActionMusicUp
	case key.Matches(msg, k.MusicDown):
		return core.ActionMusicDown
	case key.Matches(msg, k.EffectsUp):
		return core.ActionEffectsUp
	case key.Matches(msg, k.EffectsDown):
		return core.ActionEffectsDown
	}
	return core.ActionNone
}
