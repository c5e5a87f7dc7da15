// Package settings persists the player's volume levels between sessions
// using the platform's per-user data directory.
package settings

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// AppName is the gdata application directory name.
const AppName = "tui_flappy"

const (
	settingsObject   = "settings"
	settingsProperty = "volume"
)

// Settings is the persisted document.
type Settings struct {
	MusicVolume   float64 `yaml:"music_volume"`
	EffectsVolume float64 `yaml:"effects_volume"`
}

// Volume returns the levels as a clamped core.Volume.
func (s Settings) Volume() core.Volume {
	return core.Volume{Music: s.MusicVolume, Effects: s.EffectsVolume}.Clamped()
}

// Manager loads and saves settings. A nil gdata manager means settings
// live in memory only.
type Manager struct {
	mu       sync.Mutex
	data     *gdata.Manager
	settings Settings
	logger   *log.Logger
}

// Open opens the gdata store for appName. If the store cannot be opened
// the manager runs in memory-only mode and the error is logged.
func Open(appName string, defaults core.Volume, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("settings storage unavailable, volume will not be saved", "error", err)
		data = nil
	}
	return New(data, defaults, logger)
}

// New creates a manager over an existing gdata store (may be nil) and
// loads the saved settings. Missing or unreadable settings keep defaults.
func New(data *gdata.Manager, defaults core.Volume, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{
		data:     data,
		settings: fromVolume(defaults),
		logger:   logger,
	}
	if err := m.load(); err != nil {
		logger.Warn("cannot load settings, using defaults", "error", err)
	}
	return m
}

func fromVolume(v core.Volume) Settings {
	v = v.Clamped()
	return Settings{MusicVolume: v.Music, EffectsVolume: v.Effects}
}

func (m *Manager) load() error {
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	raw, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("settings: load: %w", err)
	}

	var loaded Settings
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("settings: decode: %w", err)
	}
	m.settings = fromVolume(loaded.Volume())
	return nil
}

// Volume returns the current levels.
func (m *Manager) Volume() core.Volume {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings.Volume()
}

// Persistent reports whether saves reach disk.
func (m *Manager) Persistent() bool {
	return m.data != nil
}

// SaveVolume stores new levels. In memory-only mode it only updates the
// in-memory copy.
func (m *Manager) SaveVolume(v core.Volume) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = fromVolume(v)
	if m.data == nil {
		return nil
	}

	raw, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, raw); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}
	m.logger.Debug("settings saved", "music", m.settings.MusicVolume, "effects", m.settings.EffectsVolume)
	return nil
}
