// Package audio plays the game's sound effects and background music through
// a beep speaker mixer with separate music and effects volume buses.
package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Sound identifies a sound effect.
type Sound int

const (
	SoundFlap Sound = iota
	SoundScore
	SoundHit
	soundCount
)

// String returns the asset name of the sound.
func (s Sound) String() string {
	switch s {
	case SoundFlap:
		return assets.Flap
	case SoundScore:
		return assets.Score
	case SoundHit:
		return assets.Hit
	default:
		return "unknown"
	}
}

// ForEvent maps a game event to the sound it triggers.
func ForEvent(e core.Event) (Sound, bool) {
	switch e {
	case core.EventFlap:
		return SoundFlap, true
	case core.EventScore:
		return SoundScore, true
	case core.EventHit:
		return SoundHit, true
	}
	return 0, false
}

// Sink receives sound requests from the game loop.
type Sink interface {
	Play(s Sound)
	SetVolume(v core.Volume)
	// HasMusic reports whether a music track is playing.
	HasMusic() bool
	Close() error
}

// Nop is a Sink that discards everything. Used with --no-audio, in serve
// mode and when no output device is available.
type Nop struct{}

func (Nop) Play(Sound)            {}
func (Nop) SetVolume(core.Volume) {}
func (Nop) HasMusic() bool        { return false }
func (Nop) Close() error          { return nil }

// setGain points a volume effect at a linear level in [0, 1].
// math.Log2(0) is -Inf, so zero is expressed as silence.
func setGain(v *effects.Volume, level float64) {
	v.Base = 2
	if level <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(math.Min(level, 1))
	v.Silent = false
}

// newGain wraps s in a volume effect at the given linear level.
func newGain(s beep.Streamer, level float64) *effects.Volume {
	v := &effects.Volume{Streamer: s}
	setGain(v, level)
	return v
}
