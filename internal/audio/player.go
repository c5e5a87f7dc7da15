package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 100 * time.Millisecond
)

// Bank holds one decoded buffer per sound plus optional music.
type Bank struct {
	effects [soundCount]*beep.Buffer
	music   *beep.Buffer
}

// LoadBank decodes the files in paths (asset name -> file). Sounds whose
// file is missing or unreadable fall back to a synthesized tone; missing
// music is skipped.
func LoadBank(paths map[string]string, rate beep.SampleRate, logger *log.Logger) *Bank {
	b := &Bank{}
	for s := Sound(0); s < soundCount; s++ {
		if path, ok := paths[s.String()]; ok {
			buf, err := loadFile(path, rate)
			if err == nil {
				b.effects[s] = buf
				continue
			}
			logger.Warn("cannot load sound, using synthesized tone", "sound", s, "error", err)
		}
		buf, err := bufferFrom(synthesize(s, rate), rate, rate)
		if err != nil {
			logger.Error("cannot synthesize sound", "sound", s, "error", err)
			continue
		}
		b.effects[s] = buf
	}

	if path, ok := paths[assets.Music]; ok {
		buf, err := loadFile(path, rate)
		if err != nil {
			logger.Warn("cannot load music, playing without it", "error", err)
		} else {
			b.music = buf
		}
	}
	return b
}

// Effect returns the buffer for s, or nil.
func (b *Bank) Effect(s Sound) *beep.Buffer {
	if s < 0 || s >= soundCount {
		return nil
	}
	return b.effects[s]
}

// HasMusic reports whether background music was loaded.
func (b *Bank) HasMusic() bool {
	return b.music != nil
}

// Player is a Sink backed by the system speaker. Effects and music run
// through separate volume buses on one mixer.
type Player struct {
	mu       sync.Mutex
	bank     *Bank
	fx       *beep.Mixer
	fxVol    *effects.Volume
	musicVol *effects.Volume
	music    *beep.Ctrl
	closed   bool
}

// Open initializes the speaker and starts the music loop, if any.
// Only one Player should exist per process.
func Open(paths map[string]string, v core.Volume, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return nil, fmt.Errorf("audio: speaker init: %w", err)
	}

	p := &Player{
		bank: LoadBank(paths, sampleRate, logger),
		fx:   &beep.Mixer{},
	}
	p.fxVol = newGain(p.fx, v.Effects)

	master := &beep.Mixer{}
	master.Add(p.fxVol)
	if p.bank.HasMusic() {
		m := p.bank.music
		p.music = &beep.Ctrl{Streamer: beep.Loop(-1, m.Streamer(0, m.Len()))}
		p.musicVol = newGain(p.music, v.Music)
		master.Add(p.musicVol)
	}

	speaker.Play(master)
	logger.Debug("audio started", "rate", int(sampleRate), "music", p.bank.HasMusic())
	return p, nil
}

// Play starts a sound effect on the effects bus.
func (p *Player) Play(s Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	buf := p.bank.Effect(s)
	if buf == nil {
		return
	}

	speaker.Lock()
	p.fx.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// SetVolume applies new bus levels.
func (p *Player) SetVolume(v core.Volume) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	speaker.Lock()
	setGain(p.fxVol, v.Effects)
	if p.musicVol != nil {
		setGain(p.musicVol, v.Music)
	}
	speaker.Unlock()
}

// HasMusic reports whether the music loop is running.
func (p *Player) HasMusic() bool {
	return p.music != nil
}

// Close stops all playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	speaker.Lock()
	if p.music != nil {
		p.music.Paused = true
	}
	p.fx.Clear()
	speaker.Unlock()

	speaker.Clear()
	return nil
}

var (
	_ Sink = (*Player)(nil)
	_ Sink = Nop{}
)
