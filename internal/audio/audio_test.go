package audio

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestForEvent(t *testing.T) {
	tests := []struct {
		event core.Event
		want  Sound
		ok    bool
	}{
		{core.EventFlap, SoundFlap, true},
		{core.EventScore, SoundScore, true},
		{core.EventHit, SoundHit, true},
		{core.EventRestart, 0, false},
		{core.EventVolumeChanged, 0, false},
	}
	for _, tt := range tests {
		got, ok := ForEvent(tt.event)
		assert.Equal(t, tt.ok, ok, tt.event.String())
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.event.String())
		}
	}
}

func TestSoundNamesMatchAssets(t *testing.T) {
	assert.Equal(t, assets.Flap, SoundFlap.String())
	assert.Equal(t, assets.Score, SoundScore.String())
	assert.Equal(t, assets.Hit, SoundHit.String())
}

func TestSetGain(t *testing.T) {
	v := &effects.Volume{}

	setGain(v, 0)
	assert.True(t, v.Silent)

	setGain(v, 1)
	assert.False(t, v.Silent)
	assert.Equal(t, 0.0, v.Volume)
	assert.Equal(t, 2.0, v.Base)

	setGain(v, 0.5)
	assert.InDelta(t, -1.0, v.Volume, 1e-9)

	setGain(v, 0.4)
	assert.InDelta(t, 0.4, math.Pow(v.Base, v.Volume), 1e-9)
}

func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := newOscillator(440, 50*time.Millisecond, wave, rate)

		samples := make([][2]float64, 512)
		total := 0
		for {
			n, ok := osc.Stream(samples)
			for i := 0; i < n; i++ {
				require.LessOrEqual(t, math.Abs(samples[i][0]), 1.0)
				require.Equal(t, samples[i][0], samples[i][1])
			}
			total += n
			if !ok {
				break
			}
		}
		assert.Equal(t, rate.N(50*time.Millisecond), total, "wave %d", wave)
		assert.NoError(t, osc.Err())
	}
}

func TestSynthesizedSoundsAreFinite(t *testing.T) {
	rate := beep.SampleRate(22050)
	for s := Sound(0); s < soundCount; s++ {
		buf, err := bufferFrom(synthesize(s, rate), rate, rate)
		require.NoError(t, err, s.String())
		assert.Greater(t, buf.Len(), 0)
		assert.Less(t, buf.Len(), rate.N(time.Second), "effects should be short")
	}
}

// writeTestWAV encodes a short tone at the given rate.
func writeTestWAV(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, tone(440, d, WaveSine, rate), format))
	return path
}

func TestLoadFileResamples(t *testing.T) {
	path := writeTestWAV(t, 22050, 100*time.Millisecond)

	buf, err := loadFile(path, 44100)
	require.NoError(t, err)
	assert.Equal(t, beep.SampleRate(44100), buf.Format().SampleRate)
	// 100ms at 44.1kHz, give or take resampler edges
	assert.InDelta(t, 4410, buf.Len(), 50)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadFile(filepath.Join(dir, "missing.wav"), sampleRate)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav"), 0o644))
	_, err = loadFile(bad, sampleRate)
	assert.Error(t, err)

	mp3 := filepath.Join(dir, "x.mp3")
	require.NoError(t, os.WriteFile(mp3, []byte("ID3"), 0o644))
	_, err = loadFile(mp3, sampleRate)
	assert.ErrorContains(t, err, "unsupported")
}

func TestLoadBankFallsBack(t *testing.T) {
	rate := beep.SampleRate(44100)
	wavPath := writeTestWAV(t, rate, 50*time.Millisecond)
	logger := log.New(io.Discard)

	bank := LoadBank(map[string]string{
		assets.Flap:  wavPath,
		assets.Hit:   filepath.Join(t.TempDir(), "missing.wav"),
		assets.Music: filepath.Join(t.TempDir(), "bg.ogg"),
	}, rate, logger)

	for s := Sound(0); s < soundCount; s++ {
		assert.NotNil(t, bank.Effect(s), "sound %s should always be playable", s)
	}
	assert.Equal(t, rate.N(50*time.Millisecond), bank.Effect(SoundFlap).Len())
	assert.False(t, bank.HasMusic())
	assert.Nil(t, bank.Effect(soundCount))
}

func TestNopSink(t *testing.T) {
	var s Sink = Nop{}
	s.Play(SoundHit)
	s.SetVolume(core.Volume{Music: 1, Effects: 1})
	assert.False(t, s.HasMusic())
	assert.NoError(t, s.Close())
}
