package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// newOscillator creates an oscillator for the given duration.
func newOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// tone is an enveloped oscillator.
func tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// synthesize builds the fallback tone for a sound whose file is unavailable.
func synthesize(s Sound, rate beep.SampleRate) beep.Streamer {
	switch s {
	case SoundFlap:
		// Short rising chirp
		return beep.Seq(
			newGain(tone(520, 30*time.Millisecond, WaveSine, rate), 0.6),
			newGain(tone(780, 40*time.Millisecond, WaveSine, rate), 0.6),
		)
	case SoundScore:
		// Two-note chime (B5, E6)
		return beep.Seq(
			newGain(tone(987.77, 80*time.Millisecond, WaveSquare, rate), 0.3),
			newGain(tone(1318.51, 160*time.Millisecond, WaveSquare, rate), 0.3),
		)
	case SoundHit:
		// Noise thud over a low rumble
		d := 250 * time.Millisecond
		return beep.Mix(
			newGain(tone(0, d, WaveNoise, rate), 0.4),
			newGain(tone(90, d, WaveSaw, rate), 0.5),
		)
	}
	return nil
}
