package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// outputFormat is the format all buffers are stored in.
func outputFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// loadFile decodes a WAV or OGG file into a buffer at the given sample rate.
func loadFile(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, format, err = wav.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("audio: unsupported format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer stream.Close()

	return bufferFrom(stream, format.SampleRate, rate)
}

// bufferFrom drains s into a buffer, resampling when the rates differ.
func bufferFrom(s beep.Streamer, from, to beep.SampleRate) (*beep.Buffer, error) {
	src := s
	if from != to {
		src = beep.Resample(resampleQuality, from, to, s)
	}

	buf := beep.NewBuffer(outputFormat(to))
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("audio: stream: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("audio: empty stream")
	}
	return buf, nil
}
