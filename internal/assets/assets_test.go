package assets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/audio/wing.wav", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("RIFFwing"))
	})
	mux.HandleFunc("/audio/slow.wav", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(t *testing.T, cfg config.AssetsConfig) *Provider {
	t.Helper()
	if cfg.CacheDir == "" {
		cfg.CacheDir = t.TempDir()
	}
	return New(cfg, log.New(io.Discard))
}

func TestPathDownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	p := newTestProvider(t, config.AssetsConfig{
		Sounds: map[string]string{Flap: srv.URL + "/audio/wing.wav"},
	})

	path, err := p.Path(context.Background(), Flap)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.CacheDir(), "flap.wav"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RIFFwing", string(data))

	_, err = p.Path(context.Background(), Flap)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "cached asset should not be downloaded again")
}

func TestPathUnknownAsset(t *testing.T) {
	p := newTestProvider(t, config.AssetsConfig{})

	_, err := p.Path(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestPathHTTPError(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	p := newTestProvider(t, config.AssetsConfig{
		Sounds: map[string]string{Hit: srv.URL + "/audio/missing.wav"},
	})

	_, err := p.Path(context.Background(), Hit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	entries, err := os.ReadDir(p.CacheDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download must not leave files behind")
}

func TestPathRejectsOversizedAsset(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	p := newTestProvider(t, config.AssetsConfig{
		Sounds: map[string]string{Flap: srv.URL + "/audio/wing.wav"},
	})
	p.maxSize = 4

	_, err := p.Path(context.Background(), Flap)
	require.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(p.CacheDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "a truncated download must not be cached")

	// Exactly at the limit is fine
	p.maxSize = int64(len("RIFFwing"))
	_, err = p.Path(context.Background(), Flap)
	require.NoError(t, err)
}

func TestPathTimeout(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	p := newTestProvider(t, config.AssetsConfig{
		Timeout: 50 * time.Millisecond,
		Sounds:  map[string]string{Score: srv.URL + "/audio/slow.wav"},
	})

	start := time.Now()
	_, err := p.Path(context.Background(), Score)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestLocalMusic(t *testing.T) {
	dir := t.TempDir()
	p := newTestProvider(t, config.AssetsConfig{CacheDir: dir, Music: "bg.ogg"})

	_, err := p.Path(context.Background(), Music)
	assert.ErrorIs(t, err, ErrUnavailable)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bg.ogg"), []byte("OggS"), 0o644))
	path, err := p.Path(context.Background(), Music)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bg.ogg"), path)
}

func TestFetchAllSkipsFailures(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	p := newTestProvider(t, config.AssetsConfig{
		Sounds: map[string]string{
			Flap: srv.URL + "/audio/wing.wav",
			Hit:  srv.URL + "/audio/missing.wav",
		},
		Music: "bg.ogg",
	})

	assert.Equal(t, []string{Flap, Hit, Music}, p.Names())

	paths := p.FetchAll(context.Background())
	assert.Len(t, paths, 1)
	assert.Contains(t, paths, Flap)
}

func TestCacheName(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"flap", "https://example.com/a/wing.wav", "flap.wav"},
		{"music", "https://example.com/bg.ogg?raw=1", "music.ogg"},
		{"hit", "https://example.com/sound", "hit.bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cacheName(tt.name, tt.src))
	}
}
