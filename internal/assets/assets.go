// Package assets downloads the game's sound files once and serves them from
// a local cache afterwards.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Asset names used by the game.
const (
	Flap  = "flap"
	Hit   = "hit"
	Score = "score"
	Music = "music"
)

var (
	// ErrUnknownAsset is returned for names not in the manifest.
	ErrUnknownAsset = errors.New("assets: unknown asset")
	// ErrUnavailable is returned when a local asset file does not exist.
	ErrUnavailable = errors.New("assets: asset not available")
	// ErrTooLarge is returned for downloads over the size limit.
	ErrTooLarge = errors.New("assets: asset too large")
)

// maxAssetSize bounds a single download.
const maxAssetSize = 16 << 20

// Provider resolves asset names to files on disk, downloading remote
// sources into the cache directory on first use.
type Provider struct {
	cacheDir string
	timeout  time.Duration
	sources  map[string]string // name -> URL or local path
	client   *http.Client
	maxSize  int64 // Bytes allowed per download
	logger   *log.Logger
}

// New builds a provider from the assets config.
func New(cfg config.AssetsConfig, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	sources := make(map[string]string, len(cfg.Sounds)+1)
	for name, src := range cfg.Sounds {
		sources[name] = src
	}
	if cfg.Music != "" {
		sources[Music] = cfg.Music
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Provider{
		cacheDir: config.ExpandHome(cfg.CacheDir),
		timeout:  timeout,
		sources:  sources,
		client:   &http.Client{},
		maxSize:  maxAssetSize,
		logger:   logger,
	}
}

// Names returns the manifest's asset names in sorted order.
func (p *Provider) Names() []string {
	names := make([]string, 0, len(p.sources))
	for name := range p.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CacheDir returns the directory downloads are stored in.
func (p *Provider) CacheDir() string {
	return p.cacheDir
}

// Path returns a local file for the named asset, downloading it if it is
// remote and not cached yet.
func (p *Provider) Path(ctx context.Context, name string) (string, error) {
	src, ok := p.sources[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}

	if !isRemote(src) {
		return p.localPath(name, src)
	}

	dst := filepath.Join(p.cacheDir, cacheName(name, src))
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	if err := p.download(ctx, src, dst); err != nil {
		return "", fmt.Errorf("assets: fetch %s: %w", name, err)
	}
	p.logger.Info("downloaded asset", "name", name, "path", dst)
	return dst, nil
}

// localPath resolves a non-URL source; relative paths live in the cache dir.
func (p *Provider) localPath(name, src string) (string, error) {
	path := config.ExpandHome(src)
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.cacheDir, path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s at %s", ErrUnavailable, name, path)
		}
		return "", fmt.Errorf("assets: stat %s: %w", path, err)
	}
	return path, nil
}

// download fetches src into dst via a temp file and rename.
func (p *Provider) download(ctx context.Context, src, dst string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(p.cacheDir, ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, p.maxSize+1))
	if err != nil {
		tmp.Close()
		return err
	}
	if n > p.maxSize {
		tmp.Close()
		return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, p.maxSize)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// FetchAll resolves every asset in the manifest. Failures are logged and
// skipped; the result maps each available name to its file.
func (p *Provider) FetchAll(ctx context.Context) map[string]string {
	paths := make(map[string]string, len(p.sources))
	for _, name := range p.Names() {
		path, err := p.Path(ctx, name)
		if err != nil {
			p.logger.Warn("asset unavailable, continuing without it", "name", name, "error", err)
			continue
		}
		paths[name] = path
	}
	return paths
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// cacheName keeps the source's extension so decoders can pick a format.
func cacheName(name, src string) string {
	ext := ".bin"
	if u, err := url.Parse(src); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return name + ext
}
