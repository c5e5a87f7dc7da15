// Package highscore keeps the single best score across sessions.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Backend loads and saves the persisted best score.
type Backend interface {
	Load() (int, error)
	Save(score int) error
}

// File stores the best score as a plain-text integer.
type File struct {
	Path string
}

// NewFile returns a file backend; a leading ~ in path is expanded.
func NewFile(path string) *File {
	return &File{Path: config.ExpandHome(path)}
}

// Load reads the stored score. A missing file is 0 with no error.
// Malformed contents are reported so the caller can log them; the
// returned score is still 0.
func (f *File) Load() (int, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: read %s: %w", f.Path, err)
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		return 0, fmt.Errorf("highscore: malformed score file %s: %q", f.Path, strings.TrimSpace(string(data)))
	}
	return score, nil
}

// Save writes the score through a temp file and rename, so a crash never
// leaves a truncated file behind.
func (f *File) Save(score int) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("highscore: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("highscore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.Itoa(score) + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("highscore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("highscore: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("highscore: replace %s: %w", f.Path, err)
	}
	return nil
}
