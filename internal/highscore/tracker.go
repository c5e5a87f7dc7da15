package highscore

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Tracker caches the best score in memory and writes through to a Backend
// only when a round beats it. Safe for concurrent use; serve mode shares
// one tracker between all sessions.
type Tracker struct {
	mu      sync.Mutex
	best    int
	backend Backend
	logger  *log.Logger
}

// NewTracker loads the current best from backend. Load failures are
// logged and the tracker starts from 0.
func NewTracker(backend Backend, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	t := &Tracker{backend: backend, logger: logger}

	best, err := backend.Load()
	if err != nil {
		logger.Warn("cannot load high score, starting from 0", "error", err)
		best = 0
	}
	t.best = best
	return t
}

// Best returns the current best score.
func (t *Tracker) Best() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best
}

// Submit records score if it beats the best. The in-memory best is raised
// even when saving fails, so the session still shows the right value.
func (t *Tracker) Submit(score int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if score <= t.best {
		return false, nil
	}
	prev := t.best
	t.best = score

	if err := t.backend.Save(score); err != nil {
		t.logger.Error("cannot save high score", "score", score, "error", err)
		return true, err
	}
	t.logger.Info("new high score", "score", score, "previous", prev)
	return true, nil
}
