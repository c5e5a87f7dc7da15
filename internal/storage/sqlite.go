// Package storage provides SQLite-based persistence for finished runs and,
// optionally, the high score itself.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// LocalPlayer names runs played in the local terminal.
const LocalPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished round.
type Run struct {
	ID         int64
	Player     string // LocalPlayer or the SSH user name
	Score      int
	Ticks      int    // Playing ticks the round lasted
	Seed       int64  // RNG seed, for replaying the pipe layout
	Difficulty string // Preset name, empty for the config default
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Player == "" {
		run.Player = LocalPlayer
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (player, score, ticks, seed, difficulty) VALUES (?, ?, ?, ?, ?)",
		run.Player, run.Score, run.Ticks, run.Seed, run.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, player, score, ticks, seed, difficulty, created_at`

// TopRuns retrieves the best N runs, highest score first.
// Ties go to the earlier run.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// PlayerRuns retrieves the best runs of one player.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE player = ? ORDER BY score DESC, id ASC LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Ticks, &r.Seed, &r.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the whole run history. The stored high score is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over the run history.
type Stats struct {
	Runs       int
	BestRun    int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetStats aggregates the run history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestRun, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// LoadHighScore returns the stored high score, or 0 if none was saved.
func (s *Store) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM high_score WHERE id = 1").Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load high score: %w", err)
	}
	return score, nil
}

// SaveHighScore overwrites the stored high score.
func (s *Store) SaveHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_score (id, score, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// HighScoreBackend adapts the store to the high score tracker's
// Load/Save backend contract.
type HighScoreBackend struct {
	Store *Store
}

// Load returns the stored high score.
func (b HighScoreBackend) Load() (int, error) {
	return b.Store.LoadHighScore()
}

// Save persists a new high score.
func (b HighScoreBackend) Save(score int) error {
	return b.Store.SaveHighScore(score)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
