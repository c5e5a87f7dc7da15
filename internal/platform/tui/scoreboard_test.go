package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeSource struct {
	top, recent []storage.Run
	err         error
}

func (f *fakeSource) TopRuns(int) ([]storage.Run, error) { return f.top, f.err }

func (f *fakeSource) RecentRuns(int) ([]storage.Run, error) { return f.recent, f.err }

func (f *fakeSource) GetStats() (*storage.Stats, error) {
	return &storage.Stats{Runs: len(f.top), AvgScore: 4.5, LastPlayed: time.Now()}, nil
}

func TestScoreboardViews(t *testing.T) {
	src := &fakeSource{
		top:    []storage.Run{{Score: 9, Player: "local", Ticks: 3600}, {Score: 2, Player: "bob"}},
		recent: []storage.Run{{Score: 2, Player: "bob"}},
	}
	m := NewScoreboardModel(src, 11, 100, 30)

	if len(m.runs) != 2 || m.runs[0].Score != 9 {
		t.Fatalf("top view should list best runs first, got %v", m.runs)
	}
	view := m.View()
	for _, want := range []string{"TOP RUNS", "High Score: 11", "Runs: 2", "1:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewRecent || len(m.runs) != 1 {
		t.Errorf("tab should switch to recent runs, view=%v runs=%d", m.view, len(m.runs))
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title should follow the view")
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(nil, 0, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("nil source should show the empty message")
	}

	m = NewScoreboardModel(&fakeSource{err: errors.New("db locked")}, 0, 80, 24)
	if !strings.Contains(m.View(), "db locked") {
		t.Error("load errors should be shown")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 0, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || next.(ScoreboardModel).View() != "" {
		t.Error("esc should quit")
	}
}

func TestFormatTicks(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:00", 60: "0:01", 3660: "1:01"}
	for ticks, want := range tests {
		if got := formatTicks(ticks); got != want {
			t.Errorf("formatTicks(%d) = %q, want %q", ticks, got, want)
		}
	}
}
