package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	maxRuns = 100 // Max runs to load per view
)

// RunSource is the read side of the run history.
type RunSource interface {
	TopRuns(limit int) ([]storage.Run, error)
	RecentRuns(limit int) ([]storage.Run, error)
	GetStats() (*storage.Stats, error)
}

// boardView selects which runs the scoreboard lists.
type boardView int

const (
	viewTop boardView = iota
	viewRecent
)

func (v boardView) String() string {
	if v == viewRecent {
		return "Recent Runs"
	}
	return "Top Runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Switch, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for browsing run history.
type ScoreboardModel struct {
	source   RunSource
	view     boardView
	runs     []storage.Run
	stats    *storage.Stats
	best     int // Persisted high score, shown in the header
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard over source. best is the
// persisted high score, which may exceed every recorded run.
func NewScoreboardModel(source RunSource, best, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		best:   best,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(atLeastOne(m.height-9)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// atLeastOne floors a height at one row.
func atLeastOne(h int) int {
	if h < 1 {
		return 1
	}
	return h
}

// load fetches runs for the current view and the aggregate stats.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.view == viewRecent {
		m.runs, err = m.source.RecentRuns(maxRuns)
	} else {
		m.runs, err = m.source.TopRuns(maxRuns)
	}
	if err != nil {
		m.err = err
	}
	if stats, err := m.source.GetStats(); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Player,
			formatTicks(r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatTicks renders a run length at 60 ticks per second.
func formatTicks(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("FLAPPY BIRD - "+strings.ToUpper(m.view.String()), m.width)))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("High Score: %d", m.best)
	if m.stats != nil && m.stats.Runs > 0 {
		summary += fmt.Sprintf("  |  Runs: %d  |  Avg: %.1f  |  Last played: %s",
			m.stats.Runs, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
	}
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Cannot load runs: " + m.err.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(source RunSource, best, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(source, best, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
