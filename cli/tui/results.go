package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/solution"
)

// Results is the payload of the solve and inspect views.
type Results struct {
	Title   string
	Reports []*solution.Report
	// Metrics is optional; when set, tab toggles a stats pane.
	Metrics *metrics.Snapshot
}

// ResultsModel is a Bubble Tea model listing reports with a detail pane.
type ResultsModel struct {
	results   Results
	cursor    int
	showStats bool
	width     int
	height    int
	quitting  bool
}

// NewResultsModel creates a new results model.
func NewResultsModel(results Results) ResultsModel {
	return ResultsModel{results: results}
}

// Init implements tea.Model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.results.Reports)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Stats):
			if m.results.Metrics != nil {
				m.showStats = !m.showStats
			}
		}
	}

	return m, nil
}

// Selected returns the highlighted report, or nil when there are none.
func (m ResultsModel) Selected() *solution.Report {
	if len(m.results.Reports) == 0 {
		return nil
	}
	return m.results.Reports[m.cursor]
}

// View implements tea.Model.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	title := m.results.Title
	if title == "" {
		title = "Advent Results"
	}

	var body string
	switch {
	case m.showStats:
		body = renderStats(m.results.Metrics)
	case len(m.results.Reports) == 0:
		body = stateStyle(StatePartial).Render("(no results)")
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderList(),
			"  ",
			RenderReport(m.Selected(), false))
	}

	help := "↑/k up • ↓/j down • q quit"
	if m.results.Metrics != nil {
		help = "↑/k up • ↓/j down • tab stats • q quit"
	}
	return titleStyle.Render(title) + "\n" + body + "\n" + hintStyle.Render(help)
}

func (m ResultsModel) renderList() string {
	var b strings.Builder
	for i, r := range m.results.Reports {
		state := ReportState(r)
		line := fmt.Sprintf("Day %s  %s", r.Puzzle.Padded(), stateStyle(state).Render(state))
		if i == m.cursor {
			line = pointer.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderStats(s *metrics.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session Statistics"))
	b.WriteString("\n")

	rows := [][]string{
		{
			renderStatBox("Started", s.PuzzlesStarted, frost),
			renderStatBox("Completed", s.PuzzlesCompleted, holly),
			renderStatBox("Failed", s.PuzzlesFailed, berry),
		},
		{
			renderStatBox("Parts Solved", s.PartsSolved, holly),
			renderStatBox("Unimplemented", s.PartsUnimplemented, gold),
			renderStatBox("Cache Hits", s.CacheHits, frost),
		},
		{
			renderStatBox("Published", s.PublishSuccess, holly),
			renderStatBox("Publish Errors", s.PublishFailure, berry),
			renderStatBox("Archived", s.ArchiveSuccess, frost),
		},
	}
	for _, row := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderStatBox(label string, value int64, color lipgloss.TerminalColor) string {
	content := fmt.Sprintf("%s\n%s",
		tileLabel.Render(label),
		tileValue.Foreground(color).Render(fmt.Sprintf("%d", value)))
	return tileStyle.BorderForeground(color).Render(content)
}

// keyMap defines key bindings.
type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Stats key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Stats: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "stats"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunResultsTUI runs the results TUI until the user quits.
func RunResultsTUI(results Results) error {
	p := tea.NewProgram(NewResultsModel(results), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
