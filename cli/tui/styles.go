// Package tui provides lipgloss styling and Bubble Tea views for the
// advent CLI.
//
// TUI rules:
//   - TUI is opt-in only (--tui flag)
//   - TUI is read-only: it shows reports that were already produced
//   - TUI uses the same reports as non-TUI rendering
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/advent/solution"
)

// Palette. Each color has a light and a dark terminal variant.
var (
	holly  = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	berry  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	gold   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	frost  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
	ash    = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}
	snow   = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	accent = gold
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(ash).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(snow)
	hintStyle  = lipgloss.NewStyle().Foreground(ash).MarginTop(1)
	barStyle   = lipgloss.NewStyle().Foreground(frost)
	pointer    = lipgloss.NewStyle().Bold(true).Foreground(frost)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ash).
			Padding(1, 2)

	// stat tiles on the statistics screen
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Width(20).
			Align(lipgloss.Center)
	tileLabel = lipgloss.NewStyle().Foreground(ash).Align(lipgloss.Center)
	tileValue = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
)

// Report states, by how many parts produced an answer.
const (
	StateSolved        = "solved"
	StatePartial       = "partial"
	StateUnimplemented = "unimplemented"
)

var stateColor = map[string]lipgloss.AdaptiveColor{
	StateSolved:        holly,
	StatePartial:       gold,
	StateUnimplemented: berry,
}

func stateStyle(state string) lipgloss.Style {
	c, ok := stateColor[state]
	if !ok {
		return valueStyle
	}
	return lipgloss.NewStyle().Foreground(c)
}

func answerStyle(a solution.Answer[string]) lipgloss.Style {
	if a.Present() {
		return stateStyle(StateSolved)
	}
	return stateStyle(StatePartial)
}

// ReportState summarizes how many parts of a report have answers.
func ReportState(r *solution.Report) string {
	switch n := answered(r); n {
	case 2:
		return StateSolved
	case 1:
		return StatePartial
	default:
		return StateUnimplemented
	}
}

func answered(r *solution.Report) int {
	n := 0
	for _, a := range []solution.Answer[string]{r.PartOne, r.PartTwo} {
		if a.Present() {
			n++
		}
	}
	return n
}
