package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// barWidth is the width of the longest timing bar.
const barWidth = 24

// RenderReport renders a report as a styled card. With noColor it falls
// back to the plain report text.
func RenderReport(r *solution.Report, noColor bool) string {
	if noColor {
		return r.String()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Day %s", r.Puzzle)))
	b.WriteString("\n")
	for _, part := range []types.Part{types.PartOne, types.PartTwo} {
		a := r.Answer(part)
		fmt.Fprintf(&b, "%s %s\n",
			labelStyle.Render(part.String()+":"),
			answerStyle(a).Render(a.String()))
	}

	b.WriteString("\n")
	b.WriteString(renderTimings(r))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("profile %s", r.Profile)))

	return cardStyle.Render(b.String())
}

// renderTimings draws one bar per stage scaled to the slowest stage.
// Total is printed without a bar.
func renderTimings(r *solution.Report) string {
	var longest time.Duration
	for _, e := range r.Timings {
		if e.Label != solution.LabelTotal && e.Duration > longest {
			longest = e.Duration
		}
	}

	var b strings.Builder
	for _, e := range r.Timings {
		label := labelStyle.Render(e.Label + ":")
		if e.Label == solution.LabelTotal {
			fmt.Fprintf(&b, "%s %s\n", label, valueStyle.Bold(true).Render(e.Duration.String()))
			continue
		}
		n := 1
		if longest > 0 {
			n = max(1, int(int64(barWidth)*int64(e.Duration)/int64(longest)))
		}
		bar := barStyle.Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s %s %s\n", label, lipgloss.NewStyle().Width(barWidth).Render(bar), e.Duration)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
