package tui

import (
	"fmt"
	"slices"
	"strings"
)

// Commands with an interactive view.
const (
	ViewSolve   = "solve"
	ViewInspect = "inspect"
)

// defaultTitles doubles as the set of views that have a TUI.
var defaultTitles = map[string]string{
	ViewSolve:   "Solved puzzles",
	ViewInspect: "Recorded reports",
}

// Run opens the interactive view for a command. data must be Results.
func Run(view string, data any) error {
	if !IsTUISupported(view) {
		return fmt.Errorf("TUI mode is not supported for %s (supported: %s)",
			view, strings.Join(SupportedTUIViews(), ", "))
	}

	results, ok := data.(Results)
	if !ok {
		return fmt.Errorf("invalid data type %T for %s view", data, view)
	}
	if results.Title == "" {
		results.Title = defaultTitles[view]
	}
	return RunResultsTUI(results)
}

// IsTUISupported reports whether view has an interactive mode.
func IsTUISupported(view string) bool {
	_, ok := defaultTitles[view]
	return ok
}

// SupportedTUIViews lists the views with an interactive mode, sorted.
func SupportedTUIViews() []string {
	views := make([]string, 0, len(defaultTitles))
	for v := range defaultTitles {
		views = append(views, v)
	}
	slices.Sort(views)
	return views
}
