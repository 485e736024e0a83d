package runtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/types"
)

// SessionReport is the structured JSON report written by --report.
type SessionReport struct {
	SessionID  string        `json:"session_id"`
	Version    string        `json:"version"`
	Selection  string        `json:"selection"`
	Testing    bool          `json:"testing"`
	Outcome    OutcomeStatus `json:"outcome"`
	Message    string        `json:"message"`
	ExitCode   int           `json:"exit_code"`
	DurationMs int64         `json:"duration_ms"`

	Puzzles []ReportPuzzle    `json:"puzzles"`
	Metrics *metrics.Snapshot `json:"metrics"`
}

// ReportPuzzle holds one puzzle's answers and timings. Absent answers
// are null.
type ReportPuzzle struct {
	Puzzle   types.PuzzleID   `json:"puzzle"`
	PartOne  *string          `json:"part_one"`
	PartTwo  *string          `json:"part_two"`
	Profile  string           `json:"profile"`
	TimingNs map[string]int64 `json:"timings_ns"`
}

// BuildSessionReport composes a SessionReport from a session result and
// metrics snapshot. exitCode is the code the process will exit with.
func BuildSessionReport(result *SessionResult, snap metrics.Snapshot, exitCode int) *SessionReport {
	status, _ := DetermineOutcome(result.Err)
	message := "session completed successfully"
	if result.Err != nil {
		message = result.Err.Error()
	}

	report := &SessionReport{
		SessionID:  result.SessionID,
		Version:    types.Version,
		Selection:  result.Selection.String(),
		Testing:    result.Testing,
		Outcome:    status,
		Message:    message,
		ExitCode:   exitCode,
		DurationMs: result.Duration.Milliseconds(),
		Puzzles:    make([]ReportPuzzle, 0, len(result.Reports)),
		Metrics:    &snap,
	}

	for _, r := range result.Reports {
		p := ReportPuzzle{
			Puzzle:   r.Puzzle,
			Profile:  r.Profile,
			TimingNs: make(map[string]int64, len(r.Timings)),
		}
		if v, ok := r.PartOne.Get(); ok {
			p.PartOne = &v
		}
		if v, ok := r.PartTwo.Get(); ok {
			p.PartTwo = &v
		}
		for _, e := range r.Timings {
			p.TimingNs[e.Label] = e.Duration.Nanoseconds()
		}
		report.Puzzles = append(report.Puzzles, p)
	}

	return report
}

// WriteSessionReport writes the report as JSON to the specified path.
// If path is "-", writes to stderr.
func WriteSessionReport(report *SessionReport, path string) error {
	if path == "" {
		return errors.New("report path must not be empty")
	}

	if path == "-" {
		if err := writeSessionReportTo(report, os.Stderr); err != nil {
			return fmt.Errorf("failed to write report to stderr: %w", err)
		}
		return nil
	}

	data, err := marshalReport(report)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}

// writeSessionReportTo writes report JSON to any writer.
func writeSessionReportTo(report *SessionReport, w io.Writer) error {
	data, err := marshalReport(report)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func marshalReport(report *SessionReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}
