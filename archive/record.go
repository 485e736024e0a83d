package archive

import (
	"fmt"
	"time"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

// Record is an archived report as read back from the dataset.
type Record struct {
	SessionID  string
	Puzzle     types.PuzzleID
	PartOne    solution.Answer[string]
	PartTwo    solution.Answer[string]
	Testing    bool
	Profile    string
	Timings    timer.Timings
	ArchivedAt time.Time
}

// Report converts the record back into a report.
func (r *Record) Report() *solution.Report {
	return &solution.Report{
		Puzzle:  r.Puzzle,
		PartOne: r.PartOne,
		PartTwo: r.PartTwo,
		Timings: r.Timings,
		Profile: r.Profile,
	}
}

// toRecordMap flattens a report for Lode. HiveLayout requires map records,
// and the partition keys must be present as plain strings.
func toRecordMap(r *solution.Report, sessionID string, testing bool, at time.Time) map[string]any {
	timings := make([]any, 0, len(r.Timings))
	for _, e := range r.Timings {
		timings = append(timings, map[string]any{
			"label":       e.Label,
			"duration_ns": e.Duration.Nanoseconds(),
		})
	}
	return map[string]any{
		"record_kind":      RecordKindReport,
		"contract_version": types.ContractVersion,
		"puzzle":           r.Puzzle.Padded(),
		"session_id":       sessionID,
		"part_one":         answerValue(r.PartOne),
		"part_two":         answerValue(r.PartTwo),
		"testing":          testing,
		"profile":          r.Profile,
		"timings":          timings,
		"archived_at":      at.UTC().Format(time.RFC3339Nano),
	}
}

func answerValue(a solution.Answer[string]) any {
	if v, ok := a.Get(); ok {
		return v
	}
	return nil
}

func fromRecordMap(m map[string]any) (*Record, error) {
	id, err := types.ParsePuzzleID(toString(m["puzzle"]))
	if err != nil {
		return nil, fmt.Errorf("archived record: %w", err)
	}

	rec := &Record{
		SessionID: toString(m["session_id"]),
		Puzzle:    id,
		PartOne:   answerFrom(m["part_one"]),
		PartTwo:   answerFrom(m["part_two"]),
		Profile:   toString(m["profile"]),
	}
	rec.Testing, _ = m["testing"].(bool)

	if ts := toString(m["archived_at"]); ts != "" {
		at, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("archived record: bad archived_at %q: %w", ts, err)
		}
		rec.ArchivedAt = at
	}

	entries, _ := m["timings"].([]any)
	for _, raw := range entries {
		e, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		rec.Timings = append(rec.Timings, timer.Entry{
			Label:    toString(e["label"]),
			Duration: time.Duration(toInt64(e["duration_ns"])),
		})
	}
	return rec, nil
}

func answerFrom(v any) solution.Answer[string] {
	s, ok := v.(string)
	if !ok {
		return solution.None[string]()
	}
	return solution.Some(s)
}

// toString converts a value to string, returning empty string for nil/non-string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toInt64 accepts the numeric shapes a JSON decode or an in-memory record
// can produce.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case interface{ Int64() (int64, error) }:
		i, _ := n.Int64()
		return i
	}
	return 0
}
