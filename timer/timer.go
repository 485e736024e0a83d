// Package timer records per-stage elapsed durations for a single puzzle run.
//
// A Timer knows nothing about what it measures. Callers mark stage
// boundaries in order; the Timer appends one Entry per mark. All readings
// come from the monotonic clock carried by time.Time, so wall-clock
// adjustments never skew a measurement.
package timer

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one labelled elapsed duration.
type Entry struct {
	Label    string        `json:"label" yaml:"label" msgpack:"label"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns" msgpack:"duration_ns"`
}

// Timings is the ordered sequence of entries produced by a Timer.
type Timings []Entry

// Lookup returns the duration recorded under label.
func (t Timings) Lookup(label string) (time.Duration, bool) {
	for _, e := range t {
		if e.Label == label {
			return e.Duration, true
		}
	}
	return 0, false
}

// String renders one "Label: duration" line per entry.
func (t Timings) String() string {
	var b strings.Builder
	for _, e := range t {
		fmt.Fprintf(&b, "%s: %s\n", e.Label, e.Duration)
	}
	return b.String()
}

// Timer accumulates stage timings. The zero value is not usable; call Start.
type Timer struct {
	start   time.Time
	prev    time.Time
	entries Timings
}

// Start returns a Timer whose start and previous-mark instants are now.
func Start() *Timer {
	now := time.Now()
	return &Timer{
		start:   now,
		prev:    now,
		entries: make(Timings, 0, 4),
	}
}

// Mark appends the time elapsed since the previous mark (or Start) under
// label, then moves the previous-mark instant to now.
func (t *Timer) Mark(label string) {
	t.entries = append(t.entries, Entry{Label: label, Duration: time.Since(t.prev)})
	t.prev = time.Now()
}

// MarkTotal appends the time elapsed since Start under label. It leaves
// the previous-mark instant untouched and is meant to be called last.
func (t *Timer) MarkTotal(label string) {
	t.entries = append(t.entries, Entry{Label: label, Duration: time.Since(t.start)})
}

// Timings returns a copy of the entries recorded so far.
func (t *Timer) Timings() Timings {
	out := make(Timings, len(t.entries))
	copy(out, t.entries)
	return out
}
