package solution

import (
	"fmt"
	"strings"

	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

// Outcome is the immutable record of one completed Run.
type Outcome[O any] struct {
	puzzle  types.PuzzleID
	partOne Answer[O]
	partTwo Answer[O]
	timings timer.Timings
}

// Puzzle returns the puzzle that produced the outcome.
func (o *Outcome[O]) Puzzle() types.PuzzleID { return o.puzzle }

// PartOne returns the part one answer.
func (o *Outcome[O]) PartOne() Answer[O] { return o.partOne }

// PartTwo returns the part two answer.
func (o *Outcome[O]) PartTwo() Answer[O] { return o.partTwo }

// Timings returns a copy of the four stage timings.
func (o *Outcome[O]) Timings() timer.Timings {
	out := make(timer.Timings, len(o.timings))
	copy(out, o.timings)
	return out
}

// Report erases the answer type, rendering each present answer with %v.
func (o *Outcome[O]) Report() *Report {
	return &Report{
		Puzzle:  o.puzzle,
		PartOne: formatAnswer(o.partOne),
		PartTwo: formatAnswer(o.partTwo),
		Timings: o.Timings(),
		Profile: Profile(),
	}
}

// Report is the type-erased view of an Outcome handed to display and
// finalize hooks, and to every output format.
type Report struct {
	Puzzle  types.PuzzleID `json:"puzzle" yaml:"puzzle"`
	PartOne Answer[string] `json:"part_one" yaml:"part_one"`
	PartTwo Answer[string] `json:"part_two" yaml:"part_two"`
	Timings timer.Timings  `json:"timings" yaml:"timings"`
	Profile string         `json:"profile" yaml:"profile"`
}

// Answer returns the answer for part.
func (r *Report) Answer(part types.Part) Answer[string] {
	if part == types.PartTwo {
		return r.PartTwo
	}
	return r.PartOne
}

// String renders the plain-text report:
//
//	--- DAY 1 ---
//	Part 1: 6
//	Part 2: unimplemented
//
//	--- BENCH (RELEASE) ---
//	Parsing: 7.2µs
//	...
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "--- DAY %s ---\n", r.Puzzle)
	fmt.Fprintf(&b, "%s: %s\n", types.PartOne, r.PartOne)
	fmt.Fprintf(&b, "%s: %s\n", types.PartTwo, r.PartTwo)
	fmt.Fprintf(&b, "\n--- BENCH (%s) ---\n", r.Profile)
	b.WriteString(r.Timings.String())
	return b.String()
}

// Profile returns the build profile label, "DEBUG" for builds tagged
// debug and "RELEASE" otherwise. It is cosmetic only.
func Profile() string {
	return profile
}
