// Package solution is the puzzle harness core.
//
// A puzzle implementation satisfies Solution: it parses raw input text and
// computes two parts from the parsed value. Run wires one implementation to
// a Solver (which supplies the raw text and may render or forward the
// result), timing each stage:
//
//	load -> parse -> part one -> part two -> display -> finalize
//
// A part that has no logic yet returns ErrUnimplemented (embed
// Unimplemented to get that default for free). Run reports such a part as
// an absent Answer. Every other error stops the run and is returned; a
// panicking part unwinds through Run untouched.
package solution

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

// Stage labels, in the order Run records them.
const (
	LabelParsing = "Parsing"
	LabelPartOne = "Part 1"
	LabelPartTwo = "Part 2"
	LabelTotal   = "Total"
)

// Solution is the contract for one puzzle. I is the parsed input type and
// O the answer type shared by both parts.
//
// Parts must treat their input as read-only: the same value is handed to
// PartOne and then PartTwo.
type Solution[I, O any] interface {
	Parse(raw string) (I, error)
	PartOne(in I) (O, error)
	PartTwo(in I) (O, error)
}

// Solver supplies raw puzzle text. When testing is true it returns the
// small example input rather than the full puzzle input.
type Solver interface {
	Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error)
}

// Displayer is an optional Solver capability that replaces the default
// report printing.
type Displayer interface {
	Display(r *Report, testing bool)
}

// Finalizer is an optional Solver capability invoked after display, for
// side effects such as submitting or archiving an answer.
type Finalizer interface {
	Finalize(ctx context.Context, r *Report, testing bool)
}

// Expecter is an optional companion to Solution holding the known answers
// for the testing input. It is consumed by derived tests, never by Run.
type Expecter[O any] interface {
	Expected() (partOne, partTwo Answer[O])
}

// LoaderFunc adapts a function to the Solver interface.
type LoaderFunc func(ctx context.Context, id types.PuzzleID, testing bool) (string, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error) {
	return f(ctx, id, testing)
}

// Input phases that can fail before any part runs.
const (
	PhaseLoad  = "load"
	PhaseParse = "parse"
)

// InputError is returned by Run when loading or parsing the input fails.
type InputError struct {
	Puzzle types.PuzzleID
	Phase  string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s puzzle %s: %v", e.Phase, e.Puzzle, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// StageError is returned by Run when a part fails with anything other than
// ErrUnimplemented.
type StageError struct {
	Puzzle types.PuzzleID
	Part   types.Part
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("puzzle %s %s: %v", e.Puzzle, e.Part, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// displayOutput is where the default display writes.
var displayOutput io.Writer = os.Stdout

// Run executes puzzle id with sol, loading input through s.
//
// The clock starts after Load returns, so input retrieval is not measured.
// Total is marked right after part two, before display and finalize. On
// error no Outcome is produced and neither display nor finalize runs.
func Run[I, O any](ctx context.Context, id types.PuzzleID, sol Solution[I, O], s Solver, testing bool) (*Outcome[O], error) {
	raw, err := s.Load(ctx, id, testing)
	if err != nil {
		return nil, &InputError{Puzzle: id, Phase: PhaseLoad, Err: err}
	}

	tm := timer.Start()

	in, err := sol.Parse(raw)
	if err != nil {
		return nil, &InputError{Puzzle: id, Phase: PhaseParse, Err: err}
	}
	tm.Mark(LabelParsing)

	partOne, err := catchUnimplemented(func() (O, error) { return sol.PartOne(in) })
	if err != nil {
		return nil, &StageError{Puzzle: id, Part: types.PartOne, Err: err}
	}
	tm.Mark(LabelPartOne)

	partTwo, err := catchUnimplemented(func() (O, error) { return sol.PartTwo(in) })
	if err != nil {
		return nil, &StageError{Puzzle: id, Part: types.PartTwo, Err: err}
	}
	tm.Mark(LabelPartTwo)
	tm.MarkTotal(LabelTotal)

	outcome := &Outcome[O]{
		puzzle:  id,
		partOne: partOne,
		partTwo: partTwo,
		timings: tm.Timings(),
	}

	report := outcome.Report()
	if d, ok := s.(Displayer); ok {
		d.Display(report, testing)
	} else if !testing {
		_, _ = io.WriteString(displayOutput, report.String())
	}
	if f, ok := s.(Finalizer); ok {
		f.Finalize(ctx, report, testing)
	}

	return outcome, nil
}
