// Package solutiontest derives tests from a solution and its expected
// answers for the example input.
//
// A puzzle package typically carries one test per solution:
//
//	func TestDay01(t *testing.T) {
//		solutiontest.Verify(t, types.Day01, Day01{}, loader.NewFS("testdata", ""))
//	}
package solutiontest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// Sol is a solution that also knows its expected answers.
type Sol[I, O any] interface {
	solution.Solution[I, O]
	solution.Expecter[O]
}

// Verify loads the testing input for id, parses it, and checks each part
// against sol's expected answers in its own sub-test. A part whose
// expected answer is absent is skipped.
//
// sol must implement solution.Expecter; a solution without expectations
// is a contract violation and fails the test at once.
func Verify[I, O any](t *testing.T, id types.PuzzleID, sol solution.Solution[I, O], s solution.Solver) {
	t.Helper()

	exp, ok := sol.(solution.Expecter[O])
	if !ok {
		t.Fatalf("puzzle %s: %T provides no expected answers", id, sol)
	}

	raw, err := s.Load(t.Context(), id, true)
	require.NoError(t, err, "load testing input for puzzle %s", id)

	in, err := sol.Parse(raw)
	require.NoError(t, err, "parse testing input for puzzle %s", id)

	wantOne, wantTwo := exp.Expected()
	checkPart(t, types.PartOne, wantOne, func() (O, error) { return sol.PartOne(in) })
	checkPart(t, types.PartTwo, wantTwo, func() (O, error) { return sol.PartTwo(in) })
}

func checkPart[O any](t *testing.T, part types.Part, want solution.Answer[O], stage func() (O, error)) {
	t.Helper()
	t.Run(part.String(), func(t *testing.T) {
		expected, ok := want.Get()
		if !ok {
			t.Skipf("%s: expected answer not provided", part)
		}
		got, err := stage()
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})
}
