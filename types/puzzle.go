// Package types defines the shared domain vocabulary of the advent harness.
//
//nolint:revive // types is a common Go package naming convention
package types

import (
	"fmt"
	"strconv"
)

// PuzzleID identifies one puzzle (one calendar day of the event).
type PuzzleID uint8

// Puzzle identifiers for the 25 days of an event.
const (
	Day01 PuzzleID = iota + 1
	Day02
	Day03
	Day04
	Day05
	Day06
	Day07
	Day08
	Day09
	Day10
	Day11
	Day12
	Day13
	Day14
	Day15
	Day16
	Day17
	Day18
	Day19
	Day20
	Day21
	Day22
	Day23
	Day24
	Day25
)

// MaxPuzzleID is the last puzzle of an event.
const MaxPuzzleID = Day25

// String returns the bare number, e.g. "7".
func (id PuzzleID) String() string {
	return strconv.Itoa(int(id))
}

// Padded returns the two-digit form used in input file names, e.g. "07".
func (id PuzzleID) Padded() string {
	return fmt.Sprintf("%02d", uint8(id))
}

// ParsePuzzleID parses a decimal puzzle number in the range 1..255.
func ParsePuzzleID(s string) (PuzzleID, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid puzzle id %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("invalid puzzle id %q: must be >= 1", s)
	}
	return PuzzleID(n), nil
}

// Part selects one of the two sub-answers of a puzzle.
type Part uint8

const (
	// PartOne is the first sub-answer.
	PartOne Part = 1
	// PartTwo is the second sub-answer.
	PartTwo Part = 2
)

// String returns "Part 1" or "Part 2".
func (p Part) String() string {
	return "Part " + strconv.Itoa(int(p))
}
