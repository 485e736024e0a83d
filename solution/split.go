package solution

import (
	"fmt"

	"github.com/pithecene-io/advent/types"
)

// Split is an Output type for puzzles whose two parts answer with
// different types. Part one returns P1(a), part two returns P2(b).
type Split[A, B any] struct {
	part types.Part
	p1   A
	p2   B
}

// P1 wraps a part one answer.
func P1[A, B any](a A) Split[A, B] {
	return Split[A, B]{part: types.PartOne, p1: a}
}

// P2 wraps a part two answer.
func P2[A, B any](b B) Split[A, B] {
	return Split[A, B]{part: types.PartTwo, p2: b}
}

// Part reports which side is held.
func (s Split[A, B]) Part() types.Part {
	return s.part
}

// String renders the held value.
func (s Split[A, B]) String() string {
	if s.part == types.PartTwo {
		return fmt.Sprintf("%v", s.p2)
	}
	return fmt.Sprintf("%v", s.p1)
}
