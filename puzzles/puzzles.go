// Package puzzles holds the compiled-in puzzle solutions.
//
// Adding a day means writing its solution type and one Register call
// below; the registry is built once at startup.
package puzzles

import (
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// Register adds every puzzle of this package to reg.
func Register(reg *solution.Registry) {
	solution.Register[[]int, int](reg, types.Day01, Day01{})
}

// Registry returns a new registry holding every puzzle.
func Registry() *solution.Registry {
	reg := solution.NewRegistry()
	Register(reg)
	return reg
}
