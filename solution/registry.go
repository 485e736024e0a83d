package solution

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pithecene-io/advent/types"
)

// ErrNotRegistered is returned when a puzzle has no registered solution.
var ErrNotRegistered = errors.New("solution: puzzle not registered")

// RunFunc runs one registered puzzle and returns its report.
type RunFunc func(ctx context.Context, s Solver, testing bool) (*Report, error)

// Registry maps puzzle ids to type-erased runners. It is built once at
// startup and read afterwards; it is not safe for concurrent Register.
type Registry struct {
	runners map[types.PuzzleID]RunFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{runners: make(map[types.PuzzleID]RunFunc)}
}

// Register binds sol to id. Registering the same id twice panics.
func Register[I, O any](r *Registry, id types.PuzzleID, sol Solution[I, O]) {
	if id == 0 {
		panic("solution: puzzle id 0 is reserved")
	}
	if _, dup := r.runners[id]; dup {
		panic(fmt.Sprintf("solution: puzzle %s registered twice", id))
	}
	r.runners[id] = func(ctx context.Context, s Solver, testing bool) (*Report, error) {
		outcome, err := Run(ctx, id, sol, s, testing)
		if err != nil {
			return nil, err
		}
		return outcome.Report(), nil
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id types.PuzzleID) bool {
	_, ok := r.runners[id]
	return ok
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []types.PuzzleID {
	ids := make([]types.PuzzleID, 0, len(r.runners))
	for id := range r.runners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Max returns the highest registered id, or 0 when empty.
func (r *Registry) Max() types.PuzzleID {
	ids := r.IDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Complete checks that every id in 1..n is registered.
func (r *Registry) Complete(n types.PuzzleID) error {
	var missing []error
	for i := 1; i <= int(n); i++ {
		if id := types.PuzzleID(i); !r.Has(id) {
			missing = append(missing, fmt.Errorf("puzzle %s: %w", id, ErrNotRegistered))
		}
	}
	return errors.Join(missing...)
}

// Runner returns the deferred runner for id, for callers that pick the
// puzzle at runtime.
func (r *Registry) Runner(id types.PuzzleID) (RunFunc, bool) {
	fn, ok := r.runners[id]
	return fn, ok
}

// Solve runs puzzle id.
func (r *Registry) Solve(ctx context.Context, id types.PuzzleID, s Solver, testing bool) (*Report, error) {
	fn, ok := r.runners[id]
	if !ok {
		return nil, fmt.Errorf("puzzle %s: %w", id, ErrNotRegistered)
	}
	return fn(ctx, s, testing)
}

// SolveThrough runs puzzles 1..n in order. It refuses to start unless all
// of them are registered, and stops at the first failing puzzle, returning
// the reports gathered so far.
func (r *Registry) SolveThrough(ctx context.Context, n types.PuzzleID, s Solver, testing bool) ([]*Report, error) {
	if err := r.Complete(n); err != nil {
		return nil, err
	}
	reports := make([]*Report, 0, n)
	for i := 1; i <= int(n); i++ {
		rep, err := r.Solve(ctx, types.PuzzleID(i), s, testing)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
