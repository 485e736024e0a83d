package solution

import "errors"

// UnimplementedText is the placeholder rendered for an absent answer.
const UnimplementedText = "unimplemented"

// ErrUnimplemented is returned by a part that has no logic yet. Run turns
// it into an absent Answer; it never escapes Run.
var ErrUnimplemented = errors.New("solution: part not implemented")

// Unimplemented provides the default PartOne and PartTwo. Embed it in a
// solution type and override the parts as they get written:
//
//	type day01 struct {
//		solution.Unimplemented[[]int, int]
//	}
//
// Parse has no default: a solution without one does not satisfy
// Solution and fails to compile.
type Unimplemented[I, O any] struct{}

// PartOne reports that part one is not implemented.
func (Unimplemented[I, O]) PartOne(I) (O, error) {
	var zero O
	return zero, ErrUnimplemented
}

// PartTwo reports that part two is not implemented.
func (Unimplemented[I, O]) PartTwo(I) (O, error) {
	var zero O
	return zero, ErrUnimplemented
}

// catchUnimplemented runs stage and converts ErrUnimplemented (or anything
// wrapping it) into an absent answer. Any other error is returned as is.
// Panics are not recovered: they unwind with their normal diagnostic.
func catchUnimplemented[O any](stage func() (O, error)) (Answer[O], error) {
	v, err := stage()
	switch {
	case err == nil:
		return Some(v), nil
	case errors.Is(err, ErrUnimplemented):
		return None[O](), nil
	default:
		return None[O](), err
	}
}
