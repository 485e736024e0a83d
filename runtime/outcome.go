package runtime

import (
	"errors"

	"github.com/pithecene-io/advent/solution"
)

// Exit codes returned by the advent binary.
const (
	ExitCodeSuccess      = 0 // every selected puzzle ran
	ExitCodePuzzleError  = 1 // a part failed with a genuine error
	ExitCodeLoadError    = 2 // puzzle input could not be retrieved
	ExitCodeInvalidInput = 3 // unparseable input, unknown puzzle or bad flags
)

// OutcomeStatus classifies how a session ended.
type OutcomeStatus string

const (
	OutcomeSuccess      OutcomeStatus = "success"
	OutcomePuzzleError  OutcomeStatus = "puzzle_error"
	OutcomeLoadError    OutcomeStatus = "load_error"
	OutcomeInvalidInput OutcomeStatus = "invalid_input"
)

// DetermineOutcome maps a session error to its status and exit code.
//
// Mapping:
//   - nil: success (0)
//   - load InputError: load_error (2)
//   - parse InputError or ErrNotRegistered: invalid_input (3)
//   - anything else, including StageError: puzzle_error (1)
func DetermineOutcome(err error) (OutcomeStatus, int) {
	if err == nil {
		return OutcomeSuccess, ExitCodeSuccess
	}

	var inErr *solution.InputError
	if errors.As(err, &inErr) {
		if inErr.Phase == solution.PhaseLoad {
			return OutcomeLoadError, ExitCodeLoadError
		}
		return OutcomeInvalidInput, ExitCodeInvalidInput
	}
	if errors.Is(err, solution.ErrNotRegistered) {
		return OutcomeInvalidInput, ExitCodeInvalidInput
	}
	return OutcomePuzzleError, ExitCodePuzzleError
}
