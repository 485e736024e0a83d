package loader

import (
	"context"
	"fmt"

	"github.com/pithecene-io/advent/types"
)

// Static serves inputs from memory, keyed by object name (see Name).
type Static map[string]string

// Load returns the stored input for id.
func (s Static) Load(_ context.Context, id types.PuzzleID, testing bool) (string, error) {
	name := Name(id, testing)
	raw, ok := s[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return raw, nil
}
