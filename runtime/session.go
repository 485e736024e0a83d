package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// Selection picks the puzzles a session runs. Exactly one field is set.
type Selection struct {
	// Day runs a single puzzle.
	Day types.PuzzleID
	// Through runs puzzles 1..Through in order, all of which must exist.
	Through types.PuzzleID
	// All runs 1..the highest registered puzzle.
	All bool
}

// Validate checks that exactly one selector is set.
func (s Selection) Validate() error {
	set := 0
	if s.Day != 0 {
		set++
	}
	if s.Through != 0 {
		set++
	}
	if s.All {
		set++
	}
	if set != 1 {
		return errors.New("select exactly one of --day, --through or --all")
	}
	return nil
}

func (s Selection) String() string {
	switch {
	case s.Day != 0:
		return "day " + s.Day.String()
	case s.Through != 0:
		return "through " + s.Through.String()
	case s.All:
		return "all"
	}
	return "none"
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// SessionResult is the outcome of one session.
type SessionResult struct {
	SessionID string
	Selection Selection
	Testing   bool
	// Reports holds one report per puzzle that completed, in run order.
	Reports  []*solution.Report
	Err      error
	Duration time.Duration
}

// Session runs selected puzzles from a registry through one Solver.
type Session struct {
	id        string
	registry  *solution.Registry
	solver    solution.Solver
	logger    *log.Logger
	collector *metrics.Collector
}

// NewSession creates a session. A nil logger discards output.
func NewSession(id string, reg *solution.Registry, s solution.Solver, logger *log.Logger, collector *metrics.Collector) *Session {
	if logger == nil {
		logger = log.Nop()
	}
	return &Session{
		id:        id,
		registry:  reg,
		solver:    s,
		logger:    logger,
		collector: collector,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Run executes the selection. The returned error is also stored in the
// result, which is never nil.
func (s *Session) Run(ctx context.Context, sel Selection, testing bool) (*SessionResult, error) {
	result := &SessionResult{SessionID: s.id, Selection: sel, Testing: testing}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	if err := sel.Validate(); err != nil {
		result.Err = err
		return result, err
	}

	s.logger.Info("starting session", map[string]any{
		"selection": sel.String(),
		"testing":   testing,
	})

	var err error
	switch {
	case sel.Day != 0:
		var rep *solution.Report
		rep, err = s.registry.Solve(ctx, sel.Day, s.solver, testing)
		if rep != nil {
			result.Reports = append(result.Reports, rep)
		}
	default:
		n := sel.Through
		if sel.All {
			n = s.registry.Max()
			if n == 0 {
				err = fmt.Errorf("no puzzles: %w", solution.ErrNotRegistered)
				break
			}
		}
		result.Reports, err = s.registry.SolveThrough(ctx, n, s.solver, testing)
	}

	if err != nil {
		result.Err = err
		s.collector.IncPuzzleFailed()
		status, code := DetermineOutcome(err)
		s.logger.Error("session failed", map[string]any{
			"outcome":   string(status),
			"exit_code": code,
			"completed": len(result.Reports),
			"error":     err.Error(),
		})
		return result, err
	}

	s.logger.Info("session completed", map[string]any{
		"puzzles": len(result.Reports),
	})
	return result, nil
}
