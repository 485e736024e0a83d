// Package runtime drives puzzle sessions for the advent CLI.
//
// A Session selects puzzles from a Registry and runs them through a Solver,
// the CLI's Loader capability: it fetches input from the configured
// backend, renders each report, and finalizes it into the record file, the
// archive and every configured adapter.
package runtime

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pithecene-io/advent/adapter"
	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/record"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// DefaultPublishTimeout bounds one finalize fan-out to the adapters.
const DefaultPublishTimeout = 30 * time.Second

// Archiver stores finished reports. Implemented by *archive.Archive.
type Archiver interface {
	Write(ctx context.Context, r *solution.Report, testing bool, at time.Time) error
}

// RenderFunc writes one report to w.
type RenderFunc func(w io.Writer, r *solution.Report) error

// Config wires a Solver.
type Config struct {
	// SessionID tags logs, records, archive rows and published events.
	SessionID string
	// Input loads raw puzzle text (required).
	Input solution.Solver
	// Render formats reports for display. Nil prints Report.String().
	Render RenderFunc
	// Output receives displayed reports (default os.Stdout).
	Output io.Writer
	// ShowTesting displays reports of testing runs too.
	ShowTesting bool

	Record   *record.Writer
	Archive  Archiver
	Adapters []adapter.Adapter
	// PublishTimeout bounds publishing to all adapters (default 30s).
	PublishTimeout time.Duration

	Logger    *log.Logger
	Collector *metrics.Collector
	// Now is the clock used for timestamps (default time.Now).
	Now func() time.Time
}

// Solver implements solution.Solver, solution.Displayer and
// solution.Finalizer for CLI sessions.
type Solver struct {
	config Config
	logger *log.Logger
}

// NewSolver creates a Solver from config, applying defaults.
func NewSolver(cfg Config) *Solver {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultPublishTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	return &Solver{config: cfg, logger: logger}
}

// Load fetches the puzzle input and counts the puzzle as started.
func (s *Solver) Load(ctx context.Context, id types.PuzzleID, testing bool) (string, error) {
	s.config.Collector.IncPuzzleStarted()

	raw, err := s.config.Input.Load(ctx, id, testing)
	if err != nil {
		s.config.Collector.IncLoadFailure()
		s.logger.Error("failed to load input", map[string]any{
			"puzzle":  id.Padded(),
			"testing": testing,
			"error":   err.Error(),
		})
		return "", err
	}

	s.config.Collector.IncLoadSuccess()
	s.logger.Debug("input loaded", map[string]any{
		"puzzle": id.Padded(),
		"bytes":  len(raw),
	})
	return raw, nil
}

// Display renders the report. Testing runs stay silent unless ShowTesting
// is set.
func (s *Solver) Display(r *solution.Report, testing bool) {
	if testing && !s.config.ShowTesting {
		return
	}

	var err error
	if s.config.Render != nil {
		err = s.config.Render(s.config.Output, r)
	} else {
		_, err = io.WriteString(s.config.Output, r.String())
	}
	if err != nil {
		s.logger.Warn("failed to display report", map[string]any{
			"puzzle": r.Puzzle.Padded(),
			"error":  err.Error(),
		})
	}
}

// Finalize records, archives and publishes the report. Failures are
// logged and counted; they never change the run's result.
func (s *Solver) Finalize(ctx context.Context, r *solution.Report, testing bool) {
	solved := 0
	if r.PartOne.Present() {
		solved++
	}
	if r.PartTwo.Present() {
		solved++
	}
	s.config.Collector.IncPuzzleCompleted()
	s.config.Collector.ObserveParts(solved)

	now := s.config.Now()
	logger := s.logger.With(map[string]any{"puzzle": r.Puzzle.Padded()})

	if s.config.Record != nil {
		entry := record.NewEntry(r, s.config.SessionID, testing, now)
		if err := s.config.Record.Append(entry); err != nil {
			s.config.Collector.IncRecordFailure()
			logger.Warn("failed to append record (best effort)", withError(nil, err))
		} else {
			s.config.Collector.IncRecordSuccess()
		}
	}

	if s.config.Archive != nil {
		if err := s.config.Archive.Write(ctx, r, testing, now); err != nil {
			s.config.Collector.IncArchiveFailure()
			logger.Warn("failed to archive report (best effort)", withError(nil, err))
		} else {
			s.config.Collector.IncArchiveSuccess()
		}
	}

	if len(s.config.Adapters) > 0 {
		s.publish(ctx, adapter.NewAnswerEvent(r, s.config.SessionID, testing, now))
	}
}

// publish sends the event to every adapter concurrently. One adapter
// failing does not cancel the others.
func (s *Solver) publish(ctx context.Context, event *adapter.AnswerEvent) {
	ctx, cancel := context.WithTimeout(ctx, s.config.PublishTimeout)
	defer cancel()

	var g errgroup.Group
	for _, a := range s.config.Adapters {
		g.Go(func() error {
			fields := map[string]any{
				"adapter": a.Name(),
				"puzzle":  event.Puzzle.Padded(),
			}
			if err := a.Publish(ctx, event); err != nil {
				s.config.Collector.IncPublishFailure()
				s.logger.Warn("adapter publish failed (best effort)", withError(fields, err))
				return err
			}
			s.config.Collector.IncPublishSuccess()
			s.logger.Debug("answers published", fields)
			return nil
		})
	}
	_ = g.Wait()
}

// Close releases every adapter.
func (s *Solver) Close() error {
	var firstErr error
	for _, a := range s.config.Adapters {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func withError(fields map[string]any, err error) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}

var (
	_ solution.Solver    = (*Solver)(nil)
	_ solution.Displayer = (*Solver)(nil)
	_ solution.Finalizer = (*Solver)(nil)
)
