// Package adapter defines the boundary for forwarding finished puzzle
// answers to downstream systems (a submission service, a leaderboard bot,
// a pub/sub channel).
//
// Adapters are driven from the runtime's finalize hook. They never affect
// the outcome of a run: a failed publish is logged and counted only.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

// EventTypeAnswers is the event_type of every AnswerEvent.
const EventTypeAnswers = "puzzle_answers"

// AnswerEvent is the payload published when a puzzle run finishes.
// Absent answers are encoded as null.
type AnswerEvent struct {
	ContractVersion string                  `json:"contract_version"`
	EventType       string                  `json:"event_type"`
	SessionID       string                  `json:"session_id"`
	Puzzle          types.PuzzleID          `json:"puzzle"`
	PartOne         solution.Answer[string] `json:"part_one"`
	PartTwo         solution.Answer[string] `json:"part_two"`
	Testing         bool                    `json:"testing"`
	Profile         string                  `json:"profile"`
	TotalNs         int64                   `json:"total_ns"`
	Timestamp       string                  `json:"timestamp"` // RFC 3339
}

// NewAnswerEvent builds the event for a finished report.
func NewAnswerEvent(r *solution.Report, sessionID string, testing bool, now time.Time) *AnswerEvent {
	total, _ := r.Timings.Lookup(solution.LabelTotal)
	return &AnswerEvent{
		ContractVersion: types.ContractVersion,
		EventType:       EventTypeAnswers,
		SessionID:       sessionID,
		Puzzle:          r.Puzzle,
		PartOne:         r.PartOne,
		PartTwo:         r.PartTwo,
		Testing:         testing,
		Profile:         r.Profile,
		TotalNs:         total.Nanoseconds(),
		Timestamp:       now.UTC().Format(time.RFC3339),
	}
}

// Adapter publishes answer events to a downstream system.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string

	// Publish sends an answer event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *AnswerEvent) error

	// Close releases adapter resources.
	Close() error
}

// Backoff returns the delay before retry attempt i (i >= 1).
func Backoff(base time.Duration, attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * base
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so Retry stops without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls attempt up to 1+retries times, waiting Backoff(base, i)
// before retry i. It stops at the first success, at a Permanent error, or
// when ctx is done. Returned errors keep the last attempt's error in their
// chain.
func Retry(ctx context.Context, retries int, base time.Duration, attempt func(context.Context) error) error {
	var lastErr error
	attempts := 1 + retries

	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("canceled during backoff: %w", ctx.Err())
			case <-time.After(Backoff(base, i)):
			}
		} else if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return fmt.Errorf("non-retriable error: %w", perm.err)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
