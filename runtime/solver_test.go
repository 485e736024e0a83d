package runtime

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/advent/adapter"
	"github.com/pithecene-io/advent/loader"
	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/record"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

const dayOneInput = "1\n2\n3\n"

// sumSquares answers the sum and the sum of squares of one integer per line.
type sumSquares struct{}

func (sumSquares) Parse(raw string) ([]int, error) {
	var out []int
	for _, f := range strings.Fields(raw) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (sumSquares) PartOne(in []int) (int, error) {
	total := 0
	for _, n := range in {
		total += n
	}
	return total, nil
}

func (sumSquares) PartTwo(in []int) (int, error) {
	total := 0
	for _, n := range in {
		total += n * n
	}
	return total, nil
}

type partOneOnly struct {
	solution.Unimplemented[[]int, int]
}

func (partOneOnly) Parse(raw string) ([]int, error) { return sumSquares{}.Parse(raw) }
func (partOneOnly) PartOne(in []int) (int, error)   { return sumSquares{}.PartOne(in) }

type fakeAdapter struct {
	name string
	err  error

	mu     sync.Mutex
	events []*adapter.AnswerEvent
	closed bool
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) Publish(_ context.Context, e *adapter.AnswerEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
	return a.err
}

func (a *fakeAdapter) Close() error {
	a.closed = true
	return nil
}

type fakeArchive struct {
	err     error
	reports []*solution.Report
}

func (f *fakeArchive) Write(_ context.Context, r *solution.Report, _ bool, _ time.Time) error {
	f.reports = append(f.reports, r)
	return f.err
}

var fixedNow = time.Date(2026, 12, 1, 5, 0, 0, 0, time.UTC)

func testInputs() loader.Static {
	return loader.Static{
		loader.Name(types.Day01, false): dayOneInput,
		loader.Name(types.Day01, true):  dayOneInput,
		loader.Name(types.Day02, false): "4\n",
		loader.Name(types.Day02, true):  "4\n",
	}
}

func TestSolver_FullRun(t *testing.T) {
	var out, logs bytes.Buffer
	collector := metrics.NewCollector("static", "sess")
	arch := &fakeArchive{}
	hook := &fakeAdapter{name: "hook"}
	bus := &fakeAdapter{name: "bus"}
	recPath := filepath.Join(t.TempDir(), "answers.rec")

	s := NewSolver(Config{
		SessionID: "sess",
		Input:     testInputs(),
		Output:    &out,
		Record:    record.NewWriter(recPath),
		Archive:   arch,
		Adapters:  []adapter.Adapter{hook, bus},
		Logger:    log.NewLoggerWithWriter(log.Context{SessionID: "sess"}, zapcore.DebugLevel, &logs),
		Collector: collector,
		Now:       func() time.Time { return fixedNow },
	})

	outcome, err := solution.Run(t.Context(), types.Day01, sumSquares{}, s, false)
	require.NoError(t, err)
	assert.Equal(t, solution.Some(14), outcome.PartTwo())

	assert.Contains(t, out.String(), "--- DAY 1 ---")
	assert.Contains(t, out.String(), "Part 2: 14")

	entries, err := record.ReadFile(recPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sess", entries[0].SessionID)

	require.Len(t, arch.reports, 1)
	for _, a := range []*fakeAdapter{hook, bus} {
		require.Len(t, a.events, 1, a.name)
		assert.Equal(t, adapter.EventTypeAnswers, a.events[0].EventType)
		assert.Equal(t, "2026-12-01T05:00:00Z", a.events[0].Timestamp)
	}

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.PuzzlesStarted)
	assert.Equal(t, int64(1), snap.PuzzlesCompleted)
	assert.Equal(t, int64(2), snap.PartsSolved)
	assert.Equal(t, int64(1), snap.LoadSuccess)
	assert.Equal(t, int64(1), snap.RecordSuccess)
	assert.Equal(t, int64(1), snap.ArchiveSuccess)
	assert.Equal(t, int64(2), snap.PublishSuccess)

	assert.Contains(t, logs.String(), "input loaded")

	require.NoError(t, s.Close())
	assert.True(t, hook.closed)
	assert.True(t, bus.closed)
}

func TestSolver_TestingIsSilent(t *testing.T) {
	var out bytes.Buffer
	s := NewSolver(Config{Input: testInputs(), Output: &out})

	_, err := solution.Run(t.Context(), types.Day01, sumSquares{}, s, true)
	require.NoError(t, err)
	assert.Empty(t, out.String())

	s = NewSolver(Config{Input: testInputs(), Output: &out, ShowTesting: true})
	_, err = solution.Run(t.Context(), types.Day01, sumSquares{}, s, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "--- DAY 1 ---")
}

func TestSolver_CustomRender(t *testing.T) {
	var out bytes.Buffer
	s := NewSolver(Config{
		Input:  testInputs(),
		Output: &out,
		Render: func(w io.Writer, r *solution.Report) error {
			_, err := io.WriteString(w, "rendered "+r.PartOne.String())
			return err
		},
	})

	_, err := solution.Run(t.Context(), types.Day01, partOneOnly{}, s, false)
	require.NoError(t, err)
	assert.Equal(t, "rendered 6", out.String())
}

func TestSolver_LoadFailureCounted(t *testing.T) {
	collector := metrics.NewCollector("static", "sess")
	s := NewSolver(Config{Input: loader.Static{}, Collector: collector})

	_, err := solution.Run(t.Context(), types.Day07, sumSquares{}, s, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrNotFound)

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.PuzzlesStarted)
	assert.Equal(t, int64(1), snap.LoadFailure)
	assert.Zero(t, snap.PuzzlesCompleted)
}

func TestSolver_FinalizeFailuresAreBestEffort(t *testing.T) {
	var logs bytes.Buffer
	collector := metrics.NewCollector("static", "sess")
	good := &fakeAdapter{name: "good"}
	bad := &fakeAdapter{name: "bad", err: errors.New("unreachable")}

	// A regular file where the record directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewSolver(Config{
		Input:     testInputs(),
		Output:    io.Discard,
		Record:    record.NewWriter(filepath.Join(blocker, "x.rec")),
		Archive:   &fakeArchive{err: errors.New("bucket gone")},
		Adapters:  []adapter.Adapter{good, bad},
		Logger:    log.NewLoggerWithWriter(log.Context{}, zapcore.InfoLevel, &logs),
		Collector: collector,
	})

	outcome, err := solution.Run(t.Context(), types.Day01, partOneOnly{}, s, false)
	require.NoError(t, err, "finalize failures never fail the run")
	assert.False(t, outcome.PartTwo().Present())

	snap := collector.Snapshot()
	assert.Equal(t, int64(1), snap.RecordFailure)
	assert.Equal(t, int64(1), snap.ArchiveFailure)
	assert.Equal(t, int64(1), snap.PublishSuccess)
	assert.Equal(t, int64(1), snap.PublishFailure)
	assert.Equal(t, int64(1), snap.PartsSolved)
	assert.Equal(t, int64(1), snap.PartsUnimplemented)
	assert.Len(t, good.events, 1)

	assert.Contains(t, logs.String(), "failed to archive report")
	assert.Contains(t, logs.String(), "adapter publish failed")
}

func TestSolver_Defaults(t *testing.T) {
	s := NewSolver(Config{Input: testInputs()})
	assert.Equal(t, DefaultPublishTimeout, s.config.PublishTimeout)
	assert.NotNil(t, s.config.Now)
	assert.NotNil(t, s.config.Output)
	assert.NoError(t, s.Close())
}
