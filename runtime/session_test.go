package runtime

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/advent/loader"
	"github.com/pithecene-io/advent/log"
	"github.com/pithecene-io/advent/metrics"
	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/types"
)

func testRegistry() *solution.Registry {
	reg := solution.NewRegistry()
	solution.Register(reg, types.Day01, sumSquares{})
	solution.Register(reg, types.Day02, partOneOnly{})
	return reg
}

func TestSelection_Validate(t *testing.T) {
	assert.Error(t, Selection{}.Validate())
	assert.Error(t, Selection{Day: 1, All: true}.Validate())
	assert.NoError(t, Selection{Day: 1}.Validate())
	assert.NoError(t, Selection{Through: 3}.Validate())
	assert.NoError(t, Selection{All: true}.Validate())
	assert.Equal(t, "all", Selection{All: true}.String())
	assert.Equal(t, "day 4", Selection{Day: 4}.String())
}

func TestSession_Day(t *testing.T) {
	collector := metrics.NewCollector("static", "s1")
	s := NewSolver(Config{Input: testInputs(), Output: io.Discard, Collector: collector})
	session := NewSession("s1", testRegistry(), s, nil, collector)

	result, err := session.Run(t.Context(), Selection{Day: types.Day02}, false)
	require.NoError(t, err)
	require.Len(t, result.Reports, 1)
	assert.Equal(t, "s1", result.SessionID)
	assert.Equal(t, solution.Some("4"), result.Reports[0].PartOne)
	assert.False(t, result.Reports[0].PartTwo.Present())
}

func TestSession_All(t *testing.T) {
	var logs bytes.Buffer
	collector := metrics.NewCollector("static", "s2")
	s := NewSolver(Config{Input: testInputs(), Output: io.Discard, Collector: collector})
	logger := log.NewLoggerWithWriter(log.Context{SessionID: "s2"}, zapcore.InfoLevel, &logs)
	session := NewSession("s2", testRegistry(), s, logger, collector)

	result, err := session.Run(t.Context(), Selection{All: true}, true)
	require.NoError(t, err)
	require.Len(t, result.Reports, 2)
	assert.Equal(t, types.Day01, result.Reports[0].Puzzle)
	assert.Equal(t, types.Day02, result.Reports[1].Puzzle)

	snap := collector.Snapshot()
	assert.Equal(t, int64(2), snap.PuzzlesCompleted)
	assert.Zero(t, snap.PuzzlesFailed)
	assert.Contains(t, logs.String(), "session completed")
}

func TestSession_ThroughGapIsInvalid(t *testing.T) {
	collector := metrics.NewCollector("static", "s3")
	s := NewSolver(Config{Input: testInputs(), Output: io.Discard, Collector: collector})
	session := NewSession("s3", testRegistry(), s, nil, collector)

	result, err := session.Run(t.Context(), Selection{Through: types.Day03}, false)
	require.ErrorIs(t, err, solution.ErrNotRegistered)
	assert.Equal(t, err, result.Err)
	assert.Empty(t, result.Reports)

	_, code := DetermineOutcome(err)
	assert.Equal(t, ExitCodeInvalidInput, code)
	assert.Equal(t, int64(1), collector.Snapshot().PuzzlesFailed)
	assert.Zero(t, collector.Snapshot().PuzzlesStarted, "nothing starts on an incomplete range")
}

func TestSession_StopsAtFirstFailure(t *testing.T) {
	inputs := testInputs()
	delete(inputs, loader.Name(types.Day02, false))

	s := NewSolver(Config{Input: inputs, Output: io.Discard})
	session := NewSession(NewSessionID(), testRegistry(), s, nil, nil)

	result, err := session.Run(t.Context(), Selection{Through: types.Day02}, false)
	require.Error(t, err)
	require.Len(t, result.Reports, 1, "reports before the failure are kept")

	status, code := DetermineOutcome(err)
	assert.Equal(t, OutcomeLoadError, status)
	assert.Equal(t, ExitCodeLoadError, code)
}

func TestSession_InvalidSelection(t *testing.T) {
	session := NewSession("s", testRegistry(), NewSolver(Config{Input: testInputs()}), nil, nil)
	result, err := session.Run(t.Context(), Selection{}, false)
	require.Error(t, err)
	assert.NotNil(t, result)
}

func TestSession_EmptyRegistry(t *testing.T) {
	session := NewSession("s", solution.NewRegistry(), NewSolver(Config{Input: testInputs()}), nil, nil)
	_, err := session.Run(t.Context(), Selection{All: true}, false)
	assert.ErrorIs(t, err, solution.ErrNotRegistered)
}

func TestNewSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
	assert.Len(t, NewSessionID(), 36)
}
