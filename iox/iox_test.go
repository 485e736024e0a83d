package iox

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestDiscardClose(t *testing.T) {
	c := &closer{err: errors.New("boom")}
	DiscardClose(c)
	assert.True(t, c.closed)
}

func TestCloseAll(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	a, b, c := &closer{err: errA}, &closer{}, &closer{err: errC}

	err := CloseAll(a, nil, b, c)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.True(t, c.closed)
}

func TestCloseAll_Empty(t *testing.T) {
	assert.NoError(t, CloseAll())
	assert.NoError(t, CloseAll([]io.Closer{nil}...))
}
