package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pithecene-io/advent/types"
)

// FS reads inputs from a directory on disk.
type FS struct {
	dir     string
	testDir string
}

// NewFS returns a loader reading NN.txt from dir. Example inputs are read
// from the same directory unless testDir is non-empty.
func NewFS(dir, testDir string) *FS {
	if testDir == "" {
		testDir = dir
	}
	return &FS{dir: dir, testDir: testDir}
}

// Path returns the file a puzzle input is read from.
func (l *FS) Path(id types.PuzzleID, testing bool) string {
	dir := l.dir
	if testing {
		dir = l.testDir
	}
	return filepath.Join(dir, Name(id, testing))
}

// Load reads the input file for id.
func (l *FS) Load(_ context.Context, id types.PuzzleID, testing bool) (string, error) {
	path := l.Path(id, testing)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
