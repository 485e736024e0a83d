// Package loader supplies raw puzzle text to the solution runtime.
//
// Every loader satisfies solution.Solver. Inputs are addressed by the
// same object name on every backend: NN.txt for the full puzzle input and
// test_NN.txt for the example input used when testing.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/storage"
	"github.com/pithecene-io/advent/types"
)

// ErrNotFound is returned when no input exists for a puzzle.
var ErrNotFound = errors.New("puzzle input not found")

// Name returns the object name for a puzzle input, e.g. "07.txt" or
// "test_07.txt".
func Name(id types.PuzzleID, testing bool) string {
	if testing {
		return fmt.Sprintf("test_%s.txt", id.Padded())
	}
	return id.Padded() + ".txt"
}

// DefaultDir is the fs input directory when none is configured.
const DefaultDir = "inputs"

// Backend names accepted by New.
const (
	BackendFS    = "fs"
	BackendS3    = "s3"
	BackendMinIO = "minio"
)

// Options selects and configures an input backend.
type Options struct {
	// Backend is fs, s3 or minio (default fs).
	Backend string
	// Path is a directory for fs, or bucket/prefix for s3 and minio.
	Path string
	// TestPath is the fs directory for testing inputs (default Path).
	TestPath string

	Region       string
	Endpoint     string
	UsePathStyle bool

	// MinIO credentials.
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New builds the loader for opts.Backend.
func New(ctx context.Context, opts Options) (solution.Solver, error) {
	switch opts.Backend {
	case BackendFS, "":
		dir := opts.Path
		if dir == "" {
			dir = DefaultDir
		}
		return NewFS(dir, opts.TestPath), nil
	case BackendS3:
		bucket, prefix := storage.ParseS3Path(opts.Path)
		return NewS3(ctx, storage.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       opts.Region,
			Endpoint:     opts.Endpoint,
			UsePathStyle: opts.UsePathStyle,
		})
	case BackendMinIO:
		bucket, prefix := storage.ParseS3Path(opts.Path)
		return NewMinIO(MinIOConfig{
			Endpoint:  opts.Endpoint,
			AccessKey: opts.AccessKey,
			SecretKey: opts.SecretKey,
			Bucket:    bucket,
			Prefix:    prefix,
			UseSSL:    opts.UseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown input backend: %s (must be fs, s3 or minio)", opts.Backend)
	}
}
