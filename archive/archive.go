// Package archive keeps finished puzzle reports in a Lode dataset.
//
// Reports are stored as JSONL records under a Hive layout partitioned by
// puzzle and session, on the local filesystem or in S3.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/justapithecus/lode/lode"
	lodes3 "github.com/justapithecus/lode/lode/s3"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/storage"
	"github.com/pithecene-io/advent/types"
)

// DefaultDataset is the dataset id used when none is configured.
const DefaultDataset = "advent"

// RecordKindReport discriminates report records.
const RecordKindReport = "puzzle_report"

// ErrNoReports is returned when the dataset holds no report for a query.
var ErrNoReports = errors.New("no archived reports found")

// Config identifies the dataset and the session writing to it.
type Config struct {
	Dataset   string
	SessionID string
}

// Archive writes reports to a Lode dataset.
type Archive struct {
	dataset lode.Dataset
	config  Config
}

// NewFS creates an archive rooted at a local directory.
func NewFS(cfg Config, root string) (*Archive, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, WrapInitError(err, root)
	}
	return NewWithFactory(cfg, lode.NewFSFactory(root))
}

// NewS3 creates an archive stored in an S3 (or S3-compatible) bucket.
// Uses the AWS SDK default credential chain.
func NewS3(ctx context.Context, cfg Config, s3cfg storage.S3Config) (*Archive, error) {
	client, err := storage.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, WrapInitError(err, cfg.Dataset)
	}

	factory := func() (lode.Store, error) {
		return lodes3.New(client, lodes3.Config{
			Bucket: s3cfg.Bucket,
			Prefix: s3cfg.Prefix,
		})
	}
	return NewWithFactory(cfg, factory)
}

// NewWithFactory creates an archive over a custom store factory.
// Use lode.NewMemoryFactory() for testing.
func NewWithFactory(cfg Config, factory lode.StoreFactory) (*Archive, error) {
	if cfg.Dataset == "" {
		cfg.Dataset = DefaultDataset
	}
	ds, err := newDataset(cfg.Dataset, factory)
	if err != nil {
		return nil, WrapInitError(err, cfg.Dataset)
	}
	return &Archive{dataset: ds, config: cfg}, nil
}

func newDataset(id string, factory lode.StoreFactory) (lode.Dataset, error) {
	return lode.NewDataset(
		lode.DatasetID(id),
		factory,
		lode.WithHiveLayout("puzzle", "session_id"),
		lode.WithCodec(lode.NewJSONLCodec()),
	)
}

// Dataset exposes the underlying dataset for reads.
func (a *Archive) Dataset() lode.Dataset { return a.dataset }

// Write appends one report to the dataset.
func (a *Archive) Write(ctx context.Context, r *solution.Report, testing bool, at time.Time) error {
	record := toRecordMap(r, a.config.SessionID, testing, at)
	if _, err := a.dataset.Write(ctx, []any{record}, lode.Metadata{}); err != nil {
		return WrapWriteError(err, fmt.Sprintf("%s/puzzle=%s", a.config.Dataset, r.Puzzle.Padded()))
	}
	return nil
}

// Latest returns the most recently archived report for a puzzle.
func (a *Archive) Latest(ctx context.Context, id types.PuzzleID) (*Record, error) {
	return QueryLatest(ctx, a.dataset, id)
}

// Close releases archive resources.
func (a *Archive) Close() error {
	return nil
}

// QueryLatest scans snapshots newest first and returns the first report
// record for the given puzzle.
func QueryLatest(ctx context.Context, ds lode.Dataset, id types.PuzzleID) (*Record, error) {
	snapshots, err := ds.Snapshots(ctx)
	if err != nil {
		// A dataset that was never written has nothing to report.
		if isNotFound(err) || strings.Contains(err.Error(), "no snapshots") {
			return nil, ErrNoReports
		}
		return nil, WrapReadError(err, "advent/snapshots")
	}

	want := id.Padded()
	for i := len(snapshots) - 1; i >= 0; i-- {
		snap := snapshots[i]
		if !snapshotHasPartition(snap, "puzzle", want) {
			continue
		}

		data, err := ds.Read(ctx, snap.ID)
		if err != nil {
			return nil, WrapReadError(err, fmt.Sprintf("advent/snapshot/%s", snap.ID))
		}
		for _, item := range data {
			m, ok := item.(map[string]any)
			if !ok || m["record_kind"] != RecordKindReport {
				continue
			}
			if toString(m["puzzle"]) != want {
				continue
			}
			return fromRecordMap(m)
		}
	}
	return nil, ErrNoReports
}

func snapshotHasPartition(snap *lode.Snapshot, key, value string) bool {
	segment := key + "=" + value
	for _, f := range snap.Manifest.Files {
		for _, part := range strings.Split(f.Path, "/") {
			if part == segment {
				return true
			}
		}
	}
	return false
}
