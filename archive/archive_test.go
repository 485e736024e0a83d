package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/justapithecus/lode/lode"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

// sharedFactory returns a StoreFactory that always returns the given store,
// so separate datasets observe the same in-memory state.
func sharedFactory(store lode.Store) lode.StoreFactory {
	return func() (lode.Store, error) { return store, nil }
}

func testReport(id types.PuzzleID, one string) *solution.Report {
	return &solution.Report{
		Puzzle:  id,
		PartOne: solution.Some(one),
		PartTwo: solution.None[string](),
		Timings: timer.Timings{
			{Label: solution.LabelParsing, Duration: 7 * time.Microsecond},
			{Label: solution.LabelPartOne, Duration: 70 * time.Microsecond},
			{Label: solution.LabelPartTwo, Duration: 80 * time.Microsecond},
			{Label: solution.LabelTotal, Duration: 160 * time.Microsecond},
		},
		Profile: "RELEASE",
	}
}

func TestWrite_LatestRoundTrip(t *testing.T) {
	store := lode.NewMemory()
	a, err := NewWithFactory(Config{SessionID: "sess-1"}, sharedFactory(store))
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}

	at := time.Date(2026, 12, 1, 5, 0, 0, 0, time.UTC)
	if err := a.Write(t.Context(), testReport(types.Day01, "6"), true, at); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	rec, err := a.Latest(t.Context(), types.Day01)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if rec.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", rec.SessionID)
	}
	if got, ok := rec.PartOne.Get(); !ok || got != "6" {
		t.Errorf("PartOne = %v, want 6", rec.PartOne)
	}
	if rec.PartTwo.Present() {
		t.Errorf("PartTwo = %v, want absent", rec.PartTwo)
	}
	if !rec.Testing {
		t.Error("Testing flag lost")
	}
	if !rec.ArchivedAt.Equal(at) {
		t.Errorf("ArchivedAt = %v, want %v", rec.ArchivedAt, at)
	}
	if d, ok := rec.Timings.Lookup(solution.LabelTotal); !ok || d != 160*time.Microsecond {
		t.Errorf("Total = %v (%v), want 160µs", d, ok)
	}
	if got := rec.Report().String(); got != testReport(types.Day01, "6").String() {
		t.Errorf("Report() mismatch:\n%s\nwant:\n%s", got, testReport(types.Day01, "6").String())
	}
}

func TestLatest_PicksNewestForPuzzle(t *testing.T) {
	store := lode.NewMemory()
	a, err := NewWithFactory(Config{Dataset: "aoc", SessionID: "s"}, sharedFactory(store))
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}

	at := time.Date(2026, 12, 1, 5, 0, 0, 0, time.UTC)
	writes := []*solution.Report{
		testReport(types.Day01, "first"),
		testReport(types.Day02, "other"),
		testReport(types.Day01, "second"),
		testReport(types.Day12, "twelve"),
	}
	for i, r := range writes {
		if err := a.Write(t.Context(), r, false, at.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	rec, err := a.Latest(t.Context(), types.Day01)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if got := rec.PartOne.OrElse(""); got != "second" {
		t.Errorf("PartOne = %q, want second", got)
	}

	// Day 1 must not match the day 12 partition.
	rec, err = a.Latest(t.Context(), types.Day12)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if rec.Puzzle != types.Day12 {
		t.Errorf("Puzzle = %v, want 12", rec.Puzzle)
	}
}

func TestLatest_SharedAcrossDatasets(t *testing.T) {
	store := lode.NewMemory()
	w, err := NewWithFactory(Config{SessionID: "writer"}, sharedFactory(store))
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}
	if err := w.Write(t.Context(), testReport(types.Day03, "x"), false, time.Now()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	r, err := NewWithFactory(Config{SessionID: "reader"}, sharedFactory(store))
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}
	rec, err := QueryLatest(t.Context(), r.Dataset(), types.Day03)
	if err != nil {
		t.Fatalf("QueryLatest failed: %v", err)
	}
	if rec.SessionID != "writer" {
		t.Errorf("SessionID = %q, want writer", rec.SessionID)
	}
}

func TestLatest_Empty(t *testing.T) {
	a, err := NewWithFactory(Config{}, lode.NewMemoryFactory())
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}
	if a.config.Dataset != DefaultDataset {
		t.Errorf("Dataset = %q, want %q", a.config.Dataset, DefaultDataset)
	}

	_, err = a.Latest(t.Context(), types.Day01)
	if !errors.Is(err, ErrNoReports) {
		t.Fatalf("expected ErrNoReports, got %v", err)
	}
}

func TestNewFS_WritesUnderRoot(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFS(Config{SessionID: "fs"}, dir)
	if err != nil {
		t.Fatalf("NewFS failed: %v", err)
	}
	if err := a.Write(t.Context(), testReport(types.Day05, "5"), false, time.Now()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected archive files under root")
	}

	rec, err := a.Latest(t.Context(), types.Day05)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if rec.PartOne.OrElse("") != "5" {
		t.Errorf("PartOne = %v", rec.PartOne)
	}
}

// failingStore is a lode.Store whose writes always fail.
type failingStore struct {
	putErr error
}

func (s *failingStore) Put(context.Context, string, io.Reader) error { return s.putErr }
func (s *failingStore) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not found")
}
func (s *failingStore) Exists(context.Context, string) (bool, error)   { return false, nil }
func (s *failingStore) List(context.Context, string) ([]string, error) { return nil, nil }
func (s *failingStore) Delete(context.Context, string) error           { return nil }
func (s *failingStore) ReadRange(context.Context, string, int64, int64) ([]byte, error) {
	return nil, errors.New("not implemented")
}
func (s *failingStore) ReaderAt(context.Context, string) (io.ReaderAt, error) {
	return nil, errors.New("not implemented")
}

var _ lode.Store = (*failingStore)(nil)

func TestWrite_ClassifiesFailure(t *testing.T) {
	store := &failingStore{putErr: errors.New("write /data: no space left on device")}
	a, err := NewWithFactory(Config{}, sharedFactory(store))
	if err != nil {
		t.Fatalf("NewWithFactory failed: %v", err)
	}

	err = a.Write(t.Context(), testReport(types.Day01, "6"), false, time.Now())
	if err == nil {
		t.Fatal("expected write error")
	}
	if !errors.Is(err, ErrDiskFull) {
		t.Errorf("expected ErrDiskFull, got %v", err)
	}
	var se *StorageError
	if !errors.As(err, &se) || se.Op != "write" {
		t.Errorf("expected write StorageError, got %#v", err)
	}
}
