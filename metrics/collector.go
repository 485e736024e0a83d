// Package metrics provides per-session counters for the puzzle runtime.
//
// The Collector accumulates counters while a session solves one or more
// puzzles. It is a leaf package with no internal dependencies.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Puzzle lifecycle
	PuzzlesStarted   int64 `json:"puzzles_started" yaml:"puzzles_started"`
	PuzzlesCompleted int64 `json:"puzzles_completed" yaml:"puzzles_completed"`
	PuzzlesFailed    int64 `json:"puzzles_failed" yaml:"puzzles_failed"`

	// Parts
	PartsSolved        int64 `json:"parts_solved" yaml:"parts_solved"`
	PartsUnimplemented int64 `json:"parts_unimplemented" yaml:"parts_unimplemented"`

	// Input loading
	LoadSuccess int64 `json:"load_success" yaml:"load_success"`
	LoadFailure int64 `json:"load_failure" yaml:"load_failure"`
	CacheHits   int64 `json:"cache_hits" yaml:"cache_hits"`
	CacheMisses int64 `json:"cache_misses" yaml:"cache_misses"`

	// Finalize side effects
	PublishSuccess int64 `json:"publish_success" yaml:"publish_success"`
	PublishFailure int64 `json:"publish_failure" yaml:"publish_failure"`
	ArchiveSuccess int64 `json:"archive_success" yaml:"archive_success"`
	ArchiveFailure int64 `json:"archive_failure" yaml:"archive_failure"`
	RecordSuccess  int64 `json:"record_success" yaml:"record_success"`
	RecordFailure  int64 `json:"record_failure" yaml:"record_failure"`

	// Dimensions (informational, set at construction)
	InputBackend string `json:"input_backend" yaml:"input_backend"`
	SessionID    string `json:"session_id" yaml:"session_id"`
}

// Collector accumulates counters during a session.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	puzzlesStarted   int64
	puzzlesCompleted int64
	puzzlesFailed    int64

	partsSolved        int64
	partsUnimplemented int64

	loadSuccess int64
	loadFailure int64
	cacheHits   int64
	cacheMisses int64

	publishSuccess int64
	publishFailure int64
	archiveSuccess int64
	archiveFailure int64
	recordSuccess  int64
	recordFailure  int64

	inputBackend string
	sessionID    string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(inputBackend, sessionID string) *Collector {
	return &Collector{
		inputBackend: inputBackend,
		sessionID:    sessionID,
	}
}

func (c *Collector) inc(field *int64) {
	c.mu.Lock()
	*field++
	c.mu.Unlock()
}

// --- Puzzle lifecycle ---

// IncPuzzleStarted records a puzzle run start.
func (c *Collector) IncPuzzleStarted() {
	if c == nil {
		return
	}
	c.inc(&c.puzzlesStarted)
}

// IncPuzzleCompleted records a puzzle run that produced an outcome.
func (c *Collector) IncPuzzleCompleted() {
	if c == nil {
		return
	}
	c.inc(&c.puzzlesCompleted)
}

// IncPuzzleFailed records a puzzle run that returned an error.
func (c *Collector) IncPuzzleFailed() {
	if c == nil {
		return
	}
	c.inc(&c.puzzlesFailed)
}

// ObserveParts records how many of a finished puzzle's two parts were
// solved; the rest count as unimplemented.
func (c *Collector) ObserveParts(solved int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.partsSolved += int64(solved)
	c.partsUnimplemented += int64(2 - solved)
	c.mu.Unlock()
}

// --- Input loading ---

// IncLoadSuccess records a successful input load.
func (c *Collector) IncLoadSuccess() {
	if c == nil {
		return
	}
	c.inc(&c.loadSuccess)
}

// IncLoadFailure records a failed input load.
func (c *Collector) IncLoadFailure() {
	if c == nil {
		return
	}
	c.inc(&c.loadFailure)
}

// IncCacheHit records an input served from the cache.
func (c *Collector) IncCacheHit() {
	if c == nil {
		return
	}
	c.inc(&c.cacheHits)
}

// IncCacheMiss records an input that had to be fetched.
func (c *Collector) IncCacheMiss() {
	if c == nil {
		return
	}
	c.inc(&c.cacheMisses)
}

// --- Finalize side effects ---
// Counters are per-call: one publish to one adapter counts once.

// IncPublishSuccess records a successful adapter publish.
func (c *Collector) IncPublishSuccess() {
	if c == nil {
		return
	}
	c.inc(&c.publishSuccess)
}

// IncPublishFailure records a failed adapter publish.
func (c *Collector) IncPublishFailure() {
	if c == nil {
		return
	}
	c.inc(&c.publishFailure)
}

// IncArchiveSuccess records a successful archive write.
func (c *Collector) IncArchiveSuccess() {
	if c == nil {
		return
	}
	c.inc(&c.archiveSuccess)
}

// IncArchiveFailure records a failed archive write.
func (c *Collector) IncArchiveFailure() {
	if c == nil {
		return
	}
	c.inc(&c.archiveFailure)
}

// IncRecordSuccess records a report frame appended to the record file.
func (c *Collector) IncRecordSuccess() {
	if c == nil {
		return
	}
	c.inc(&c.recordSuccess)
}

// IncRecordFailure records a failed record frame append.
func (c *Collector) IncRecordFailure() {
	if c == nil {
		return
	}
	c.inc(&c.recordFailure)
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		PuzzlesStarted:   c.puzzlesStarted,
		PuzzlesCompleted: c.puzzlesCompleted,
		PuzzlesFailed:    c.puzzlesFailed,

		PartsSolved:        c.partsSolved,
		PartsUnimplemented: c.partsUnimplemented,

		LoadSuccess: c.loadSuccess,
		LoadFailure: c.loadFailure,
		CacheHits:   c.cacheHits,
		CacheMisses: c.cacheMisses,

		PublishSuccess: c.publishSuccess,
		PublishFailure: c.publishFailure,
		ArchiveSuccess: c.archiveSuccess,
		ArchiveFailure: c.archiveFailure,
		RecordSuccess:  c.recordSuccess,
		RecordFailure:  c.recordFailure,

		InputBackend: c.inputBackend,
		SessionID:    c.sessionID,
	}
}
