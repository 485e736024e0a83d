package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pithecene-io/advent/iox"
)

// Writer appends entries to a record file.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter returns a writer for path. The file and its parent directory
// are created on first append.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the record file path.
func (w *Writer) Path() string { return w.path }

// Append encodes e and appends it as one frame.
func (w *Writer) Append(e *Entry) error {
	payload, err := MarshalEntry(e)
	if err != nil {
		return fmt.Errorf("record: encode entry: %w", err)
	}
	frame, err := AppendFrame(nil, payload)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("record: create dir: %w", err)
		}
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("record: open %s: %w", w.path, err)
	}
	defer iox.DiscardClose(f)

	if _, err := f.Write(frame); err != nil {
		return fmt.Errorf("record: write %s: %w", w.path, err)
	}
	return f.Sync()
}

// ReadAll decodes every entry in r. Undecodable frames are skipped and
// reported through the joined error; a fatal framing error stops the read
// and the entries decoded so far are returned with it.
func ReadAll(r io.Reader) ([]*Entry, error) {
	dec := NewDecoder(r)
	var (
		entries []*Entry
		errs    []error
	)
	for i := 0; ; i++ {
		start := dec.Offset()
		payload, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("frame %d: %w", i, err))
			break
		}
		e, err := DecodeEntry(payload)
		if err != nil {
			var fe *FrameError
			if errors.As(err, &fe) {
				fe.Offset = start
			}
			errs = append(errs, fmt.Errorf("frame %d: %w", i, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, errors.Join(errs...)
}

// ReadFile decodes every entry in the record file at path.
func ReadFile(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	defer iox.DiscardClose(f)
	return ReadAll(f)
}
