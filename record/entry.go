package record

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/advent/solution"
	"github.com/pithecene-io/advent/timer"
	"github.com/pithecene-io/advent/types"
)

// EntryType is the type discriminant of report frames.
const EntryType = "puzzle_report"

// Entry is the msgpack payload of one frame. Absent answers are nil.
type Entry struct {
	Type            string         `msgpack:"type"`
	ContractVersion string         `msgpack:"contract_version"`
	SessionID       string         `msgpack:"session_id"`
	Puzzle          types.PuzzleID `msgpack:"puzzle"`
	PartOne         *string        `msgpack:"part_one"`
	PartTwo         *string        `msgpack:"part_two"`
	Testing         bool           `msgpack:"testing"`
	Profile         string         `msgpack:"profile"`
	Timings         timer.Timings  `msgpack:"timings"`
	RecordedAt      string         `msgpack:"recorded_at"` // RFC 3339
}

// NewEntry captures a report.
func NewEntry(r *solution.Report, sessionID string, testing bool, at time.Time) *Entry {
	return &Entry{
		Type:            EntryType,
		ContractVersion: types.ContractVersion,
		SessionID:       sessionID,
		Puzzle:          r.Puzzle,
		PartOne:         answerPtr(r.PartOne),
		PartTwo:         answerPtr(r.PartTwo),
		Testing:         testing,
		Profile:         r.Profile,
		Timings:         r.Timings,
		RecordedAt:      at.UTC().Format(time.RFC3339Nano),
	}
}

// Report converts the entry back into a report.
func (e *Entry) Report() *solution.Report {
	return &solution.Report{
		Puzzle:  e.Puzzle,
		PartOne: answerOf(e.PartOne),
		PartTwo: answerOf(e.PartTwo),
		Timings: e.Timings,
		Profile: e.Profile,
	}
}

// MarshalEntry encodes an entry payload (without the length prefix).
func MarshalEntry(e *Entry) ([]byte, error) {
	return msgpack.Marshal(e)
}

// DecodeEntry decodes a frame payload as an Entry.
func DecodeEntry(payload []byte) (*Entry, error) {
	var e Entry
	if err := msgpack.Unmarshal(payload, &e); err != nil {
		return nil, &FrameError{Kind: FrameUndecodable, Err: fmt.Errorf("decode entry: %w", err)}
	}
	if e.Type != EntryType {
		return nil, &FrameError{Kind: FrameUndecodable, Err: fmt.Errorf("unexpected entry type %q", e.Type)}
	}
	return &e, nil
}

func answerPtr(a solution.Answer[string]) *string {
	if v, ok := a.Get(); ok {
		return &v
	}
	return nil
}

func answerOf(p *string) solution.Answer[string] {
	if p == nil {
		return solution.None[string]()
	}
	return solution.Some(*p)
}
