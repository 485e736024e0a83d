// Package record persists puzzle reports as a stream of length-prefixed
// msgpack frames: a 4-byte big-endian payload length, then the payload.
//
// A record file is append-only. Each Finalize appends one frame, and
// `advent inspect` decodes the file back into reports.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	prefixSize = 4
	// MaxPayload bounds one entry payload. A larger length prefix is
	// treated as corruption.
	MaxPayload = 64 << 10
)

// FrameErrorKind classifies frame errors.
type FrameErrorKind int

const (
	// FrameTruncated is a frame cut short by the end of the stream.
	FrameTruncated FrameErrorKind = iota
	// FrameOversized is a length prefix above MaxPayload.
	FrameOversized
	// FrameUndecodable is an intact frame whose payload is not an Entry.
	FrameUndecodable
)

func (k FrameErrorKind) String() string {
	switch k {
	case FrameTruncated:
		return "truncated"
	case FrameOversized:
		return "oversized"
	case FrameUndecodable:
		return "undecodable"
	default:
		return fmt.Sprintf("FrameErrorKind(%d)", int(k))
	}
}

// FrameError describes a bad frame and where it starts in the stream.
type FrameError struct {
	Kind   FrameErrorKind
	Offset int64
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s frame at offset %d: %v", e.Kind, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// Fatal reports whether the stream cannot be read past this frame.
// Undecodable frames keep the framing intact.
func (e *FrameError) Fatal() bool { return e.Kind != FrameUndecodable }

// IsFatal reports whether err is a fatal *FrameError.
func IsFatal(err error) bool {
	var fe *FrameError
	return errors.As(err, &fe) && fe.Fatal()
}

// AppendFrame appends payload, prefixed with its length, to dst.
func AppendFrame(dst, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return dst, &FrameError{
			Kind: FrameOversized,
			Err:  fmt.Errorf("payload of %d bytes exceeds %d", len(payload), MaxPayload),
		}
	}
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...), nil
}

// Decoder reads frames from a stream.
type Decoder struct {
	r   io.Reader
	off int64
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Offset is the stream position of the next frame.
func (d *Decoder) Offset() int64 { return d.off }

// Next returns the next payload. It returns io.EOF only at a clean frame
// boundary; anything else that stops the stream is a fatal *FrameError.
func (d *Decoder) Next() ([]byte, error) {
	start := d.off

	var prefix [prefixSize]byte
	n, err := io.ReadFull(d.r, prefix[:])
	d.off += int64(n)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &FrameError{Kind: FrameTruncated, Offset: start, Err: err}
	}

	size := binary.BigEndian.Uint32(prefix[:])
	if size > MaxPayload {
		return nil, &FrameError{
			Kind:   FrameOversized,
			Offset: start,
			Err:    fmt.Errorf("length prefix %d exceeds %d", size, MaxPayload),
		}
	}

	payload := make([]byte, size)
	n, err = io.ReadFull(d.r, payload)
	d.off += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &FrameError{Kind: FrameTruncated, Offset: start, Err: err}
	}
	return payload, nil
}
