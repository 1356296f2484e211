package codec

import (
	"github.com/Dentosal/pinecone/errors"
)

// SliceSink writes into a caller-owned buffer and fails with a
// buffer-full error once capacity is exhausted. It performs no
// allocation; the caller controls memory lifetime and must not reuse
// the sink across encode calls.
type SliceSink struct {
	buf []byte
	n   int
}

// NewSliceSink wraps buf as a bounded sink. Encoded bytes land in
// buf[0:]; Bytes returns the used prefix.
func NewSliceSink(buf []byte) *SliceSink {
	return &SliceSink{buf: buf}
}

func (s *SliceSink) Append(data []byte) error {
	if len(data) > len(s.buf)-s.n {
		return errors.BufferFull(len(data), len(s.buf)-s.n)
	}
	copy(s.buf[s.n:], data)
	s.n += len(data)
	return nil
}

func (s *SliceSink) AppendByte(b byte) error {
	if s.n >= len(s.buf) {
		return errors.BufferFull(1, 0)
	}
	s.buf[s.n] = b
	s.n++
	return nil
}

// Bytes returns the written prefix of the caller's buffer.
func (s *SliceSink) Bytes() []byte {
	return s.buf[:s.n]
}

// Len returns the number of bytes written so far.
func (s *SliceSink) Len() int {
	return s.n
}

// BufferSink owns a growable buffer. Appends never fail; running out
// of memory is a fatal runtime condition, not an encode error.
type BufferSink struct {
	buf []byte
}

// NewBufferSink creates a growable sink with a small default capacity.
func NewBufferSink() *BufferSink {
	return &BufferSink{buf: make([]byte, 0, 256)}
}

// NewBufferSinkWithCap creates a growable sink with the given initial
// capacity, for callers that know their message size.
func NewBufferSinkWithCap(capacity int) *BufferSink {
	return &BufferSink{buf: make([]byte, 0, capacity)}
}

func (s *BufferSink) Append(data []byte) error {
	s.buf = append(s.buf, data...)
	return nil
}

func (s *BufferSink) AppendByte(b byte) error {
	s.buf = append(s.buf, b)
	return nil
}

// Bytes returns the accumulated buffer. The slice is owned by the sink
// until the caller takes it; it is valid until the next Reset.
func (s *BufferSink) Bytes() []byte {
	return s.buf
}

// Len returns the number of bytes written so far.
func (s *BufferSink) Len() int {
	return len(s.buf)
}

// Reset empties the sink, keeping the underlying buffer for reuse.
func (s *BufferSink) Reset() {
	s.buf = s.buf[:0]
}
