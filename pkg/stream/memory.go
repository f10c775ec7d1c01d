package stream

import (
	"errors"
	"io"
)

// MemoryStream - a growable in-memory stream with a single cursor shared
// between reads and writes. It supports the full capability set.
type MemoryStream struct {
	buf    []byte
	pos    int64
	closed bool
}

var _ Stream = (*MemoryStream)(nil)

// NewMemoryStream - initializes an empty in-memory stream.
func NewMemoryStream() *MemoryStream {
	return &MemoryStream{}
}

// NewMemoryStreamFromBytes - initializes an in-memory stream over existing
// bytes with the cursor at the beginning. The slice is not copied.
func NewMemoryStreamFromBytes(data []byte) *MemoryStream {
	return &MemoryStream{buf: data}
}

// Read - reads up to len(p) bytes from the cursor position.
func (m *MemoryStream) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}

	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)

	return n, nil
}

// Write - writes p at the cursor position, growing the buffer as needed.
// Seeking past the end and writing zero-fills the gap.
func (m *MemoryStream) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}

	if end := m.pos + int64(len(p)); end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}

	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)

	return n, nil
}

// Seek - moves the cursor to an absolute position, possibly past the end.
func (m *MemoryStream) Seek(pos int64) error {
	if m.closed {
		return ErrClosed
	}
	if pos < 0 {
		return errors.New("negative seek position")
	}

	m.pos = pos
	return nil
}

// Tell - returns the cursor position.
func (m *MemoryStream) Tell() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return m.pos, nil
}

// Size - returns the number of bytes stored.
func (m *MemoryStream) Size() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return int64(len(m.buf)), nil
}

// Truncate - resizes the buffer, moving the cursor back when it would
// point past the new end.
func (m *MemoryStream) Truncate(size int64) error {
	if m.closed {
		return ErrClosed
	}
	if size < 0 {
		return errors.New("negative truncate size")
	}

	if size <= int64(len(m.buf)) {
		m.buf = m.buf[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, m.buf)
		m.buf = grown
	}
	if m.pos > size {
		m.pos = size
	}

	return nil
}

// Flush - a no-op, memory is the final medium.
func (m *MemoryStream) Flush() error {
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close - marks the stream closed. Idempotent.
func (m *MemoryStream) Close() error {
	m.closed = true
	return nil
}

// CanRead - always true until closed.
func (m *MemoryStream) CanRead() bool { return !m.closed }

// CanWrite - always true until closed.
func (m *MemoryStream) CanWrite() bool { return !m.closed }

// Bytes - returns the stored bytes without copying.
func (m *MemoryStream) Bytes() []byte { return m.buf }
