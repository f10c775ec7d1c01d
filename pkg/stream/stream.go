// Package stream provides a sequential byte stream abstraction with
// capability queries, in-memory and file backends, and a transparent
// compression adapter that can wrap any other stream.
package stream

import "errors"

var (
	ErrClosed               = errors.New("stream already closed")
	ErrUnsupported          = errors.New("operation not supported by this stream")
	ErrPrematureEndOfStream = errors.New("compressed stream ended prematurely")
	ErrCodec                = errors.New("codec failure")
	ErrChildStream          = errors.New("child stream failure")
)

// Stream - a sequential byte stream with explicit positioning and
// capability queries. Read follows the io.Reader contract (short reads
// are allowed, io.EOF signals the end); Write follows the io.Writer
// contract (it consumes all of p or returns an error). Streams that
// cannot support an operation return ErrUnsupported from it.
type Stream interface {
	// Read - reads up to len(p) bytes into p.
	Read(p []byte) (int, error)
	// Write - writes all of p or returns an error.
	Write(p []byte) (int, error)
	// Seek - moves the cursor to an absolute position.
	Seek(pos int64) error
	// Tell - returns the current cursor position.
	Tell() (int64, error)
	// Size - returns the total size of the stream.
	Size() (int64, error)
	// Truncate - resizes the stream to the given length.
	Truncate(size int64) error
	// Flush - pushes buffered data to the underlying medium.
	Flush() error
	// Close - releases the stream. Implementations are idempotent.
	Close() error
	// CanRead - reports whether the stream supports reading.
	CanRead() bool
	// CanWrite - reports whether the stream supports writing.
	CanWrite() bool
}
