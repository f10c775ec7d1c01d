package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/neekrasov/zstream/pkg/stream/codec"
)

// CompressionStream - transparently compresses writes to and decompresses
// reads from a child stream. The two directions are driven by independent
// codec contexts, so a single adapter may be used for reading, writing,
// or both.
//
// The adapter is forward-only: Seek, Tell, Size and Truncate always fail.
// It never closes the child stream; the child's lifecycle belongs to the
// caller, which may hold it concurrently with the adapter.
//
// Unlike plain streams, Read delivers exactly len(p) bytes or fails: a
// child stream that runs out before enough decompressed data could be
// produced surfaces as ErrPrematureEndOfStream.
type CompressionStream struct {
	child Stream
	enc   codec.Encoder
	dec   codec.Decoder

	failure error // fatal codec fault, blocks all further operations
	readErr error // terminal read-direction failure
	wrote   bool
	closed  bool
}

var _ Stream = (*CompressionStream)(nil)

// NewCompressionStream - wraps a child stream in a compression adapter.
// Both codec contexts are built here, regardless of which directions end
// up being used; neither touches the child until first use.
func NewCompressionStream(child Stream, opts ...CompressionOption) (*CompressionStream, error) {
	if child == nil {
		return nil, errors.New("nil child stream")
	}

	o := applyCompressionOptions(opts)

	enc, err := codec.NewEncoder(o.format, &childWriter{child: child}, o.level)
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}

	dec, err := codec.NewDecoder(o.format, &childReader{
		child: child,
		buf:   make([]byte, o.bufferSize),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}

	return &CompressionStream{child: child, enc: enc, dec: dec}, nil
}

// Child - returns the wrapped child stream.
func (c *CompressionStream) Child() Stream { return c.child }

// Write - compresses all of p into the child stream. Data may remain
// buffered inside the compressor until Flush or Close forces it out.
func (c *CompressionStream) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if c.failure != nil {
		return 0, c.failure
	}

	n, err := c.enc.Write(p)
	if err != nil {
		return n, c.encoderErr(err)
	}
	c.wrote = true

	return n, nil
}

// Read - decompresses exactly len(p) bytes from the child stream into p.
// Returns ErrPrematureEndOfStream when the compressed stream ends before
// len(p) bytes could be produced; any further reads repeat that error.
func (c *CompressionStream) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if c.failure != nil {
		return 0, c.failure
	}
	if c.readErr != nil {
		return 0, c.readErr
	}
	if len(p) == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(c.dec, p)
	if err == nil {
		return n, nil
	}

	switch {
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		c.readErr = fmt.Errorf("%w: produced %d of %d bytes", ErrPrematureEndOfStream, n, len(p))
		return n, c.readErr
	case errors.Is(err, ErrChildStream):
		return n, err
	default:
		c.failure = fmt.Errorf("%w: %w", ErrCodec, err)
		return n, c.failure
	}
}

// Flush - forces out all compressed data buffered inside the compressor
// (sync flush, the stream stays writable) and then flushes the child.
// The child flush runs even when the write direction was never used.
func (c *CompressionStream) Flush() error {
	if c.closed {
		return ErrClosed
	}
	if c.failure != nil {
		return c.failure
	}

	if c.wrote {
		if err := c.enc.Flush(); err != nil {
			return c.encoderErr(err)
		}
	}

	if err := c.child.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrChildStream, err)
	}

	return nil
}

// Close - finishes the compressed stream and releases both codec
// contexts. The terminating frame is only emitted when the write
// direction was used: closing an untouched adapter writes nothing to the
// child. The child stream itself is never closed. Idempotent; after a
// codec fault the release is best-effort and the original error is not
// raised again.
func (c *CompressionStream) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	if c.wrote && c.failure == nil {
		if ferr := c.enc.Close(); ferr != nil {
			err = c.encoderErr(ferr)
		}
	}

	if derr := c.dec.Close(); derr != nil && err == nil {
		err = fmt.Errorf("release decoder: %w", derr)
	}

	return err
}

// Seek - unsupported, compressed offsets do not map to byte offsets.
func (c *CompressionStream) Seek(int64) error {
	return fmt.Errorf("seek: %w", ErrUnsupported)
}

// Tell - unsupported.
func (c *CompressionStream) Tell() (int64, error) {
	return 0, fmt.Errorf("tell: %w", ErrUnsupported)
}

// Size - unsupported.
func (c *CompressionStream) Size() (int64, error) {
	return 0, fmt.Errorf("size: %w", ErrUnsupported)
}

// Truncate - unsupported.
func (c *CompressionStream) Truncate(int64) error {
	return fmt.Errorf("truncate: %w", ErrUnsupported)
}

// CanRead - delegates to the child stream.
func (c *CompressionStream) CanRead() bool { return c.child.CanRead() }

// CanWrite - delegates to the child stream.
func (c *CompressionStream) CanWrite() bool { return c.child.CanWrite() }

// encoderErr - classifies an encoder failure: child stream errors pass
// through untouched, anything else is a codec fault that poisons the
// adapter.
func (c *CompressionStream) encoderErr(err error) error {
	if errors.Is(err, ErrChildStream) {
		return err
	}

	c.failure = fmt.Errorf("%w: %w", ErrCodec, err)
	return c.failure
}

// childWriter - forwards compressed chunks produced by the encoder into
// the child stream, retrying short writes. A write that makes no progress
// is a child stream error, not a busy-loop.
type childWriter struct {
	child Stream
}

func (w *childWriter) Write(p []byte) (int, error) {
	var written int
	for written < len(p) {
		n, err := w.child.Write(p[written:])
		if err != nil {
			return written, fmt.Errorf("%w: %w", ErrChildStream, err)
		}
		if n == 0 {
			return written, fmt.Errorf("%w: write stalled with %d bytes pending",
				ErrChildStream, len(p)-written)
		}
		written += n
	}

	return written, nil
}

// childReader - staging buffer between the child stream and the decoder.
// The buffer is allocated once and refilled whenever the decoder has
// consumed all pending input.
type childReader struct {
	child    Stream
	buf      []byte
	off, end int
}

func (r *childReader) Read(p []byte) (int, error) {
	if r.off == r.end {
		n, err := r.child.Read(r.buf)
		if n == 0 {
			// A child that is itself a compression adapter reports its
			// end of data as a premature end; for refills that is plain
			// exhaustion, same as EOF.
			if err == nil || errors.Is(err, io.EOF) || errors.Is(err, ErrPrematureEndOfStream) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("%w: %w", ErrChildStream, err)
		}
		r.off, r.end = 0, n
	}

	n := copy(p, r.buf[r.off:r.end])
	r.off += n

	return n, nil
}
