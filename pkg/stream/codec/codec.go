// Package codec provides streaming compression and decompression contexts
// for the formats supported by the stream package.
package codec

import (
	"fmt"
	"io"
)

// Encoder - a stateful streaming compressor. Compressed output is emitted
// to the writer supplied at construction. Flush forces out all internally
// buffered compressed data without ending the stream; Close ends the
// stream, emitting the format's terminating frame.
type Encoder interface {
	io.Writer
	Flush() error
	Close() error
}

// Decoder - a stateful streaming decompressor reading compressed input
// from the reader supplied at construction. Close releases the decoder's
// resources; it never touches the underlying reader.
type Decoder interface {
	io.Reader
	Close() error
}

// Format - compression format.
type Format string

const (
	// Flate - a raw deflate stream with no framing.
	Flate Format = "flate"
	// Gzip - deflate wrapped in a self-describing frame
	// with a CRC32 and length trailer.
	Gzip Format = "gzip"
	// Zstd - a zstandard frame.
	Zstd Format = "zstd"
	// Bzip2 - a bzip2 stream.
	Bzip2 Format = "bzip2"
)

// DefaultLevel - selects each format's library-default compression level.
const DefaultLevel = -1

// NewEncoder - creates a streaming encoder of the given format writing
// compressed data to w.
func NewEncoder(f Format, w io.Writer, level int) (Encoder, error) {
	switch f {
	case Flate:
		return newFlateEncoder(w, level)
	case Gzip:
		return newGzipEncoder(w, level)
	case Zstd:
		return newZstdEncoder(w, level)
	case Bzip2:
		return newBzip2Encoder(w, level)
	}

	return nil, fmt.Errorf("unsupported compression format %q", f)
}

// NewDecoder - creates a streaming decoder of the given format reading
// compressed data from r.
func NewDecoder(f Format, r io.Reader) (Decoder, error) {
	switch f {
	case Flate:
		return newFlateDecoder(r), nil
	case Gzip:
		return newGzipDecoder(r), nil
	case Zstd:
		return newZstdDecoder(r)
	case Bzip2:
		return newBzip2Decoder(r)
	}

	return nil, fmt.Errorf("unsupported compression format %q", f)
}
