package stream

import "github.com/neekrasov/zstream/pkg/stream/codec"

// DefaultBufferSize - default capacity of the staging buffer used to move
// compressed bytes between the child stream and the codec. The larger,
// the better.
const DefaultBufferSize = 32 << 10

// compressionOptions - internal settings of a compression stream.
type compressionOptions struct {
	format     codec.Format
	level      int
	bufferSize int
}

// CompressionOption - common type for compression stream options.
type CompressionOption func(*compressionOptions)

// WithFormat - option selecting the compression format.
func WithFormat(format codec.Format) CompressionOption {
	return func(o *compressionOptions) {
		o.format = format
	}
}

// WithLevel - option setting the compression level. The meaning of the
// integer is format-defined; codec.DefaultLevel selects each format's
// balanced default.
func WithLevel(level int) CompressionOption {
	return func(o *compressionOptions) {
		o.level = level
	}
}

// WithBufferSize - option setting the staging buffer capacity in bytes.
func WithBufferSize(size int) CompressionOption {
	return func(o *compressionOptions) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

func applyCompressionOptions(opts []CompressionOption) compressionOptions {
	co := compressionOptions{
		format:     codec.Flate,
		level:      codec.DefaultLevel,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&co)
	}

	return co
}
