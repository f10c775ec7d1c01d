package stream_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/neekrasov/zstream/pkg/stream"
	"github.com/neekrasov/zstream/pkg/stream/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFormats = []codec.Format{codec.Flate, codec.Gzip, codec.Zstd, codec.Bzip2}

// makePayload - deterministic pseudo-random payload of the given size.
func makePayload(size int) []byte {
	payload := make([]byte, size)
	rand.New(rand.NewSource(int64(size + 1))).Read(payload)
	return payload
}

// compressBytes - runs data through a write-side adapter over a fresh
// memory stream and returns the compressed bytes.
func compressBytes(t *testing.T, data []byte, opts ...stream.CompressionOption) []byte {
	t.Helper()

	child := stream.NewMemoryStream()
	cs, err := stream.NewCompressionStream(child, opts...)
	require.NoError(t, err)

	n, err := cs.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, cs.Close())

	return child.Bytes()
}

func TestCompressionStreamRoundTrip(t *testing.T) {
	t.Parallel()

	sizes := []int{0, 1, 11, 1000, stream.DefaultBufferSize - 1,
		stream.DefaultBufferSize, stream.DefaultBufferSize + 1, 3*stream.DefaultBufferSize + 17}

	for _, format := range allFormats {
		format := format
		for _, size := range sizes {
			size := size
			t.Run(fmt.Sprintf("%s/%d", format, size), func(t *testing.T) {
				t.Parallel()

				data := makePayload(size)
				compressed := compressBytes(t, data, stream.WithFormat(format))

				rs, err := stream.NewCompressionStream(
					stream.NewMemoryStreamFromBytes(compressed), stream.WithFormat(format))
				require.NoError(t, err)
				defer rs.Close()

				got := make([]byte, len(data))
				n, err := rs.Read(got)
				require.NoError(t, err)
				assert.Equal(t, len(data), n)
				assert.Equal(t, data, got)

				_, err = rs.Read(make([]byte, 1))
				assert.ErrorIs(t, err, stream.ErrPrematureEndOfStream)
			})
		}
	}
}

func TestCompressionStreamHelloWorld(t *testing.T) {
	t.Parallel()

	compressed := compressBytes(t, []byte("hello world"), stream.WithFormat(codec.Gzip))

	rs, err := stream.NewCompressionStream(
		stream.NewMemoryStreamFromBytes(compressed), stream.WithFormat(codec.Gzip))
	require.NoError(t, err)
	defer rs.Close()

	got := make([]byte, 11)
	n, err := rs.Read(got)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, "hello world", string(got))

	_, err = rs.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrPrematureEndOfStream)

	// The failure is terminal for the read direction.
	_, err = rs.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrPrematureEndOfStream)
}

func TestCompressionStreamCloseWithoutWrites(t *testing.T) {
	t.Parallel()

	for _, format := range allFormats {
		format := format
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			child := stream.NewMemoryStream()
			cs, err := stream.NewCompressionStream(child, stream.WithFormat(format))
			require.NoError(t, err)

			require.NoError(t, cs.Close())

			size, err := child.Size()
			require.NoError(t, err)
			assert.Zero(t, size, "unused adapter must not emit any bytes")

			assert.NoError(t, cs.Close(), "second close must be a silent no-op")
		})
	}
}

func TestCompressionStreamCloseIdempotent(t *testing.T) {
	t.Parallel()

	child := stream.NewMemoryStream()
	cs, err := stream.NewCompressionStream(child)
	require.NoError(t, err)

	_, err = cs.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, cs.Close())

	size, err := child.Size()
	require.NoError(t, err)

	assert.NoError(t, cs.Close())
	sizeAfter, err := child.Size()
	require.NoError(t, err)
	assert.Equal(t, size, sizeAfter, "second close must not emit more bytes")
}

func TestCompressionStreamOperationsAfterClose(t *testing.T) {
	t.Parallel()

	cs, err := stream.NewCompressionStream(stream.NewMemoryStream())
	require.NoError(t, err)
	require.NoError(t, cs.Close())

	_, err = cs.Write([]byte("x"))
	assert.ErrorIs(t, err, stream.ErrClosed)

	_, err = cs.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrClosed)

	assert.ErrorIs(t, cs.Flush(), stream.ErrClosed)
}

func TestCompressionStreamForwardOnly(t *testing.T) {
	t.Parallel()

	cs, err := stream.NewCompressionStream(stream.NewMemoryStream())
	require.NoError(t, err)
	defer cs.Close()

	assert.ErrorIs(t, cs.Seek(0), stream.ErrUnsupported)
	assert.ErrorIs(t, cs.Truncate(0), stream.ErrUnsupported)

	_, err = cs.Tell()
	assert.ErrorIs(t, err, stream.ErrUnsupported)

	_, err = cs.Size()
	assert.ErrorIs(t, err, stream.ErrUnsupported)

	_, err = cs.Write([]byte("data"))
	require.NoError(t, err)

	assert.ErrorIs(t, cs.Seek(0), stream.ErrUnsupported, "seek must fail regardless of stream state")
}

func TestCompressionStreamFlush(t *testing.T) {
	t.Parallel()

	for _, format := range []codec.Format{codec.Flate, codec.Gzip} {
		format := format
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			child := stream.NewMemoryStream()
			cs, err := stream.NewCompressionStream(child, stream.WithFormat(format))
			require.NoError(t, err)
			defer cs.Close()

			data := []byte("flushed but not finished")
			_, err = cs.Write(data)
			require.NoError(t, err)
			require.NoError(t, cs.Flush())

			// Sync flush must make everything written so far decodable
			// without closing the write side.
			rs, err := stream.NewCompressionStream(
				stream.NewMemoryStreamFromBytes(child.Bytes()), stream.WithFormat(format))
			require.NoError(t, err)
			defer rs.Close()

			got := make([]byte, len(data))
			_, err = rs.Read(got)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompressionStreamFlushWithoutWrites(t *testing.T) {
	t.Parallel()

	child := stream.NewMemoryStream()
	cs, err := stream.NewCompressionStream(child)
	require.NoError(t, err)
	defer cs.Close()

	require.NoError(t, cs.Flush())

	size, err := child.Size()
	require.NoError(t, err)
	assert.Zero(t, size, "flushing a never-written adapter must not emit bytes")
}

func TestCompressionStreamCorruptInput(t *testing.T) {
	t.Parallel()

	for _, format := range []codec.Format{codec.Gzip, codec.Zstd} {
		format := format
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			rs, err := stream.NewCompressionStream(
				stream.NewMemoryStreamFromBytes([]byte("definitely not a compressed frame")),
				stream.WithFormat(format))
			require.NoError(t, err)
			defer rs.Close()

			_, err = rs.Read(make([]byte, 8))
			require.ErrorIs(t, err, stream.ErrCodec)

			// A codec fault poisons the whole adapter.
			_, readErr := rs.Read(make([]byte, 8))
			assert.ErrorIs(t, readErr, stream.ErrCodec)
			_, writeErr := rs.Write([]byte("x"))
			assert.ErrorIs(t, writeErr, stream.ErrCodec)

			assert.NoError(t, rs.Close(), "close must not re-raise the codec fault")
		})
	}
}

// chunkedStream - a memory stream that accepts at most a few bytes per
// write call, exercising the short-write retry loop.
type chunkedStream struct {
	*stream.MemoryStream
	limit int
}

func (c *chunkedStream) Write(p []byte) (int, error) {
	if len(p) > c.limit {
		p = p[:c.limit]
	}
	return c.MemoryStream.Write(p)
}

func TestCompressionStreamShortChildWrites(t *testing.T) {
	t.Parallel()

	child := &chunkedStream{MemoryStream: stream.NewMemoryStream(), limit: 7}
	cs, err := stream.NewCompressionStream(child, stream.WithFormat(codec.Gzip))
	require.NoError(t, err)

	data := makePayload(10_000)
	_, err = cs.Write(data)
	require.NoError(t, err)
	require.NoError(t, cs.Close())

	rs, err := stream.NewCompressionStream(
		stream.NewMemoryStreamFromBytes(child.Bytes()), stream.WithFormat(codec.Gzip))
	require.NoError(t, err)
	defer rs.Close()

	got := make([]byte, len(data))
	_, err = rs.Read(got)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

// stalledStream - a stream whose writes never make progress.
type stalledStream struct {
	*stream.MemoryStream
}

func (s *stalledStream) Write([]byte) (int, error) { return 0, nil }

func TestCompressionStreamStalledChildWrite(t *testing.T) {
	t.Parallel()

	cs, err := stream.NewCompressionStream(&stalledStream{stream.NewMemoryStream()})
	require.NoError(t, err)

	_, err = cs.Write([]byte("some data"))
	require.NoError(t, err)

	assert.ErrorIs(t, cs.Flush(), stream.ErrChildStream)
}

// failingStream - a stream whose reads fail with a fixed error.
type failingStream struct {
	*stream.MemoryStream
	err error
}

func (f *failingStream) Read([]byte) (int, error) { return 0, f.err }

func TestCompressionStreamChildReadError(t *testing.T) {
	t.Parallel()

	childErr := errors.New("disk on fire")
	rs, err := stream.NewCompressionStream(
		&failingStream{stream.NewMemoryStream(), childErr},
		stream.WithFormat(codec.Flate))
	require.NoError(t, err)
	defer rs.Close()

	_, err = rs.Read(make([]byte, 4))
	assert.ErrorIs(t, err, stream.ErrChildStream)
	assert.ErrorIs(t, err, childErr)
}

func TestCompressionStreamNested(t *testing.T) {
	t.Parallel()

	child := stream.NewMemoryStream()
	inner, err := stream.NewCompressionStream(child, stream.WithFormat(codec.Gzip))
	require.NoError(t, err)
	outer, err := stream.NewCompressionStream(inner, stream.WithFormat(codec.Flate))
	require.NoError(t, err)

	data := makePayload(50_000)
	_, err = outer.Write(data)
	require.NoError(t, err)
	require.NoError(t, outer.Close())
	require.NoError(t, inner.Close())

	innerRead, err := stream.NewCompressionStream(
		stream.NewMemoryStreamFromBytes(child.Bytes()), stream.WithFormat(codec.Gzip))
	require.NoError(t, err)
	defer innerRead.Close()
	outerRead, err := stream.NewCompressionStream(innerRead, stream.WithFormat(codec.Flate))
	require.NoError(t, err)
	defer outerRead.Close()

	got := make([]byte, len(data))
	_, err = outerRead.Read(got)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCompressionStreamCapabilities(t *testing.T) {
	t.Parallel()

	child := stream.NewMemoryStream()
	cs, err := stream.NewCompressionStream(child)
	require.NoError(t, err)
	defer cs.Close()

	assert.True(t, cs.CanRead())
	assert.True(t, cs.CanWrite())
	assert.Same(t, child, cs.Child())

	require.NoError(t, child.Close())
	assert.False(t, cs.CanRead())
	assert.False(t, cs.CanWrite())
}

func TestCompressionStreamNilChild(t *testing.T) {
	t.Parallel()

	_, err := stream.NewCompressionStream(nil)
	assert.Error(t, err)
}

func TestCompressionStreamUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := stream.NewCompressionStream(stream.NewMemoryStream(),
		stream.WithFormat(codec.Format("lzma")))
	assert.Error(t, err)
}

func TestCompressionStreamBufferSizeOption(t *testing.T) {
	t.Parallel()

	data := makePayload(10_000)
	compressed := compressBytes(t, data, stream.WithFormat(codec.Gzip), stream.WithLevel(9))

	// A tiny staging buffer forces many refills but must not change what
	// the caller observes.
	rs, err := stream.NewCompressionStream(
		stream.NewMemoryStreamFromBytes(compressed),
		stream.WithFormat(codec.Gzip), stream.WithBufferSize(16))
	require.NoError(t, err)
	defer rs.Close()

	got := make([]byte, len(data))
	_, err = rs.Read(got)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
