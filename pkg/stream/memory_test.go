package stream_test

import (
	"io"
	"testing"

	"github.com/neekrasov/zstream/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStreamReadWrite(t *testing.T) {
	t.Parallel()

	m := stream.NewMemoryStream()

	n, err := m.Write([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	size, err := m.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	// The cursor is shared, reads continue where writes ended.
	_, err = m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, m.Seek(6))
	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	buf := make([]byte, 5)
	n, err = m.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))
}

func TestMemoryStreamWritePastEnd(t *testing.T) {
	t.Parallel()

	m := stream.NewMemoryStream()
	require.NoError(t, m.Seek(4))

	_, err := m.Write([]byte("data"))
	require.NoError(t, err)

	assert.Equal(t, []byte("\x00\x00\x00\x00data"), m.Bytes())
}

func TestMemoryStreamTruncate(t *testing.T) {
	t.Parallel()

	m := stream.NewMemoryStreamFromBytes([]byte("hello world"))
	require.NoError(t, m.Seek(11))

	require.NoError(t, m.Truncate(5))
	assert.Equal(t, "hello", string(m.Bytes()))

	pos, err := m.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(5), pos, "cursor moves back with the new end")

	require.NoError(t, m.Truncate(8))
	size, err := m.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(8), size)

	assert.Error(t, m.Truncate(-1))
}

func TestMemoryStreamClosed(t *testing.T) {
	t.Parallel()

	m := stream.NewMemoryStream()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err := m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, stream.ErrClosed)
	_, err = m.Write([]byte("x"))
	assert.ErrorIs(t, err, stream.ErrClosed)
	assert.ErrorIs(t, m.Seek(0), stream.ErrClosed)
	assert.ErrorIs(t, m.Flush(), stream.ErrClosed)

	assert.False(t, m.CanRead())
	assert.False(t, m.CanWrite())
}
