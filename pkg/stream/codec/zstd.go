package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdEncoder - streaming zstandard compressor. Concurrency is pinned to
// one goroutine: the stream adapter is a synchronous, single-threaded
// component and background encoding would violate that.
type zstdEncoder struct {
	*zstd.Encoder
}

func newZstdEncoder(w io.Writer, level int) (Encoder, error) {
	encLevel := zstd.SpeedDefault
	if level != DefaultLevel {
		encLevel = zstd.EncoderLevelFromZstd(level)
	}

	zw, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(encLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	return &zstdEncoder{Encoder: zw}, nil
}

// zstdDecoder - streaming zstandard decompressor, synchronous mode.
type zstdDecoder struct {
	*zstd.Decoder
}

func newZstdDecoder(r io.Reader) (Decoder, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return &zstdDecoder{Decoder: zr}, nil
}

func (d *zstdDecoder) Close() error {
	d.Decoder.Close()
	return nil
}
