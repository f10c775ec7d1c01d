package codec

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// flateEncoder - streaming raw-deflate compressor.
type flateEncoder struct {
	*flate.Writer
}

func newFlateEncoder(w io.Writer, level int) (Encoder, error) {
	if level == DefaultLevel {
		level = flate.DefaultCompression
	}

	fw, err := flate.NewWriter(w, level)
	if err != nil {
		return nil, err
	}

	return &flateEncoder{Writer: fw}, nil
}

// flateDecoder - streaming raw-deflate decompressor.
type flateDecoder struct {
	io.ReadCloser
}

func newFlateDecoder(r io.Reader) Decoder {
	return &flateDecoder{ReadCloser: flate.NewReader(r)}
}
