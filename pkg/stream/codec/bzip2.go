package codec

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Encoder - streaming bzip2 compressor. The format has no sync-flush
// primitive: buffered blocks are only forced out by Close, so Flush here
// is a no-op and callers relying on mid-stream durability should prefer
// another format.
type bzip2Encoder struct {
	*bzip2.Writer
}

func newBzip2Encoder(w io.Writer, level int) (Encoder, error) {
	if level == DefaultLevel {
		level = bzip2.DefaultCompression
	}

	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level})
	if err != nil {
		return nil, err
	}

	return &bzip2Encoder{Writer: bw}, nil
}

func (e *bzip2Encoder) Flush() error { return nil }

// bzip2Decoder - streaming bzip2 decompressor. The library reader is
// created on the first Read so a freshly built decoder never touches a
// write-only source.
type bzip2Decoder struct {
	src io.Reader
	br  *bzip2.Reader
}

func newBzip2Decoder(r io.Reader) (Decoder, error) {
	return &bzip2Decoder{src: r}, nil
}

func (d *bzip2Decoder) Read(p []byte) (int, error) {
	if d.br == nil {
		br, err := bzip2.NewReader(d.src, nil)
		if err != nil {
			return 0, err
		}
		d.br = br
	}

	return d.br.Read(p)
}

func (d *bzip2Decoder) Close() error {
	if d.br == nil {
		return nil
	}
	return d.br.Close()
}
