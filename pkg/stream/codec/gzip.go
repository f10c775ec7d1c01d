package codec

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipEncoder - streaming gzip compressor.
type gzipEncoder struct {
	*gzip.Writer
}

func newGzipEncoder(w io.Writer, level int) (Encoder, error) {
	if level == DefaultLevel {
		level = gzip.DefaultCompression
	}

	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}

	return &gzipEncoder{Writer: gw}, nil
}

// gzipDecoder - streaming gzip decompressor. The library reader consumes
// the gzip header at construction, so it is created on the first Read;
// this keeps a freshly built decoder from touching a write-only source.
type gzipDecoder struct {
	src io.Reader
	gr  *gzip.Reader
}

func newGzipDecoder(r io.Reader) Decoder {
	return &gzipDecoder{src: r}
}

func (d *gzipDecoder) Read(p []byte) (int, error) {
	if d.gr == nil {
		gr, err := gzip.NewReader(d.src)
		if err != nil {
			return 0, err
		}
		d.gr = gr
	}

	return d.gr.Read(p)
}

func (d *gzipDecoder) Close() error {
	if d.gr == nil {
		return nil
	}
	return d.gr.Close()
}
