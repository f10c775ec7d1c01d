package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/neekrasov/zstream/pkg/config"
	"github.com/neekrasov/zstream/pkg/logger"
	sizeparser "github.com/neekrasov/zstream/pkg/size_parser"
	"github.com/neekrasov/zstream/pkg/stream"
	"github.com/neekrasov/zstream/pkg/stream/codec"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Mode - pipeline direction.
type Mode string

const (
	ModeCompress   Mode = "compress"
	ModeDecompress Mode = "decompress"
)

// chunkSize - amount of plain data moved per iteration between a file
// and the compression stream.
const chunkSize = 64 << 10

// Application - represents the file compression pipeline driven by the CLI.
type Application struct {
	cfg *config.Config
}

// New - creates and returns a new instance of Application.
func New(cfg *config.Config) *Application {
	return &Application{
		cfg: cfg,
	}
}

// Run - processes the given files concurrently in the requested mode.
// Compression writes <file><suffix>; decompression strips the suffix.
func (a *Application) Run(ctx context.Context, mode Mode, files []string, suffix string) error {
	logger.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Output)

	if len(files) == 0 {
		return errors.New("no input files")
	}

	opts, err := a.streamOptions()
	if err != nil {
		return fmt.Errorf("initialize compression options failed: %w", err)
	}

	if suffix == "" {
		suffix = defaultSuffix(codec.Format(a.cfg.Compression.Format))
	}

	workers := int(a.cfg.Compression.Workers)
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			start := time.Now()

			var err error
			switch mode {
			case ModeCompress:
				err = compressFile(ctx, file, file+suffix, opts)
			case ModeDecompress:
				target, ok := strings.CutSuffix(file, suffix)
				if !ok {
					return fmt.Errorf("%s: missing %q suffix", file, suffix)
				}
				err = decompressFile(ctx, file, target, opts)
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}

			if err != nil {
				logger.Error("processing failed",
					zap.String("file", file), zap.Error(err))
				return fmt.Errorf("%s: %w", file, err)
			}

			logger.Info("file processed",
				zap.String("file", file),
				zap.String("mode", string(mode)),
				zap.Duration("elapsed", time.Since(start)))

			return nil
		})
	}

	return g.Wait()
}

// streamOptions - translates the config section into adapter options.
func (a *Application) streamOptions() ([]stream.CompressionOption, error) {
	opts := []stream.CompressionOption{stream.WithLevel(a.cfg.Compression.Level)}

	if format := a.cfg.Compression.Format; format != "" {
		opts = append(opts, stream.WithFormat(codec.Format(format)))
	}

	if bsize := a.cfg.Compression.BufferSize; bsize != "" {
		size, err := sizeparser.ParseSize(bsize)
		if err != nil {
			return nil, fmt.Errorf("parse buffer size failed: %w", err)
		}
		opts = append(opts, stream.WithBufferSize(size))
	}

	return opts, nil
}

func defaultSuffix(format codec.Format) string {
	switch format {
	case codec.Zstd:
		return ".zst"
	case codec.Bzip2:
		return ".bz2"
	case codec.Flate:
		return ".flate"
	default:
		return ".gz"
	}
}

// compressFile - streams src through a compression adapter into dst.
func compressFile(ctx context.Context, src, dst string, opts []stream.CompressionOption) error {
	in, err := stream.OpenFileStream(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := stream.CreateFileStream(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	cs, err := stream.NewCompressionStream(out, opts...)
	if err != nil {
		return err
	}
	defer cs.Close()

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := in.Read(buf)
		if n > 0 {
			if _, werr := cs.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	if err := cs.Close(); err != nil {
		return err
	}

	return out.Flush()
}

// decompressFile - streams src through a decompression adapter into dst.
// The total decompressed length is not recorded anywhere, so the end of
// data is detected by the compressed stream running out mid-chunk.
func decompressFile(ctx context.Context, src, dst string, opts []stream.CompressionOption) error {
	in, err := stream.OpenFileStream(src)
	if err != nil {
		return err
	}
	defer in.Close()

	cs, err := stream.NewCompressionStream(in, opts...)
	if err != nil {
		return err
	}
	defer cs.Close()

	out, err := stream.CreateFileStream(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := cs.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if errors.Is(err, stream.ErrPrematureEndOfStream) {
			break
		}
		if err != nil {
			return err
		}
	}

	return out.Flush()
}
