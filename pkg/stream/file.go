package stream

import (
	"io"
	"os"
)

// FileStream - a stream backed by a file on the local file system.
// Unlike the compression adapter, a FileStream owns its file and Close
// releases it.
type FileStream struct {
	file     *os.File
	readable bool
	writable bool
	closed   bool
}

var _ Stream = (*FileStream)(nil)

// OpenFileStream - opens an existing file for reading.
func OpenFileStream(name string) (*FileStream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &FileStream{file: f, readable: true}, nil
}

// CreateFileStream - creates (or truncates) a file for writing.
func CreateFileStream(name string) (*FileStream, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &FileStream{file: f, writable: true}, nil
}

// Read - reads up to len(p) bytes from the file.
func (f *FileStream) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if !f.readable {
		return 0, ErrUnsupported
	}
	return f.file.Read(p)
}

// Write - writes p to the file.
func (f *FileStream) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if !f.writable {
		return 0, ErrUnsupported
	}
	return f.file.Write(p)
}

// Seek - moves the file cursor to an absolute position.
func (f *FileStream) Seek(pos int64) error {
	if f.closed {
		return ErrClosed
	}
	_, err := f.file.Seek(pos, io.SeekStart)
	return err
}

// Tell - returns the current file cursor position.
func (f *FileStream) Tell() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.file.Seek(0, io.SeekCurrent)
}

// Size - returns the file size.
func (f *FileStream) Size() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}

	info, err := f.file.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

// Truncate - resizes the file.
func (f *FileStream) Truncate(size int64) error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return ErrUnsupported
	}
	return f.file.Truncate(size)
}

// Flush - syncs file contents to stable storage.
func (f *FileStream) Flush() error {
	if f.closed {
		return ErrClosed
	}
	return f.file.Sync()
}

// Close - closes the underlying file. Idempotent.
func (f *FileStream) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	return f.file.Close()
}

// CanRead - reports whether the file was opened for reading.
func (f *FileStream) CanRead() bool { return f.readable && !f.closed }

// CanWrite - reports whether the file was opened for writing.
func (f *FileStream) CanWrite() bool { return f.writable && !f.closed }
