//go:build !unix

package mmap

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// bufferWindow substitutes a seek-and-read for a real mmap on platforms
// without one, observably equivalent as far as Window's contract goes:
// Bytes() returns the requested byte range, loaded into memory.
type bufferWindow struct {
	data []byte
}

func openWindow(path string, start, length int64) (windowBackend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "mmap: opening file")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "mmap: stat")
	}

	if start > fi.Size() {
		start = fi.Size()
	}
	if remaining := fi.Size() - start; length > remaining {
		length = remaining
	}
	if length <= 0 {
		return &bufferWindow{}, nil
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "mmap: seeking")
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, errors.Wrap(err, "mmap: reading window")
	}

	return &bufferWindow{data: data}, nil
}

func (w *bufferWindow) bytes() []byte { return w.data }

func (w *bufferWindow) close() error { return nil }
