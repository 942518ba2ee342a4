//go:build unix

package mmap

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// unixWindow memory-maps a byte range of a file using mmap(2), handling
// the OS requirement that the mapping's offset be page-aligned by
// mapping from the nearest preceding page boundary and slicing off the
// leading padding before handing bytes back to the caller.
type unixWindow struct {
	mapped []byte // the raw mmap(2) result, page-aligned start
	data   []byte // mapped, sliced to [start, start+length)
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
		return &unixWindow{}, nil
	}

	pageSize := int64(os.Getpagesize())
	alignedStart := (start / pageSize) * pageSize
	padding := start - alignedStart

	mapped, err := unix.Mmap(int(f.Fd()), alignedStart, int(length+padding), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrap(err, "mmap: mapping file")
	}

	return &unixWindow{
		mapped: mapped,
		data:   mapped[padding:],
	}, nil
}

func (w *unixWindow) bytes() []byte { return w.data }

func (w *unixWindow) close() error {
	if w.mapped == nil {
		return nil
	}
	mapped := w.mapped
	w.mapped, w.data = nil, nil
	return errors.Wrap(unix.Munmap(mapped), "mmap: unmapping file")
}
