// Package mmap memory-maps a sliding window of a file for the trace set
// reader.
//
// Unlike a simple whole-file mapping, a TRS file's data section can run
// well past the largest single mapping an OS will comfortably hand out,
// so the reader only ever maps one window at a time and remaps when a
// requested trace falls outside it. Window.Remap is the remap
// primitive; Reader.Get (see the trs package) decides when to call it.
package mmap

// Window is a single memory-mapped region of a file, anchored at a byte
// offset.
//
// A Window's Bytes() always appears to begin exactly at Start, even
// though the underlying mapping may have been created at an
// OS-page-aligned offset at or before Start; the alignment padding is
// hidden from callers.
type Window struct {
	backend windowBackend

	// Start is the file offset the window's data begins at.
	Start int64
}

// Open creates a Window starting at offset start, covering at most
// length bytes of the file at path (fewer, if the file is shorter).
func Open(path string, start, length int64) (*Window, error) {
	b, err := openWindow(path, start, length)
	if err != nil {
		return nil, err
	}
	return &Window{backend: b, Start: start}, nil
}

// Bytes returns the window's current mapped contents.
func (w *Window) Bytes() []byte { return w.backend.bytes() }

// Len returns the number of bytes currently mapped.
func (w *Window) Len() int64 { return int64(len(w.backend.bytes())) }

// Contains reports whether the half-open byte range [start, end) lies
// entirely within the window's currently mapped span.
func (w *Window) Contains(start, end int64) bool {
	return start >= w.Start && end <= w.Start+w.Len()
}

// Remap releases the window's current mapping and replaces it with a
// new one starting at start, covering at most length bytes.
func (w *Window) Remap(path string, start, length int64) error {
	if err := w.backend.close(); err != nil {
		return err
	}

	b, err := openWindow(path, start, length)
	if err != nil {
		return err
	}
	w.backend, w.Start = b, start
	return nil
}

// Close releases the window's mapping.
func (w *Window) Close() error { return w.backend.close() }

// windowBackend is implemented once per platform family: mmap_unix.go
// for platforms with a real mmap syscall, mmap_fallback.go (seek +
// buffered read) everywhere else.
type windowBackend interface {
	bytes() []byte
	close() error
}
