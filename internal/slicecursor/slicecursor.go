// Package slicecursor offers Cursor, a slice-backed reader with zero-copy
// options.
//
// Cursor's Next returns sections of its backing Buffer directly, so a
// field can be read out of a memory-mapped window without copying it.
//
// With great power comes great responsibility: holding a reference to
// an underlying Buffer means that the Buffer must persist as long as
// that reference is valid. Once a window is remapped or closed, the old
// Buffer's backing memory may be unmapped, so a field that must outlive
// it has to be copied out, or read with AlwaysCopy set. The trace set
// reader sets AlwaysCopy, so the title and data of every trace it
// returns are copies.
package slicecursor

import (
	"io"

	"github.com/pkg/errors"
)

// Cursor is an io.Reader-inspired type that exposes operations returning
// slices of its own Buffer, instead of filling a caller-supplied one.
//
// Cursor can act like an io.Reader, io.ByteReader, and io.Seeker,
// allowing it to interface with other APIs at the expense of
// introducing data copying for those calls.
//
// Cursor can be copied, creating an independent snapshot of its current
// position.
type Cursor struct {
	// Buffer is the backing buffer for this cursor -- typically the
	// currently mapped window of a trace set file.
	Buffer []byte

	// AlwaysCopy, if true, causes the zero-copy methods to return copies
	// of their backing data instead of direct references. Set this when
	// a returned field must outlive the next window remap.
	AlwaysCopy bool

	// pos is the Cursor's position within Buffer.
	pos int64
}

var _ interface {
	io.Reader
	io.ByteReader
	io.Seeker
} = (*Cursor)(nil)

func (c *Cursor) remainingSlice() []byte {
	if c.pos >= int64(len(c.Buffer)) {
		return nil
	}
	return c.Buffer[c.pos:]
}

// Read implements io.Reader.
//
// Note that using Read causes data to be copied.
func (c *Cursor) Read(b []byte) (amt int, err error) {
	remaining := c.remainingSlice()
	amt = copy(b, remaining)

	c.pos += int64(amt)
	if c.pos >= int64(len(c.Buffer)) {
		err = io.EOF
	}
	return
}

// ReadByte implements io.ByteReader.
func (c *Cursor) ReadByte() (b byte, err error) {
	if c.pos >= int64(len(c.Buffer)) {
		return 0, io.EOF
	}

	b, c.pos = c.Buffer[c.pos], c.pos+1
	return
}

// Seek implements io.Seeker.
func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekEnd:
		newPos = offset + int64(len(c.Buffer)) - 1
		if offset > 0 {
			// Seeking to any positive offset past the end is legal.
			if len(c.Buffer) == 0 {
				c.pos = offset
			} else {
				c.pos = newPos
			}
			return c.pos, nil
		}
	case io.SeekCurrent:
		newPos = c.pos + offset
	}

	if newPos < 0 || newPos >= int64(len(c.Buffer)) {
		return c.pos, errors.New("slicecursor: seek outside of bounds")
	}

	c.pos = newPos
	return c.pos, nil
}

// Next returns the next n bytes in c, advancing c.
//
// Next is a zero-copy equivalent to Read, and returns a slice of c's
// Buffer unless AlwaysCopy is true.
//
// If there are fewer than n bytes in c, Next returns as many bytes as it
// can and io.EOF as an error. Next never returns an error if all
// requested bytes are returned.
func (c *Cursor) Next(n int) (v []byte, err error) {
	v = c.remainingSlice()
	if n <= len(v) {
		v = v[:n]
	} else {
		err = io.EOF
	}

	if c.AlwaysCopy {
		v = append([]byte(nil), v...)
	}

	c.pos += int64(len(v))
	return
}

// Pos returns the cursor's current offset within Buffer.
func (c *Cursor) Pos() int64 { return c.pos }
