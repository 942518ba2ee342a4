// Package bufferpool pools the fixed-size per-trace staging buffers the
// writer uses to assemble a trace's title, data, and sample bytes into
// one contiguous region before issuing a single Write call.
//
// Every trace written by a given Writer has the same on-disk size
// (TITLE_SPACE + DATA_LENGTH + NUMBER_OF_SAMPLES*sample size), so the
// writer keeps one Pool sized to that trace length and reuses its
// buffers across add calls instead of allocating per trace.
package bufferpool

import "sync"

// Pool maintains a pool of fixed-size buffers, handing out a new one
// only when none is available for reuse.
type Pool struct {
	// Size is the size of the buffers in this pool.
	Size int

	base sync.Pool
}

// Get returns a buffer, allocating one if one is not available.
//
// The caller should return the buffer to the pool by calling its
// Release method when done with it.
func (bp *Pool) Get() *Buffer {
	b, ok := bp.base.Get().(*Buffer)
	if !ok {
		b = &Buffer{bytes: make([]byte, bp.Size)}
	}
	b.pool = bp
	return b
}

// Buffer is a single owner's view of a pooled byte slice.
type Buffer struct {
	bytes []byte
	pool  *Pool
}

// Bytes returns this buffer's byte slice.
func (b *Buffer) Bytes() []byte { return b.bytes }

// Release returns the buffer to its pool. A Buffer must only be
// released once, and not used again afterward.
func (b *Buffer) Release() {
	pool, bp := b.pool, b
	bp.pool = nil
	pool.base.Put(bp)
}
