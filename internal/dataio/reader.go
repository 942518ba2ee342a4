// Package dataio adapts arbitrary io.Reader/io.Writer values into the
// combined byte-and-buffer interfaces the TRS codec needs: every TLV
// record in a trace set header is read as a tag byte, a varint length,
// and then a value of that length, so every reader in this package
// needs both ReadByte (for the tag and the varint) and Read (for the
// value bytes).
package dataio

import "io"

// Reader is a reader that can read both individual bytes and sequences of
// bytes, which is exactly what the header and parameter codecs need.
type Reader interface {
	io.Reader
	io.ByteReader
}

// MakeReader adapts r into a Reader, wrapping it only if it does not
// already implement ByteReader.
func MakeReader(r io.Reader) Reader {
	if dr, ok := r.(Reader); ok {
		return dr
	}
	return &simulatedReader{r}
}

type simulatedReader struct {
	io.Reader
}

func (r *simulatedReader) ReadByte() (v byte, err error) {
	var d [1]byte
	var amt int

	amt, err = r.Read(d[:])
	if amt == 1 {
		v = d[0]
	}
	return
}
