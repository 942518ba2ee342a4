// Package varint implements the header length encoding used by the TRS
// wire format. It is not a general-purpose protobuf-style varint: a
// length's first byte either holds the length directly (0..127) or, if
// its high bit is set, holds a count of how many further little-endian
// bytes compose the length.
package varint

import (
	"github.com/pkg/errors"

	"github.com/StefanD986/java-trsfile/internal/dataio"
)

// maxLengthBytes bounds the number of trailing bytes a length can declare.
// A TLV value length fits comfortably in a uint64, so eight trailing
// bytes (64 bits) is the most any encoding here will ever produce.
const maxLengthBytes = 8

// Encode returns the wire encoding of n using the TRS header length
// scheme.
func Encode(n uint64) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}

	var tail [maxLengthBytes]byte
	count := 0
	for v := n; v > 0; v >>= 8 {
		tail[count] = byte(v)
		count++
	}

	out := make([]byte, count+1)
	out[0] = 0x80 | byte(count)
	copy(out[1:], tail[:count])
	return out
}

// Decode reads one length value from r.
func Decode(r dataio.Reader) (uint64, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, errors.Wrap(err, "varint: reading first byte")
	}

	if first&0x80 == 0 {
		return uint64(first), nil
	}

	count := int(first & 0x7F)
	if count > maxLengthBytes {
		return 0, errors.Errorf("varint: length-of-length %d exceeds maximum of %d", count, maxLengthBytes)
	}

	var v uint64
	for i := 0; i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, errors.Wrap(err, "varint: reading length byte")
		}
		v |= uint64(b) << (8 * uint(i))
	}
	return v, nil
}

// Size returns the number of bytes Encode(n) would produce, without
// allocating.
func Size(n uint64) int {
	if n < 0x80 {
		return 1
	}
	count := 0
	for v := n; v > 0; v >>= 8 {
		count++
	}
	return 1 + count
}
