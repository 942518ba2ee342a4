// Package encoding enumerates the numeric representations a trace's
// samples can be stored in on disk.
package encoding

import "github.com/pkg/errors"

// Encoding identifies how a trace's samples are packed on disk.
type Encoding int

const (
	// Illegal marks a SAMPLE_CODING value this library does not
	// recognize.
	Illegal Encoding = iota
	// Byte packs each sample as a signed 8-bit integer.
	Byte
	// Short packs each sample as a signed little-endian 16-bit integer.
	Short
	// Int packs each sample as a signed little-endian 32-bit integer.
	Int
	// Float packs each sample as an IEEE-754 little-endian 32-bit float.
	Float
)

// size holds the on-disk byte width of one sample under each Encoding.
var size = map[Encoding]int{
	Byte:  1,
	Short: 2,
	Int:   4,
	Float: 4,
}

// bounds holds the inclusive integer range each integral Encoding can
// represent without loss. Float has no meaningful integer bound and is
// not present here.
var bounds = map[Encoding][2]int64{
	Byte:  {-128, 127},
	Short: {-32768, 32767},
	Int:   {-2147483648, 2147483647},
}

// FromCode resolves the on-disk SAMPLE_CODING integer code to an
// Encoding.
func FromCode(code int) (Encoding, error) {
	e := Encoding(code)
	if _, ok := size[e]; !ok {
		return Illegal, errors.Errorf("encoding: unknown encoding code %d", code)
	}
	return e, nil
}

// Code returns the on-disk SAMPLE_CODING integer code for e.
func (e Encoding) Code() int { return int(e) }

// Size returns the number of bytes one sample occupies on disk under e.
func (e Encoding) Size() int { return size[e] }

// Bounds returns the inclusive [min, max] range of integer values e can
// represent. ok is false for Float and for any unrecognized Encoding,
// since Float has no meaningful integer range to enforce.
func (e Encoding) Bounds() (lo, hi int64, ok bool) {
	b, found := bounds[e]
	if !found {
		return 0, 0, false
	}
	return b[0], b[1], true
}

// Valid reports whether e is a recognized, non-Illegal encoding.
func (e Encoding) Valid() bool {
	_, ok := size[e]
	return ok
}

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case Byte:
		return "BYTE"
	case Short:
		return "SHORT"
	case Int:
		return "INT"
	case Float:
		return "FLOAT"
	default:
		return "ILLEGAL"
	}
}
