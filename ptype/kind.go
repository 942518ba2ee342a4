// Package ptype implements the fifteen typed-parameter kinds a trace
// parameter value can take: eight scalar primitives, seven of
// which also have a homogeneous array form, plus the array-less STRING
// kind. Every kind knows its own element size and how to read or write
// itself from a byte stream; scalar and array forms of the same
// primitive share that codec, since the wire format only distinguishes
// them by length (a length of 1 is the scalar case).
package ptype

import "github.com/pkg/errors"

// Kind is one of the fifteen parameter value kinds.
type Kind uint8

const (
	KindByte Kind = iota
	KindByteArray
	KindShort
	KindShortArray
	KindInt
	KindIntArray
	KindFloat
	KindFloatArray
	KindLong
	KindLongArray
	KindDouble
	KindDoubleArray
	KindString
	KindBool
	KindBoolArray
)

// base identifies the underlying primitive a Kind is built from,
// independent of whether it is the scalar or array form.
type base uint8

const (
	baseByte base = iota
	baseShort
	baseInt
	baseFloat
	baseLong
	baseDouble
	baseString
	baseBool
)

var kindInfo = map[Kind]struct {
	base    base
	isArray bool
	name    string
}{
	KindByte:        {baseByte, false, "BYTE"},
	KindByteArray:   {baseByte, true, "BYTE_ARRAY"},
	KindShort:       {baseShort, false, "SHORT"},
	KindShortArray:  {baseShort, true, "SHORT_ARRAY"},
	KindInt:         {baseInt, false, "INT"},
	KindIntArray:    {baseInt, true, "INT_ARRAY"},
	KindFloat:       {baseFloat, false, "FLOAT"},
	KindFloatArray:  {baseFloat, true, "FLOAT_ARRAY"},
	KindLong:        {baseLong, false, "LONG"},
	KindLongArray:   {baseLong, true, "LONG_ARRAY"},
	KindDouble:      {baseDouble, false, "DOUBLE"},
	KindDoubleArray: {baseDouble, true, "DOUBLE_ARRAY"},
	KindString:      {baseString, false, "STRING"},
	KindBool:        {baseBool, false, "BOOL"},
	KindBoolArray:   {baseBool, true, "BOOL_ARRAY"},
}

var elementSize = map[base]int{
	baseByte:   1,
	baseShort:  2,
	baseInt:    4,
	baseFloat:  4,
	baseLong:   8,
	baseDouble: 8,
	// STRING's element size is 1 byte per UTF-8 code unit: its length is
	// a byte count, not a code-point count.
	baseString: 1,
	baseBool:   1,
}

// Valid reports whether k is one of the fifteen known kinds.
func (k Kind) Valid() bool {
	_, ok := kindInfo[k]
	return ok
}

// Name returns k's wire/debug name, e.g. "BYTE_ARRAY".
func (k Kind) Name() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// String implements fmt.Stringer.
func (k Kind) String() string { return k.Name() }

// IsArray reports whether k is the array form of its base primitive.
// KindString is never an array.
func (k Kind) IsArray() bool {
	return kindInfo[k].isArray
}

// ElementSize returns the number of bytes a single element of k occupies
// on disk. For KindString, this is 1 (one byte per UTF-8 code unit).
func (k Kind) ElementSize() (int, error) {
	info, ok := kindInfo[k]
	if !ok {
		return 0, errors.Errorf("ptype: unknown kind %d", k)
	}
	return elementSize[info.base], nil
}

// ByteLength returns the total number of bytes a value of k with the
// given length occupies on disk: length * ElementSize(). For
// KindString, length is itself a byte count, so this is just length.
func (k Kind) ByteLength(length int) (int, error) {
	size, err := k.ElementSize()
	if err != nil {
		return 0, err
	}
	return length * size, nil
}
