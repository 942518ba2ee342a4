package ptype

import "github.com/StefanD986/java-trsfile/internal/trserr"

// Value holds one parameter value of a specific Kind. Exactly one of its
// fields is meaningful for a given Kind, selected by that Kind's base
// primitive; the others are left zero. This mirrors the tagged-variant
// strategy the heterogeneous parameter map is built from (see the
// parameter package), without resorting to interface{} boxing for every
// element.
type Value struct {
	Kind Kind

	Bytes   []int8
	Shorts  []int16
	Ints    []int32
	Floats  []float32
	Longs   []int64
	Doubles []float64
	Str     string
	Bools   []bool
}

// Length returns this value's length as stored in the TLV record: the
// element count for every kind except KindString, for which it is the
// byte length of Str.
func (v Value) Length() int {
	switch v.Kind {
	case KindByte, KindByteArray:
		return len(v.Bytes)
	case KindShort, KindShortArray:
		return len(v.Shorts)
	case KindInt, KindIntArray:
		return len(v.Ints)
	case KindFloat, KindFloatArray:
		return len(v.Floats)
	case KindLong, KindLongArray:
		return len(v.Longs)
	case KindDouble, KindDoubleArray:
		return len(v.Doubles)
	case KindString:
		return len(v.Str)
	case KindBool, KindBoolArray:
		return len(v.Bools)
	default:
		return 0
	}
}

func typeMismatch(key string, requested, actual Kind) error {
	return trserr.TypeMismatchError(key, requested.Name(), actual.Name())
}

// NewByte builds a scalar KindByte value.
func NewByte(v int8) Value { return Value{Kind: KindByte, Bytes: []int8{v}} }

// NewByteArray builds a KindByteArray value.
func NewByteArray(v []int8) Value { return Value{Kind: KindByteArray, Bytes: v} }

// NewShort builds a scalar KindShort value.
func NewShort(v int16) Value { return Value{Kind: KindShort, Shorts: []int16{v}} }

// NewShortArray builds a KindShortArray value.
func NewShortArray(v []int16) Value { return Value{Kind: KindShortArray, Shorts: v} }

// NewInt builds a scalar KindInt value.
func NewInt(v int32) Value { return Value{Kind: KindInt, Ints: []int32{v}} }

// NewIntArray builds a KindIntArray value.
func NewIntArray(v []int32) Value { return Value{Kind: KindIntArray, Ints: v} }

// NewFloat builds a scalar KindFloat value.
func NewFloat(v float32) Value { return Value{Kind: KindFloat, Floats: []float32{v}} }

// NewFloatArray builds a KindFloatArray value.
func NewFloatArray(v []float32) Value { return Value{Kind: KindFloatArray, Floats: v} }

// NewLong builds a scalar KindLong value.
func NewLong(v int64) Value { return Value{Kind: KindLong, Longs: []int64{v}} }

// NewLongArray builds a KindLongArray value.
func NewLongArray(v []int64) Value { return Value{Kind: KindLongArray, Longs: v} }

// NewDouble builds a scalar KindDouble value.
func NewDouble(v float64) Value { return Value{Kind: KindDouble, Doubles: []float64{v}} }

// NewDoubleArray builds a KindDoubleArray value.
func NewDoubleArray(v []float64) Value { return Value{Kind: KindDoubleArray, Doubles: v} }

// NewString builds a KindString value.
func NewString(v string) Value { return Value{Kind: KindString, Str: v} }

// NewBool builds a scalar KindBool value.
func NewBool(v bool) Value { return Value{Kind: KindBool, Bools: []bool{v}} }

// NewBoolArray builds a KindBoolArray value.
func NewBoolArray(v []bool) Value { return Value{Kind: KindBoolArray, Bools: v} }

// AsByte returns v's single byte, failing with a type mismatch if v is
// not a scalar KindByte.
func (v Value) AsByte(key string) (int8, error) {
	if v.Kind != KindByte || len(v.Bytes) != 1 {
		return 0, typeMismatch(key, KindByte, v.Kind)
	}
	return v.Bytes[0], nil
}

// AsByteArray returns v's bytes, failing with a type mismatch if v is
// not a KindByteArray (or the scalar KindByte, sugared as a 1-element
// array).
func (v Value) AsByteArray(key string) ([]int8, error) {
	if v.Kind != KindByteArray && v.Kind != KindByte {
		return nil, typeMismatch(key, KindByteArray, v.Kind)
	}
	return v.Bytes, nil
}

// AsShort returns v's single short.
func (v Value) AsShort(key string) (int16, error) {
	if v.Kind != KindShort || len(v.Shorts) != 1 {
		return 0, typeMismatch(key, KindShort, v.Kind)
	}
	return v.Shorts[0], nil
}

// AsShortArray returns v's shorts.
func (v Value) AsShortArray(key string) ([]int16, error) {
	if v.Kind != KindShortArray && v.Kind != KindShort {
		return nil, typeMismatch(key, KindShortArray, v.Kind)
	}
	return v.Shorts, nil
}

// AsInt returns v's single int.
func (v Value) AsInt(key string) (int32, error) {
	if v.Kind != KindInt || len(v.Ints) != 1 {
		return 0, typeMismatch(key, KindInt, v.Kind)
	}
	return v.Ints[0], nil
}

// AsIntArray returns v's ints.
func (v Value) AsIntArray(key string) ([]int32, error) {
	if v.Kind != KindIntArray && v.Kind != KindInt {
		return nil, typeMismatch(key, KindIntArray, v.Kind)
	}
	return v.Ints, nil
}

// AsFloat returns v's single float.
func (v Value) AsFloat(key string) (float32, error) {
	if v.Kind != KindFloat || len(v.Floats) != 1 {
		return 0, typeMismatch(key, KindFloat, v.Kind)
	}
	return v.Floats[0], nil
}

// AsFloatArray returns v's floats.
func (v Value) AsFloatArray(key string) ([]float32, error) {
	if v.Kind != KindFloatArray && v.Kind != KindFloat {
		return nil, typeMismatch(key, KindFloatArray, v.Kind)
	}
	return v.Floats, nil
}

// AsLong returns v's single long.
func (v Value) AsLong(key string) (int64, error) {
	if v.Kind != KindLong || len(v.Longs) != 1 {
		return 0, typeMismatch(key, KindLong, v.Kind)
	}
	return v.Longs[0], nil
}

// AsLongArray returns v's longs.
func (v Value) AsLongArray(key string) ([]int64, error) {
	if v.Kind != KindLongArray && v.Kind != KindLong {
		return nil, typeMismatch(key, KindLongArray, v.Kind)
	}
	return v.Longs, nil
}

// AsDouble returns v's single double.
func (v Value) AsDouble(key string) (float64, error) {
	if v.Kind != KindDouble || len(v.Doubles) != 1 {
		return 0, typeMismatch(key, KindDouble, v.Kind)
	}
	return v.Doubles[0], nil
}

// AsDoubleArray returns v's doubles.
func (v Value) AsDoubleArray(key string) ([]float64, error) {
	if v.Kind != KindDoubleArray && v.Kind != KindDouble {
		return nil, typeMismatch(key, KindDoubleArray, v.Kind)
	}
	return v.Doubles, nil
}

// AsString returns v's string.
func (v Value) AsString(key string) (string, error) {
	if v.Kind != KindString {
		return "", typeMismatch(key, KindString, v.Kind)
	}
	return v.Str, nil
}

// AsBool returns v's single bool.
func (v Value) AsBool(key string) (bool, error) {
	if v.Kind != KindBool || len(v.Bools) != 1 {
		return false, typeMismatch(key, KindBool, v.Kind)
	}
	return v.Bools[0], nil
}

// AsBoolArray returns v's bools.
func (v Value) AsBoolArray(key string) ([]bool, error) {
	if v.Kind != KindBoolArray && v.Kind != KindBool {
		return nil, typeMismatch(key, KindBoolArray, v.Kind)
	}
	return v.Bools, nil
}
