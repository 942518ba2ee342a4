// Package tag enumerates the TRS header's fixed tag set: one entry per
// recognized header field, keyed by a single byte identifier.
//
// The distilled specification this library implements leaves the exact
// identifier byte assigned to each tag undefined -- it names the tags
// and their kinds, not their wire IDs. This package assigns a
// consistent, self-describing numbering (see DESIGN.md) rather than
// guessing at an external reference's unseen byte values.
package tag

import "github.com/pkg/errors"

// ValueKind is the coarse value type a header tag's value can hold.
// This is a much smaller set than the fifteen ptype.Kind parameter
// kinds -- the header stores single ints, floats, strings and bools,
// plus raw byte blobs.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
	KindBool
	KindBytes
)

// Value holds one header tag's value, tagged by ValueKind.
type Value struct {
	Kind ValueKind

	Int   int32
	Float float32
	Str   string
	Bool  bool
	Bytes []byte
}

// IntValue builds a KindInt Value.
func IntValue(v int32) Value { return Value{Kind: KindInt, Int: v} }

// FloatValue builds a KindFloat Value.
func FloatValue(v float32) Value { return Value{Kind: KindFloat, Float: v} }

// StringValue builds a KindString Value.
func StringValue(v string) Value { return Value{Kind: KindString, Str: v} }

// BoolValue builds a KindBool Value.
func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// BytesValue builds a KindBytes Value.
func BytesValue(v []byte) Value { return Value{Kind: KindBytes, Bytes: v} }

// Equal reports whether a and b hold the same kind and content.
func (a Value) Equal(b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt:
		return a.Int == b.Int
	case KindFloat:
		return a.Float == b.Float
	case KindString:
		return a.Str == b.Str
	case KindBool:
		return a.Bool == b.Bool
	case KindBytes:
		if len(a.Bytes) != len(b.Bytes) {
			return false
		}
		for i := range a.Bytes {
			if a.Bytes[i] != b.Bytes[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ID is a header tag's single-byte wire identifier.
type ID uint8

// Tag describes one recognized header field.
type Tag struct {
	ID       ID
	Name     string
	Kind     ValueKind
	Default  Value
	Required bool
}

const (
	NumberOfTraces ID = iota + 1
	NumberOfSamples
	SampleCoding
	DataLength
	TitleSpace
	GlobalTitle
	ScaleX
	TraceParameterDefinitions

	// TraceBlock is the sentinel tag that terminates the header. Its
	// value length is always 0; its presence, not its content, marks
	// end-of-header.
	TraceBlock ID = 0x7F
)

var registry = []Tag{
	{ID: NumberOfTraces, Name: "NUMBER_OF_TRACES", Kind: KindInt, Default: IntValue(0), Required: true},
	{ID: NumberOfSamples, Name: "NUMBER_OF_SAMPLES", Kind: KindInt, Default: IntValue(0), Required: true},
	{ID: SampleCoding, Name: "SAMPLE_CODING", Kind: KindInt, Default: IntValue(1), Required: true},
	{ID: DataLength, Name: "DATA_LENGTH", Kind: KindInt, Default: IntValue(0), Required: true},
	{ID: TitleSpace, Name: "TITLE_SPACE", Kind: KindInt, Default: IntValue(0), Required: true},
	{ID: GlobalTitle, Name: "GLOBAL_TITLE", Kind: KindString, Default: StringValue(""), Required: true},
	{ID: ScaleX, Name: "SCALE_X", Kind: KindFloat, Default: FloatValue(1.0), Required: true},
	{ID: TraceParameterDefinitions, Name: "TRACE_PARAMETER_DEFINITIONS", Kind: KindBytes, Default: BytesValue(nil), Required: false},
	{ID: TraceBlock, Name: "TRACE_BLOCK", Kind: KindBytes, Default: BytesValue(nil), Required: true},
}

var byID = func() map[ID]Tag {
	m := make(map[ID]Tag, len(registry))
	for _, t := range registry {
		m[t.ID] = t
	}
	return m
}()

var byName = func() map[string]Tag {
	m := make(map[string]Tag, len(registry))
	for _, t := range registry {
		m[t.Name] = t
	}
	return m
}()

// ByID looks up a tag by its wire identifier. Unknown identifiers fail
// with an error the metadata codec surfaces as TrsFormat/UnknownTag.
func ByID(id ID) (Tag, error) {
	t, ok := byID[id]
	if !ok {
		return Tag{}, errors.Errorf("tag: unknown tag id %d", id)
	}
	return t, nil
}

// ByName looks up a tag by its display name.
func ByName(name string) (Tag, error) {
	t, ok := byName[name]
	if !ok {
		return Tag{}, errors.Errorf("tag: unknown tag name %q", name)
	}
	return t, nil
}

// All returns every registered tag, in registration order.
func All() []Tag {
	out := make([]Tag, len(registry))
	copy(out, registry)
	return out
}
