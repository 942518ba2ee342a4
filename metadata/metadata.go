// Package metadata implements the TRS header: an ordered, typed
// tag-to-value mapping read and written as a sequence of
// tag-length-value records, terminated by the TRACE_BLOCK sentinel.
package metadata

import (
	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/tag"
)

// Map is an ordered mapping from header tag to value. Insertion order is
// preserved and reported by Tags; WriteHeader does not follow it, and
// emits records in the tag registry's order instead.
type Map struct {
	order  []tag.ID
	values map[tag.ID]tag.Value
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[tag.ID]tag.Value)}
}

// Put sets id's value, overwriting any existing value. If id is new, it
// is appended to the insertion order.
func (m *Map) Put(id tag.ID, v tag.Value) {
	if _, ok := m.values[id]; !ok {
		m.order = append(m.order, id)
	}
	m.values[id] = v
}

// PutIfAbsent sets id's value only if it has not already been set,
// returning true if it set the value. This is how the writer populates
// the fields it derives from the first appended trace without
// clobbering a value the caller already supplied.
func (m *Map) PutIfAbsent(id tag.ID, v tag.Value) bool {
	if _, ok := m.values[id]; ok {
		return false
	}
	m.Put(id, v)
	return true
}

// Get returns id's value and whether it was present.
func (m *Map) Get(id tag.ID) (tag.Value, bool) {
	v, ok := m.values[id]
	return v, ok
}

// GetOrDefault returns id's value, falling back to the tag's registered
// default if it has not been set. Unregistered ids fall back to the
// zero Value.
func (m *Map) GetOrDefault(id tag.ID) tag.Value {
	if v, ok := m.values[id]; ok {
		return v
	}
	if t, err := tag.ByID(id); err == nil {
		return t.Default
	}
	return tag.Value{}
}

// Tags returns the tags present in the map, in insertion order.
func (m *Map) Tags() []tag.ID {
	out := make([]tag.ID, len(m.order))
	copy(out, m.order)
	return out
}

func typeMismatch(id tag.ID, requested tag.ValueKind, v tag.Value) error {
	t, _ := tag.ByID(id)
	name := t.Name
	if name == "" {
		name = "<unknown>"
	}
	return trserr.TypeMismatchError(name, valueKindName(requested), valueKindName(v.Kind))
}

func valueKindName(k tag.ValueKind) string {
	switch k {
	case tag.KindInt:
		return "int"
	case tag.KindFloat:
		return "float"
	case tag.KindString:
		return "string"
	case tag.KindBool:
		return "bool"
	case tag.KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Int returns id's value as an int32.
func (m *Map) Int(id tag.ID) (int32, error) {
	v := m.GetOrDefault(id)
	if v.Kind != tag.KindInt {
		return 0, typeMismatch(id, tag.KindInt, v)
	}
	return v.Int, nil
}

// Float returns id's value as a float32.
func (m *Map) Float(id tag.ID) (float32, error) {
	v := m.GetOrDefault(id)
	if v.Kind != tag.KindFloat {
		return 0, typeMismatch(id, tag.KindFloat, v)
	}
	return v.Float, nil
}

// String returns id's value as a string.
func (m *Map) String(id tag.ID) (string, error) {
	v := m.GetOrDefault(id)
	if v.Kind != tag.KindString {
		return "", typeMismatch(id, tag.KindString, v)
	}
	return v.Str, nil
}

// Bool returns id's value as a bool.
func (m *Map) Bool(id tag.ID) (bool, error) {
	v := m.GetOrDefault(id)
	if v.Kind != tag.KindBool {
		return false, typeMismatch(id, tag.KindBool, v)
	}
	return v.Bool, nil
}

// Bytes returns id's value as a byte slice.
func (m *Map) Bytes(id tag.ID) ([]byte, error) {
	v := m.GetOrDefault(id)
	if v.Kind != tag.KindBytes {
		return nil, typeMismatch(id, tag.KindBytes, v)
	}
	return v.Bytes, nil
}

// Equal reports whether m and other hold the same set of tags mapped to
// equal values, ignoring insertion order -- two headers that parse to
// the same tag set are considered equal metadata regardless of which
// order a caller happened to Put them in.
func (m *Map) Equal(other *Map) bool {
	if len(m.values) != len(other.values) {
		return false
	}
	for id, v := range m.values {
		ov, ok := other.values[id]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
