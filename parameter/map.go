package parameter

import (
	"bytes"

	"github.com/StefanD986/java-trsfile/internal/dataio"
	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/ptype"
)

// store is the ordered name-to-value core shared by Map and
// ImmutableMap. Embedding it gives both types identical read
// behavior while keeping mutation (Put) exclusive to Map.
type store struct {
	order  []string
	values map[string]ptype.Value
}

// Get returns key's value and whether it was present.
func (s *store) Get(key string) (ptype.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// MustGet returns key's value, failing with KeyNotFound if absent.
func (s *store) MustGet(key string) (ptype.Value, error) {
	v, ok := s.values[key]
	if !ok {
		return ptype.Value{}, trserr.KeyNotFoundError(key)
	}
	return v, nil
}

// Keys returns the parameter names in insertion order.
func (s *store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Map is a mutable, ordered mapping from parameter name to value.
type Map struct {
	store
}

// NewMap returns an empty, mutable Map.
func NewMap() *Map {
	return &Map{store{values: make(map[string]ptype.Value)}}
}

// Put sets key's value, overwriting any existing value.
func (m *Map) Put(key string, v ptype.Value) error {
	if _, ok := m.values[key]; !ok {
		m.order = append(m.order, key)
	}
	m.values[key] = v
	return nil
}

// ImmutableMap is a read-only, ordered mapping from parameter name to
// value, returned by Freeze and Deserialize. It has no Put method at
// all -- mutation is a compile error, not a runtime-checked mode.
type ImmutableMap struct {
	store
}

// Freeze returns an ImmutableMap snapshot of m's current contents.
func (m *Map) Freeze() *ImmutableMap {
	out := &ImmutableMap{store{
		order:  append([]string(nil), m.order...),
		values: make(map[string]ptype.Value, len(m.values)),
	}}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// readable is satisfied by both Map and ImmutableMap, letting
// Serialize and DefinitionsFor work from either.
type readable interface {
	Keys() []string
	Get(string) (ptype.Value, bool)
}

// Serialize concatenates every entry's encoded bytes in insertion order.
// There is no per-entry framing -- the framing lives in the
// corresponding DefinitionMap.
func Serialize(m readable) ([]byte, error) {
	var buf bytes.Buffer
	w := dataio.MakeWriter(&buf)
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if err := ptype.Serialize(w, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Deserialize decodes raw into a parameter map according to
// definitions, iterating definitions in insertion order and reading
// length*elementSize bytes per entry. The returned map is immutable.
func Deserialize(raw []byte, definitions *DefinitionMap) (*ImmutableMap, error) {
	total := definitions.TotalSize()
	if len(raw) == 0 {
		if total != 0 {
			return nil, trserr.Newf(trserr.ParameterLengthMismatch, "parameter: empty data but definitions require %d bytes", total)
		}
		return NewMap().Freeze(), nil
	}
	if len(raw) != total {
		return nil, trserr.ParameterLengthMismatchError(len(raw), total)
	}

	r := dataio.MakeReader(bytes.NewReader(raw))
	m := NewMap()
	for _, def := range definitions.Entries() {
		v, err := ptype.Deserialize(r, def.Kind, def.Length)
		if err != nil {
			return nil, trserr.Wrap(trserr.TrsFormat, err, "parameter: decoding "+def.Name)
		}
		if err := m.Put(def.Name, v); err != nil {
			return nil, err
		}
	}
	return m.Freeze(), nil
}

// DefinitionsFor derives a DefinitionMap describing m's current
// contents, in insertion order. This is how a writer turns a caller's
// parameter map into the definitions it must also persist.
func DefinitionsFor(m readable) (*DefinitionMap, error) {
	d := NewDefinitionMap()
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		if err := d.Add(key, v.Kind, v.Length()); err != nil {
			return nil, err
		}
	}
	return d, nil
}
