// Package parameter implements the typed parameter map: a heterogeneous,
// ordered mapping of named values whose on-disk layout is driven by a
// separate definition map carrying each entry's kind, element count, and
// byte offset.
package parameter

import (
	"bytes"
	"io"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/ptype"
)

// Definition describes one parameter's layout within a serialized
// parameter blob.
type Definition struct {
	Name   string
	Kind   ptype.Kind
	Length int
	Offset int
}

// DefinitionMap is an ordered sequence of Definitions. Offsets are
// assigned automatically as entries are appended, so they are always
// monotonically increasing and exactly tile the blob they describe.
type DefinitionMap struct {
	entries []Definition
	total   int
}

// NewDefinitionMap returns an empty DefinitionMap.
func NewDefinitionMap() *DefinitionMap {
	return &DefinitionMap{}
}

// Add appends a definition for name with the given kind and element
// count, assigning it the next available offset.
func (d *DefinitionMap) Add(name string, kind ptype.Kind, length int) error {
	elemSize, err := kind.ElementSize()
	if err != nil {
		return err
	}
	d.entries = append(d.entries, Definition{Name: name, Kind: kind, Length: length, Offset: d.total})
	d.total += elemSize * length
	return nil
}

// Entries returns the definitions in insertion order.
func (d *DefinitionMap) Entries() []Definition {
	out := make([]Definition, len(d.entries))
	copy(out, d.entries)
	return out
}

// TotalSize returns the total byte length of the blob this map
// describes: the sum of every entry's length * element size.
func (d *DefinitionMap) TotalSize() int {
	return d.total
}

// entryHeader is the fixed-width portion of one on-disk definition
// record; the variable-length name follows it verbatim.
type entryHeader struct {
	NameLength uint16 `struc:"little"`
	Kind       uint8
	Length     uint16 `struc:"little"`
	Offset     uint32 `struc:"little"`
}

// SerializeDefinitions encodes d as the byte blob carried in the header
// under TRACE_PARAMETER_DEFINITIONS.
func SerializeDefinitions(d *DefinitionMap) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range d.entries {
		h := entryHeader{
			NameLength: uint16(len(e.Name)),
			Kind:       uint8(e.Kind),
			Length:     uint16(e.Length),
			Offset:     uint32(e.Offset),
		}
		if err := struc.Pack(&buf, &h); err != nil {
			return nil, errors.Wrapf(err, "parameter: packing definition header for %q", e.Name)
		}
		if _, err := buf.WriteString(e.Name); err != nil {
			return nil, errors.Wrapf(err, "parameter: writing definition name for %q", e.Name)
		}
	}
	return buf.Bytes(), nil
}

// DeserializeDefinitions decodes a TRACE_PARAMETER_DEFINITIONS blob.
func DeserializeDefinitions(raw []byte) (*DefinitionMap, error) {
	d := NewDefinitionMap()
	r := bytes.NewReader(raw)
	for r.Len() > 0 {
		var h entryHeader
		if err := struc.Unpack(r, &h); err != nil {
			if err == io.EOF {
				break
			}
			return nil, trserr.Wrap(trserr.TrsFormat, err, "parameter: unpacking definition header")
		}
		name := make([]byte, h.NameLength)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, trserr.Wrap(trserr.TrsFormat, err, "parameter: reading definition name")
		}
		kind := ptype.Kind(h.Kind)
		if !kind.Valid() {
			return nil, trserr.Newf(trserr.TrsFormat, "parameter: definition %q has invalid kind %d", name, h.Kind)
		}
		d.entries = append(d.entries, Definition{
			Name:   string(name),
			Kind:   kind,
			Length: int(h.Length),
			Offset: int(h.Offset),
		})
	}

	d.total = 0
	for _, e := range d.entries {
		size, err := e.Kind.ElementSize()
		if err != nil {
			return nil, err
		}
		d.total += size * e.Length
	}
	return d, nil
}
