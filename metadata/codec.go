package metadata

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/StefanD986/java-trsfile/encoding"
	"github.com/StefanD986/java-trsfile/internal/dataio"
	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/internal/varint"
	"github.com/StefanD986/java-trsfile/tag"
)

// WriteHeader writes m as a sequence of tag-length-value records,
// terminated by the TRACE_BLOCK sentinel.
//
// Required tags are always emitted explicitly, regardless of whether
// their value equals the tag's registered default: a reader that bails
// out on a missing required tag must never have to guess whether an
// absent tag means "default" or "malformed file", and a streaming
// writer that reserves space for NUMBER_OF_TRACES before it knows the
// final count needs that tag's on-wire byte length to be identical
// both times it is written. Non-required tags are omitted when their
// value equals the default, so a header carries no bytes for metadata
// nobody set.
func WriteHeader(w dataio.Writer, m *Map) error {
	for _, t := range tag.All() {
		if t.ID == tag.TraceBlock {
			continue
		}
		v, ok := m.Get(t.ID)
		if !ok {
			if !t.Required {
				continue
			}
			v = t.Default
		} else if !t.Required && v.Equal(t.Default) {
			continue
		}
		if err := writeRecord(w, t.ID, v); err != nil {
			return errors.Wrapf(err, "metadata: writing tag %s", t.Name)
		}
	}
	return writeRecord(w, tag.TraceBlock, tag.BytesValue(nil))
}

func writeRecord(w dataio.Writer, id tag.ID, v tag.Value) error {
	payload, err := encodeValue(v)
	if err != nil {
		return err
	}
	if err := w.WriteByte(byte(id)); err != nil {
		return errors.Wrap(err, "writing tag id")
	}
	if _, err := w.Write(varint.Encode(uint64(len(payload)))); err != nil {
		return errors.Wrap(err, "writing length")
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "writing value")
	}
	return nil
}

func encodeValue(v tag.Value) ([]byte, error) {
	switch v.Kind {
	case tag.KindInt:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v.Int))
		return buf, nil
	case tag.KindFloat:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v.Float))
		return buf, nil
	case tag.KindString:
		return []byte(v.Str), nil
	case tag.KindBool:
		if v.Bool {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case tag.KindBytes:
		return v.Bytes, nil
	default:
		return nil, errors.Errorf("metadata: unencodable value kind %d", v.Kind)
	}
}

// ReadHeader reads a sequence of tag-length-value records from r, up to
// and including the TRACE_BLOCK sentinel, and validates the invariants
// every header must satisfy: every required tag must be present,
// SCALE_X must be strictly positive, and SAMPLE_CODING must resolve to
// a recognized encoding.
func ReadHeader(r dataio.Reader) (*Map, error) {
	m := New()
	for {
		idByte, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, trserr.New(trserr.TrsFormat, "metadata: header truncated before TRACE_BLOCK")
			}
			return nil, trserr.Wrap(trserr.Io, err, "metadata: reading tag id")
		}
		id := tag.ID(idByte)
		if id == tag.TraceBlock {
			length, err := varint.Decode(r)
			if err != nil {
				return nil, trserr.Wrap(trserr.Io, err, "metadata: reading TRACE_BLOCK length")
			}
			if length > 0 {
				if _, err := io.CopyN(io.Discard, r, int64(length)); err != nil {
					return nil, trserr.Wrap(trserr.Io, err, "metadata: skipping TRACE_BLOCK value")
				}
			}
			break
		}

		t, err := tag.ByID(id)
		if err != nil {
			return nil, trserr.Newf(trserr.TrsFormat, "metadata: unknown tag id %d", id)
		}

		length, err := varint.Decode(r)
		if err != nil {
			return nil, trserr.Wrap(trserr.Io, err, "metadata: reading length")
		}

		payload := make([]byte, length)
		if length > 0 {
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, trserr.Wrap(trserr.Io, err, "metadata: reading value")
			}
		}

		v, err := decodeValue(t, payload)
		if err != nil {
			return nil, err
		}
		m.Put(id, v)
	}

	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeValue(t tag.Tag, payload []byte) (tag.Value, error) {
	switch t.Kind {
	case tag.KindInt:
		if len(payload) != 4 {
			return tag.Value{}, trserr.Newf(trserr.TrsFormat, "metadata: tag %s has wrong int length %d", t.Name, len(payload))
		}
		return tag.IntValue(int32(binary.LittleEndian.Uint32(payload))), nil
	case tag.KindFloat:
		if len(payload) != 4 {
			return tag.Value{}, trserr.Newf(trserr.TrsFormat, "metadata: tag %s has wrong float length %d", t.Name, len(payload))
		}
		return tag.FloatValue(math.Float32frombits(binary.LittleEndian.Uint32(payload))), nil
	case tag.KindString:
		return tag.StringValue(string(payload)), nil
	case tag.KindBool:
		if len(payload) != 1 {
			return tag.Value{}, trserr.Newf(trserr.TrsFormat, "metadata: tag %s has wrong bool length %d", t.Name, len(payload))
		}
		return tag.BoolValue(payload[0] != 0), nil
	case tag.KindBytes:
		return tag.BytesValue(payload), nil
	default:
		return tag.Value{}, trserr.Newf(trserr.TrsFormat, "metadata: tag %s has unrecognized kind", t.Name)
	}
}

func validate(m *Map) error {
	for _, t := range tag.All() {
		if t.ID == tag.TraceBlock || !t.Required {
			continue
		}
		if _, ok := m.Get(t.ID); !ok {
			return trserr.Newf(trserr.TrsFormat, "metadata: missing required tag %s", t.Name)
		}
	}

	scaleX, err := m.Float(tag.ScaleX)
	if err != nil {
		return err
	}
	if scaleX <= 0 {
		return trserr.Newf(trserr.TrsFormat, "metadata: SCALE_X must be positive, got %v", scaleX)
	}

	codingCode, err := m.Int(tag.SampleCoding)
	if err != nil {
		return err
	}
	if _, err := encoding.FromCode(int(codingCode)); err != nil {
		return trserr.Newf(trserr.TrsFormat, "metadata: SAMPLE_CODING %d does not resolve to a known encoding", codingCode)
	}
	return nil
}
