package ptype

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/StefanD986/java-trsfile/internal/dataio"
)

// Serialize writes v to w using exactly v.Length() * ElementSize() bytes,
// little-endian for every multi-byte scalar and IEEE-754 for
// FLOAT/DOUBLE, per the wire format.
//
// The format is little-endian only -- there is no configurable
// endianness here, unlike a general-purpose binary codec might offer.
func Serialize(w dataio.Writer, v Value) error {
	switch v.Kind {
	case KindByte, KindByteArray:
		for _, b := range v.Bytes {
			if err := w.WriteByte(byte(b)); err != nil {
				return errors.Wrap(err, "ptype: writing byte")
			}
		}
	case KindShort, KindShortArray:
		var buf [2]byte
		for _, s := range v.Shorts {
			binary.LittleEndian.PutUint16(buf[:], uint16(s))
			if _, err := w.Write(buf[:]); err != nil {
				return errors.Wrap(err, "ptype: writing short")
			}
		}
	case KindInt, KindIntArray:
		var buf [4]byte
		for _, i := range v.Ints {
			binary.LittleEndian.PutUint32(buf[:], uint32(i))
			if _, err := w.Write(buf[:]); err != nil {
				return errors.Wrap(err, "ptype: writing int")
			}
		}
	case KindFloat, KindFloatArray:
		var buf [4]byte
		for _, f := range v.Floats {
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
			if _, err := w.Write(buf[:]); err != nil {
				return errors.Wrap(err, "ptype: writing float")
			}
		}
	case KindLong, KindLongArray:
		var buf [8]byte
		for _, l := range v.Longs {
			binary.LittleEndian.PutUint64(buf[:], uint64(l))
			if _, err := w.Write(buf[:]); err != nil {
				return errors.Wrap(err, "ptype: writing long")
			}
		}
	case KindDouble, KindDoubleArray:
		var buf [8]byte
		for _, d := range v.Doubles {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(d))
			if _, err := w.Write(buf[:]); err != nil {
				return errors.Wrap(err, "ptype: writing double")
			}
		}
	case KindString:
		if _, err := w.Write([]byte(v.Str)); err != nil {
			return errors.Wrap(err, "ptype: writing string")
		}
	case KindBool, KindBoolArray:
		for _, b := range v.Bools {
			c := byte(0)
			if b {
				c = 1
			}
			if err := w.WriteByte(c); err != nil {
				return errors.Wrap(err, "ptype: writing bool")
			}
		}
	default:
		return errors.Errorf("ptype: serialize: unknown kind %d", v.Kind)
	}
	return nil
}

// Deserialize reads a value of the given kind and length from r. length
// is an element count for every kind except KindString, for which it is
// a byte count.
func Deserialize(r dataio.Reader, kind Kind, length int) (Value, error) {
	switch kind {
	case KindByte, KindByteArray:
		out := make([]int8, length)
		for i := range out {
			b, err := r.ReadByte()
			if err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading byte")
			}
			out[i] = int8(b)
		}
		return Value{Kind: kind, Bytes: out}, nil

	case KindShort, KindShortArray:
		out := make([]int16, length)
		var buf [2]byte
		for i := range out {
			if _, err := readFull(r, buf[:]); err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading short")
			}
			out[i] = int16(binary.LittleEndian.Uint16(buf[:]))
		}
		return Value{Kind: kind, Shorts: out}, nil

	case KindInt, KindIntArray:
		out := make([]int32, length)
		var buf [4]byte
		for i := range out {
			if _, err := readFull(r, buf[:]); err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading int")
			}
			out[i] = int32(binary.LittleEndian.Uint32(buf[:]))
		}
		return Value{Kind: kind, Ints: out}, nil

	case KindFloat, KindFloatArray:
		out := make([]float32, length)
		var buf [4]byte
		for i := range out {
			if _, err := readFull(r, buf[:]); err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading float")
			}
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[:]))
		}
		return Value{Kind: kind, Floats: out}, nil

	case KindLong, KindLongArray:
		out := make([]int64, length)
		var buf [8]byte
		for i := range out {
			if _, err := readFull(r, buf[:]); err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading long")
			}
			out[i] = int64(binary.LittleEndian.Uint64(buf[:]))
		}
		return Value{Kind: kind, Longs: out}, nil

	case KindDouble, KindDoubleArray:
		out := make([]float64, length)
		var buf [8]byte
		for i := range out {
			if _, err := readFull(r, buf[:]); err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading double")
			}
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
		}
		return Value{Kind: kind, Doubles: out}, nil

	case KindString:
		buf := make([]byte, length)
		if _, err := readFull(r, buf); err != nil {
			return Value{}, errors.Wrap(err, "ptype: reading string")
		}
		return Value{Kind: kind, Str: string(buf)}, nil

	case KindBool, KindBoolArray:
		out := make([]bool, length)
		for i := range out {
			b, err := r.ReadByte()
			if err != nil {
				return Value{}, errors.Wrap(err, "ptype: reading bool")
			}
			out[i] = b != 0
		}
		return Value{Kind: kind, Bools: out}, nil

	default:
		return Value{}, errors.Errorf("ptype: deserialize: unknown kind %d", kind)
	}
}

// readFull reads exactly len(buf) bytes from r, the way binary.Read
// would, but against our dataio.Reader (which is not always a
// io.ReaderAt-friendly stdlib type).
func readFull(r dataio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		amt, err := r.Read(buf[n:])
		n += amt
		if n == len(buf) {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if amt == 0 {
			return n, errors.New("ptype: short read")
		}
	}
	return n, nil
}
