// Package trace defines the in-memory representation of one trace set
// record: a title, a raw data blob, a sample array, and a sample rate.
package trace

import "github.com/StefanD986/java-trsfile/encoding"

// Trace is one measurement record: a human-readable title, an opaque
// per-trace data blob (typically a serialized parameter map), the
// sample array widened to float32 regardless of its on-disk encoding,
// and the sampling frequency the samples were captured at.
type Trace struct {
	Title           string
	Data            []byte
	Samples         []float32
	SampleFrequency float32
}

// New builds a Trace from its fields.
func New(title string, data []byte, samples []float32, sampleFrequency float32) Trace {
	return Trace{Title: title, Data: data, Samples: samples, SampleFrequency: sampleFrequency}
}

// PreferredCoding scans t.Samples once and returns the narrowest
// encoding that can represent every sample without loss: FLOAT if any
// sample has a fractional part or magnitude beyond what a 32-bit
// integer can hold, otherwise the narrowest of BYTE/SHORT/INT that fits
// the largest-magnitude sample.
func (t Trace) PreferredCoding() encoding.Encoding {
	var maxAbs float64
	for _, s := range t.Samples {
		f := float64(s)
		if f != float64(int64(f)) || f > 2147483647 || f < -2147483648 {
			return encoding.Float
		}
		if abs := absFloat64(f); abs > maxAbs {
			maxAbs = abs
		}
	}

	switch {
	case maxAbs < 128:
		return encoding.Byte
	case maxAbs < 32768:
		return encoding.Short
	default:
		return encoding.Int
	}
}

func absFloat64(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
