package trs

import "github.com/StefanD986/java-trsfile/internal/trserr"

// Error is a structured error belonging to one of the Kind categories
// below. Only the fields relevant to its Kind are populated.
type Error = trserr.Error

// Kind is one of the closed set of error categories a trace set
// operation can fail with.
type Kind = trserr.Kind

const (
	// Io is an OS-level read/write/mmap failure, surfaced verbatim.
	Io = trserr.Io
	// TrsFormat is a structural wire-format error: an unknown tag or
	// encoding, a missing required tag, a truncated record, or a
	// header/trace-size inconsistency with the file size.
	TrsFormat = trserr.TrsFormat
	// WrongMode is a read operation issued against a writer, or vice
	// versa.
	WrongMode = trserr.WrongMode
	// NotOpen is any operation issued against a closed trace set.
	NotOpen = trserr.NotOpen
	// IndexOutOfBounds is Get(i) with i >= NUMBER_OF_TRACES.
	IndexOutOfBounds = trserr.IndexOutOfBounds
	// ShapeMismatch is a trace that does not match the first trace's
	// shape.
	ShapeMismatch = trserr.ShapeMismatch
	// SampleOutOfRange is a sample value exceeding its SAMPLE_CODING's
	// representable range.
	SampleOutOfRange = trserr.SampleOutOfRange
	// ParameterLengthMismatch is a parameter blob of the wrong size for
	// its definition map.
	ParameterLengthMismatch = trserr.ParameterLengthMismatch
	// TypeMismatch is a typed parameter accessor invoked against a value
	// of a different kind.
	TypeMismatch = trserr.TypeMismatch
	// KeyNotFound is a parameter map lookup miss.
	KeyNotFound = trserr.KeyNotFound
)

// Is reports whether err is a trs Error of the given kind, unwrapping
// through any wrapping errors along the way.
func Is(err error, kind Kind) bool {
	return trserr.Is(err, kind)
}
