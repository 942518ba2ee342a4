// Package trserr defines the closed set of structured error kinds the
// public trs package re-exports. It lives under internal so that every
// component package (tag, metadata, parameter, trace, ...) can produce
// these errors without importing the root trs package, which avoids an
// import cycle; trs.Error and trs.Kind are type aliases of the types
// defined here.
package trserr

import "fmt"

// Kind is one of the closed set of error categories a trace set
// operation can fail with.
type Kind int

const (
	// Io is an OS-level read/write/mmap failure, surfaced verbatim.
	Io Kind = iota
	// TrsFormat is a structural wire-format error: unknown tag or
	// encoding, a missing required tag, a truncated record, or a
	// header/trace-size inconsistency with the file size.
	TrsFormat
	// WrongMode is a read operation issued against a writer, or vice
	// versa.
	WrongMode
	// NotOpen is any operation issued against a closed trace set.
	NotOpen
	// IndexOutOfBounds is Get(i) with i >= NUMBER_OF_TRACES.
	IndexOutOfBounds
	// ShapeMismatch is a trace that does not match the first trace's
	// shape.
	ShapeMismatch
	// SampleOutOfRange is a sample value exceeding its SAMPLE_CODING's
	// representable range.
	SampleOutOfRange
	// ParameterLengthMismatch is a parameter blob of the wrong size for
	// its definition map.
	ParameterLengthMismatch
	// TypeMismatch is a typed parameter accessor invoked against a
	// value of a different kind.
	TypeMismatch
	// KeyNotFound is a parameter map lookup miss.
	KeyNotFound
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case TrsFormat:
		return "TrsFormat"
	case WrongMode:
		return "WrongMode"
	case NotOpen:
		return "NotOpen"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case ShapeMismatch:
		return "ShapeMismatch"
	case SampleOutOfRange:
		return "SampleOutOfRange"
	case ParameterLengthMismatch:
		return "ParameterLengthMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case KeyNotFound:
		return "KeyNotFound"
	default:
		return "Unknown"
	}
}

// Error is a structured error belonging to one of the Kind categories.
// Only the fields relevant to its Kind are populated.
type Error struct {
	Kind Kind

	// ShapeMismatch
	Field         string
	Got, Expected any

	// TypeMismatch
	Key, Requested, Actual string

	// KeyNotFound
	Name string

	msg   string
	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case ShapeMismatch:
		return fmt.Sprintf("trs: shape mismatch on %s: got %v, expected %v", e.Field, e.Got, e.Expected)
	case ParameterLengthMismatch:
		return fmt.Sprintf("trs: parameter length mismatch: got %v, expected %v", e.Got, e.Expected)
	case TypeMismatch:
		return fmt.Sprintf("trs: %s: requested kind %s but value has kind %s", e.Key, e.Requested, e.Actual)
	case KeyNotFound:
		return fmt.Sprintf("trs: key not found: %s", e.Name)
	default:
		if e.cause != nil {
			return fmt.Sprintf("trs: %s: %s: %v", e.Kind, e.msg, e.cause)
		}
		return fmt.Sprintf("trs: %s: %s", e.Kind, e.msg)
	}
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New builds a bare Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Newf builds a bare Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind wrapping cause.
func Wrap(kind Kind, cause error, msg string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, msg: msg, cause: cause}
}

// ShapeMismatchError builds a ShapeMismatch Error.
func ShapeMismatchError(field string, got, expected any) *Error {
	return &Error{Kind: ShapeMismatch, Field: field, Got: got, Expected: expected}
}

// ParameterLengthMismatchError builds a ParameterLengthMismatch Error.
func ParameterLengthMismatchError(actual, expected int) *Error {
	return &Error{Kind: ParameterLengthMismatch, Got: actual, Expected: expected}
}

// TypeMismatchError builds a TypeMismatch Error.
func TypeMismatchError(key, requested, actual string) *Error {
	return &Error{Kind: TypeMismatch, Key: key, Requested: requested, Actual: actual}
}

// KeyNotFoundError builds a KeyNotFound Error.
func KeyNotFoundError(name string) *Error {
	return &Error{Kind: KeyNotFound, Name: name}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			e = asErr
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
