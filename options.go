package trs

import (
	"github.com/StefanD986/java-trsfile/internal/tracelog"
	"github.com/StefanD986/java-trsfile/metadata"
	"github.com/StefanD986/java-trsfile/parameter"
)

// defaultMaxWindow is the largest single memory-mapped window a Reader
// will request: the largest value a 32-bit mapping length could hold,
// which is comfortably larger than any trace record this library is
// expected to see in one window. Windows never grow past the file size.
const defaultMaxWindow = int64(1<<31 - 1)

// Option configures an OpenReader or OpenWriter call.
type Option func(*options)

type options struct {
	logger      tracelog.L
	maxWindow   int64
	meta        *metadata.Map
	definitions *parameter.DefinitionMap
}

func defaultOptions() options {
	return options{
		logger:    tracelog.Nop,
		maxWindow: defaultMaxWindow,
	}
}

// WithLogger sets a logger a Reader or Writer reports its internal
// remaps, header parses, and flushes to. If not provided, a Reader or
// Writer logs nothing.
func WithLogger(l tracelog.L) Option {
	return func(o *options) {
		o.logger = tracelog.Must(l)
	}
}

// WithMaxWindow caps the size of a Reader's memory-mapped window. This
// is mostly useful for tests that want to exercise the remap path
// against a small file without allocating a huge window to avoid it.
func WithMaxWindow(n int64) Option {
	return func(o *options) {
		o.maxWindow = n
	}
}

// WithMetaData supplies the metadata a Writer starts from. Any field
// not explicitly set here is later derived from the first trace passed
// to Add, without overwriting what the caller already supplied.
func WithMetaData(m *metadata.Map) Option {
	return func(o *options) {
		o.meta = m
	}
}

// WithParameterDefinitions attaches a parameter definition map to a
// Writer. Every trace added to the set must carry a Data blob of
// exactly d.TotalSize() bytes -- the encoded form of a parameter map
// matching d -- and the definitions themselves are persisted into the
// header under TRACE_PARAMETER_DEFINITIONS.
func WithParameterDefinitions(d *parameter.DefinitionMap) Option {
	return func(o *options) {
		o.definitions = d
	}
}
