package trs

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/StefanD986/java-trsfile/encoding"
	"github.com/StefanD986/java-trsfile/internal/bufferpool"
	"github.com/StefanD986/java-trsfile/internal/dataio"
	"github.com/StefanD986/java-trsfile/internal/fmtutil"
	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/internal/tracelog"
	"github.com/StefanD986/java-trsfile/metadata"
	"github.com/StefanD986/java-trsfile/parameter"
	"github.com/StefanD986/java-trsfile/tag"
	"github.com/StefanD986/java-trsfile/trace"
)

// Writer is a streaming, write-only trace set. The header is not
// finalized until the first call to Add, which fixes NUMBER_OF_SAMPLES,
// DATA_LENGTH, TITLE_SPACE, SCALE_X, and SAMPLE_CODING for the whole
// set; every later Add is checked against that fixed shape. Close
// rewinds the file and overwrites the placeholder header with the
// final NUMBER_OF_TRACES.
type Writer struct {
	path string
	file *os.File
	log  tracelog.L

	open        bool
	firstTrace  bool
	meta        *metadata.Map
	definitions *parameter.DefinitionMap

	numberOfTraces  int32
	numberOfSamples int32
	dataLength      int32
	titleSpace      int32
	scaleX          float32
	enc             encoding.Encoding
	bufPool         *bufferpool.Pool
}

// OpenWriter creates path and returns a Writer ready to accept traces.
func OpenWriter(path string, opts ...Option) (*Writer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, trserr.Wrap(trserr.Io, err, "trs: creating file")
	}

	meta := o.meta
	if meta == nil {
		meta = metadata.New()
	}

	return &Writer{
		path:        path,
		file:        file,
		log:         o.logger,
		open:        true,
		firstTrace:  true,
		meta:        meta,
		definitions: o.definitions,
	}, nil
}

// Metadata returns the writer's current metadata. Before the first Add,
// this reflects only what the caller supplied via WithMetaData; after
// the first Add, the derived fields are also populated.
func (w *Writer) Metadata() *metadata.Map { return w.meta }

// Add appends t to the set. On the first call, the set's layout is
// derived from t; every later call validates that t matches that
// layout.
func (w *Writer) Add(t trace.Trace) error {
	if !w.open {
		return trserr.New(trserr.NotOpen, "trs: writer is closed")
	}

	if w.firstTrace {
		if err := w.writePlaceholderHeader(t); err != nil {
			return err
		}
		w.firstTrace = false
	} else if err := w.checkShape(t); err != nil {
		return err
	}

	if err := w.writeTrace(t); err != nil {
		return err
	}

	w.numberOfTraces++
	w.meta.Put(tag.NumberOfTraces, tag.IntValue(w.numberOfTraces))
	return nil
}

func (w *Writer) writePlaceholderHeader(t trace.Trace) error {
	if w.definitions != nil {
		defBytes, err := parameter.SerializeDefinitions(w.definitions)
		if err != nil {
			return trserr.Wrap(trserr.Io, err, "trs: serializing parameter definitions")
		}
		w.meta.PutIfAbsent(tag.TraceParameterDefinitions, tag.BytesValue(defBytes))
		w.meta.PutIfAbsent(tag.DataLength, tag.IntValue(int32(w.definitions.TotalSize())))
	} else {
		w.meta.PutIfAbsent(tag.DataLength, tag.IntValue(int32(len(t.Data))))
	}
	w.meta.PutIfAbsent(tag.NumberOfSamples, tag.IntValue(int32(len(t.Samples))))
	w.meta.PutIfAbsent(tag.TitleSpace, tag.IntValue(int32(len(t.Title))))
	w.meta.PutIfAbsent(tag.ScaleX, tag.FloatValue(1/t.SampleFrequency))
	w.meta.PutIfAbsent(tag.SampleCoding, tag.IntValue(int32(t.PreferredCoding().Code())))
	w.meta.Put(tag.NumberOfTraces, tag.IntValue(0))

	var err error
	if w.numberOfSamples, err = w.meta.Int(tag.NumberOfSamples); err != nil {
		return err
	}
	if w.dataLength, err = w.meta.Int(tag.DataLength); err != nil {
		return err
	}
	if w.titleSpace, err = w.meta.Int(tag.TitleSpace); err != nil {
		return err
	}
	if w.scaleX, err = w.meta.Float(tag.ScaleX); err != nil {
		return err
	}
	codingCode, err := w.meta.Int(tag.SampleCoding)
	if err != nil {
		return err
	}
	w.enc, err = encoding.FromCode(int(codingCode))
	if err != nil {
		return trserr.Wrap(trserr.TrsFormat, err, "trs: resolving SAMPLE_CODING")
	}

	w.bufPool = &bufferpool.Pool{
		Size: int(w.titleSpace) + int(w.dataLength) + int(w.numberOfSamples)*w.enc.Size(),
	}

	dw := dataio.MakeWriter(w.file)
	if err := metadata.WriteHeader(dw, w.meta); err != nil {
		return trserr.Wrap(trserr.Io, err, "trs: writing placeholder header")
	}
	w.log.Debugf("wrote placeholder header for %s", w.path)
	return nil
}

func (w *Writer) checkShape(t trace.Trace) error {
	if len(t.Samples) != int(w.numberOfSamples) {
		return trserr.ShapeMismatchError("NUMBER_OF_SAMPLES", len(t.Samples), w.numberOfSamples)
	}
	if len(t.Data) != int(w.dataLength) {
		return trserr.ShapeMismatchError("DATA_LENGTH", len(t.Data), w.dataLength)
	}
	if expected := 1 / w.scaleX; t.SampleFrequency != expected {
		return trserr.ShapeMismatchError("sample_frequency", t.SampleFrequency, expected)
	}
	return nil
}

func (w *Writer) writeTrace(t trace.Trace) error {
	buf := w.bufPool.Get()
	defer buf.Release()

	out := buf.Bytes()
	n := copy(out[:w.titleSpace], t.Title)
	for ; n < int(w.titleSpace); n++ {
		out[n] = 0
	}
	n += copy(out[n:], t.Data)

	if err := packSamples(out[n:], t.Samples, w.enc); err != nil {
		return err
	}

	if _, err := w.file.Write(out); err != nil {
		return trserr.Wrap(trserr.Io, err, "trs: writing trace")
	}
	w.log.Debugf("trs: wrote trace %d title=%q data=%s", w.numberOfTraces, t.Title, fmtutil.Hex(t.Data))
	return nil
}

func packSamples(buf []byte, samples []float32, enc encoding.Encoding) error {
	lo, hi, bounded := enc.Bounds()
	for i, s := range samples {
		switch enc {
		case encoding.Byte:
			v := int64(s)
			if bounded && (v < lo || v > hi) {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v out of range for %s", s, enc)
			}
			if float32(v) != s {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v is not an integer for %s", s, enc)
			}
			buf[i] = byte(int8(v))
		case encoding.Short:
			v := int64(s)
			if bounded && (v < lo || v > hi) {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v out of range for %s", s, enc)
			}
			if float32(v) != s {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v is not an integer for %s", s, enc)
			}
			binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(v)))
		case encoding.Int:
			v := int64(s)
			if bounded && (v < lo || v > hi) {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v out of range for %s", s, enc)
			}
			if float32(v) != s {
				return trserr.Newf(trserr.SampleOutOfRange, "trs: sample %v is not an integer for %s", s, enc)
			}
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(int32(v)))
		case encoding.Float:
			binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
		default:
			return trserr.Newf(trserr.TrsFormat, "trs: unsupported sample encoding %s", enc)
		}
	}
	return nil
}

// Close finalizes the file: it rewinds to the start and overwrites the
// placeholder header with the final NUMBER_OF_TRACES, then closes the
// underlying file.
func (w *Writer) Close() error {
	if !w.open {
		return nil
	}
	w.open = false
	defer w.file.Close()

	if w.firstTrace {
		// No trace was ever added; there is no placeholder header to
		// patch, so the metadata the caller supplied (if any) is written
		// as a zero-trace header.
		w.meta.PutIfAbsent(tag.NumberOfTraces, tag.IntValue(0))
		dw := dataio.MakeWriter(w.file)
		if err := metadata.WriteHeader(dw, w.meta); err != nil {
			return trserr.Wrap(trserr.Io, err, "trs: writing empty header")
		}
		return nil
	}

	if _, err := w.file.Seek(0, 0); err != nil {
		return trserr.Wrap(trserr.Io, err, "trs: rewinding to patch header")
	}
	dw := dataio.MakeWriter(w.file)
	if err := metadata.WriteHeader(dw, w.meta); err != nil {
		return trserr.Wrap(trserr.Io, err, "trs: patching final header")
	}
	w.log.Infof("closed %s: %d traces written", w.path, w.numberOfTraces)
	return nil
}
