package trs

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/StefanD986/java-trsfile/encoding"
	"github.com/StefanD986/java-trsfile/internal/fmtutil"
	"github.com/StefanD986/java-trsfile/internal/mmap"
	"github.com/StefanD986/java-trsfile/internal/slicecursor"
	"github.com/StefanD986/java-trsfile/internal/trserr"
	"github.com/StefanD986/java-trsfile/internal/tracelog"
	"github.com/StefanD986/java-trsfile/metadata"
	"github.com/StefanD986/java-trsfile/parameter"
	"github.com/StefanD986/java-trsfile/ptype"
	"github.com/StefanD986/java-trsfile/tag"
	"github.com/StefanD986/java-trsfile/trace"
)

// Reader is a random-access, read-only view of a trace set file. It
// keeps at most one memory-mapped window of the file open at a time,
// remapping as Get calls walk outside the currently mapped span.
type Reader struct {
	path      string
	log       tracelog.L
	maxWindow int64

	open     bool
	window   *mmap.Window
	fileSize int64

	meta         *metadata.Map
	metaSize     int64
	definitions  *parameter.DefinitionMap

	numberOfTraces  int32
	numberOfSamples int32
	dataLength      int32
	titleSpace      int32
	globalTitle     string
	scaleX          float32
	enc             encoding.Encoding
	traceSize       int64
}

// OpenReader opens path for random-access reading, parsing its header
// and memory-mapping an initial window.
func OpenReader(path string, opts ...Option) (*Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, trserr.Wrap(trserr.Io, err, "trs: stat")
	}
	fileSize := info.Size()

	windowLen := fileSize
	if windowLen > o.maxWindow {
		windowLen = o.maxWindow
	}
	window, err := mmap.Open(path, 0, windowLen)
	if err != nil {
		return nil, trserr.Wrap(trserr.Io, err, "trs: mapping initial window")
	}

	cursor := &slicecursor.Cursor{Buffer: window.Bytes()}
	meta, err := metadata.ReadHeader(cursor)
	if err != nil {
		window.Close()
		return nil, err
	}
	metaSize := cursor.Pos()

	r := &Reader{
		path:      path,
		log:       o.logger,
		maxWindow: o.maxWindow,
		open:      true,
		window:    window,
		fileSize:  fileSize,
		meta:      meta,
		metaSize:  metaSize,
	}
	if err := r.deriveLayout(); err != nil {
		window.Close()
		return nil, err
	}

	r.log.Infof("opened %s: %d traces, header %d bytes", path, r.numberOfTraces, r.metaSize)
	return r, nil
}

func (r *Reader) deriveLayout() error {
	var err error
	if r.numberOfTraces, err = r.meta.Int(tag.NumberOfTraces); err != nil {
		return err
	}
	if r.numberOfSamples, err = r.meta.Int(tag.NumberOfSamples); err != nil {
		return err
	}
	if r.dataLength, err = r.meta.Int(tag.DataLength); err != nil {
		return err
	}
	if r.titleSpace, err = r.meta.Int(tag.TitleSpace); err != nil {
		return err
	}
	if r.globalTitle, err = r.meta.String(tag.GlobalTitle); err != nil {
		return err
	}
	if r.scaleX, err = r.meta.Float(tag.ScaleX); err != nil {
		return err
	}

	codingCode, err := r.meta.Int(tag.SampleCoding)
	if err != nil {
		return err
	}
	r.enc, err = encoding.FromCode(int(codingCode))
	if err != nil {
		return trserr.Wrap(trserr.TrsFormat, err, "trs: resolving SAMPLE_CODING")
	}

	r.traceSize = int64(r.titleSpace) + int64(r.dataLength) + int64(r.numberOfSamples)*int64(r.enc.Size())

	defBytes, err := r.meta.Bytes(tag.TraceParameterDefinitions)
	if err == nil && len(defBytes) > 0 {
		r.definitions, err = parameter.DeserializeDefinitions(defBytes)
		if err != nil {
			return err
		}
	}
	return nil
}

// Metadata returns the header metadata parsed at open time.
func (r *Reader) Metadata() *metadata.Map { return r.meta }

// Definitions returns the trace parameter definition map embedded in
// the header, or nil if the file carries no TRACE_PARAMETER_DEFINITIONS
// tag.
func (r *Reader) Definitions() *parameter.DefinitionMap { return r.definitions }

// Get reads and decodes the trace at index.
func (r *Reader) Get(index int) (trace.Trace, error) {
	if !r.open {
		return trace.Trace{}, trserr.New(trserr.NotOpen, "trs: reader is closed")
	}
	if index < 0 || int32(index) >= r.numberOfTraces {
		return trace.Trace{}, trserr.Newf(trserr.IndexOutOfBounds, "trs: index %d out of bounds for %d traces", index, r.numberOfTraces)
	}

	calculatedFileSize := r.metaSize + r.traceSize*int64(r.numberOfTraces)
	if r.fileSize != calculatedFileSize {
		return trace.Trace{}, trserr.Newf(trserr.TrsFormat,
			"trs: file size %d does not match header (metadata %d + trace size %d * %d traces = %d)",
			r.fileSize, r.metaSize, r.traceSize, r.numberOfTraces, calculatedFileSize)
	}

	start := r.metaSize + int64(index)*r.traceSize
	end := start + r.traceSize
	if !r.window.Contains(start, end) {
		windowLen := r.fileSize - start
		if windowLen > r.maxWindow {
			windowLen = r.maxWindow
		}
		r.log.Debugf("remapping window to [%d, %d)", start, start+windowLen)
		if err := r.window.Remap(r.path, start, windowLen); err != nil {
			return trace.Trace{}, trserr.Wrap(trserr.Io, err, "trs: remapping window")
		}
	}

	cursor := &slicecursor.Cursor{Buffer: r.window.Bytes(), AlwaysCopy: true}
	if _, err := cursor.Seek(start-r.window.Start, io.SeekStart); err != nil {
		return trace.Trace{}, trserr.Wrap(trserr.Io, err, "trs: positioning window")
	}

	titleRaw, err := cursor.Next(int(r.titleSpace))
	if err != nil && err != io.EOF {
		return trace.Trace{}, trserr.Wrap(trserr.Io, err, "trs: reading title")
	}
	title := strings.TrimRight(string(titleRaw), " \t\x00")
	if title == "" {
		title = fmt.Sprintf("%s %d", r.globalTitle, index)
	}

	data, err := cursor.Next(int(r.dataLength))
	if err != nil && err != io.EOF {
		return trace.Trace{}, trserr.Wrap(trserr.Io, err, "trs: reading data")
	}

	samples, err := r.readSamples(cursor)
	if err != nil {
		return trace.Trace{}, err
	}

	r.log.Debugf("trs: trace %d title=%q data=%s", index, title, fmtutil.Hex(data))
	return trace.New(title, data, samples, 1/r.scaleX), nil
}

func (r *Reader) readSamples(cursor *slicecursor.Cursor) ([]float32, error) {
	kind, err := sampleKind(r.enc)
	if err != nil {
		return nil, err
	}
	v, err := ptype.Deserialize(cursor, kind, int(r.numberOfSamples))
	if err != nil {
		return nil, trserr.Wrap(trserr.Io, err, "trs: reading samples")
	}

	samples := make([]float32, r.numberOfSamples)
	switch r.enc {
	case encoding.Byte:
		for i, b := range v.Bytes {
			samples[i] = float32(b)
		}
	case encoding.Short:
		for i, s := range v.Shorts {
			samples[i] = float32(s)
		}
	case encoding.Int:
		for i, n := range v.Ints {
			samples[i] = float32(n)
		}
	case encoding.Float:
		copy(samples, v.Floats)
	}
	return samples, nil
}

func sampleKind(enc encoding.Encoding) (ptype.Kind, error) {
	switch enc {
	case encoding.Byte:
		return ptype.KindByteArray, nil
	case encoding.Short:
		return ptype.KindShortArray, nil
	case encoding.Int:
		return ptype.KindIntArray, nil
	case encoding.Float:
		return ptype.KindFloatArray, nil
	default:
		return 0, trserr.Newf(trserr.TrsFormat, "trs: unsupported sample encoding %s", enc)
	}
}

// Close releases the reader's memory-mapped window.
func (r *Reader) Close() error {
	if !r.open {
		return nil
	}
	r.open = false
	return r.window.Close()
}
