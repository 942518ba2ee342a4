package trs

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"go.uber.org/zap/zapcore"

	"github.com/StefanD986/java-trsfile/encoding"
	"github.com/StefanD986/java-trsfile/metadata"
	"github.com/StefanD986/java-trsfile/parameter"
	"github.com/StefanD986/java-trsfile/ptype"
	"github.com/StefanD986/java-trsfile/tag"
	"github.com/StefanD986/java-trsfile/trace"
)

var _ = Describe("Trace set reader and writer", func() {
	var dir, path string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "trs-test-")
		Expect(err).ToNot(HaveOccurred())
		path = filepath.Join(dir, "set.trs")
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("writes and reads back an empty-metadata single trace (S1)", func() {
		Expect(Save(path, []trace.Trace{
			trace.New("t", nil, []float32{1, 2, 3}, 1.0),
		})).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		got, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Samples).To(Equal([]float32{1, 2, 3}))

		n, err := r.Metadata().Int(tag.NumberOfTraces)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(int32(1)))

		coding, err := r.Metadata().Int(tag.SampleCoding)
		Expect(err).ToNot(HaveOccurred())
		Expect(coding).To(Equal(int32(encoding.Byte.Code())))
	})

	It("rejects a second trace with a different sample count (S2)", func() {
		w, err := OpenWriter(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(w.Add(trace.New("a", nil, []float32{1, 2, 3}, 1.0))).To(Succeed())
		err = w.Add(trace.New("b", nil, []float32{1, 2}, 1.0))
		Expect(err).To(HaveOccurred())
		Expect(Is(err, ShapeMismatch)).To(BeTrue())

		Expect(w.Close()).To(Succeed())
	})

	It("forces FLOAT encoding and preserves fractional samples exactly (S4)", func() {
		tr := trace.New("f", nil, []float32{0.5, 1.0}, 1.0)
		Expect(tr.PreferredCoding()).To(Equal(encoding.Float))

		Expect(Save(path, []trace.Trace{tr})).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		got, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Samples).To(Equal([]float32{0.5, 1.0}))
	})

	It("truncates a title longer than the first trace's TITLE_SPACE", func() {
		w, err := OpenWriter(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(w.Add(trace.New("ab", nil, []float32{1, 2}, 1.0))).To(Succeed())
		Expect(w.Add(trace.New("abcdef", nil, []float32{3, 4}, 1.0))).To(Succeed())
		Expect(w.Close()).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		second, err := r.Get(1)
		Expect(err).ToNot(HaveOccurred())
		Expect(second.Title).To(Equal("ab"))
		Expect(second.Samples).To(Equal([]float32{3, 4}))
	})

	It("synthesizes a title from GLOBAL_TITLE when the stored title is blank (S6)", func() {
		meta := metadata.New()
		meta.Put(tag.GlobalTitle, tag.StringValue("trace"))
		Expect(Save(path, []trace.Trace{
			trace.New("   ", nil, []float32{1}, 1.0),
		}, WithMetaData(meta))).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		got, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Title).To(Equal("trace 0"))
	})

	It("fails with IndexOutOfBounds at index == NUMBER_OF_TRACES", func() {
		Expect(Save(path, []trace.Trace{
			trace.New("t", nil, []float32{1}, 1.0),
		})).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		_, err = r.Get(1)
		Expect(err).To(HaveOccurred())
		Expect(Is(err, IndexOutOfBounds)).To(BeTrue())
	})

	It("fails with TrsFormat when the file is truncated relative to its header", func() {
		Expect(Save(path, []trace.Trace{
			trace.New("t", nil, []float32{1, 2, 3}, 1.0),
		})).To(Succeed())

		Expect(os.Truncate(path, func() int64 {
			info, err := os.Stat(path)
			Expect(err).ToNot(HaveOccurred())
			return info.Size() - 1
		}())).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		_, err = r.Get(0)
		Expect(err).To(HaveOccurred())
		Expect(Is(err, TrsFormat)).To(BeTrue())
	})

	It("fails with SampleOutOfRange writing 128 under BYTE coding", func() {
		meta := metadata.New()
		meta.Put(tag.SampleCoding, tag.IntValue(int32(encoding.Byte.Code())))
		w, err := OpenWriter(path, WithMetaData(meta))
		Expect(err).ToNot(HaveOccurred())

		err = w.Add(trace.New("t", nil, []float32{128}, 1.0))
		Expect(err).To(HaveOccurred())
		Expect(Is(err, SampleOutOfRange)).To(BeTrue())

		Expect(w.Close()).To(Succeed())
	})

	It("returns byte-equal traces across repeated reads of the same index", func() {
		Expect(Save(path, []trace.Trace{
			trace.New("t", []byte{1, 2}, []float32{1, 2, 3}, 1.0),
		})).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		a, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		b, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("slides its window across a forced small MAX_WINDOW (S5)", func() {
		traces := make([]trace.Trace, 20)
		for i := range traces {
			traces[i] = trace.New("t", nil, []float32{float32(i), float32(i + 1)}, 1.0)
		}
		Expect(Save(path, traces)).To(Succeed())

		r, err := OpenReader(path, WithMaxWindow(64))
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		first, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())
		Expect(first.Samples).To(Equal([]float32{0, 1}))

		last, err := r.Get(len(traces) - 1)
		Expect(err).ToNot(HaveOccurred())
		Expect(last.Samples).To(Equal([]float32{19, 20}))
	})

	It("keeps NUMBER_OF_TRACES equal to the number of Add calls", func() {
		w, err := OpenWriter(path)
		Expect(err).ToNot(HaveOccurred())
		for i := 0; i < 5; i++ {
			Expect(w.Add(trace.New("t", nil, []float32{1}, 1.0))).To(Succeed())
		}
		n, err := w.Metadata().Int(tag.NumberOfTraces)
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(int32(5)))
		Expect(w.Close()).To(Succeed())
	})

	It("carries a per-trace parameter blob through an attached definition map (S3)", func() {
		params := parameter.NewMap()
		Expect(params.Put("iv", ptype.NewByteArray([]int8{0x1, 0x2}))).To(Succeed())
		Expect(params.Put("ct", ptype.NewIntArray([]int32{1, 2, 3}))).To(Succeed())

		defs, err := parameter.DefinitionsFor(params)
		Expect(err).ToNot(HaveOccurred())
		blob, err := parameter.Serialize(params)
		Expect(err).ToNot(HaveOccurred())
		Expect(len(blob)).To(Equal(defs.TotalSize()))

		w, err := OpenWriter(path, WithParameterDefinitions(defs))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Add(trace.New("t", blob, []float32{1, 2}, 1.0))).To(Succeed())
		Expect(w.Close()).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		Expect(r.Definitions()).ToNot(BeNil())
		Expect(r.Definitions().Entries()).To(Equal(defs.Entries()))

		got, err := r.Get(0)
		Expect(err).ToNot(HaveOccurred())

		decoded, err := parameter.Deserialize(got.Data, r.Definitions())
		Expect(err).ToNot(HaveOccurred())
		ctVal, err := decoded.MustGet("ct")
		Expect(err).ToNot(HaveOccurred())
		ct, err := ctVal.AsIntArray("ct")
		Expect(err).ToNot(HaveOccurred())
		Expect(ct).To(Equal([]int32{1, 2, 3}))
	})

	It("accepts the zap-backed logger built by NewZapLogger", func() {
		logger := NewZapLogger(zapcore.ErrorLevel)
		Expect(Save(path, []trace.Trace{
			trace.New("t", nil, []float32{1, 2}, 1.0),
		}, WithLogger(logger))).To(Succeed())

		r, err := OpenReader(path, WithLogger(logger))
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		_, err = r.Get(0)
		Expect(err).ToNot(HaveOccurred())
	})

	It("writes a file whose size matches metadata exactly after close", func() {
		Expect(Save(path, []trace.Trace{
			trace.New("t", []byte{9}, []float32{1, 2, 3, 4}, 1.0),
			trace.New("t", []byte{9}, []float32{5, 6, 7, 8}, 1.0),
		})).To(Succeed())

		r, err := OpenReader(path)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Size()).To(Equal(r.metaSize + r.traceSize*int64(r.numberOfTraces)))
	})
})

func TestTrs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing the trs package")
}
