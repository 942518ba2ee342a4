package metadata

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/StefanD986/java-trsfile/internal/dataio"
	"github.com/StefanD986/java-trsfile/tag"
)

func roundTrip(m *Map) (*Map, error) {
	var buf bytes.Buffer
	w := dataio.MakeWriter(&buf)
	if err := WriteHeader(w, m); err != nil {
		return nil, err
	}
	r := dataio.MakeReader(&buf)
	return ReadHeader(r)
}

var _ = Describe("Header codec", func() {
	var m *Map

	BeforeEach(func() {
		m = New()
		m.Put(tag.NumberOfTraces, tag.IntValue(3))
		m.Put(tag.NumberOfSamples, tag.IntValue(100))
		m.Put(tag.SampleCoding, tag.IntValue(1))
		m.Put(tag.DataLength, tag.IntValue(0))
		m.Put(tag.TitleSpace, tag.IntValue(0))
		m.Put(tag.GlobalTitle, tag.StringValue("trace"))
		m.Put(tag.ScaleX, tag.FloatValue(1.0))
	})

	It("round-trips a minimal valid header", func() {
		got, err := roundTrip(m)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Equal(m)).To(BeTrue())
	})

	It("always emits required tags even when they equal their default", func() {
		m.Put(tag.ScaleX, tag.FloatValue(1.0)) // equals the registered default
		var buf bytes.Buffer
		Expect(WriteHeader(dataio.MakeWriter(&buf), m)).To(Succeed())

		got, err := ReadHeader(dataio.MakeReader(&buf))
		Expect(err).ToNot(HaveOccurred())
		v, ok := got.Get(tag.ScaleX)
		Expect(ok).To(BeTrue())
		Expect(v.Float).To(Equal(float32(1.0)))
	})

	It("omits a non-required tag equal to its default", func() {
		m.Put(tag.TraceParameterDefinitions, tag.BytesValue(nil))
		var buf bytes.Buffer
		Expect(WriteHeader(dataio.MakeWriter(&buf), m)).To(Succeed())

		got, err := ReadHeader(dataio.MakeReader(&buf))
		Expect(err).ToNot(HaveOccurred())
		_, ok := got.Get(tag.TraceParameterDefinitions)
		Expect(ok).To(BeFalse())
	})

	It("produces identical byte lengths across writes with different trace counts", func() {
		m.Put(tag.NumberOfTraces, tag.IntValue(0))
		var placeholder bytes.Buffer
		Expect(WriteHeader(dataio.MakeWriter(&placeholder), m)).To(Succeed())

		m.Put(tag.NumberOfTraces, tag.IntValue(1<<20))
		var final bytes.Buffer
		Expect(WriteHeader(dataio.MakeWriter(&final), m)).To(Succeed())

		Expect(final.Len()).To(Equal(placeholder.Len()))
	})

	It("fails with MissingRequiredTag when a required tag is absent", func() {
		// WriteHeader fills every absent required tag with its default,
		// so the incomplete header is assembled record by record instead.
		var buf bytes.Buffer
		w := dataio.MakeWriter(&buf)
		Expect(writeRecord(w, tag.NumberOfTraces, tag.IntValue(1))).To(Succeed())
		Expect(writeRecord(w, tag.TraceBlock, tag.BytesValue(nil))).To(Succeed())
		_, err := ReadHeader(dataio.MakeReader(&buf))
		Expect(err).To(HaveOccurred())
	})

	It("fails when SCALE_X is not positive", func() {
		m.Put(tag.ScaleX, tag.FloatValue(0))
		_, err := roundTrip(m)
		Expect(err).To(HaveOccurred())
	})

	It("fails when SAMPLE_CODING does not resolve to a known encoding", func() {
		m.Put(tag.SampleCoding, tag.IntValue(99))
		_, err := roundTrip(m)
		Expect(err).To(HaveOccurred())
	})

	It("fails on an unknown tag id", func() {
		var buf bytes.Buffer
		Expect(WriteHeader(dataio.MakeWriter(&buf), m)).To(Succeed())
		raw := buf.Bytes()
		raw[0] = 200 // corrupt the first tag id
		_, err := ReadHeader(dataio.MakeReader(bytes.NewReader(raw)))
		Expect(err).To(HaveOccurred())
	})
})

func TestMetadata(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing the metadata package")
}
