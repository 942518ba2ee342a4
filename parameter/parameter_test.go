package parameter

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/StefanD986/java-trsfile/ptype"
)

var _ = Describe("Definition map", func() {
	It("round-trips through its byte encoding", func() {
		d := NewDefinitionMap()
		Expect(d.Add("gain", ptype.KindFloat, 1)).To(Succeed())
		Expect(d.Add("samples", ptype.KindShortArray, 4)).To(Succeed())

		raw, err := SerializeDefinitions(d)
		Expect(err).ToNot(HaveOccurred())

		got, err := DeserializeDefinitions(raw)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Entries()).To(Equal(d.Entries()))
		Expect(got.TotalSize()).To(Equal(d.TotalSize()))
	})

	It("assigns monotonically increasing offsets that tile the blob", func() {
		d := NewDefinitionMap()
		Expect(d.Add("a", ptype.KindByte, 1)).To(Succeed())
		Expect(d.Add("b", ptype.KindInt, 2)).To(Succeed())
		Expect(d.Add("c", ptype.KindDouble, 1)).To(Succeed())

		entries := d.Entries()
		Expect(entries[0].Offset).To(Equal(0))
		Expect(entries[1].Offset).To(Equal(1))
		Expect(entries[2].Offset).To(Equal(9))
		Expect(d.TotalSize()).To(Equal(17))
	})
})

var _ = Describe("Parameter map", func() {
	It("round-trips serialize/deserialize against a matching definition map", func() {
		m := NewMap()
		Expect(m.Put("gain", ptype.NewFloat(2.5))).To(Succeed())
		Expect(m.Put("samples", ptype.NewShortArray([]int16{1, 2, 3, 4}))).To(Succeed())

		defs, err := DefinitionsFor(m)
		Expect(err).ToNot(HaveOccurred())

		raw, err := Serialize(m)
		Expect(err).ToNot(HaveOccurred())

		got, err := Deserialize(raw, defs)
		Expect(err).ToNot(HaveOccurred())

		gotGain, err := got.MustGet("gain")
		Expect(err).ToNot(HaveOccurred())
		v, err := gotGain.AsFloat("gain")
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(float32(2.5)))
	})

	It("fails with ParameterLengthMismatch on empty data but non-empty definitions", func() {
		defs := NewDefinitionMap()
		Expect(defs.Add("x", ptype.KindInt, 1)).To(Succeed())

		_, err := Deserialize(nil, defs)
		Expect(err).To(HaveOccurred())
	})

	It("fails with ParameterLengthMismatch when data length disagrees with definitions", func() {
		defs := NewDefinitionMap()
		Expect(defs.Add("x", ptype.KindInt, 1)).To(Succeed())

		_, err := Deserialize([]byte{1, 2, 3}, defs)
		Expect(err).To(HaveOccurred())
	})

	It("freezes into an ImmutableMap carrying the same entries", func() {
		m := NewMap()
		Expect(m.Put("x", ptype.NewBool(true))).To(Succeed())

		frozen := m.Freeze()
		v, err := frozen.MustGet("x")
		Expect(err).ToNot(HaveOccurred())
		got, err := v.AsBool("x")
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(BeTrue())
		Expect(frozen.Keys()).To(Equal([]string{"x"}))
		// ImmutableMap has no Put method; mutation after Freeze is a
		// compile error, not a runtime check.
	})
})

func TestParameter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing the parameter package")
}
