package tag

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tag registry", func() {
	It("resolves known ids", func() {
		got, err := ByID(NumberOfTraces)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Name).To(Equal("NUMBER_OF_TRACES"))
		Expect(got.Required).To(BeTrue())
	})

	It("resolves known names", func() {
		got, err := ByName("SCALE_X")
		Expect(err).ToNot(HaveOccurred())
		Expect(got.ID).To(Equal(ScaleX))
	})

	It("fails on an unknown id", func() {
		_, err := ByID(ID(200))
		Expect(err).To(HaveOccurred())
	})

	It("marks TRACE_PARAMETER_DEFINITIONS as non-required", func() {
		got, err := ByID(TraceParameterDefinitions)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Required).To(BeFalse())
	})

	It("gives SAMPLE_CODING a default resolving to BYTE", func() {
		got, err := ByID(SampleCoding)
		Expect(err).ToNot(HaveOccurred())
		Expect(got.Default.Int).To(Equal(int32(1)))
	})
})

func TestTag(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing the tag package")
}
