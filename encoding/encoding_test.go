package encoding

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Encoding", func() {
	DescribeTable("FromCode resolves known codes",
		func(code int, want Encoding, size int) {
			e, err := FromCode(code)
			Expect(err).ToNot(HaveOccurred())
			Expect(e).To(Equal(want))
			Expect(e.Size()).To(Equal(size))
		},
		Entry("Byte", 1, Byte, 1),
		Entry("Short", 2, Short, 2),
		Entry("Int", 3, Int, 4),
		Entry("Float", 4, Float, 4),
	)

	It("fails on an unknown code", func() {
		_, err := FromCode(99)
		Expect(err).To(HaveOccurred())
	})

	It("reports the right integer bounds for integral encodings", func() {
		lo, hi, ok := Byte.Bounds()
		Expect(ok).To(BeTrue())
		Expect(lo).To(Equal(int64(-128)))
		Expect(hi).To(Equal(int64(127)))

		lo, hi, ok = Short.Bounds()
		Expect(ok).To(BeTrue())
		Expect(lo).To(Equal(int64(-32768)))
		Expect(hi).To(Equal(int64(32767)))
	})

	It("has no integer bounds for Float", func() {
		_, _, ok := Float.Bounds()
		Expect(ok).To(BeFalse())
	})

	It("considers Illegal invalid", func() {
		Expect(Illegal.Valid()).To(BeFalse())
	})
})

func TestEncoding(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing the encoding package")
}
