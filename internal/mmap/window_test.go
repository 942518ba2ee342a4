package mmap

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Window", func() {
	var (
		path string
		dir  string
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "trs-mmap-test")
		Expect(err).ToNot(HaveOccurred())

		path = filepath.Join(dir, "data.bin")
		content := make([]byte, 64)
		for i := range content {
			content[i] = byte(i)
		}
		Expect(os.WriteFile(path, content, 0o644)).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("maps the requested byte range", func() {
		w, err := Open(path, 8, 16)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		Expect(w.Bytes()).To(HaveLen(16))
		Expect(w.Bytes()[0]).To(Equal(byte(8)))
		Expect(w.Start).To(Equal(int64(8)))
	})

	It("truncates the window at end of file", func() {
		w, err := Open(path, 60, 100)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		Expect(w.Bytes()).To(HaveLen(4))
	})

	It("reports containment correctly", func() {
		w, err := Open(path, 8, 16)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		Expect(w.Contains(8, 24)).To(BeTrue())
		Expect(w.Contains(0, 8)).To(BeFalse())
		Expect(w.Contains(20, 30)).To(BeFalse())
	})

	It("remaps to a new region", func() {
		w, err := Open(path, 0, 16)
		Expect(err).ToNot(HaveOccurred())
		defer w.Close()

		Expect(w.Remap(path, 32, 16)).To(Succeed())
		Expect(w.Bytes()[0]).To(Equal(byte(32)))
		Expect(w.Start).To(Equal(int64(32)))
	})
})

func TestWindow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Testing a mmap.Window")
}
