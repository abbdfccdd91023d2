package similarity_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/similarity"
)

var _ = Describe("Cosine", func() {
	It("returns 1 for identical vectors", func() {
		v := []float32{0.1, 0.2, 0.3}
		Expect(similarity.Cosine(v, v)).To(BeNumerically("~", 1.0, 1e-6))
	})

	It("returns 0 for orthogonal vectors", func() {
		Expect(similarity.Cosine([]float32{1, 0}, []float32{0, 1})).To(BeZero())
	})

	It("returns -1 for opposite vectors", func() {
		Expect(similarity.Cosine([]float32{1, 2}, []float32{-1, -2})).To(BeNumerically("~", -1.0, 1e-6))
	})

	It("returns 0 for mismatched lengths", func() {
		Expect(similarity.Cosine([]float32{1, 2}, []float32{1, 2, 3})).To(BeZero())
	})

	It("returns 0 for a zero-norm vector", func() {
		Expect(similarity.Cosine([]float32{0, 0}, []float32{1, 2})).To(BeZero())
	})
})

var _ = Describe("MatrixFromEmbeddings", func() {
	It("builds a symmetric matrix with unit diagonal", func() {
		labels := []string{"warm", "cold", "kind"}
		vectors := [][]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0.5, 0.5, 0},
		}

		m, err := similarity.MatrixFromEmbeddings(labels, vectors)
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Labels()).To(Equal(labels))
		for i := 0; i < m.Len(); i++ {
			Expect(m.At(i, i)).To(Equal(1.0))
		}
		Expect(m.Symmetric(1e-9)).To(BeTrue())

		v, ok := m.AtLabel("warm", "kind")
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", 0.7071, 1e-4))
	})

	It("rejects mismatched label and vector counts", func() {
		_, err := similarity.MatrixFromEmbeddings([]string{"a"}, [][]float32{{1}, {2}})
		Expect(err).To(HaveOccurred())
	})
})
