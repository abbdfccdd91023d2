package labmatrix_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/labmatrix"
)

var _ = Describe("Correlate", func() {
	It("returns 1 for self-correlation of a non-constant sequence", func() {
		x := []float64{0.9, 0.1, -0.3, 0.4}
		r, err := labmatrix.Correlate(x, x, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("is symmetric in its arguments", func() {
		x := []float64{0.9, 0.1, -0.3, 0.4, 0.2, -0.5}
		y := []float64{0.8, 0.0, -0.2, 0.5, 0.3, -0.4}

		rxy, err := labmatrix.Correlate(x, y, false)
		Expect(err).NotTo(HaveOccurred())
		ryx, err := labmatrix.Correlate(y, x, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(rxy).To(BeNumerically("~", ryx, 1e-12))
	})

	It("matches the Pearson coefficient of the literal sequences", func() {
		x := []float64{0.9, 0.1, -0.3, 0.4, 0.2, -0.5}
		y := []float64{0.8, 0.0, -0.2, 0.5, 0.3, -0.4}

		r, err := labmatrix.Correlate(x, y, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 0.98199, 1e-4))
	})

	It("differs between signed and absolute mode on signed input", func() {
		x := []float64{0.9, 0.1, -0.3, 0.4, 0.2, -0.5}
		y := []float64{0.8, 0.0, -0.2, 0.5, 0.3, -0.4}

		signed, err := labmatrix.Correlate(x, y, false)
		Expect(err).NotTo(HaveOccurred())
		abs, err := labmatrix.Correlate(x, y, true)
		Expect(err).NotTo(HaveOccurred())

		Expect(abs).To(BeNumerically("~", 0.93159, 1e-4))
		Expect(abs).NotTo(BeNumerically("~", signed, 1e-4))
	})

	It("does not mutate its inputs in absolute mode", func() {
		x := []float64{-0.5, 0.5, -0.1}
		y := []float64{0.1, -0.2, 0.3}

		_, err := labmatrix.Correlate(x, y, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(x).To(Equal([]float64{-0.5, 0.5, -0.1}))
		Expect(y).To(Equal([]float64{0.1, -0.2, 0.3}))
	})

	It("fails on mismatched lengths", func() {
		_, err := labmatrix.Correlate([]float64{1, 2}, []float64{1, 2, 3}, false)
		Expect(err).To(MatchError(labmatrix.ErrLengthMismatch))
	})

	It("fails on sequences shorter than two", func() {
		_, err := labmatrix.Correlate([]float64{0.5}, []float64{0.2}, false)
		Expect(err).To(MatchError(labmatrix.ErrTooFewValues))
	})

	It("fails on a zero-variance sequence", func() {
		_, err := labmatrix.Correlate([]float64{0.5, 0.5, 0.5}, []float64{0.1, 0.2, 0.3}, false)
		Expect(err).To(MatchError(labmatrix.ErrZeroVariance))
	})

	It("fails when absolute values collapse to zero variance", func() {
		// Signs differ but magnitudes are constant.
		_, err := labmatrix.Correlate([]float64{-0.5, 0.5, -0.5}, []float64{0.1, 0.2, 0.3}, true)
		Expect(err).To(MatchError(labmatrix.ErrZeroVariance))
	})
})

var _ = Describe("Compare", func() {
	It("runs align, flatten, and correlate as one pipeline", func() {
		a, err := labmatrix.New([]string{"a", "b", "c", "d"}, [][]float64{
			{1.0, 0.9, 0.1, -0.3},
			{0.9, 1.0, 0.4, 0.2},
			{0.1, 0.4, 1.0, -0.5},
			{-0.3, 0.2, -0.5, 1.0},
		})
		Expect(err).NotTo(HaveOccurred())
		b, err := labmatrix.New([]string{"a", "b", "c", "d"}, [][]float64{
			{1.0, 0.8, 0.0, -0.2},
			{0.8, 1.0, 0.5, 0.3},
			{0.0, 0.5, 1.0, -0.4},
			{-0.2, 0.3, -0.4, 1.0},
		})
		Expect(err).NotTo(HaveOccurred())

		result, err := labmatrix.Compare(a, b, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Labels).To(Equal([]string{"a", "b", "c", "d"}))
		Expect(result.SeqA).To(Equal([]float64{0.9, 0.1, -0.3, 0.4, 0.2, -0.5}))
		Expect(result.SeqB).To(Equal([]float64{0.8, 0.0, -0.2, 0.5, 0.3, -0.4}))
		Expect(result.Pearson).To(BeNumerically("~", 0.98199, 1e-4))
	})

	It("surfaces the degenerate single-pair case from alignment", func() {
		// Two 3x3 matrices overlapping on two labels flatten to a single
		// value each, which is below the correlation length floor.
		a := uniform([]string{"p", "q", "r"}, 0.5)
		b := uniform([]string{"q", "r", "s"}, 0.2)

		_, err := labmatrix.Compare(a, b, false)
		Expect(err).To(MatchError(labmatrix.ErrTooFewValues))
	})

	It("aborts without a partial result on empty intersection", func() {
		a := uniform([]string{"p", "q"}, 0.5)
		b := uniform([]string{"x", "y"}, 0.2)

		result, err := labmatrix.Compare(a, b, false)
		Expect(err).To(MatchError(labmatrix.ErrEmptyIntersection))
		Expect(result).To(BeNil())
	})
})
