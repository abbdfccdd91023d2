package matrixio_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/labmatrix"
	"github.com/alignlab/simcor/pkg/matrixio"
)

var _ = Describe("Read", func() {
	It("parses a labeled square matrix", func() {
		input := strings.Join([]string{
			",warm,fair,kind",
			"warm,1,0.5,0.3",
			"fair,0.5,1,0.2",
			"kind,0.3,0.2,1",
		}, "\n")

		m, err := matrixio.Read(strings.NewReader(input))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Labels()).To(Equal([]string{"warm", "fair", "kind"}))

		v, ok := m.AtLabel("warm", "kind")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(0.3))
	})

	It("rejects a table with mismatched row and column labels", func() {
		input := strings.Join([]string{
			",a,b",
			"a,1,0.5",
			"x,0.5,1",
		}, "\n")

		_, err := matrixio.Read(strings.NewReader(input))
		Expect(err).To(MatchError(matrixio.ErrMalformed))
	})

	It("rejects a table with too few data rows", func() {
		input := strings.Join([]string{
			",a,b",
			"a,1,0.5",
		}, "\n")

		_, err := matrixio.Read(strings.NewReader(input))
		Expect(err).To(MatchError(matrixio.ErrMalformed))
	})

	It("rejects non-numeric cells", func() {
		input := strings.Join([]string{
			",a,b",
			"a,1,oops",
			"b,0.5,1",
		}, "\n")

		_, err := matrixio.Read(strings.NewReader(input))
		Expect(err).To(MatchError(matrixio.ErrMalformed))
	})

	It("rejects an empty input", func() {
		_, err := matrixio.Read(strings.NewReader(""))
		Expect(err).To(MatchError(matrixio.ErrMalformed))
	})
})

var _ = Describe("Write", func() {
	It("round-trips a matrix through the CSV format", func() {
		m, err := labmatrix.New([]string{"a", "b"}, [][]float64{
			{1, -0.25},
			{-0.25, 1},
		})
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(matrixio.Write(&buf, m)).To(Succeed())

		parsed, err := matrixio.Read(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Labels()).To(Equal(m.Labels()))
		Expect(parsed.UpperTriangle()).To(Equal(m.UpperTriangle()))
	})
})
