package labmatrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Result is the outcome of comparing two labeled matrices. It carries
// the flattened sequences alongside the coefficient so callers can plot
// or inspect the paired values without re-running the pipeline.
type Result struct {
	// Labels is the common label sequence both matrices were aligned to.
	Labels []string

	// SeqA and SeqB are the flattened upper triangles, position-aligned.
	SeqA []float64
	SeqB []float64

	// Absolute records whether the coefficient was computed on
	// elementwise absolute values.
	Absolute bool

	// Pearson is the product-moment correlation between SeqA and SeqB.
	Pearson float64
}

// Correlate computes the Pearson product-moment correlation between two
// equal-length sequences. When absolute is true, both sequences are
// correlated on their elementwise absolute values; this discards sign
// information from similarity measures that are arbitrarily signed
// (reverse-scored items). Inputs are never mutated.
//
// Returns ErrLengthMismatch, ErrTooFewValues, or ErrZeroVariance when
// the correlation is undefined.
func Correlate(x, y []float64, absolute bool) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewValues, len(x))
	}

	if absolute {
		x = absValues(x)
		y = absValues(y)
	}

	if constant(x) || constant(y) {
		return 0, ErrZeroVariance
	}

	return stat.Correlation(x, y, nil), nil
}

// Compare runs the whole pipeline: align the two matrices to their
// common labels, flatten both upper triangles, and correlate. Any error
// aborts the computation; no partial result is returned.
func Compare(a, b *LabeledMatrix, absolute bool) (*Result, error) {
	alignedA, alignedB, err := Align(a, b)
	if err != nil {
		return nil, err
	}

	seqA := alignedA.UpperTriangle()
	seqB := alignedB.UpperTriangle()

	r, err := Correlate(seqA, seqB, absolute)
	if err != nil {
		return nil, err
	}

	return &Result{
		Labels:   alignedA.Labels(),
		SeqA:     seqA,
		SeqB:     seqB,
		Absolute: absolute,
		Pearson:  r,
	}, nil
}

func absValues(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = math.Abs(v)
	}
	return out
}

func constant(s []float64) bool {
	for _, v := range s[1:] {
		if v != s[0] {
			return false
		}
	}
	return true
}
