package labmatrix

import "errors"

var (
	// ErrNotSquare is returned when a matrix is constructed from a grid
	// that is not square with one row and one column per label.
	ErrNotSquare = errors.New("labeled matrix is not square")

	// ErrDuplicateLabel is returned when the label sequence contains the
	// same label more than once.
	ErrDuplicateLabel = errors.New("duplicate label")

	// ErrEmptyIntersection is returned by Align when the two matrices share
	// no common label.
	ErrEmptyIntersection = errors.New("label sets do not intersect")

	// ErrLengthMismatch is returned by Correlate when the two sequences
	// have different lengths.
	ErrLengthMismatch = errors.New("sequence lengths differ")

	// ErrTooFewValues is returned by Correlate when a sequence has fewer
	// than two values, where correlation is undefined.
	ErrTooFewValues = errors.New("need at least two values to correlate")

	// ErrZeroVariance is returned by Correlate when a sequence is constant,
	// where the correlation denominator is zero.
	ErrZeroVariance = errors.New("sequence has zero variance")
)
