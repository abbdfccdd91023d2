// Package labmatrix provides labeled square matrices of pairwise scores
// and the alignment operations needed to compare two of them: restrict
// both to their common labels, flatten the strictly-upper triangles in a
// shared order, and correlate the resulting sequences.
//
// Matrices are value types. Every operation returns a fresh matrix and
// never mutates its inputs, so concurrent use on shared matrices is safe.
package labmatrix

import (
	"fmt"
	"math"
)

// LabeledMatrix is a square float64 grid indexed symmetrically by a
// sequence of unique string labels. Row labels and column labels are the
// same sequence; order matters only for presentation and traversal.
type LabeledMatrix struct {
	labels []string
	index  map[string]int
	data   []float64 // row-major, len == n*n
}

// New creates a LabeledMatrix from a label sequence and a row-major grid.
// The grid must be square with one row per label, and labels must be
// unique. The grid is copied; the caller keeps ownership of its slices.
func New(labels []string, rows [][]float64) (*LabeledMatrix, error) {
	n := len(labels)
	if len(rows) != n {
		return nil, fmt.Errorf("%w: %d labels, %d rows", ErrNotSquare, n, len(rows))
	}

	index := make(map[string]int, n)
	for i, label := range labels {
		if _, ok := index[label]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		index[label] = i
	}

	data := make([]float64, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSquare, i, len(row), n)
		}
		copy(data[i*n:(i+1)*n], row)
	}

	return &LabeledMatrix{
		labels: append([]string(nil), labels...),
		index:  index,
		data:   data,
	}, nil
}

// Len returns the number of labels (the matrix is Len x Len).
func (m *LabeledMatrix) Len() int {
	return len(m.labels)
}

// Labels returns a copy of the label sequence in presentation order.
func (m *LabeledMatrix) Labels() []string {
	return append([]string(nil), m.labels...)
}

// At returns the entry at (row, col) by index.
func (m *LabeledMatrix) At(row, col int) float64 {
	return m.data[row*len(m.labels)+col]
}

// AtLabel returns the entry for a pair of labels. The second return is
// false when either label is absent.
func (m *LabeledMatrix) AtLabel(rowLabel, colLabel string) (float64, bool) {
	i, ok := m.index[rowLabel]
	if !ok {
		return 0, false
	}
	j, ok := m.index[colLabel]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// Rows returns a copy of the grid as row slices in label order.
func (m *LabeledMatrix) Rows() [][]float64 {
	n := len(m.labels)
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]float64(nil), m.data[i*n:(i+1)*n]...)
	}
	return rows
}

// Has reports whether the matrix carries the given label.
func (m *LabeledMatrix) Has(label string) bool {
	_, ok := m.index[label]
	return ok
}

// Symmetric reports whether every entry equals its transpose within eps.
// Symmetry is assumed by Align but never enforced; this helper lets
// callers validate instrument data before comparing.
func (m *LabeledMatrix) Symmetric(eps float64) bool {
	n := len(m.labels)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > eps {
				return false
			}
		}
	}
	return true
}

// Select returns a new matrix restricted to the given labels, in the
// given order. All labels must be present.
func (m *LabeledMatrix) Select(labels []string) (*LabeledMatrix, error) {
	k := len(labels)
	rows := make([][]float64, k)
	for i, rowLabel := range labels {
		ri, ok := m.index[rowLabel]
		if !ok {
			return nil, fmt.Errorf("label %q not in matrix", rowLabel)
		}
		rows[i] = make([]float64, k)
		for j, colLabel := range labels {
			ci := m.index[colLabel]
			rows[i][j] = m.At(ri, ci)
		}
	}
	return New(labels, rows)
}

// UpperTriangle flattens the strictly-upper triangle (diagonal excluded)
// into a sequence, enumerating index pairs (i, j) with i < j in
// row-major order. An n x n matrix yields exactly n*(n-1)/2 values.
// Two matrices with identical label order flatten element-for-element
// into comparable positions.
func (m *LabeledMatrix) UpperTriangle() []float64 {
	n := len(m.labels)
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// Align restricts two matrices to their common label set and reorders
// both to a single canonical ordering: the intersection in matrix a's
// label order. The returned matrices have identical shape and identical
// label sequences. Returns ErrEmptyIntersection when no label is shared.
func Align(a, b *LabeledMatrix) (*LabeledMatrix, *LabeledMatrix, error) {
	common := make([]string, 0, len(a.labels))
	for _, label := range a.labels {
		if b.Has(label) {
			common = append(common, label)
		}
	}
	if len(common) == 0 {
		return nil, nil, ErrEmptyIntersection
	}

	alignedA, err := a.Select(common)
	if err != nil {
		return nil, nil, fmt.Errorf("aligning first matrix: %w", err)
	}
	alignedB, err := b.Select(common)
	if err != nil {
		return nil, nil, fmt.Errorf("aligning second matrix: %w", err)
	}

	return alignedA, alignedB, nil
}
