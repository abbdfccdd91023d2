// Package report defines the persisted record of a matrix comparison.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/alignlab/simcor/pkg/labmatrix"
)

// Report is the stored outcome of comparing two labeled similarity
// matrices.
type Report struct {
	// ID is a unique identifier for the comparison run.
	ID string `json:"id"`

	// CreatedAt is when the comparison was computed.
	CreatedAt time.Time `json:"created_at"`

	// NameA and NameB identify the two compared matrices (file names or
	// caller-supplied study names).
	NameA string `json:"name_a"`
	NameB string `json:"name_b"`

	// Labels is the common label set both matrices were aligned to.
	Labels []string `json:"labels"`

	// PairCount is the number of upper-triangle pairs correlated,
	// len(Labels) * (len(Labels)-1) / 2.
	PairCount int `json:"pair_count"`

	// Absolute records whether the coefficient was computed on
	// elementwise absolute values.
	Absolute bool `json:"absolute"`

	// Pearson is the correlation coefficient.
	Pearson float64 `json:"pearson"`
}

// New builds a Report from a comparison result, assigning a fresh ID and
// timestamp.
func New(nameA, nameB string, result *labmatrix.Result) *Report {
	return &Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		NameA:     nameA,
		NameB:     nameB,
		Labels:    result.Labels,
		PairCount: len(result.SeqA),
		Absolute:  result.Absolute,
		Pearson:   result.Pearson,
	}
}
