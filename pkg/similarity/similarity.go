// Package similarity builds labeled cosine-similarity matrices from text
// embeddings.
package similarity

import (
	"fmt"
	"math"

	"github.com/alignlab/simcor/pkg/labmatrix"
)

// Cosine returns the cosine similarity between two embedding vectors,
// bounded in [-1, 1]. Mismatched lengths and zero-norm inputs score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatrixFromEmbeddings builds a labeled similarity matrix from one
// embedding per label. The diagonal is fixed at 1 and off-diagonal
// entries are pairwise cosine similarities, so the result is symmetric
// by construction.
func MatrixFromEmbeddings(labels []string, vectors [][]float32) (*labmatrix.LabeledMatrix, error) {
	if len(labels) != len(vectors) {
		return nil, fmt.Errorf("got %d labels and %d vectors", len(labels), len(vectors))
	}

	n := len(labels)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		rows[i][i] = 1
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := Cosine(vectors[i], vectors[j])
			rows[i][j] = s
			rows[j][i] = s
		}
	}

	return labmatrix.New(labels, rows)
}
