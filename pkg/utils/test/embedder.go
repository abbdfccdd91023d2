package testutils

import (
	"context"
	"fmt"
)

// defaultEmbedding is handed out for any item text without a canned vector.
var defaultEmbedding = []float32{0.1, 0.2, 0.3}

// MockEmbedder serves canned embeddings keyed by item text.
type MockEmbedder struct {
	Embeddings map[string][]float32

	// FailOn makes Embed fail for one specific item text.
	FailOn string
}

func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{
		Embeddings: make(map[string][]float32),
	}
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.FailOn != "" && text == m.FailOn {
		return nil, fmt.Errorf("mock embedding failure for: %s", text)
	}

	if emb, ok := m.Embeddings[text]; ok {
		return emb, nil
	}

	return defaultEmbedding, nil
}

func (m *MockEmbedder) Close() error {
	return nil
}
