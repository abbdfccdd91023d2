package testutils

import (
	"context"
	"sync"

	"github.com/alignlab/simcor/pkg/vector"
)

// MockVectorDriver is a test vector driver that records added documents.
type MockVectorDriver struct {
	mu        sync.Mutex
	documents []vector.Document
	results   []vector.QueryResult
}

func NewMockVectorDriver() *MockVectorDriver {
	return &MockVectorDriver{
		documents: make([]vector.Document, 0),
		results:   make([]vector.QueryResult, 0),
	}
}

func (m *MockVectorDriver) Add(_ context.Context, docs []vector.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = append(m.documents, docs...)
	return nil
}

func (m *MockVectorDriver) Query(_ context.Context, _ []float32, topK int) ([]vector.QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.results) < topK {
		return m.results, nil
	}
	return m.results[:topK], nil
}

func (m *MockVectorDriver) Get(_ context.Context, _ []string) ([]vector.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]vector.Document(nil), m.documents...), nil
}

func (m *MockVectorDriver) Delete(_ context.Context, _ []string) error {
	return nil
}

func (m *MockVectorDriver) Close() error {
	return nil
}

// Documents returns a snapshot of everything added so far.
func (m *MockVectorDriver) Documents() []vector.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]vector.Document(nil), m.documents...)
}
