// Package vector provides interfaces and implementations for storing and
// querying study-item embeddings.
package vector

import "context"

// Document is a stored study item with its embedding.
type Document struct {
	// ID is a unique identifier for the document.
	ID string

	// Label is the item text as it appears in the instrument
	// (e.g. a trait adjective or questionnaire item).
	Label string

	// Study groups documents belonging to the same item set.
	Study string

	// Embedding is the vector representation of the label.
	Embedding []float32
}

// QueryResult is a search hit with its similarity score.
type QueryResult struct {
	Document

	// Score is the similarity score (higher = more similar).
	Score float32
}

// Driver handles storage and retrieval of item embeddings.
type Driver interface {
	// Add stores documents with their embeddings, updating any document
	// that already exists under the same ID.
	Add(ctx context.Context, docs []Document) error

	// Query finds the topK documents most similar to the given embedding.
	Query(ctx context.Context, embedding []float32, topK int) ([]QueryResult, error)

	// Get retrieves documents by their IDs.
	Get(ctx context.Context, ids []string) ([]Document, error)

	// Delete removes documents by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the driver.
	Close() error
}
