package vector

import "errors"

var (
	// ErrNotFound is returned when a requested item document is absent
	// from the store.
	ErrNotFound = errors.New("document not found")

	// ErrEmbedding is returned when generating an item embedding fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrConnection is returned when the store cannot be reached or opened.
	ErrConnection = errors.New("vector store connection failed")
)
