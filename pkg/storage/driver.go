// Package storage
package storage

import (
	"context"

	"github.com/alignlab/simcor/pkg/report"
)

// Driver defines the interface for persisting and retrieving comparison
// reports in a storage backend.
type Driver interface {
	// Put stores a report. Storing an existing ID overwrites it.
	Put(ctx context.Context, r *report.Report) error

	// Get retrieves a report by its ID.
	Get(ctx context.Context, id string) (*report.Report, error)

	// List returns all reports, newest first.
	List(ctx context.Context) ([]*report.Report, error)

	// Delete removes a report by its ID.
	Delete(ctx context.Context, id string) error

	// Close closes the store and releases any resources.
	Close() error
}
