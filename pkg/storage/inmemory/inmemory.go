// Package inmemory provides a map-backed report store for tests and
// default (non-persistent) runs.
package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/alignlab/simcor/pkg/report"
	"github.com/alignlab/simcor/pkg/storage"
)

// Driver implements storage.Driver using an in-memory map.
type Driver struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// NewDriver creates a new in-memory report store.
func NewDriver() *Driver {
	return &Driver{
		reports: make(map[string]*report.Report),
	}
}

// Put stores a report, overwriting any existing report with the same ID.
func (d *Driver) Put(_ context.Context, r *report.Report) error {
	if r == nil {
		return errors.New("cannot store nil report")
	}
	if r.ID == "" {
		return errors.New("report has no ID")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.reports[r.ID] = r
	return nil
}

// Get retrieves a report by its ID.
func (d *Driver) Get(_ context.Context, id string) (*report.Report, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.reports[id]
	if !ok {
		return nil, storage.NotFoundError{ID: id}
	}

	return r, nil
}

// List returns all reports, newest first.
func (d *Driver) List(_ context.Context) ([]*report.Report, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*report.Report, 0, len(d.reports))
	for _, r := range d.reports {
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// Delete removes a report by its ID.
func (d *Driver) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.reports[id]; !ok {
		return storage.NotFoundError{ID: id}
	}

	delete(d.reports, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (d *Driver) Close() error {
	return nil
}

var _ storage.Driver = (*Driver)(nil)
