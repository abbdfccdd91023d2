// Package sqlite provides a SQLite-backed report store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/alignlab/simcor/pkg/report"
	"github.com/alignlab/simcor/pkg/storage"
)

// Driver implements storage.Driver using SQLite.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed report store. The dbPath can be
// a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			name_a TEXT NOT NULL,
			name_b TEXT NOT NULL,
			labels TEXT NOT NULL,
			pair_count INTEGER NOT NULL,
			absolute INTEGER NOT NULL,
			pearson REAL NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Driver{db: db}, nil
}

// Put stores a report, overwriting any existing report with the same ID.
func (d *Driver) Put(ctx context.Context, r *report.Report) error {
	if r == nil {
		return errors.New("cannot store nil report")
	}

	labels, err := json.Marshal(r.Labels)
	if err != nil {
		return fmt.Errorf("encoding labels: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, name_a, name_b, labels, pair_count, absolute, pearson)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			name_a = excluded.name_a,
			name_b = excluded.name_b,
			labels = excluded.labels,
			pair_count = excluded.pair_count,
			absolute = excluded.absolute,
			pearson = excluded.pearson
	`, r.ID, r.CreatedAt.Format(time.RFC3339Nano), r.NameA, r.NameB, string(labels), r.PairCount, boolToInt(r.Absolute), r.Pearson)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", r.ID, err)
	}

	return nil
}

// Get retrieves a report by its ID.
func (d *Driver) Get(ctx context.Context, id string) (*report.Report, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, created_at, name_a, name_b, labels, pair_count, absolute, pearson
		FROM reports WHERE id = ?
	`, id)

	r, err := scanReport(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", id, err)
	}

	return r, nil
}

// List returns all reports, newest first.
func (d *Driver) List(ctx context.Context) ([]*report.Report, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, created_at, name_a, name_b, labels, pair_count, absolute, pearson
		FROM reports ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []*report.Report
	for rows.Next() {
		r, err := scanReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

// Delete removes a report by its ID.
func (d *Driver) Delete(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return storage.NotFoundError{ID: id}
	}

	return nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	return d.db.Close()
}

// scanReport decodes one row via the given Scan function, shared between
// Get and List.
func scanReport(scan func(...any) error) (*report.Report, error) {
	var (
		r         report.Report
		createdAt string
		labels    string
		absolute  int
	)
	if err := scan(&r.ID, &createdAt, &r.NameA, &r.NameB, &labels, &r.PairCount, &absolute, &r.Pearson); err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	r.CreatedAt = ts

	if err := json.Unmarshal([]byte(labels), &r.Labels); err != nil {
		return nil, fmt.Errorf("decoding labels: %w", err)
	}
	r.Absolute = absolute != 0

	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ storage.Driver = (*Driver)(nil)
