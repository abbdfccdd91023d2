// Package sqlitevec provides a SQLite-backed vector driver using sqlite-vec.
package sqlitevec

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/vector"
)

// Driver implements vector.Driver using SQLite with the sqlite-vec
// extension. Item metadata lives in a regular table keyed by rowid; the
// vec0 virtual table holds the embeddings under the same rowid.
type Driver struct {
	db     *sql.DB
	logger *zap.Logger
}

// Config holds configuration for the sqlite-vec driver.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Use ":memory:" for an in-memory database.
	DBPath string

	// Dimensions is the embedding vector dimension. Must match the
	// embedding model in use.
	Dimensions uint
}

// NewDriver opens (or creates) the item-embedding store.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	sqlite_vec.Auto()

	if c.DBPath == "" {
		return nil, fmt.Errorf("%w: database path is required", vector.ErrConnection)
	}
	if c.Dimensions == 0 {
		return nil, fmt.Errorf("%w: embedding dimensions must be configured", vector.ErrConnection)
	}

	db, err := sql.Open("sqlite3", c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", vector.ErrConnection, err)
	}

	var vecVersion string
	if err := db.QueryRow("SELECT vec_version()").Scan(&vecVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite-vec not available: %v", vector.ErrConnection, err)
	}

	// vec0 virtual tables use integer rowids, so string document IDs are
	// mapped through a companion table.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS item_documents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL UNIQUE,
			label TEXT NOT NULL DEFAULT '',
			study TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating item table: %w", err)
	}

	createVec := fmt.Sprintf(
		`CREATE VIRTUAL TABLE IF NOT EXISTS item_embeddings USING vec0(embedding float[%d])`,
		c.Dimensions,
	)
	if _, err := db.Exec(createVec); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating vec0 table: %w", err)
	}

	logger.Info("sqlite-vec item store initialized",
		zap.String("db_path", c.DBPath),
		zap.Uint("dimensions", c.Dimensions),
		zap.String("vec_version", vecVersion),
	)

	return &Driver{db: db, logger: logger}, nil
}

// Add stores documents with their embeddings, updating any document that
// already exists under the same ID.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		blob := serializeFloat32(doc.Embedding)

		var rowID int64
		err := tx.QueryRowContext(ctx,
			`SELECT rowid FROM item_documents WHERE doc_id = ?`, doc.ID,
		).Scan(&rowID)

		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx,
				`UPDATE item_documents SET label = ?, study = ? WHERE rowid = ?`,
				doc.Label, doc.Study, rowID,
			); err != nil {
				return fmt.Errorf("updating document %s: %w", doc.ID, err)
			}

			// vec0 does not support UPDATE; replace via DELETE + INSERT.
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM item_embeddings WHERE rowid = ?`, rowID,
			); err != nil {
				return fmt.Errorf("deleting old embedding for %s: %w", doc.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_embeddings(rowid, embedding) VALUES (?, ?)`,
				rowID, blob,
			); err != nil {
				return fmt.Errorf("re-inserting embedding for %s: %w", doc.ID, err)
			}

		case errors.Is(err, sql.ErrNoRows):
			result, err := tx.ExecContext(ctx,
				`INSERT INTO item_documents(doc_id, label, study) VALUES (?, ?, ?)`,
				doc.ID, doc.Label, doc.Study,
			)
			if err != nil {
				return fmt.Errorf("inserting document %s: %w", doc.ID, err)
			}

			rowID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("getting rowid for %s: %w", doc.ID, err)
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO item_embeddings(rowid, embedding) VALUES (?, ?)`,
				rowID, blob,
			); err != nil {
				return fmt.Errorf("inserting embedding for %s: %w", doc.ID, err)
			}

		default:
			return fmt.Errorf("checking for existing document %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	d.logger.Debug("added documents to sqlite-vec",
		zap.Int("count", len(docs)),
	)

	return nil
}

// Query finds the topK documents most similar to the given embedding.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT
			i.doc_id,
			i.label,
			i.study,
			ve.distance
		FROM item_embeddings ve
		INNER JOIN item_documents i ON i.rowid = ve.rowid
		WHERE ve.embedding MATCH ?
			AND ve.k = ?
		ORDER BY ve.distance
	`, serializeFloat32(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var results []vector.QueryResult
	for rows.Next() {
		var docID, label, study string
		var distance float64
		if err := rows.Scan(&docID, &label, &study, &distance); err != nil {
			return nil, fmt.Errorf("scanning query result: %w", err)
		}

		results = append(results, vector.QueryResult{
			Document: vector.Document{
				ID:    docID,
				Label: label,
				Study: study,
			},
			// Lower distance = higher similarity.
			Score: float32(1.0 / (1.0 + distance)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query results: %w", err)
	}

	return results, nil
}

// Get retrieves documents by their IDs, embeddings included.
func (d *Driver) Get(ctx context.Context, ids []string) ([]vector.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT i.rowid, i.doc_id, i.label, i.study
		FROM item_documents i
		WHERE i.doc_id IN (%s)
	`, strings.Join(placeholders, ","))

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}

	// Collect metadata first so the cursor is closed before the
	// per-document embedding reads (SQLite uses a single connection).
	type itemRow struct {
		rowID int64
		doc   vector.Document
	}
	var items []itemRow

	for rows.Next() {
		var it itemRow
		if err := rows.Scan(&it.rowID, &it.doc.ID, &it.doc.Label, &it.doc.Study); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	rows.Close()

	docs := make([]vector.Document, 0, len(items))
	for _, it := range items {
		var blob []byte
		err := d.db.QueryRowContext(ctx,
			`SELECT embedding FROM item_embeddings WHERE rowid = ?`, it.rowID,
		).Scan(&blob)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reading embedding for %s: %w", it.doc.ID, err)
		}
		if blob != nil {
			emb, err := deserializeFloat32(blob)
			if err != nil {
				return nil, fmt.Errorf("decoding embedding for %s: %w", it.doc.ID, err)
			}
			it.doc.Embedding = emb
		}
		docs = append(docs, it.doc)
	}

	return docs, nil
}

// Delete removes documents by their IDs.
func (d *Driver) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		var rowID int64
		err := tx.QueryRowContext(ctx,
			`SELECT rowid FROM item_documents WHERE doc_id = ?`, id,
		).Scan(&rowID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("looking up document %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM item_embeddings WHERE rowid = ?`, rowID); err != nil {
			return fmt.Errorf("deleting embedding for %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM item_documents WHERE rowid = ?`, rowID); err != nil {
			return fmt.Errorf("deleting document %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	return d.db.Close()
}

// serializeFloat32 converts a float32 slice to the little-endian BLOB
// format sqlite-vec expects.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// deserializeFloat32 converts a little-endian BLOB back to a float32 slice.
func deserializeFloat32(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d: must be divisible by 4", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

var _ vector.Driver = (*Driver)(nil)
