// Package matrixio reads and writes labeled similarity matrices as CSV.
//
// The format is a square table with a header row: the first cell is
// empty (or a corner note), the remaining header cells are column
// labels, and each following row starts with its row label. Row and
// column labels must match in order, mirroring how association matrices
// are exported from spreadsheet and stats tools.
package matrixio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alignlab/simcor/pkg/labmatrix"
)

// ErrMalformed is returned when the CSV is not a labeled square table.
var ErrMalformed = errors.New("malformed matrix csv")

// Read parses a labeled square matrix from r.
func Read(r io.Reader) (*labmatrix.LabeledMatrix, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrMalformed)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header has no column labels", ErrMalformed)
	}
	labels := header[1:]

	if len(records)-1 != len(labels) {
		return nil, fmt.Errorf("%w: %d column labels but %d data rows", ErrMalformed, len(labels), len(records)-1)
	}

	rows := make([][]float64, len(labels))
	for i, record := range records[1:] {
		if len(record) != len(labels)+1 {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, i+1, len(record), len(labels)+1)
		}
		if record[0] != labels[i] {
			return nil, fmt.Errorf("%w: row label %q does not match column label %q", ErrMalformed, record[0], labels[i])
		}

		rows[i] = make([]float64, len(labels))
		for j, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %q column %q: %v", ErrMalformed, labels[i], labels[j], err)
			}
			rows[i][j] = v
		}
	}

	return labmatrix.New(labels, rows)
}

// ReadFile parses a labeled square matrix from a CSV file.
func ReadFile(path string) (*labmatrix.LabeledMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Write serializes a labeled matrix to w in the same format Read accepts.
func Write(w io.Writer, m *labmatrix.LabeledMatrix) error {
	cw := csv.NewWriter(w)
	labels := m.Labels()

	header := append([]string{""}, labels...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(labels)+1)
	for i, label := range labels {
		record[0] = label
		for j := range labels {
			record[j+1] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %q: %w", label, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes a labeled matrix to a CSV file.
func WriteFile(path string, m *labmatrix.LabeledMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
