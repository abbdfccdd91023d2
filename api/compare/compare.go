// Package compare provides shared types and logic for comparing two
// labeled similarity matrices. It is used by both the REST API endpoint
// and the CLI compare command so the two surfaces cannot drift.
package compare

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/eventstream"
	"github.com/alignlab/simcor/pkg/labmatrix"
	"github.com/alignlab/simcor/pkg/report"
	"github.com/alignlab/simcor/pkg/storage"
)

// MatrixInput is one labeled similarity matrix in a compare request.
type MatrixInput struct {
	// Name identifies the matrix in the resulting report (e.g. a
	// study or rater name).
	Name string `json:"name"`

	// Labels are the item labels, one per row and column.
	Labels []string `json:"labels"`

	// Rows is the square grid of similarity values, row-major,
	// len(Labels) x len(Labels).
	Rows [][]float64 `json:"rows"`
}

// Input represents the input arguments for a compare request.
type Input struct {
	A        MatrixInput `json:"a"`
	B        MatrixInput `json:"b"`
	Absolute bool        `json:"absolute,omitempty"`
}

// Output represents the outcome of a compare operation.
type Output struct {
	Report *report.Report `json:"report"`

	// SharedLabels are the labels both matrices were reduced to,
	// in the first matrix's order.
	SharedLabels []string `json:"shared_labels"`
}

// Compare aligns the two input matrices on their shared labels,
// correlates their upper triangles, persists the resulting report, and
// publishes a persisted-report event. The storer and publisher may be
// nil for callers that only want the correlation.
func Compare(
	ctx context.Context,
	input *Input,
	storer storage.Driver,
	publisher eventstream.Publisher,
	logger *zap.Logger,
) (*Output, error) {
	a, err := labmatrix.New(input.A.Labels, input.A.Rows)
	if err != nil {
		return nil, fmt.Errorf("matrix %q: %w", input.A.Name, err)
	}

	b, err := labmatrix.New(input.B.Labels, input.B.Rows)
	if err != nil {
		return nil, fmt.Errorf("matrix %q: %w", input.B.Name, err)
	}

	result, err := labmatrix.Compare(a, b, input.Absolute)
	if err != nil {
		return nil, err
	}

	logger.Debug("matrices compared",
		zap.String("a", input.A.Name),
		zap.String("b", input.B.Name),
		zap.Int("shared_labels", len(result.Labels)),
		zap.Bool("absolute", input.Absolute),
		zap.Float64("pearson", result.Pearson),
	)

	rep := report.New(input.A.Name, input.B.Name, result)

	if storer != nil {
		if err := storer.Put(ctx, rep); err != nil {
			return nil, fmt.Errorf("persisting report: %w", err)
		}

		if publisher != nil {
			event := eventstream.NewReportPersistedEvent(rep)
			if err := publisher.PublishReport(ctx, event); err != nil {
				// Publishing is best-effort once the report is stored.
				logger.Warn("publishing report event failed",
					zap.String("report_id", rep.ID),
					zap.Error(err),
				)
			}
		}
	}

	return &Output{
		Report:       rep,
		SharedLabels: result.Labels,
	}, nil
}
