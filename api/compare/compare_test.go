package compare_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/api/compare"
	"github.com/alignlab/simcor/pkg/eventstream"
	"github.com/alignlab/simcor/pkg/eventstream/nop"
	"github.com/alignlab/simcor/pkg/labmatrix"
	"github.com/alignlab/simcor/pkg/storage/inmemory"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []*eventstream.ReportPersistedEvent
}

func (p *recordingPublisher) PublishReport(_ context.Context, event *eventstream.ReportPersistedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var _ = Describe("Compare", func() {
	var (
		ctx    context.Context
		storer *inmemory.Driver
		pub    *recordingPublisher
		input  *compare.Input
	)

	BeforeEach(func() {
		ctx = context.Background()
		storer = inmemory.NewDriver()
		pub = &recordingPublisher{}

		input = &compare.Input{
			A: compare.MatrixInput{
				Name:   "human-raters",
				Labels: []string{"a", "b", "c", "d"},
				Rows: [][]float64{
					{1.0, 0.9, 0.1, -0.3},
					{0.9, 1.0, 0.4, 0.2},
					{0.1, 0.4, 1.0, -0.5},
					{-0.3, 0.2, -0.5, 1.0},
				},
			},
			B: compare.MatrixInput{
				Name:   "embeddings",
				Labels: []string{"a", "b", "c", "d"},
				Rows: [][]float64{
					{1.0, 0.8, 0.0, -0.2},
					{0.8, 1.0, 0.5, 0.3},
					{0.0, 0.5, 1.0, -0.4},
					{-0.2, 0.3, -0.4, 1.0},
				},
			},
		}
	})

	It("correlates two matrices and builds a report", func() {
		out, err := compare.Compare(ctx, input, storer, pub, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		Expect(out.SharedLabels).To(Equal([]string{"a", "b", "c", "d"}))
		Expect(out.Report).NotTo(BeNil())
		Expect(out.Report.ID).NotTo(BeEmpty())
		Expect(out.Report.NameA).To(Equal("human-raters"))
		Expect(out.Report.NameB).To(Equal("embeddings"))
		Expect(out.Report.PairCount).To(Equal(6))
		Expect(out.Report.Absolute).To(BeFalse())
		Expect(out.Report.Pearson).To(BeNumerically("~", 0.98199, 1e-4))
	})

	It("persists the report", func() {
		out, err := compare.Compare(ctx, input, storer, pub, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		stored, err := storer.Get(ctx, out.Report.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.Pearson).To(Equal(out.Report.Pearson))
	})

	It("publishes a persisted-report event", func() {
		out, err := compare.Compare(ctx, input, storer, pub, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		Expect(pub.events).To(HaveLen(1))
		Expect(pub.events[0].EventType).To(Equal(eventstream.EventTypeReportPersisted))
		Expect(pub.events[0].SchemaVersion).To(Equal(eventstream.SchemaVersionV1))
		Expect(pub.events[0].Report.ID).To(Equal(out.Report.ID))
	})

	It("runs without a storer or publisher", func() {
		out, err := compare.Compare(ctx, input, nil, nil, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Report.Pearson).To(BeNumerically("~", 0.98199, 1e-4))

		reports, err := storer.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(reports).To(BeEmpty())
	})

	It("honors absolute mode", func() {
		input.Absolute = true

		out, err := compare.Compare(ctx, input, storer, nop.NewPublisher(), zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Report.Absolute).To(BeTrue())
		Expect(out.Report.Pearson).To(BeNumerically("~", 0.93159, 1e-4))
	})

	It("rejects a non-square matrix", func() {
		input.A.Rows = input.A.Rows[:3]

		_, err := compare.Compare(ctx, input, storer, pub, zap.NewNop())
		Expect(err).To(MatchError(labmatrix.ErrNotSquare))
		Expect(err.Error()).To(ContainSubstring("human-raters"))
	})

	It("rejects matrices with no shared labels", func() {
		input.B.Labels = []string{"w", "x", "y", "z"}

		_, err := compare.Compare(ctx, input, storer, pub, zap.NewNop())
		Expect(err).To(MatchError(labmatrix.ErrEmptyIntersection))

		reports, listErr := storer.List(ctx)
		Expect(listErr).NotTo(HaveOccurred())
		Expect(reports).To(BeEmpty())
	})
})
