package nop_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/eventstream"
	"github.com/alignlab/simcor/pkg/eventstream/nop"
	"github.com/alignlab/simcor/pkg/report"
)

var _ = Describe("Publisher", func() {
	var publisher *nop.Publisher

	BeforeEach(func() {
		publisher = nop.NewPublisher()
	})

	It("accepts a valid event", func() {
		event := &eventstream.ReportPersistedEvent{
			SchemaVersion: eventstream.SchemaVersionV1,
			EventType:     eventstream.EventTypeReportPersisted,
			EventID:       "e1",
			EmittedAt:     time.Now(),
			Report:        report.Report{ID: "r1"},
		}
		Expect(publisher.PublishReport(context.Background(), event)).To(Succeed())
	})

	It("rejects a nil event", func() {
		err := publisher.PublishReport(context.Background(), nil)
		Expect(err).To(MatchError(eventstream.ErrNilReportEvent))
	})

	It("closes without error", func() {
		Expect(publisher.Close()).To(Succeed())
	})
})
