package eventstream

import (
	"time"

	"github.com/google/uuid"

	"github.com/alignlab/simcor/pkg/report"
)

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeReportPersisted is emitted after a comparison report is
	// persisted.
	EventTypeReportPersisted = "simcor.report.persisted"
)

// ReportPersistedEvent is a transport-neutral event payload for a
// persisted comparison report.
type ReportPersistedEvent struct {
	SchemaVersion int           `json:"schema_version"`
	EventType     string        `json:"event_type"`
	EventID       string        `json:"event_id"`
	EmittedAt     time.Time     `json:"emitted_at"`
	Report        report.Report `json:"report"`
}

// NewReportPersistedEvent wraps a persisted report in a v1 event envelope.
func NewReportPersistedEvent(r *report.Report) *ReportPersistedEvent {
	return &ReportPersistedEvent{
		SchemaVersion: SchemaVersionV1,
		EventType:     EventTypeReportPersisted,
		EventID:       uuid.NewString(),
		EmittedAt:     time.Now().UTC(),
		Report:        *r,
	}
}
