// Package kafka publishes report events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	segmentio "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/eventstream"
)

// DefaultTopic is the topic report events are published to when none is
// configured.
const DefaultTopic = "simcor.reports"

// Publisher implements eventstream.Publisher on a Kafka topic.
type Publisher struct {
	writer *segmentio.Writer
	logger *zap.Logger
}

// Config holds configuration for the Kafka publisher.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the destination topic. Defaults to DefaultTopic if empty.
	Topic string
}

// NewPublisher creates a Kafka-backed report event publisher.
func NewPublisher(c Config, logger *zap.Logger) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}

	topic := c.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &segmentio.Writer{
		Addr:     segmentio.TCP(c.Brokers...),
		Topic:    topic,
		Balancer: &segmentio.LeastBytes{},
	}

	logger.Info("kafka report publisher initialized",
		zap.Strings("brokers", c.Brokers),
		zap.String("topic", topic),
	)

	return &Publisher{writer: writer, logger: logger}, nil
}

// PublishReport serializes the event as JSON and writes it keyed by
// report ID, so events for the same report land in one partition.
func (p *Publisher) PublishReport(ctx context.Context, event *eventstream.ReportPersistedEvent) error {
	if event == nil {
		return eventstream.ErrNilReportEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling report event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, segmentio.Message{
		Key:   []byte(event.Report.ID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("writing report event: %w", err)
	}

	p.logger.Debug("published report event",
		zap.String("event_id", event.EventID),
		zap.String("report_id", event.Report.ID),
	)

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ eventstream.Publisher = (*Publisher)(nil)
