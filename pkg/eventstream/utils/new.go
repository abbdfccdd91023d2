// Package eventstreamutils constructs report event publishers from
// provider config.
package eventstreamutils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/eventstream"
	"github.com/alignlab/simcor/pkg/eventstream/kafka"
	"github.com/alignlab/simcor/pkg/eventstream/nop"
)

type NewPublisherOpts struct {
	ProviderType string

	// Brokers is a comma-separated broker list for the kafka provider.
	Brokers string

	// Topic is the topic reports are published to (kafka provider).
	Topic string

	Logger *zap.Logger
}

func NewPublisher(o *NewPublisherOpts) (eventstream.Publisher, error) {
	switch o.ProviderType {
	case "", "nop":
		return nop.NewPublisher(), nil
	case "kafka":
		if strings.TrimSpace(o.Brokers) == "" {
			return nil, fmt.Errorf("kafka event stream requires at least one broker")
		}
		brokers := strings.Split(o.Brokers, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		return kafka.NewPublisher(kafka.Config{
			Brokers: brokers,
			Topic:   o.Topic,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported event stream provider: %s", o.ProviderType)
	}
}
