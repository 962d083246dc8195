// Package kafka publishes off-route warnings for staff-facing consumers.
package kafka

import (
	"context"
	"encoding/json"

	"offroute/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives every warning when no topic is configured.
const DefaultTopic = "offroute.warnings"

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

// Dispatcher writes one JSON message per warning, keyed by trip so a trip's
// warnings stay ordered within a partition.
type Dispatcher struct {
	w     writer
	topic string
}

func NewDispatcher(brokers []string, topic string) *Dispatcher {
	return newDispatcherWithWriter(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
	}, topic)
}

func newDispatcherWithWriter(w writer, topic string) *Dispatcher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Dispatcher{w: w, topic: topic}
}

func (d *Dispatcher) SendWarning(ctx context.Context, payload ports.WarningPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode warning")
	}

	if err = d.w.WriteMessages(ctx, kafka.Message{
		Topic: d.topic,
		Key:   []byte(payload.TripID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(payload.Type)},
			{Key: "severity", Value: []byte(payload.Severity)},
		},
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

func (d *Dispatcher) Close() error {
	if c, ok := d.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
