// Package kafka publishes shipment status changes to a Kafka topic as JSON.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/metrics"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	StatusChangedEventType = "shipment.status_changed"
	eventTypeHeader        = "event-type"
)

// Writer is the part of *kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// StatusChangedMessage is the wire form of shipment.StatusChanged. Identities
// are strings since snowflake ids do not fit a JSON number safely.
type StatusChangedMessage struct {
	EventID        string    `json:"eventId"`
	EventType      string    `json:"eventType"`
	ShipmentID     string    `json:"shipmentId"`
	ShipmentNumber string    `json:"shipmentNumber"`
	CustomerID     string    `json:"customerId"`
	Status         string    `json:"status"`
	Remarks        string    `json:"remarks,omitempty"`
	UpdatedBy      string    `json:"updatedBy"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func newStatusChangedMessage(e shipment.StatusChanged) StatusChangedMessage {
	return StatusChangedMessage{
		EventID:        uuid.NewString(),
		EventType:      StatusChangedEventType,
		ShipmentID:     e.ShipmentID.String(),
		ShipmentNumber: e.ShipmentNumber,
		CustomerID:     e.CustomerID.String(),
		Status:         e.Status.String(),
		Remarks:        e.Remarks,
		UpdatedBy:      e.UpdatedBy.String(),
		OccurredAt:     e.OccurredAt.UTC(),
	}
}

// ShipmentEventPublisher writes one message per status change. Messages are
// keyed by shipment number so the events of a shipment stay in order on one
// partition.
type ShipmentEventPublisher struct {
	writer  Writer
	topic   string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewShipmentEventPublisher connects a kafka-go writer to brokers.
func NewShipmentEventPublisher(
	brokers []string,
	topic string,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ShipmentEventPublisher {
	w := &skafka.Writer{
		Addr:         skafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &skafka.Hash{},
		RequiredAcks: skafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}
	return NewShipmentEventPublisherWithWriter(w, topic, logger, m)
}

// NewShipmentEventPublisherWithWriter allows injecting a test writer.
func NewShipmentEventPublisherWithWriter(
	w Writer,
	topic string,
	logger *zap.Logger,
	m *metrics.Metrics,
) *ShipmentEventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShipmentEventPublisher{
		writer:  w,
		topic:   topic,
		logger:  logger.With(zap.String("component", "kafka_publisher"), zap.String("topic", topic)),
		metrics: m,
	}
}

func (p *ShipmentEventPublisher) PublishStatusChanged(ctx context.Context, events ...shipment.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, e := range events {
		body, err := json.Marshal(newStatusChangedMessage(e))
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.ShipmentNumber, err)
		}
		msgs = append(msgs, skafka.Message{
			Key:   []byte(e.ShipmentNumber),
			Value: body,
			Time:  e.OccurredAt,
			Headers: []skafka.Header{
				{Key: eventTypeHeader, Value: []byte(StatusChangedEventType)},
			},
		})
	}

	err := p.writer.WriteMessages(ctx, msgs...)
	for range msgs {
		p.metrics.EventPublished(p.topic, err)
	}
	if err != nil {
		return fmt.Errorf("write %d events to %s: %w", len(msgs), p.topic, err)
	}

	p.logger.Debug("published shipment events", zap.Int("events", len(msgs)))
	return nil
}

func (p *ShipmentEventPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when no brokers are configured: events are
// only logged.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger.With(zap.String("component", "event_log"))}
}

func (p *LogPublisher) PublishStatusChanged(_ context.Context, events ...shipment.StatusChanged) error {
	for _, e := range events {
		p.logger.Info("shipment status changed",
			zap.String("shipment_number", e.ShipmentNumber),
			zap.String("status", e.Status.String()),
			zap.String("updated_by", e.UpdatedBy.String()),
			zap.Time("occurred_at", e.OccurredAt),
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
