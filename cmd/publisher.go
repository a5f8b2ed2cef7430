package cmd

import (
	"freight/internal/adapters/out/kafka"
	"freight/internal/core/ports"
	"freight/internal/pkg/metrics"

	"go.uber.org/zap"
)

type EventPublisher interface {
	ports.ShipmentEventPublisher
	Close() error
}

// NewEventPublisher publishes to Kafka when brokers are configured and only
// logs the events otherwise.
func NewEventPublisher(cfg Config, logger *zap.Logger, m *metrics.Metrics) EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return kafka.NewLogPublisher(logger)
	}
	return kafka.NewShipmentEventPublisher(cfg.KafkaBrokers, cfg.KafkaShipmentTopic, logger, m)
}
