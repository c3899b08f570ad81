package messaging

import (
	"github.com/sangkips/developerstore-sales/internal/config"
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns a writer for the sale event topic. Messages are
// hashed by key so all events of one sale land on the same partition.
func NewKafkaWriter(cfg *config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EventTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}
