package event

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is implemented by *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaHandler forwards events to a topic keyed by sale id, so every event
// of one sale lands on the same partition in order.
type KafkaHandler struct {
	writer MessageWriter
}

func NewKafkaHandler(writer MessageWriter) *KafkaHandler {
	return &KafkaHandler{writer: writer}
}

func (h *KafkaHandler) Name() string { return "kafka" }

func (h *KafkaHandler) Handle(ctx context.Context, e Event) error {
	data, err := json.Marshal(NewEnvelope(e))
	if err != nil {
		return err
	}
	return h.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.SaleKey().String()),
		Value: data,
		Time:  e.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(e.Name())},
		},
	})
}
