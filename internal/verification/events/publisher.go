// Package events bridges verification record changes onto the Kafka topic.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"vouch/internal/platform/kafka/producer"
	"vouch/internal/verification/models"
	"vouch/pkg/requestcontext"
)

// Publisher serializes events and hands them to the Kafka producer. Delivery
// is fire-and-forget so a slow or unreachable broker never stalls a save.
type Publisher struct {
	producer producer.Producer
	topic    string
	logger   *slog.Logger
}

func NewPublisher(p producer.Producer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{producer: p, topic: topic, logger: logger}
}

func (p *Publisher) Publish(ctx context.Context, event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "marshal verification event",
			"event_type", event.Type, "error", err)
		return
	}
	msg := &producer.Message{
		Topic: p.topic,
		Key:   []byte(event.SubjectID),
		Value: payload,
		Headers: map[string]string{
			"event_type": event.Type,
			"request_id": requestcontext.RequestID(ctx),
		},
	}
	if err := p.producer.ProduceAsync(msg); err != nil {
		p.logger.ErrorContext(ctx, "enqueue verification event",
			"event_type", event.Type, "subject_id", event.SubjectID, "error", err)
	}
}
