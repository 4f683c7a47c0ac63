//go:build integration

package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"vouch/internal/platform/config"
	"vouch/internal/platform/kafka/producer"
	"vouch/internal/verification/models"
	"vouch/pkg/testutil/containers"
)

const testTopic = "vouch.verification.updated.test"

type PublisherSuite struct {
	suite.Suite
	kafka     *containers.KafkaContainer
	producer  *producer.KafkaProducer
	publisher *Publisher
}

func (s *PublisherSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())
	s.Require().NoError(s.kafka.CreateTopic(context.Background(), testTopic, 1, 1))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := producer.New(config.KafkaConfig{
		Brokers: s.kafka.Brokers,
		Acks:    "1",
		Retries: 3,
	}, logger)
	s.Require().NoError(err)
	s.producer = p
	s.publisher = NewPublisher(p, testTopic, logger)
}

func (s *PublisherSuite) TearDownSuite() {
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) TestPublishedEventIsConsumable() {
	ctx := context.Background()

	event := models.Event{
		ID:           "evt-1",
		Type:         models.EventSellerVerified,
		SubjectID:    "u1",
		ActorID:      "editor-1",
		DocumentType: "passport",
		Verified:     true,
		OccurredAt:   time.Now().UTC(),
	}
	s.publisher.Publish(ctx, event)

	consumer, err := s.kafka.NewConsumer("publisher-suite", testTopic)
	s.Require().NoError(err)
	defer consumer.Close()

	record := s.kafka.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "u1"
	})
	s.Require().NotNil(record, "expected event on topic")

	var got models.Event
	s.Require().NoError(json.Unmarshal(record.Value, &got))
	s.Equal(models.EventSellerVerified, got.Type)
	s.Equal("u1", got.SubjectID)
	s.True(got.Verified)

	headers := map[string]string{}
	for _, h := range record.Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal(models.EventSellerVerified, headers["event_type"])
}
