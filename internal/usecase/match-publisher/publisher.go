package matchpublisher

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	aggregatorv1 "github.com/giongion19/energyweb-marketplace/internal/domain/aggregator/v1"
	"github.com/giongion19/energyweb-marketplace/pkg/config"
	"github.com/giongion19/energyweb-marketplace/pkg/errors"
	"github.com/giongion19/energyweb-marketplace/pkg/logger"
)

// kafkaWriter abstracts kafka.Writer so tests can capture messages.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes match lifecycle events to the match topic.
type Publisher struct {
	kafkaWriter kafkaWriter
	logger      logger.Interface
}

var _ aggregatorv1.MatchPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for match events.
func NewPublisher(config config.MatchKafkaConfig, logger logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: config.Brokers,
		Topic:   config.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      logger,
	}
}

// PublishMatchProposed publishes a match proposed event to the Kafka topic.
// The ledger match id is used as the message key so that all events for one
// match land on the same partition.
func (p *Publisher) PublishMatchProposed(ctx context.Context, event *aggregatorv1.MatchProposedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.NewBaseError(
			errors.NewErrorDetailsWithObject(err.Error(), string(errors.KafkaPublishError), "event", event),
		)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(event.MatchID, 10)),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "matchID", Value: event.MatchID},
			logger.Field{Key: "asset", Value: event.Asset},
		)
		return errors.NewBaseError(
			errors.NewErrorDetails(err.Error(), string(errors.KafkaPublishError), "writeMessages"),
		)
	}

	p.logger.InfoContext(ctx, "Published match proposed event",
		logger.Field{Key: "matchID", Value: event.MatchID},
		logger.Field{Key: "eventID", Value: event.EventID},
	)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
