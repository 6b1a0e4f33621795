package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// messageWriter is the part of kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisherConfig holds Kafka producer configuration
type KafkaPublisherConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "parlay_events"
}

// KafkaPublisher emits engine events for the notification layer. Events are
// keyed by parlay id or user:book so one subject stays on one partition.
type KafkaPublisher struct {
	writer messageWriter
	logger zerolog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// Publish writes events as one batch
func (p *KafkaPublisher) Publish(ctx context.Context, events ...*models.EngineEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", ev.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.Key),
			Value: value,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(ev.Type)},
			},
			Time: ev.OccurredAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to write events: %w", err)
	}

	p.logger.Debug().Int("count", len(msgs)).Msg("published events")
	return nil
}

// Close flushes and closes the Kafka writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher stands in for Kafka when it is disabled: events are only
// logged.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a publisher that logs events
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "log_publisher").Logger()}
}

// Publish logs each event
func (p *LogPublisher) Publish(_ context.Context, events ...*models.EngineEvent) error {
	for _, ev := range events {
		p.logger.Info().
			Str("type", string(ev.Type)).
			Str("key", ev.Key).
			Time("occurred_at", ev.OccurredAt).
			Msg("engine event")
	}
	return nil
}
