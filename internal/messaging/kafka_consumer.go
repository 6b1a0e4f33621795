package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/service"
)

// messageReader is the part of kafka.Reader the consumer uses
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// KafkaConsumer consumes raw drops from Kafka and feeds them to ingestion
type KafkaConsumer struct {
	reader   messageReader
	ingester service.Ingester
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "raw_drops"
	GroupID string   // e.g., "parlay-intel"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	ingester service.Ingester,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1,    // drops are small and latency matters
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		ingester: ingester,
		metrics:  m,
		logger:   logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming drops from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return c.reader.Close()

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.metrics.KafkaMessages.WithLabelValues("error").Inc()
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}
			c.metrics.KafkaMessages.WithLabelValues("ok").Inc()

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage ingests a single drop. Drops that cannot be parsed are
// logged and committed; only infrastructure failures leave the offset
// uncommitted for redelivery.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var payload models.DropPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		c.logger.Warn().
			Err(err).
			Int64("offset", msg.Offset).
			Msg("skipping malformed drop")
		return nil
	}

	result, err := c.ingester.Ingest(ctx, &payload)
	if err != nil {
		return fmt.Errorf("failed to ingest drop: %w", err)
	}

	c.logger.Debug().
		Str("event_id", payload.EventID).
		Str("status", string(result.Status)).
		Str("reason", result.Reason).
		Int64("offset", msg.Offset).
		Msg("processed drop")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
