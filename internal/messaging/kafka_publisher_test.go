package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// fakeWriter records written messages
type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher(KafkaPublisherConfig{Brokers: []string{"localhost:9092"}, Topic: "parlay_events"}, zerolog.Nop())

	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "parlay_events", w.Topic)
	assert.NoError(t, p.Close())
}

func TestPublish_KeysAndEncodesEvents(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, logger: zerolog.Nop()}
	at := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(),
		&models.EngineEvent{Type: models.EventParlayCreated, Key: "p1", Parlay: &models.Parlay{ID: "p1"}, OccurredAt: at},
		&models.EngineEvent{Type: models.EventHealthScored, Key: "u1:betsson", OccurredAt: at},
	)
	require.NoError(t, err)
	require.Len(t, w.msgs, 2)

	assert.Equal(t, "p1", string(w.msgs[0].Key))
	assert.Equal(t, "u1:betsson", string(w.msgs[1].Key))
	assert.Equal(t, "type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, "parlay.created", string(w.msgs[0].Headers[0].Value))
	assert.Equal(t, at, w.msgs[0].Time)

	var decoded models.EngineEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, models.EventParlayCreated, decoded.Type)
	require.NotNil(t, decoded.Parlay)
	assert.Equal(t, "p1", decoded.Parlay.ID)
}

func TestPublish_Empty(t *testing.T) {
	w := &fakeWriter{err: errors.New("must not be called")}
	p := &KafkaPublisher{writer: w, logger: zerolog.Nop()}

	assert.NoError(t, p.Publish(context.Background()))
}

func TestPublish_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := &KafkaPublisher{writer: w, logger: zerolog.Nop()}

	err := p.Publish(context.Background(), &models.EngineEvent{Type: models.EventParlayExpired, Key: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write events")
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(zerolog.Nop())
	assert.NoError(t, p.Publish(context.Background(), &models.EngineEvent{Type: models.EventProfileLimited, Key: "u1:betsson"}))
}
