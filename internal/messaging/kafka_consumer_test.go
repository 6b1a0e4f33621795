package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/mocks"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// fakeReader hands out queued messages, then blocks until the context ends
type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	committed []int64
	closed    bool
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{queue: msgs, drained: make(chan struct{})}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	if len(r.queue) > 0 {
		msg := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()
		return msg, nil
	}
	select {
	case <-r.drained:
	default:
		close(r.drained)
	}
	r.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Config() kafka.ReaderConfig {
	return kafka.ReaderConfig{Topic: "raw_drops", GroupID: "test-group"}
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// testKafkaConsumerSetup is a helper struct to hold test dependencies
type testKafkaConsumerSetup struct {
	mockIngester *mocks.MockIngester
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	ctrl         *gomock.Controller
}

// setupTestKafkaConsumer creates a test consumer with mocked dependencies
func setupTestKafkaConsumer(t *testing.T) *testKafkaConsumerSetup {
	ctrl := gomock.NewController(t)

	return &testKafkaConsumerSetup{
		mockIngester: mocks.NewMockIngester(ctrl),
		metrics:      metrics.New(prometheus.NewRegistry()),
		logger:       zerolog.Nop(),
		ctrl:         ctrl,
	}
}

// consumer builds a consumer reading from r
func (s *testKafkaConsumerSetup) consumer(r messageReader) *KafkaConsumer {
	return &KafkaConsumer{
		reader:   r,
		ingester: s.mockIngester,
		metrics:  s.metrics,
		logger:   s.logger,
	}
}

// cleanup cleans up test resources
func (s *testKafkaConsumerSetup) cleanup() {
	s.ctrl.Finish()
}

func dropMessage(t *testing.T, offset int64, payload *models.DropPayload) kafka.Message {
	value, err := json.Marshal(payload)
	require.NoError(t, err)
	return kafka.Message{Offset: offset, Key: []byte(payload.EventID), Value: value}
}

// TestNewKafkaConsumer tests consumer creation
func TestNewKafkaConsumer(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	config := KafkaConsumerConfig{
		Brokers: []string{"broker1:9092", "broker2:9092"},
		Topic:   "raw_drops",
		GroupID: "parlay-intel",
	}

	consumer := NewKafkaConsumer(config, setup.mockIngester, setup.metrics, setup.logger)

	require.NotNil(t, consumer)
	assert.Equal(t, config.Topic, consumer.reader.Config().Topic)
	assert.Equal(t, config.GroupID, consumer.reader.Config().GroupID)
	assert.Equal(t, config.Brokers, consumer.reader.Config().Brokers)

	assert.NoError(t, consumer.Close())
}

// TestProcessMessage_Ingests tests that a drop reaches the ingester intact
func TestProcessMessage_Ingests(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()
	ctx := context.Background()

	pct := 5.16
	drop := &models.DropPayload{
		EventID:       "e1",
		ArbPercentage: &pct,
		Match:         "Raptors vs Lakers",
		League:        "NBA",
		Market:        "Total Points",
		Outcomes: []models.DropOutcome{
			{Outcome: "Over 220.5", Odds: -200, Casino: "Betsson"},
			{Outcome: "Under 220.5", Odds: 255, Casino: "Coolbet"},
		},
	}

	setup.mockIngester.EXPECT().
		Ingest(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.DropPayload) (ingest.Result, error) {
			assert.Equal(t, drop, p)
			return ingest.Duplicate("opp-1"), nil
		})

	err := setup.consumer(newFakeReader()).processMessage(ctx, dropMessage(t, 7, drop))
	assert.NoError(t, err)
}

// TestProcessMessage_MalformedJSON tests that unparseable drops are skipped
func TestProcessMessage_MalformedJSON(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	err := setup.consumer(newFakeReader()).processMessage(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.NoError(t, err)
}

// TestProcessMessage_IngestFailure tests that infrastructure errors surface
func TestProcessMessage_IngestFailure(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()
	ctx := context.Background()

	setup.mockIngester.EXPECT().
		Ingest(ctx, gomock.Any()).
		Return(ingest.Result{}, errors.New("redis down"))

	err := setup.consumer(newFakeReader()).processMessage(ctx, dropMessage(t, 1, &models.DropPayload{EventID: "e1"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ingest drop")
}

// TestStart_CommitsOnlyProcessedMessages tests that a failed drop is left
// uncommitted for redelivery
func TestStart_CommitsOnlyProcessedMessages(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	reader := newFakeReader(
		dropMessage(t, 1, &models.DropPayload{EventID: "ok"}),
		dropMessage(t, 2, &models.DropPayload{EventID: "fail"}),
		dropMessage(t, 3, &models.DropPayload{EventID: "ok-again"}),
	)

	setup.mockIngester.EXPECT().
		Ingest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.DropPayload) (ingest.Result, error) {
			if p.EventID == "fail" {
				return ingest.Result{}, errors.New("database locked")
			}
			return ingest.Rejected("no outcomes"), nil
		}).
		Times(3)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- setup.consumer(reader).Start(ctx)
	}()

	select {
	case <-reader.drained:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not drain the queue")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop within timeout")
	}

	reader.mu.Lock()
	defer reader.mu.Unlock()
	assert.Equal(t, []int64{1, 3}, reader.committed)
}

// TestKafkaConsumer_ContextCancellation tests context cancellation handling
func TestKafkaConsumer_ContextCancellation(t *testing.T) {
	setup := setupTestKafkaConsumer(t)
	defer setup.cleanup()

	reader := newFakeReader()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := setup.consumer(reader).Start(ctx)
	assert.NoError(t, err)
	assert.True(t, reader.closed)
}
