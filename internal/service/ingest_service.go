package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/store"
)

// IngestConfig holds drop ingestion configuration
type IngestConfig struct {
	DedupTTL time.Duration
}

// IngestService normalizes drops, deduplicates them and feeds the pool
type IngestService struct {
	config     IngestConfig
	normalizer *ingest.Normalizer
	cache      Cache
	repo       OpportunityRepository
	pool       *store.OpportunityStore
	trigger    GenerationTrigger
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewIngestService creates a new ingest service
func NewIngestService(
	config IngestConfig,
	normalizer *ingest.Normalizer,
	cache Cache,
	repo OpportunityRepository,
	pool *store.OpportunityStore,
	trigger GenerationTrigger,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *IngestService {
	if config.DedupTTL <= 0 {
		config.DedupTTL = 24 * time.Hour
	}
	return &IngestService{
		config:     config,
		normalizer: normalizer,
		cache:      cache,
		repo:       repo,
		pool:       pool,
		trigger:    trigger,
		metrics:    m,
		logger:     logger.With().Str("component", "ingest_service").Logger(),
		now:        time.Now,
	}
}

// Ingest turns one drop into an opportunity. Malformed drops and duplicates
// come back as results; the error is reserved for infrastructure failures,
// after which the drop can be retried.
func (s *IngestService) Ingest(ctx context.Context, payload *models.DropPayload) (ingest.Result, error) {
	result, err := s.ingest(ctx, payload)
	if err != nil {
		s.metrics.DropsIngested.WithLabelValues("error").Inc()
		return result, err
	}
	s.metrics.DropsIngested.WithLabelValues(string(result.Status)).Inc()
	return result, nil
}

func (s *IngestService) ingest(ctx context.Context, payload *models.DropPayload) (ingest.Result, error) {
	result := s.normalizer.Normalize(payload, s.now())
	if result.Status != ingest.StatusAccepted {
		return result, nil
	}
	opp := result.Opportunity

	existing, seen, err := s.cache.SeenOrInsert(ctx, opp.Fingerprint, opp.ID, s.config.DedupTTL)
	switch {
	case err != nil:
		// the pool and the fingerprint index still catch duplicates
		s.logger.Warn().
			Err(err).
			Str("fingerprint", opp.Fingerprint).
			Msg("dedup store unavailable")
		if prev, ok := s.pool.Get(opp.Fingerprint); ok {
			return ingest.Duplicate(prev.ID), nil
		}
	case seen:
		s.logger.Debug().
			Str("fingerprint", opp.Fingerprint).
			Str("existing_id", existing).
			Msg("duplicate drop")
		return ingest.Duplicate(existing), nil
	}

	inserted, err := s.repo.SaveOpportunity(ctx, opp)
	if err != nil {
		if ferr := s.cache.Forget(ctx, opp.Fingerprint); ferr != nil {
			s.logger.Warn().Err(ferr).Str("fingerprint", opp.Fingerprint).Msg("failed to release dedup key")
		}
		return result, fmt.Errorf("failed to persist opportunity: %w", err)
	}
	if !inserted {
		// persisted before the dedup key expired
		existingID := ""
		if prev, ok := s.pool.Get(opp.Fingerprint); ok {
			existingID = prev.ID
		}
		return ingest.Duplicate(existingID), nil
	}

	s.pool.Insert(opp)
	s.metrics.PoolSize.Set(float64(s.pool.Len()))
	s.trigger.Trigger()

	s.logger.Info().
		Str("opportunity_id", opp.ID).
		Str("event_id", opp.EventID).
		Str("kind", string(opp.Kind)).
		Str("match", opp.Match.Name()).
		Int("legs", len(opp.Legs)).
		Float64("edge_percent", opp.EdgePercent).
		Msg("opportunity ingested")

	return result, nil
}

// Warm loads the still-active persisted opportunities into the pool
func (s *IngestService) Warm(ctx context.Context) (int, error) {
	opps, err := s.repo.ListActiveOpportunities(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to load active opportunities: %w", err)
	}
	loaded := 0
	for _, opp := range opps {
		if s.pool.Insert(opp) {
			loaded++
		}
	}
	s.metrics.PoolSize.Set(float64(s.pool.Len()))
	s.logger.Info().Int("loaded", loaded).Msg("opportunity pool warmed")
	return loaded, nil
}
