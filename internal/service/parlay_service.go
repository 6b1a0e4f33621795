package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
	"github.com/cypherlabdev/parlay-intel-service/internal/store"
	"github.com/cypherlabdev/parlay-intel-service/internal/updater"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

// ParlayConfig holds generation and verification configuration
type ParlayConfig struct {
	GenerationInterval   time.Duration
	VerificationCooldown time.Duration
}

// ParlayService runs generation passes and on-demand verification
type ParlayService struct {
	config    ParlayConfig
	engine    *parlay.Engine
	updater   *updater.Updater
	verifier  ParlayVerifier
	pool      *store.OpportunityStore
	opps      OpportunityRepository
	parlays   ParlayRepository
	profiles  ProfileRepository
	cache     Cache
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	now       func() time.Time

	trigger chan struct{}
	passMu  sync.Mutex
	flight  singleflight.Group

	limitMu  sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewParlayService creates a new parlay service
func NewParlayService(
	config ParlayConfig,
	engine *parlay.Engine,
	upd *updater.Updater,
	verifier ParlayVerifier,
	pool *store.OpportunityStore,
	opps OpportunityRepository,
	parlays ParlayRepository,
	profiles ProfileRepository,
	cache Cache,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ParlayService {
	if config.GenerationInterval <= 0 {
		config.GenerationInterval = time.Hour
	}
	if config.VerificationCooldown <= 0 {
		config.VerificationCooldown = 5 * time.Minute
	}
	return &ParlayService{
		config:    config,
		engine:    engine,
		updater:   upd,
		verifier:  verifier,
		pool:      pool,
		opps:      opps,
		parlays:   parlays,
		profiles:  profiles,
		cache:     cache,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "parlay_service").Logger(),
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Trigger requests a generation pass. Requests made while one is pending
// collapse into it.
func (s *ParlayService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run executes generation passes on trigger and on the housekeeping interval
// until ctx is cancelled.
func (s *ParlayService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.GenerationInterval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.config.GenerationInterval).
		Msg("parlay scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("stopping parlay scheduler")
			return nil
		case <-s.trigger:
		case <-ticker.C:
		}

		if _, err := s.GeneratePass(ctx); err != nil {
			s.logger.Error().Err(err).Msg("generation pass failed")
		}
	}
}

// GeneratePass prunes started matches, expires started parlays and persists
// the parlays generated from a frozen pool snapshot. It returns how many new
// parlays were stored.
func (s *ParlayService) GeneratePass(ctx context.Context) (int, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	start := time.Now()
	now := s.now()

	s.housekeep(ctx, now)

	generated := s.engine.Generate(s.pool.Snapshot())

	var events []*models.EngineEvent
	for _, p := range generated {
		inserted, err := s.parlays.SaveParlay(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return len(events), ctx.Err()
			}
			s.logger.Error().
				Err(err).
				Str("parlay_id", p.ID).
				Str("fingerprint", p.Fingerprint).
				Msg("failed to persist parlay")
			continue
		}
		if !inserted {
			continue
		}
		s.metrics.ParlaysCreated.WithLabelValues(string(p.Strategy)).Inc()
		events = append(events, s.parlayEvent(models.EventParlayCreated, p))
	}
	s.publish(ctx, events...)

	s.metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	s.logger.Info().
		Int("pool", s.pool.Len()).
		Int("generated", len(generated)).
		Int("created", len(events)).
		Dur("duration", time.Since(start)).
		Msg("generation pass complete")

	return len(events), nil
}

func (s *ParlayService) housekeep(ctx context.Context, now time.Time) {
	pruned := s.pool.PruneExpired(now)
	s.metrics.PoolSize.Set(float64(s.pool.Len()))
	if len(pruned) > 0 {
		ids := make([]string, len(pruned))
		for i, opp := range pruned {
			ids[i] = opp.ID
		}
		if err := s.opps.MarkOpportunitiesExpired(ctx, ids...); err != nil {
			s.logger.Warn().Err(err).Int("count", len(ids)).Msg("failed to mark opportunities expired")
		}
	}

	expired, err := s.parlays.ExpireStartedParlays(ctx, now)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to expire started parlays")
		return
	}
	if len(expired) == 0 {
		return
	}
	if err := s.cache.ForgetReports(ctx, expired...); err != nil {
		s.logger.Warn().Err(err).Msg("failed to drop cached reports")
	}

	events := make([]*models.EngineEvent, len(expired))
	for i, id := range expired {
		events[i] = &models.EngineEvent{Type: models.EventParlayExpired, Key: id, OccurredAt: now.UTC()}
	}
	s.publish(ctx, events...)

	s.logger.Info().
		Int("pruned_opportunities", len(pruned)).
		Int("expired_parlays", len(expired)).
		Msg("housekeeping complete")
}

// Advisory returns the active parlays matching a user's risk profiles and
// books. Without explicit books the user's non-limited profiles decide.
func (s *ParlayService) Advisory(ctx context.Context, req models.AdvisoryRequest) ([]*models.Parlay, error) {
	books := req.Sportsbooks
	if len(books) == 0 && req.UserID != "" {
		profiles, err := s.profiles.ListProfiles(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		for _, p := range profiles {
			if !p.IsLimited {
				books = append(books, p.Sportsbook)
			}
		}
		if len(profiles) > 0 && len(books) == 0 {
			// limited everywhere
			return []*models.Parlay{}, nil
		}
	}

	parlays, err := s.parlays.ListParlays(ctx, repository.ParlayFilter{
		Status:      models.ParlayActive,
		Sportsbooks: books,
		Profiles:    req.Profiles,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list parlays: %w", err)
	}
	return parlays, nil
}

// GetParlay loads one parlay
func (s *ParlayService) GetParlay(ctx context.Context, id string) (*models.Parlay, error) {
	return s.parlays.GetParlay(ctx, id)
}

// Verify re-quotes a parlay for a user and applies the updater decision.
// Inside the user's cooldown the last cached result is returned instead, or
// ErrCooldown when there is none. Concurrent verifications of one parlay
// share a single feed round trip.
func (s *ParlayService) Verify(ctx context.Context, userID, parlayID string) (*models.VerificationResult, error) {
	p, err := s.parlays.GetParlay(ctx, parlayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parlay %s: %w", parlayID, err)
	}
	if p.Status != models.ParlayActive {
		return nil, fmt.Errorf("%w: %s is %s", ErrInactive, parlayID, p.Status)
	}

	if !s.allow(userID) {
		cached, err := s.cache.GetReport(ctx, parlayID)
		if err == nil {
			cached.Cached = true
			return cached, nil
		}
		return nil, ErrCooldown
	}

	v, err, shared := s.flight.Do(parlayID, func() (interface{}, error) {
		return s.verify(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug().Str("parlay_id", parlayID).Msg("verification coalesced")
	}
	return v.(*models.VerificationResult), nil
}

// allow consumes the user's verification token
func (s *ParlayService) allow(userID string) bool {
	s.limitMu.Lock()
	defer s.limitMu.Unlock()

	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.config.VerificationCooldown), 1)
		s.limiters[userID] = l
	}
	return l.AllowN(s.now(), 1)
}

func (s *ParlayService) verify(ctx context.Context, p *models.Parlay) (*models.VerificationResult, error) {
	report := s.verifier.Verify(ctx, p)
	for _, c := range report.Legs {
		s.metrics.LegChecks.WithLabelValues(string(c.Status)).Inc()
	}

	pool := s.engine.FlattenLegs(s.pool.Snapshot())
	decision := s.updater.Decide(p, report, pool)

	if err := s.apply(ctx, decision); err != nil {
		return nil, err
	}
	s.metrics.Verifications.WithLabelValues(string(decision.Action)).Inc()

	result := &models.VerificationResult{Report: report, Decision: decision}
	if err := s.cache.SetReport(ctx, result); err != nil {
		s.logger.Warn().Err(err).Str("parlay_id", p.ID).Msg("failed to cache verification result")
	}
	return result, nil
}

// apply persists a decision and publishes its event
func (s *ParlayService) apply(ctx context.Context, d *models.UpdateDecision) error {
	switch d.Action {
	case models.ActionKeep:
		return nil

	case models.ActionUpdate:
		if err := s.parlays.UpdateParlay(ctx, d.Parlay); err != nil {
			return fmt.Errorf("failed to update parlay: %w", err)
		}
		s.publish(ctx, s.parlayEvent(models.EventParlayUpdated, d.Parlay))

	case models.ActionExpire:
		if err := s.parlays.UpdateParlay(ctx, d.Parlay); err != nil {
			return fmt.Errorf("failed to expire parlay: %w", err)
		}
		s.publish(ctx, s.parlayEvent(models.EventParlayExpired, d.Parlay))

	case models.ActionReplace:
		err := s.parlays.ReplaceParlay(ctx, d.Parlay, d.Replacement)
		if errors.Is(err, repository.ErrDuplicate) {
			// the replacement leg set is already offered
			s.logger.Info().
				Str("parlay_id", d.Parlay.ID).
				Str("fingerprint", d.Replacement.Fingerprint).
				Msg("replacement already exists, expiring instead")
			d.Action = models.ActionExpire
			d.Reason = updater.ReasonNoReplacements
			d.Parlay.Status = models.ParlayExpired
			d.Parlay.ReplacedBy = ""
			d.Replacement = nil
			return s.apply(ctx, d)
		}
		if err != nil {
			return fmt.Errorf("failed to replace parlay: %w", err)
		}
		s.metrics.ParlaysCreated.WithLabelValues(string(d.Replacement.Strategy)).Inc()
		s.publish(ctx,
			s.parlayEvent(models.EventParlayReplaced, d.Parlay),
			s.parlayEvent(models.EventParlayCreated, d.Replacement),
		)

	default:
		return fmt.Errorf("unknown update action %q", d.Action)
	}
	return nil
}

func (s *ParlayService) parlayEvent(t models.EventType, p *models.Parlay) *models.EngineEvent {
	return &models.EngineEvent{Type: t, Key: p.ID, Parlay: p, OccurredAt: s.now().UTC()}
}

func (s *ParlayService) publish(ctx context.Context, events ...*models.EngineEvent) {
	publish(ctx, s.publisher, s.metrics, s.logger, events...)
}

// publish delivers events without failing the caller
func publish(ctx context.Context, p EventPublisher, m *metrics.Metrics, logger zerolog.Logger, events ...*models.EngineEvent) {
	if len(events) == 0 {
		return
	}
	if err := p.Publish(ctx, events...); err != nil {
		m.EventsPublished.WithLabelValues("error").Add(float64(len(events)))
		logger.Warn().Err(err).Int("count", len(events)).Msg("failed to publish events")
		return
	}
	m.EventsPublished.WithLabelValues("ok").Add(float64(len(events)))
}
