package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
	"github.com/cypherlabdev/parlay-intel-service/pkg/bookhealth"
)

// trendLookback covers the 30-day comparison plus a day of slack
const trendLookback = 31 * 24 * time.Hour

// HealthConfig holds book health scheduling configuration
type HealthConfig struct {
	RecomputeInterval time.Duration
}

// HealthService scores book health, stores the daily history and owns the
// user book profiles the scores depend on.
type HealthService struct {
	config    HealthConfig
	scorer    *bookhealth.Scorer
	bets      BetRepository
	profiles  ProfileRepository
	scores    HealthRepository
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	now       func() time.Time
}

// NewHealthService creates a new book health service
func NewHealthService(
	config HealthConfig,
	scorer *bookhealth.Scorer,
	bets BetRepository,
	profiles ProfileRepository,
	scores HealthRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *HealthService {
	if config.RecomputeInterval <= 0 {
		config.RecomputeInterval = 24 * time.Hour
	}
	return &HealthService{
		config:    config,
		scorer:    scorer,
		bets:      bets,
		profiles:  profiles,
		scores:    scores,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("component", "health_service").Logger(),
		now:       time.Now,
	}
}

// Report computes the current health of a user at a book without storing it
func (s *HealthService) Report(ctx context.Context, userID, sportsbook string) (*models.HealthReport, error) {
	now := s.now()

	profile, err := s.profiles.GetProfile(ctx, userID, sportsbook)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	bets, err := s.bets.ListBets(ctx, userID, sportsbook)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets: %w", err)
	}

	since := now.Add(-trendLookback).UTC().Format("2006-01-02")
	history, err := s.scores.ListHealthScores(ctx, userID, sportsbook, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	return s.scorer.Score(userID, sportsbook, profile, bets, history, now), nil
}

// Recompute scores a user at a book, stores today's row and publishes it
func (s *HealthService) Recompute(ctx context.Context, userID, sportsbook string) (*models.HealthReport, error) {
	report, err := s.Report(ctx, userID, sportsbook)
	if err != nil {
		return nil, err
	}
	if report.Status != models.HealthStatusOK {
		s.metrics.HealthScores.WithLabelValues(string(report.Status)).Inc()
		return report, nil
	}

	if err := s.scores.UpsertHealthScore(ctx, report.Score); err != nil {
		return nil, fmt.Errorf("failed to store health score: %w", err)
	}
	s.metrics.HealthScores.WithLabelValues(string(report.Score.Level)).Inc()

	publish(ctx, s.publisher, s.metrics, s.logger, &models.EngineEvent{
		Type:       models.EventHealthScored,
		Key:        userID + ":" + sportsbook,
		Health:     report,
		OccurredAt: s.now().UTC(),
	})

	s.logger.Info().
		Str("user_id", userID).
		Str("sportsbook", sportsbook).
		Int("total", report.Score.Total).
		Str("level", string(report.Score.Level)).
		Msg("book health recomputed")

	return report, nil
}

// RecomputeAll runs the daily job over every non-limited profile
func (s *HealthService) RecomputeAll(ctx context.Context) (int, error) {
	profiles, err := s.profiles.ListProfiles(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	scored := 0
	for _, p := range profiles {
		if ctx.Err() != nil {
			return scored, ctx.Err()
		}
		if p.IsLimited {
			continue
		}
		report, err := s.Recompute(ctx, p.UserID, p.Sportsbook)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("user_id", p.UserID).
				Str("sportsbook", p.Sportsbook).
				Msg("failed to recompute book health")
			continue
		}
		if report.Status == models.HealthStatusOK {
			scored++
		}
	}

	s.logger.Info().
		Int("profiles", len(profiles)).
		Int("scored", scored).
		Msg("daily book health job complete")
	return scored, nil
}

// Run executes the daily job on its interval until ctx is cancelled
func (s *HealthService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.RecomputeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.RecomputeAll(ctx); err != nil {
				s.logger.Error().Err(err).Msg("daily book health job failed")
			}
		}
	}
}

// UpsertProfile stores a user's onboarding answers for a book
func (s *HealthService) UpsertProfile(ctx context.Context, p *models.UserBookProfile) error {
	p.UserID = strings.TrimSpace(p.UserID)
	p.Sportsbook = strings.ToLower(strings.TrimSpace(p.Sportsbook))
	if p.UserID == "" || p.Sportsbook == "" {
		return fmt.Errorf("%w: user_id and sportsbook are required", ErrInvalidInput)
	}
	if p.AccountAgeMonths < 0 || p.EstimatedMonthlyBets < 0 {
		return fmt.Errorf("%w: account age and volume must not be negative", ErrInvalidInput)
	}
	if p.OnboardedAt.IsZero() {
		p.OnboardedAt = s.now().UTC()
	}
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}
	return nil
}

// RecordLimit marks a profile limited and publishes the event
func (s *HealthService) RecordLimit(ctx context.Context, ev *models.LimitEvent) error {
	ev.UserID = strings.TrimSpace(ev.UserID)
	ev.Sportsbook = strings.ToLower(strings.TrimSpace(ev.Sportsbook))
	if ev.UserID == "" || ev.Sportsbook == "" {
		return fmt.Errorf("%w: user_id and sportsbook are required", ErrInvalidInput)
	}
	switch ev.Kind {
	case "":
		ev.Kind = "limited"
	case "limited", "banned", "reduced":
	default:
		return fmt.Errorf("%w: unknown limit kind %q", ErrInvalidInput, ev.Kind)
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = s.now().UTC()
	}

	if err := s.profiles.RecordLimitEvent(ctx, ev); err != nil {
		return fmt.Errorf("failed to record limit event: %w", err)
	}

	publish(ctx, s.publisher, s.metrics, s.logger, &models.EngineEvent{
		Type:       models.EventProfileLimited,
		Key:        ev.UserID + ":" + ev.Sportsbook,
		LimitEvent: ev,
		OccurredAt: ev.OccurredAt,
	})

	s.logger.Info().
		Str("user_id", ev.UserID).
		Str("sportsbook", ev.Sportsbook).
		Str("kind", ev.Kind).
		Msg("limit event recorded")
	return nil
}
