package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/oddsfeed"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
)

const (
	// scoresDaysFrom is the furthest back the scores endpoint reaches
	scoresDaysFrom = 3
	// maxScoreSkew tolerates feeds and drops disagreeing on the start time
	maxScoreSkew = 36 * time.Hour
)

// TrackingConfig holds bet tracking configuration
type TrackingConfig struct {
	RecomputeEveryNBets int
	ClosingLineWindow   time.Duration
	SettlementInterval  time.Duration
}

// TrackingService records user bets and completes them in the background
// with closing odds and results.
type TrackingService struct {
	config   TrackingConfig
	bets     BetRepository
	opps     OpportunityRepository
	verifier ParlayVerifier
	scores   ScoresFeed
	health   *HealthService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewTrackingService creates a new bet tracking service
func NewTrackingService(
	config TrackingConfig,
	bets BetRepository,
	opps OpportunityRepository,
	verifier ParlayVerifier,
	scores ScoresFeed,
	health *HealthService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *TrackingService {
	if config.RecomputeEveryNBets <= 0 {
		config.RecomputeEveryNBets = 10
	}
	if config.ClosingLineWindow <= 0 {
		config.ClosingLineWindow = 10 * time.Minute
	}
	if config.SettlementInterval <= 0 {
		config.SettlementInterval = 30 * time.Minute
	}
	return &TrackingService{
		config:   config,
		bets:     bets,
		opps:     opps,
		verifier: verifier,
		scores:   scores,
		health:   health,
		metrics:  m,
		logger:   logger.With().Str("component", "tracking_service").Logger(),
		now:      time.Now,
	}
}

// RecordBet stores a placed bet. Context missing from the request is filled
// from the originating opportunity. Every N-th bet at a book triggers a
// health recompute whose report is returned; otherwise the report is nil.
func (s *TrackingService) RecordBet(ctx context.Context, bet *models.TrackedBet) (*models.HealthReport, error) {
	if err := s.prepare(ctx, bet); err != nil {
		return nil, err
	}

	if err := s.bets.SaveBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to save bet: %w", err)
	}
	s.metrics.BetsTracked.WithLabelValues(string(bet.Source)).Inc()

	s.logger.Info().
		Str("bet_id", bet.ID).
		Str("user_id", bet.UserID).
		Str("sportsbook", bet.Sportsbook).
		Str("source", string(bet.Source)).
		Str("stake", bet.Stake.String()).
		Float64("odds_taken", bet.OddsTaken).
		Msg("bet tracked")

	count, err := s.bets.CountBets(ctx, bet.UserID, bet.Sportsbook)
	if err != nil {
		return nil, fmt.Errorf("failed to count bets: %w", err)
	}
	if count%s.config.RecomputeEveryNBets != 0 {
		return nil, nil
	}

	report, err := s.health.Recompute(ctx, bet.UserID, bet.Sportsbook)
	if err != nil {
		// the bet is stored; the daily job will catch up
		s.logger.Error().Err(err).Str("user_id", bet.UserID).Msg("failed to recompute book health")
		return nil, nil
	}
	return report, nil
}

func (s *TrackingService) prepare(ctx context.Context, bet *models.TrackedBet) error {
	bet.UserID = strings.TrimSpace(bet.UserID)
	bet.Sportsbook = strings.ToLower(strings.TrimSpace(bet.Sportsbook))
	if bet.UserID == "" || bet.Sportsbook == "" {
		return fmt.Errorf("%w: user_id and sportsbook are required", ErrInvalidInput)
	}
	if bet.OddsTaken <= 1.0 {
		return fmt.Errorf("%w: odds_taken %.4f must be > 1.0", ErrInvalidInput, bet.OddsTaken)
	}
	if !bet.Stake.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidInput)
	}
	if bet.Result != "" && !bet.Result.Valid() {
		return fmt.Errorf("%w: unknown result %q", ErrInvalidInput, bet.Result)
	}

	if bet.ID == "" {
		bet.ID = uuid.New().String()
	}
	if bet.PlacedAt.IsZero() {
		bet.PlacedAt = s.now().UTC()
	}
	bet.StakeRounded = models.IsStakeRounded(bet.Stake)

	if bet.OpportunityID != "" {
		opp, err := s.opps.GetOpportunity(ctx, bet.OpportunityID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Warn().Str("opportunity_id", bet.OpportunityID).Msg("bet references unknown opportunity")
		case err != nil:
			return fmt.Errorf("failed to load opportunity: %w", err)
		default:
			fillFromOpportunity(bet, opp)
		}
	}
	if bet.Source == "" {
		bet.Source = models.KindRecreational
	}
	if bet.ClosingOdds != nil {
		bet.SetClosingOdds(*bet.ClosingOdds)
	}
	return nil
}

// fillFromOpportunity copies the drop context onto a bet without
// overwriting anything the caller sent.
func fillFromOpportunity(bet *models.TrackedBet, opp *models.Opportunity) {
	if bet.Source == "" {
		bet.Source = opp.Kind
	}
	if bet.Sport == "" {
		bet.Sport = opp.Sport
	}
	if bet.League == "" {
		bet.League = opp.League
	}
	if bet.Market == "" {
		bet.Market = opp.Market.Label
		if bet.Market == "" {
			bet.Market = string(opp.Market.Type)
		}
	}
	if bet.HomeTeam == "" && bet.AwayTeam == "" {
		bet.HomeTeam = opp.Match.HomeTeam
		bet.AwayTeam = opp.Match.AwayTeam
	}
	if bet.CommenceTime == nil {
		commence := opp.Match.CommenceTime
		bet.CommenceTime = &commence
	}
	for i := range opp.Legs {
		leg := &opp.Legs[i]
		if leg.Sportsbook != bet.Sportsbook {
			continue
		}
		if bet.SelectionType == "" {
			bet.SelectionType = leg.SelectionType
			bet.Line = leg.Line
		}
		if bet.Selection == "" {
			bet.Selection = leg.Selection
		}
		break
	}
	if bet.SecondsAfterPost == nil && !opp.IngestedAt.IsZero() && !bet.PlacedAt.Before(opp.IngestedAt) {
		secs := int(bet.PlacedAt.Sub(opp.IngestedAt).Seconds())
		bet.SecondsAfterPost = &secs
	}
}

// GetBet loads one tracked bet
func (s *TrackingService) GetBet(ctx context.Context, id string) (*models.TrackedBet, error) {
	return s.bets.GetBet(ctx, id)
}

// SetClosingOdds stores the closing price of a bet and its CLV
func (s *TrackingService) SetClosingOdds(ctx context.Context, betID string, closing float64) (*models.TrackedBet, error) {
	if closing <= 1.0 {
		return nil, fmt.Errorf("%w: closing odds %.4f must be > 1.0", ErrInvalidInput, closing)
	}
	bet, err := s.bets.GetBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet %s: %w", betID, err)
	}
	bet.SetClosingOdds(closing)
	if err := s.bets.UpdateBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to update bet: %w", err)
	}
	return bet, nil
}

// SettleBet records a result for a bet
func (s *TrackingService) SettleBet(ctx context.Context, betID string, result models.BetResult) (*models.TrackedBet, error) {
	if !result.Valid() {
		return nil, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, result)
	}
	bet, err := s.bets.GetBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bet %s: %w", betID, err)
	}
	bet.Result = result
	if err := s.bets.UpdateBet(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to update bet: %w", err)
	}
	return bet, nil
}

// SweepClosingLines re-quotes bets whose event starts within the closing
// window and stores the quote as the closing odds.
func (s *TrackingService) SweepClosingLines(ctx context.Context) (int, error) {
	now := s.now()
	bets, err := s.bets.ListBetsAwaitingClose(ctx, now, now.Add(s.config.ClosingLineWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to list bets awaiting close: %w", err)
	}

	closed := 0
	for i := range bets {
		bet := &bets[i]
		leg, ok := legOf(bet)
		if !ok {
			continue
		}
		check := s.verifier.QuoteLeg(ctx, leg)
		if check.CurrentOdds == nil {
			s.logger.Debug().
				Str("bet_id", bet.ID).
				Str("status", string(check.Status)).
				Str("reason", check.Reason).
				Msg("no closing quote")
			continue
		}

		bet.SetClosingOdds(*check.CurrentOdds)
		if err := s.bets.UpdateBet(ctx, bet); err != nil {
			s.logger.Error().Err(err).Str("bet_id", bet.ID).Msg("failed to store closing odds")
			continue
		}
		closed++
	}

	s.metrics.BetsUpdated.WithLabelValues("closing").Add(float64(closed))
	if closed > 0 {
		s.logger.Info().Int("candidates", len(bets)).Int("closed", closed).Msg("closing line sweep complete")
	}
	return closed, nil
}

// SweepSettlements grades started bets against completed games, one scores
// request per sport.
func (s *TrackingService) SweepSettlements(ctx context.Context) (int, error) {
	bets, err := s.bets.ListUnsettledBets(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list unsettled bets: %w", err)
	}

	bySport := make(map[string][]*models.TrackedBet)
	for i := range bets {
		bet := &bets[i]
		if bet.SelectionType == "" || bet.SelectionType == models.SelectionPlayerProp {
			continue
		}
		key, ok := oddsfeed.SportKey(bet.League)
		if !ok {
			continue
		}
		bySport[key] = append(bySport[key], bet)
	}

	sports := make([]string, 0, len(bySport))
	for k := range bySport {
		sports = append(sports, k)
	}
	sort.Strings(sports)

	settled := 0
	for _, sport := range sports {
		games, err := s.scores.Scores(ctx, sport, scoresDaysFrom)
		if err != nil {
			if ctx.Err() != nil {
				return settled, ctx.Err()
			}
			s.logger.Warn().Err(err).Str("sport", sport).Msg("failed to fetch scores")
			continue
		}

		for _, bet := range bySport[sport] {
			game := findScore(bet, games)
			if game == nil {
				continue
			}
			result, ok := GradeBet(bet, game)
			if !ok {
				continue
			}
			bet.Result = result
			if err := s.bets.UpdateBet(ctx, bet); err != nil {
				s.logger.Error().Err(err).Str("bet_id", bet.ID).Msg("failed to store result")
				continue
			}
			settled++
		}
	}

	s.metrics.BetsUpdated.WithLabelValues("settlement").Add(float64(settled))
	if settled > 0 {
		s.logger.Info().Int("candidates", len(bets)).Int("settled", settled).Msg("settlement sweep complete")
	}
	return settled, nil
}

// Run executes both sweeps on their intervals until ctx is cancelled. The
// closing sweep runs twice per closing window so no start slips through.
func (s *TrackingService) Run(ctx context.Context) error {
	closing := time.NewTicker(s.config.ClosingLineWindow / 2)
	defer closing.Stop()
	settlement := time.NewTicker(s.config.SettlementInterval)
	defer settlement.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closing.C:
			if _, err := s.SweepClosingLines(ctx); err != nil {
				s.logger.Error().Err(err).Msg("closing line sweep failed")
			}
		case <-settlement.C:
			if _, err := s.SweepSettlements(ctx); err != nil {
				s.logger.Error().Err(err).Msg("settlement sweep failed")
			}
		}
	}
}

// legOf rebuilds the quotable leg of a bet
func legOf(bet *models.TrackedBet) (*models.Leg, bool) {
	if bet.SelectionType == "" || bet.HomeTeam == "" || bet.AwayTeam == "" || bet.CommenceTime == nil {
		return nil, false
	}
	return &models.Leg{
		Sportsbook:    bet.Sportsbook,
		Selection:     bet.Selection,
		SelectionType: bet.SelectionType,
		Line:          bet.Line,
		DecimalOdds:   bet.OddsTaken,
		Sport:         bet.Sport,
		League:        bet.League,
		Match: models.Match{
			HomeTeam:     bet.HomeTeam,
			AwayTeam:     bet.AwayTeam,
			CommenceTime: *bet.CommenceTime,
		},
	}, true
}

// findScore picks the game of a bet: both teams match in either orientation
// and the start time is close to the stored one.
func findScore(bet *models.TrackedBet, games []models.FeedScore) *models.FeedScore {
	for i := range games {
		g := &games[i]
		straight := models.TeamsMatch(bet.HomeTeam, g.HomeTeam) && models.TeamsMatch(bet.AwayTeam, g.AwayTeam)
		swapped := models.TeamsMatch(bet.HomeTeam, g.AwayTeam) && models.TeamsMatch(bet.AwayTeam, g.HomeTeam)
		if !straight && !swapped {
			continue
		}
		if bet.CommenceTime != nil {
			skew := g.CommenceTime.Sub(*bet.CommenceTime)
			if skew < -maxScoreSkew || skew > maxScoreSkew {
				continue
			}
		}
		return g
	}
	return nil
}
