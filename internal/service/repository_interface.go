package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/repository"
)

// OpportunityRepository persists normalized drops
type OpportunityRepository interface {
	SaveOpportunity(ctx context.Context, opp *models.Opportunity) (bool, error)
	GetOpportunity(ctx context.Context, id string) (*models.Opportunity, error)
	ListActiveOpportunities(ctx context.Context, now time.Time) ([]*models.Opportunity, error)
	MarkOpportunitiesExpired(ctx context.Context, ids ...string) error
}

// ParlayRepository persists generated parlays
type ParlayRepository interface {
	SaveParlay(ctx context.Context, p *models.Parlay) (bool, error)
	UpdateParlay(ctx context.Context, p *models.Parlay) error
	ReplaceParlay(ctx context.Context, old, replacement *models.Parlay) error
	GetParlay(ctx context.Context, id string) (*models.Parlay, error)
	ListParlays(ctx context.Context, filter repository.ParlayFilter) ([]*models.Parlay, error)
	ExpireStartedParlays(ctx context.Context, now time.Time) ([]string, error)
}

// ProfileRepository persists user book profiles and limit events
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, p *models.UserBookProfile) error
	GetProfile(ctx context.Context, userID, sportsbook string) (*models.UserBookProfile, error)
	ListProfiles(ctx context.Context, userID string) ([]*models.UserBookProfile, error)
	RecordLimitEvent(ctx context.Context, ev *models.LimitEvent) error
}

// BetRepository persists tracked bets
type BetRepository interface {
	SaveBet(ctx context.Context, b *models.TrackedBet) error
	UpdateBet(ctx context.Context, b *models.TrackedBet) error
	GetBet(ctx context.Context, id string) (*models.TrackedBet, error)
	ListBets(ctx context.Context, userID, sportsbook string) ([]models.TrackedBet, error)
	CountBets(ctx context.Context, userID, sportsbook string) (int, error)
	ListBetsAwaitingClose(ctx context.Context, from, to time.Time) ([]models.TrackedBet, error)
	ListUnsettledBets(ctx context.Context, startedBefore time.Time) ([]models.TrackedBet, error)
}

// HealthRepository persists daily book health scores
type HealthRepository interface {
	UpsertHealthScore(ctx context.Context, s *models.BookHealthScore) error
	ListHealthScores(ctx context.Context, userID, sportsbook, sinceDate string) ([]models.BookHealthScore, error)
}
