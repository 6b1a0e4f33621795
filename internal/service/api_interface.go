package service

import (
	"context"

	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Ingester accepts raw drops from any transport
type Ingester interface {
	Ingest(ctx context.Context, payload *models.DropPayload) (ingest.Result, error)
}

// Advisor serves parlays to users and verifies them on demand
type Advisor interface {
	Advisory(ctx context.Context, req models.AdvisoryRequest) ([]*models.Parlay, error)
	GetParlay(ctx context.Context, id string) (*models.Parlay, error)
	Verify(ctx context.Context, userID, parlayID string) (*models.VerificationResult, error)
}

// BetTracker records and completes user bets
type BetTracker interface {
	RecordBet(ctx context.Context, bet *models.TrackedBet) (*models.HealthReport, error)
	GetBet(ctx context.Context, id string) (*models.TrackedBet, error)
	SetClosingOdds(ctx context.Context, betID string, closing float64) (*models.TrackedBet, error)
	SettleBet(ctx context.Context, betID string, result models.BetResult) (*models.TrackedBet, error)
}

// HealthReporter scores book health and manages user book profiles
type HealthReporter interface {
	Report(ctx context.Context, userID, sportsbook string) (*models.HealthReport, error)
	UpsertProfile(ctx context.Context, p *models.UserBookProfile) error
	RecordLimit(ctx context.Context, ev *models.LimitEvent) error
}

var (
	_ Ingester       = (*IngestService)(nil)
	_ Advisor        = (*ParlayService)(nil)
	_ BetTracker     = (*TrackingService)(nil)
	_ HealthReporter = (*HealthService)(nil)
)
