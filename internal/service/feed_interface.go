package service

import (
	"context"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// ParlayVerifier re-quotes parlay legs against the live odds feed
type ParlayVerifier interface {
	Verify(ctx context.Context, p *models.Parlay) *models.VerificationReport
	QuoteLeg(ctx context.Context, leg *models.Leg) models.LegCheck
}

// ScoresFeed returns live and completed game scores of a sport
type ScoresFeed interface {
	Scores(ctx context.Context, sportKey string, daysFrom int) ([]models.FeedScore, error)
}

// EventPublisher delivers engine events to the notification layer
type EventPublisher interface {
	Publish(ctx context.Context, events ...*models.EngineEvent) error
}

// GenerationTrigger requests an out-of-band parlay generation pass
type GenerationTrigger interface {
	Trigger()
}
