package service

import (
	"context"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Cache is an interface that abstracts the Redis dedup set and report cache
type Cache interface {
	SeenOrInsert(ctx context.Context, fingerprint, value string, ttl time.Duration) (string, bool, error)
	Forget(ctx context.Context, fingerprint string) error
	SetReport(ctx context.Context, result *models.VerificationResult) error
	GetReport(ctx context.Context, parlayID string) (*models.VerificationResult, error)
	ForgetReports(ctx context.Context, parlayIDs ...string) error
	Ping(ctx context.Context) error
	Close() error
}
