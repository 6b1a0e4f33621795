package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// ErrNotFound is returned when a key is absent or expired
var ErrNotFound = errors.New("not found in cache")

// RedisCache holds the drop dedup set and the last verification reports
type RedisCache struct {
	client    *redis.Client
	reportTTL time.Duration
	logger    zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr      string // e.g., "localhost:6379"
	Password  string
	DB        int
	ReportTTL time.Duration // e.g., 5 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client:    client,
		reportTTL: config.ReportTTL,
		logger:    logger.With().Str("component", "redis_cache").Logger(),
	}
}

func dropKey(fingerprint string) string {
	return fmt.Sprintf("drop:fp:%s", fingerprint)
}

func reportKey(parlayID string) string {
	return fmt.Sprintf("verify:report:%s", parlayID)
}

// SeenOrInsert atomically records a drop fingerprint. When the fingerprint
// was already present within its TTL it returns seen=true and the value
// stored by the first insert.
func (c *RedisCache) SeenOrInsert(ctx context.Context, fingerprint, value string, ttl time.Duration) (string, bool, error) {
	key := dropKey(fingerprint)

	inserted, err := c.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("failed to set dedup key: %w", err)
	}
	if inserted {
		return value, false, nil
	}

	existing, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// expired between SETNX and GET
		return "", true, nil
	} else if err != nil {
		return "", true, fmt.Errorf("failed to get dedup key: %w", err)
	}

	c.logger.Debug().
		Str("fingerprint", fingerprint).
		Str("existing", existing).
		Msg("dedup hit")

	return existing, true, nil
}

// Forget removes a fingerprint so a failed ingest can be retried
func (c *RedisCache) Forget(ctx context.Context, fingerprint string) error {
	if err := c.client.Del(ctx, dropKey(fingerprint)).Err(); err != nil {
		return fmt.Errorf("failed to delete dedup key: %w", err)
	}
	return nil
}

// SetReport caches the latest verification result of a parlay
func (c *RedisCache) SetReport(ctx context.Context, result *models.VerificationResult) error {
	key := reportKey(result.Report.ParlayID)

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.reportTTL).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.reportTTL).
		Msg("cached verification report")

	return nil
}

// GetReport retrieves the cached verification result of a parlay
func (c *RedisCache) GetReport(ctx context.Context, parlayID string) (*models.VerificationResult, error) {
	data, err := c.client.Get(ctx, reportKey(parlayID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var result models.VerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &result, nil
}

// ForgetReports drops cached reports for the given parlays
func (c *RedisCache) ForgetReports(ctx context.Context, parlayIDs ...string) error {
	if len(parlayIDs) == 0 {
		return nil
	}

	// Use pipeline for batch operations
	pipe := c.client.Pipeline()
	for _, id := range parlayIDs {
		pipe.Del(ctx, reportKey(id))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}
	return nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
