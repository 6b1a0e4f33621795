package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	config := RedisCacheConfig{
		Addr:      mr.Addr(),
		ReportTTL: 5 * time.Minute,
	}

	return &testRedisCacheSetup{
		cache:     NewRedisCache(config, zerolog.Nop()),
		miniRedis: mr,
		ctx:       context.Background(),
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

func testResult(parlayID string) *models.VerificationResult {
	current := 1.92
	return &models.VerificationResult{
		Report: &models.VerificationReport{
			ParlayID: parlayID,
			Legs: []models.LegCheck{
				{Index: 0, Status: models.LegVerified, StoredOdds: 1.90, CurrentOdds: &current},
			},
			CheckedAt: time.Now().UTC().Truncate(time.Second),
		},
		Decision: &models.UpdateDecision{Action: models.ActionKeep, Reason: "all legs verified"},
	}
}

// TestSeenOrInsert_FirstAndDuplicate tests the dedup primitive
func TestSeenOrInsert_FirstAndDuplicate(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	value, seen, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, "opp-1", value)

	value, seen, err = setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, "opp-1", value)

	assert.True(t, setup.miniRedis.Exists("drop:fp:fp-1"))
}

// TestSeenOrInsert_TTLExpiry tests that fingerprints age out
func TestSeenOrInsert_TTLExpiry(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	_, _, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-1", time.Minute)
	require.NoError(t, err)

	setup.miniRedis.FastForward(2 * time.Minute)

	value, seen, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, "opp-2", value)
}

// TestSeenOrInsert_Concurrent tests that exactly one caller wins
func TestSeenOrInsert_Concurrent(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, seen, err := setup.cache.SeenOrInsert(setup.ctx, "fp-race", "opp", time.Hour)
			assert.NoError(t, err)
			if !seen {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, firsts)
}

// TestForget tests removing a fingerprint
func TestForget(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	_, _, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-1", time.Hour)
	require.NoError(t, err)
	require.NoError(t, setup.cache.Forget(setup.ctx, "fp-1"))

	_, seen, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, seen)
}

// TestSeenOrInsert_RedisDown tests the error path
func TestSeenOrInsert_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)
	setup.miniRedis.Close()
	defer setup.cache.Close()

	_, _, err := setup.cache.SeenOrInsert(setup.ctx, "fp-1", "opp-1", time.Hour)
	assert.Error(t, err)
}

// TestReport_RoundTrip tests caching a verification result
func TestReport_RoundTrip(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.SetReport(setup.ctx, testResult("parlay-1")))

	got, err := setup.cache.GetReport(setup.ctx, "parlay-1")
	require.NoError(t, err)
	assert.Equal(t, "parlay-1", got.Report.ParlayID)
	assert.Equal(t, models.ActionKeep, got.Decision.Action)
	require.NotNil(t, got.Report.Legs[0].CurrentOdds)
	assert.Equal(t, 1.92, *got.Report.Legs[0].CurrentOdds)

	ttl := setup.miniRedis.TTL("verify:report:parlay-1")
	assert.True(t, ttl > 0 && ttl <= 5*time.Minute)
}

// TestGetReport_NotFoundAndExpired tests cache misses
func TestGetReport_NotFoundAndExpired(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	_, err := setup.cache.GetReport(setup.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, setup.cache.SetReport(setup.ctx, testResult("parlay-1")))
	setup.miniRedis.FastForward(10 * time.Minute)

	_, err = setup.cache.GetReport(setup.ctx, "parlay-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestGetReport_Corrupted tests undecodable data
func TestGetReport_Corrupted(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.miniRedis.Set("verify:report:bad", "invalid json data"))

	_, err := setup.cache.GetReport(setup.ctx, "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

// TestForgetReports tests batch deletion
func TestForgetReports(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.SetReport(setup.ctx, testResult("p1")))
	require.NoError(t, setup.cache.SetReport(setup.ctx, testResult("p2")))

	require.NoError(t, setup.cache.ForgetReports(setup.ctx, "p1", "p2"))
	assert.False(t, setup.miniRedis.Exists("verify:report:p1"))
	assert.False(t, setup.miniRedis.Exists("verify:report:p2"))
	assert.NoError(t, setup.cache.ForgetReports(setup.ctx))
}

// TestPing tests Redis ping up and down
func TestPing(t *testing.T) {
	setup := setupTestRedisCache(t)

	assert.NoError(t, setup.cache.Ping(setup.ctx))

	setup.miniRedis.Close()
	assert.Error(t, setup.cache.Ping(setup.ctx))
	setup.cache.Close()
}
