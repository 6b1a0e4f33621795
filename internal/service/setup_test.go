package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/cypherlabdev/parlay-intel-service/internal/bookmaker"
	"github.com/cypherlabdev/parlay-intel-service/internal/ingest"
	"github.com/cypherlabdev/parlay-intel-service/internal/metrics"
	"github.com/cypherlabdev/parlay-intel-service/internal/mocks"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/store"
	"github.com/cypherlabdev/parlay-intel-service/internal/updater"
	"github.com/cypherlabdev/parlay-intel-service/pkg/bookhealth"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

// testDeps is a helper struct to hold the mocked dependencies shared by the
// service tests
type testDeps struct {
	ctrl      *gomock.Controller
	cache     *mocks.MockCache
	opps      *mocks.MockOpportunityRepository
	parlays   *mocks.MockParlayRepository
	profiles  *mocks.MockProfileRepository
	bets      *mocks.MockBetRepository
	scores    *mocks.MockHealthRepository
	verifier  *mocks.MockParlayVerifier
	feed      *mocks.MockScoresFeed
	publisher *mocks.MockEventPublisher
	trigger   *mocks.MockGenerationTrigger
	pool      *store.OpportunityStore
	metrics   *metrics.Metrics
	now       time.Time
}

func setupTestDeps(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)
	return &testDeps{
		ctrl:      ctrl,
		cache:     mocks.NewMockCache(ctrl),
		opps:      mocks.NewMockOpportunityRepository(ctrl),
		parlays:   mocks.NewMockParlayRepository(ctrl),
		profiles:  mocks.NewMockProfileRepository(ctrl),
		bets:      mocks.NewMockBetRepository(ctrl),
		scores:    mocks.NewMockHealthRepository(ctrl),
		verifier:  mocks.NewMockParlayVerifier(ctrl),
		feed:      mocks.NewMockScoresFeed(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
		trigger:   mocks.NewMockGenerationTrigger(ctrl),
		pool:      store.NewOpportunityStore(zerolog.Nop()),
		metrics:   metrics.New(prometheus.NewRegistry()),
		now:       time.Now().UTC().Truncate(time.Second),
	}
}

func (d *testDeps) ingestService() *IngestService {
	normalizer := ingest.NewNormalizer(
		ingest.NormalizerConfig{DefaultEventHorizon: 12 * time.Hour},
		bookmaker.NewRegistry(bookmaker.DefaultBooks),
		zerolog.Nop(),
	)
	s := NewIngestService(IngestConfig{}, normalizer, d.cache, d.opps, d.pool, d.trigger, d.metrics, zerolog.Nop())
	s.now = func() time.Time { return d.now }
	return s
}

func (d *testDeps) engine() *parlay.Engine {
	return parlay.NewEngine(parlay.DefaultEngineConfig(), parlay.NewCorrelationCatalog(), zerolog.Nop())
}

func (d *testDeps) parlayService() *ParlayService {
	engine := d.engine()
	s := NewParlayService(
		ParlayConfig{VerificationCooldown: 5 * time.Minute},
		engine,
		updater.New(engine, zerolog.Nop()),
		d.verifier,
		d.pool,
		d.opps,
		d.parlays,
		d.profiles,
		d.cache,
		d.publisher,
		d.metrics,
		zerolog.Nop(),
	)
	s.now = func() time.Time { return d.now }
	return s
}

func (d *testDeps) healthService() *HealthService {
	s := NewHealthService(
		HealthConfig{},
		bookhealth.NewScorer(bookhealth.ScorerConfig{MinBets: 10}, zerolog.Nop()),
		d.bets,
		d.profiles,
		d.scores,
		d.publisher,
		d.metrics,
		zerolog.Nop(),
	)
	s.now = func() time.Time { return d.now }
	return s
}

func (d *testDeps) trackingService() *TrackingService {
	s := NewTrackingService(
		TrackingConfig{},
		d.bets,
		d.opps,
		d.verifier,
		d.feed,
		d.healthService(),
		d.metrics,
		zerolog.Nop(),
	)
	s.now = func() time.Time { return d.now }
	return s
}

func fptr(v float64) *float64 { return &v }

func arbDrop() *models.DropPayload {
	pct := 5.16
	return &models.DropPayload{
		EventID:       "e1",
		ArbPercentage: &pct,
		Match:         "Raptors vs Lakers",
		League:        "NBA",
		Market:        "Total Points",
		Outcomes: []models.DropOutcome{
			{Outcome: "Over 220.5", Odds: -200, Casino: "Betsson"},
			{Outcome: "Under 220.5", Odds: 255, Casino: "Coolbet"},
		},
	}
}

// evOpp builds a single-leg positive-EV opportunity at a book
func evOpp(book, matchID string, odds, edge float64, commence time.Time) *models.Opportunity {
	match := models.Match{ID: matchID, HomeTeam: matchID + "-home", AwayTeam: matchID + "-away", CommenceTime: commence}
	leg := models.Leg{
		OpportunityID: "opp-" + matchID,
		Sportsbook:    book,
		Selection:     match.HomeTeam,
		SelectionType: models.SelectionHomeML,
		DecimalOdds:   odds,
		Edge:          edge,
		League:        "NBA",
		Sport:         "basketball",
		Match:         match,
		Market:        models.Market{Type: models.MarketMoneyline},
	}
	leg.Fingerprint = leg.ComputeFingerprint()
	opp := &models.Opportunity{
		ID:          "opp-" + matchID,
		Kind:        models.KindPositiveEV,
		Sport:       "basketball",
		League:      "NBA",
		Match:       match,
		Market:      leg.Market,
		Legs:        []models.Leg{leg},
		EdgePercent: edge,
	}
	opp.Fingerprint = opp.ComputeFingerprint()
	return opp
}

// fillPool loads n same-book opportunities starting six hours out
func (d *testDeps) fillPool(n int) {
	for i := 0; i < n; i++ {
		d.pool.Insert(evOpp("betsson", fmt.Sprintf("m%d", i), 1.9, 20+float64(i), d.now.Add(6*time.Hour)))
	}
}

// buildParlay assembles a stored two-leg cross-day parlay
func (d *testDeps) buildParlay(t *testing.T) *models.Parlay {
	t.Helper()
	engine := d.engine()
	spec, ok := parlay.Lookup(models.StrategyCrossDayBalanced)
	if !ok {
		t.Fatal("unknown strategy")
	}
	legs := []models.Leg{
		evOpp("betsson", "a", 1.90, 20, d.now.Add(24*time.Hour)).Legs[0],
		evOpp("betsson", "b", 2.10, 20, d.now.Add(48*time.Hour)).Legs[0],
	}
	ev, err := engine.Qualify(spec, legs)
	if err != nil {
		t.Fatal(err)
	}
	return engine.Assemble(spec, legs, ev)
}

func quote(status models.LegStatus, stored, current float64) models.LegCheck {
	return models.LegCheck{Status: status, StoredOdds: stored, CurrentOdds: &current}
}

func unavailable(stored float64) models.LegCheck {
	return models.LegCheck{Status: models.LegUnavailable, StoredOdds: stored, Reason: "market closed"}
}

func verification(parlayID string, at time.Time, checks ...models.LegCheck) *models.VerificationReport {
	for i := range checks {
		checks[i].Index = i
	}
	return &models.VerificationReport{ParlayID: parlayID, Legs: checks, CheckedAt: at}
}
