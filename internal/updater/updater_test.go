package updater

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/pkg/parlay"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// testUpdaterSetup is a helper struct to hold test dependencies
type testUpdaterSetup struct {
	updater *Updater
	engine  *parlay.Engine
}

func setupTestUpdater(t *testing.T) *testUpdaterSetup {
	engine := parlay.NewEngine(parlay.DefaultEngineConfig(), parlay.NewCorrelationCatalog(), zerolog.Nop())
	u := New(engine, zerolog.Nop())
	u.now = func() time.Time { return testNow }
	return &testUpdaterSetup{updater: u, engine: engine}
}

func testLeg(fp, book, matchID string, start time.Time, odds, edge float64) models.Leg {
	return models.Leg{
		Fingerprint:   fp,
		Sportsbook:    book,
		SelectionType: models.SelectionHomeML,
		DecimalOdds:   odds,
		Edge:          edge,
		League:        "NBA",
		Match:         models.Match{ID: matchID, HomeTeam: matchID + "-home", AwayTeam: matchID + "-away", CommenceTime: start},
	}
}

// buildParlay assembles the two-leg cross-day parlay stored at 1.90 and 2.10
func (s *testUpdaterSetup) buildParlay(t *testing.T, legEdge float64) *models.Parlay {
	spec, ok := parlay.Lookup(models.StrategyCrossDayBalanced)
	require.True(t, ok)

	legs := []models.Leg{
		testLeg("leg-a", "betsson", "m1", testNow.Add(24*time.Hour), 1.90, legEdge),
		testLeg("leg-b", "betsson", "m2", testNow.Add(48*time.Hour), 2.10, legEdge),
	}
	ev, err := s.engine.Qualify(spec, legs)
	require.NoError(t, err)
	return s.engine.Assemble(spec, legs, ev)
}

func quoted(status models.LegStatus, stored, current float64) models.LegCheck {
	return models.LegCheck{Status: status, StoredOdds: stored, CurrentOdds: &current}
}

func report(checks ...models.LegCheck) *models.VerificationReport {
	for i := range checks {
		checks[i].Index = i
	}
	return &models.VerificationReport{ParlayID: "p", Legs: checks, CheckedAt: testNow}
}

func TestDecide_VerifyThenUpdateOrExpire(t *testing.T) {
	tests := []struct {
		name    string
		legEdge float64
		action  models.UpdateAction
		reason  string
	}{
		{"edge survives repricing", 20, models.ActionUpdate, ReasonRepriced},
		{"edge lost after repricing", 3, models.ActionExpire, ReasonEdgeGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := setupTestUpdater(t)
			p := setup.buildParlay(t, tt.legEdge)
			assert.InDelta(t, 3.99, p.CombinedOdds, 1e-9)
			assert.Greater(t, p.Edge, 0.0)

			r := report(
				quoted(models.LegVerified, 1.90, 1.92),
				quoted(models.LegWorse, 2.10, 2.00),
			)
			d := setup.updater.Decide(p, r, nil)

			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Nil(t, d.Replacement)

			if tt.action == models.ActionUpdate {
				assert.Equal(t, models.ParlayActive, d.Parlay.Status)
				assert.InDelta(t, 3.84, d.Parlay.CombinedOdds, 1e-9)
				assert.InDelta(t, 3.84*0.56*0.56-1, d.Parlay.Edge, 1e-9)
				assert.Equal(t, 1.92, d.Parlay.Legs[0].DecimalOdds)
				assert.Equal(t, 2.00, d.Parlay.Legs[1].DecimalOdds)
				assert.Equal(t, 100, d.Parlay.Legs[1].AmericanOdds)
				assert.Equal(t, p.Fingerprint, d.Parlay.Fingerprint)
				assert.NoError(t, parlay.CheckInvariants(d.Parlay))
			} else {
				assert.Equal(t, models.ParlayExpired, d.Parlay.Status)
			}

			// the input parlay is untouched
			assert.Equal(t, 1.90, p.Legs[0].DecimalOdds)
			assert.Equal(t, models.ParlayActive, p.Status)
		})
	}
}

func TestDecide_Keep(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	d := setup.updater.Decide(p, report(
		quoted(models.LegVerified, 1.90, 1.90),
		quoted(models.LegBetter, 2.10, 2.30),
	), nil)

	assert.Equal(t, models.ActionKeep, d.Action)
	assert.Equal(t, ReasonPricesHeld, d.Reason)
	assert.Same(t, p, d.Parlay)
}

func TestDecide_NetBetterKeeps(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	// 2.00 * 2.04 = 4.08 beats the stored 3.99
	d := setup.updater.Decide(p, report(
		quoted(models.LegBetter, 1.90, 2.00),
		quoted(models.LegWorse, 2.10, 2.04),
	), nil)

	assert.Equal(t, models.ActionKeep, d.Action)
	assert.Equal(t, ReasonNetBetter, d.Reason)
	assert.Same(t, p, d.Parlay)
	assert.InDelta(t, 3.99, d.Parlay.CombinedOdds, 1e-9)
}

func TestDecide_TransportErrorKeepsUnverified(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	d := setup.updater.Decide(p, report(
		models.LegCheck{Status: models.LegError, StoredOdds: 1.90, Reason: "timeout"},
		quoted(models.LegWorse, 2.10, 1.50),
	), nil)

	assert.Equal(t, models.ActionKeep, d.Action)
	assert.Equal(t, ReasonUnverified, d.Reason)
}

func TestDecide_AllLegsLost(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	tests := []struct {
		name   string
		report *models.VerificationReport
	}{
		{"all worse", report(quoted(models.LegWorse, 1.90, 1.80), quoted(models.LegWorse, 2.10, 2.00))},
		{"all unavailable", report(
			models.LegCheck{Status: models.LegUnavailable},
			models.LegCheck{Status: models.LegUnavailable},
		)},
		{"worse and unavailable", report(
			quoted(models.LegWorse, 1.90, 1.80),
			models.LegCheck{Status: models.LegUnavailable},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setup.updater.Decide(p, tt.report, nil)
			assert.Equal(t, models.ActionExpire, d.Action)
			assert.Equal(t, ReasonAllLost, d.Reason)
			assert.Equal(t, models.ParlayExpired, d.Parlay.Status)
			assert.Equal(t, testNow, d.Parlay.UpdatedAt)
		})
	}
}

func TestDecide_RepriceOutOfBounds(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	// 1.80 x 4.75 = 8.55 is above the strategy's 8.0 ceiling
	d := setup.updater.Decide(p, report(
		quoted(models.LegWorse, 1.90, 1.80),
		quoted(models.LegBetter, 2.10, 4.75),
	), nil)

	assert.Equal(t, models.ActionExpire, d.Action)
	assert.Equal(t, ReasonOutOfBounds, d.Reason)
}

func TestDecide_Replace(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	day := testNow.Add(72 * time.Hour)
	pool := []models.Leg{
		testLeg("other-book", "coolbet", "m3", day, 2.0, 50),
		testLeg("same-match", "betsson", "m1", day, 2.0, 40),
		testLeg("started", "betsson", "m4", testNow.Add(-time.Hour), 2.0, 35),
		testLeg("too-long", "betsson", "m5", day, 5.0, 30),
		testLeg("fits", "betsson", "m6", day, 2.2, 10),
		p.Legs[1],
	}

	d := setup.updater.Decide(p, report(
		quoted(models.LegVerified, 1.90, 1.92),
		models.LegCheck{Status: models.LegUnavailable, StoredOdds: 2.10, Reason: "market closed"},
	), pool)

	require.Equal(t, models.ActionReplace, d.Action)
	assert.Equal(t, ReasonReplaced, d.Reason)
	require.NotNil(t, d.Replacement)

	r := d.Replacement
	require.Len(t, r.Legs, 2)
	assert.Equal(t, "leg-a", r.Legs[0].Fingerprint)
	assert.Equal(t, 1.92, r.Legs[0].DecimalOdds)
	assert.Equal(t, "fits", r.Legs[1].Fingerprint)
	assert.InDelta(t, 1.92*2.2, r.CombinedOdds, 1e-9)
	assert.Equal(t, models.ParlayActive, r.Status)
	assert.Equal(t, p.Strategy, r.Strategy)
	assert.NotEqual(t, p.Fingerprint, r.Fingerprint)
	assert.NoError(t, parlay.CheckInvariants(r))

	assert.Equal(t, models.ParlayReplaced, d.Parlay.Status)
	assert.Equal(t, r.ID, d.Parlay.ReplacedBy)
	assert.Equal(t, p.ID, d.Parlay.ID)
}

func TestDecide_ReplaceFallsBackToExpire(t *testing.T) {
	setup := setupTestUpdater(t)
	p := setup.buildParlay(t, 20)

	pool := []models.Leg{
		testLeg("other-book", "coolbet", "m3", testNow.Add(72*time.Hour), 2.0, 50),
		testLeg("too-long", "betsson", "m5", testNow.Add(72*time.Hour), 5.0, 30),
	}

	d := setup.updater.Decide(p, report(
		quoted(models.LegVerified, 1.90, 1.92),
		models.LegCheck{Status: models.LegUnavailable},
	), pool)

	assert.Equal(t, models.ActionExpire, d.Action)
	assert.Equal(t, ReasonNoReplacements, d.Reason)
	assert.Nil(t, d.Replacement)
}
