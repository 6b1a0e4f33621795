package parlay

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/pkg/oddsmath"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// testEngineSetup is a helper struct to hold test dependencies
type testEngineSetup struct {
	engine  *Engine
	catalog *CorrelationCatalog
}

// setupTestEngine creates an engine with the seeded catalog and a frozen clock
func setupTestEngine() *testEngineSetup {
	catalog := NewCorrelationCatalog(SeedPatterns()...)
	engine := NewEngine(DefaultEngineConfig(), catalog, zerolog.Nop())
	engine.now = func() time.Time { return testNow }
	return &testEngineSetup{engine: engine, catalog: catalog}
}

func fptr(v float64) *float64 { return &v }

// singleLegOpp builds a positive-EV opportunity with one leg
func singleLegOpp(book, matchID string, odds, edge float64, commence time.Time) *models.Opportunity {
	match := models.Match{ID: matchID, HomeTeam: matchID + "-home", AwayTeam: matchID + "-away", CommenceTime: commence}
	leg := models.Leg{
		Sportsbook:    book,
		Selection:     matchID + " home",
		SelectionType: models.SelectionHomeML,
		DecimalOdds:   odds,
		Edge:          edge,
		Match:         match,
		Market:        models.Market{Type: models.MarketMoneyline},
	}
	leg.Fingerprint = leg.ComputeFingerprint()
	return &models.Opportunity{
		ID:          "opp-" + matchID + "-" + book,
		Kind:        models.KindPositiveEV,
		Sport:       "NBA",
		League:      "NBA",
		Match:       match,
		Market:      leg.Market,
		Legs:        []models.Leg{leg},
		EdgePercent: edge,
	}
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine(EngineConfig{}, nil, zerolog.Nop())
	assert.Equal(t, DefaultEngineConfig(), e.config)
	assert.NotNil(t, e.Catalog())
}

func TestTrueProbability(t *testing.T) {
	setup := setupTestEngine()

	assert.InDelta(t, 0.509, setup.engine.TrueProbability(3), 1e-9)
	assert.InDelta(t, 0.5, setup.engine.TrueProbability(0), 1e-9)
	assert.Equal(t, 0.99, setup.engine.TrueProbability(1000))
	assert.Equal(t, 0.01, setup.engine.TrueProbability(-1000))
}

// TestGenerate_SameSportsbookOnly covers the mixed-book pool: A and B at
// Betsson, C at bet365. {A,B} prices below break-even and no mixed parlay
// may ever appear.
func TestGenerate_SameSportsbookOnly(t *testing.T) {
	setup := setupTestEngine()
	commence := testNow.Add(6 * time.Hour)

	pool := []*models.Opportunity{
		singleLegOpp("betsson", "m-a", 1.8, 3, commence),
		singleLegOpp("betsson", "m-b", 2.0, 4, commence),
		singleLegOpp("bet365", "m-c", 1.9, 5, commence),
	}

	parlays := setup.engine.Generate(pool)

	assert.LessOrEqual(t, len(parlays), 1)
	for _, p := range parlays {
		assert.Equal(t, "betsson", p.Sportsbook)
		for _, leg := range p.Legs {
			assert.Equal(t, "betsson", leg.Sportsbook)
		}
	}

	ev := setup.engine.Price([]models.Leg{pool[0].Legs[0], pool[1].Legs[0]}, 1.0)
	assert.InDelta(t, 3.6, ev.CombinedOdds, 1e-9)
}

func TestGenerate_ProducesValidParlays(t *testing.T) {
	setup := setupTestEngine()
	commence := testNow.Add(6 * time.Hour)

	var pool []*models.Opportunity
	for i := 0; i < 6; i++ {
		pool = append(pool, singleLegOpp("betsson", fmt.Sprintf("m%d", i), 1.9, 20+float64(i), commence))
	}
	for i := 0; i < 3; i++ {
		pool = append(pool, singleLegOpp("coolbet", fmt.Sprintf("n%d", i), 2.1, 15, commence.Add(48*time.Hour)))
	}
	pool = append(pool, singleLegOpp("bet365", "lonely", 1.9, 30, commence))
	pool = append(pool, singleLegOpp(models.UnknownSportsbook, "x1", 1.9, 30, commence))
	pool = append(pool, singleLegOpp(models.UnknownSportsbook, "x2", 1.9, 30, commence))

	parlays := setup.engine.Generate(pool)
	require.NotEmpty(t, parlays)

	legSets := make(map[string]struct{})
	perSlot := make(map[string]int)
	for _, p := range parlays {
		require.NoError(t, CheckInvariants(p))

		assert.GreaterOrEqual(t, len(p.Legs), models.MinParlayLegs)
		assert.LessOrEqual(t, len(p.Legs), models.MaxParlayLegs)
		assert.NotEqual(t, "bet365", p.Sportsbook)
		assert.NotEqual(t, models.UnknownSportsbook, p.Sportsbook)
		assert.Greater(t, p.Edge, 0.0)

		prices := make([]float64, len(p.Legs))
		for i, leg := range p.Legs {
			prices[i] = leg.DecimalOdds
		}
		assert.True(t, math.Abs(oddsmath.Product(prices...)-p.CombinedOdds) <= 1e-9)

		key := legSetKey(p.Legs)
		_, dup := legSets[key]
		assert.False(t, dup, "leg set produced twice")
		legSets[key] = struct{}{}

		perSlot[fmt.Sprintf("%s/%s/%d", p.Sportsbook, p.Strategy, len(p.Legs))]++
	}
	for slot, n := range perSlot {
		assert.LessOrEqual(t, n, 5, slot)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	setup := setupTestEngine()
	commence := testNow.Add(6 * time.Hour)

	var pool []*models.Opportunity
	for i := 0; i < 8; i++ {
		pool = append(pool, singleLegOpp("betsson", fmt.Sprintf("m%d", i), 1.7+float64(i)*0.1, 10+float64(i%3), commence))
	}

	first := setup.engine.Generate(pool)
	second := setup.engine.Generate(pool)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Fingerprint, second[i].Fingerprint)
		assert.Equal(t, first[i].Strategy, second[i].Strategy)
	}
}

func TestGenerate_SkipsExpiredOpportunities(t *testing.T) {
	setup := setupTestEngine()
	past := testNow.Add(-time.Minute)

	pool := []*models.Opportunity{
		singleLegOpp("betsson", "m1", 1.9, 25, past),
		singleLegOpp("betsson", "m2", 1.9, 25, past),
	}

	assert.Empty(t, setup.engine.Generate(pool))
}

func TestGenerate_LotteryNeedsFourLegs(t *testing.T) {
	setup := setupTestEngine()
	commence := testNow.Add(6 * time.Hour)

	var pool []*models.Opportunity
	for i := 0; i < 6; i++ {
		// each on its own date so no SAME_DAY strategy claims them first
		pool = append(pool, singleLegOpp("betsson", fmt.Sprintf("m%d", i), 2.2, 40, commence.Add(time.Duration(i)*24*time.Hour)))
	}

	for _, p := range setup.engine.Generate(pool) {
		if p.Strategy == models.StrategyLottery {
			assert.GreaterOrEqual(t, len(p.Legs), 4)
			assert.Equal(t, models.RiskExtreme, p.RiskLevel)
			assert.Equal(t, models.ProfileLottery, p.RiskProfile)
		}
		assert.NoError(t, assertSameDay(p))
	}
}

// TestGenerate_SlotCapAndBucketTopK feeds fourteen Betsson legs. Only the
// ten best edges may enter combinations and no (book, strategy, size) slot
// holds more than five parlays.
func TestGenerate_SlotCapAndBucketTopK(t *testing.T) {
	setup := setupTestEngine()
	commence := testNow.Add(6 * time.Hour)

	var pool []*models.Opportunity
	for i := 0; i < 14; i++ {
		pool = append(pool, singleLegOpp("betsson", fmt.Sprintf("m%02d", i), 1.9, 30-float64(i), commence))
	}

	parlays := setup.engine.Generate(pool)
	require.NotEmpty(t, parlays)

	perSlot := make(map[string]int)
	used := make(map[string]struct{})
	for _, p := range parlays {
		perSlot[fmt.Sprintf("%s/%s/%d", p.Sportsbook, p.Strategy, len(p.Legs))]++
		for _, leg := range p.Legs {
			used[leg.Match.ID] = struct{}{}
		}
	}

	full := 0
	for slot, n := range perSlot {
		assert.LessOrEqual(t, n, 5, slot)
		if n == 5 {
			full++
		}
	}
	assert.Positive(t, full, "expected at least one slot at the cap")

	assert.LessOrEqual(t, len(used), 10)
	for i := 10; i < 14; i++ {
		assert.NotContains(t, used, fmt.Sprintf("m%02d", i))
	}
}

// TestGenerate_HighEVUsesTopEdgesOnly shrinks the high-EV pool to four legs;
// no HIGH_EV parlay may carry a leg ranked below it.
func TestGenerate_HighEVUsesTopEdgesOnly(t *testing.T) {
	config := DefaultEngineConfig()
	config.HighEVPoolSize = 4
	engine := NewEngine(config, NewCorrelationCatalog(SeedPatterns()...), zerolog.Nop())
	engine.now = func() time.Time { return testNow }

	commence := testNow.Add(6 * time.Hour)
	var pool []*models.Opportunity
	for i := 0; i < 8; i++ {
		// one game per day keeps the SAME_DAY strategies out
		pool = append(pool, singleLegOpp("betsson", fmt.Sprintf("m%d", i), 1.9, 30-2*float64(i), commence.Add(time.Duration(i)*24*time.Hour)))
	}
	top := map[string]struct{}{"m0": {}, "m1": {}, "m2": {}, "m3": {}}

	var highEV int
	for _, p := range engine.Generate(pool) {
		if p.Strategy != models.StrategyHighEV {
			continue
		}
		highEV++
		assert.Equal(t, models.ProfileBalanced, p.RiskProfile)
		for _, leg := range p.Legs {
			assert.Contains(t, top, leg.Match.ID)
		}
	}
	assert.Positive(t, highEV)
}

func assertSameDay(p *models.Parlay) error {
	spec, _ := Lookup(p.Strategy)
	if !spec.SameDay {
		return nil
	}
	for _, leg := range p.Legs {
		if leg.Match.Date() != p.Legs[0].Match.Date() {
			return fmt.Errorf("%s mixes dates", p.Strategy)
		}
	}
	return nil
}

func scenarioGameLegs() []models.Leg {
	match := models.Match{ID: "nba:celtics-knicks", HomeTeam: "Celtics", AwayTeam: "Knicks", CommenceTime: testNow.Add(8 * time.Hour)}
	base := models.Leg{Sportsbook: "betsson", Sport: "NBA", League: "NBA", Match: match}

	spread := base
	spread.Selection = "Celtics -8"
	spread.SelectionType = models.SelectionHomeSpread
	spread.Line = fptr(-8)
	spread.DecimalOdds = 1.9
	spread.Market = models.Market{Type: models.MarketSpread, Line: fptr(8)}

	total := base
	total.Selection = "Over 232"
	total.SelectionType = models.SelectionOver
	total.Line = fptr(232)
	total.DecimalOdds = 1.85
	total.Market = models.Market{Type: models.MarketTotal, Line: fptr(232)}

	star := base
	star.Selection = "Jayson Tatum Over 27.5 Points"
	star.SelectionType = models.SelectionPlayerProp
	star.Line = fptr(27.5)
	star.PlayerName = "Jayson Tatum"
	star.DecimalOdds = 1.9
	star.Market = models.Market{Type: models.MarketPlayerProp, Player: "Jayson Tatum", Stat: "points", Line: fptr(27.5)}

	return []models.Leg{spread, total, star}
}

func TestEvaluate_CorrelationUplift(t *testing.T) {
	setup := setupTestEngine()
	legs := scenarioGameLegs()

	uplifted := setup.engine.Evaluate(legs)
	plain := setup.engine.Price(legs, 1.0)

	assert.Equal(t, "nba-fav-cover-over-star-points", uplifted.PatternID)
	assert.InDelta(t, 1.31, uplifted.Strength, 1e-9)
	assert.Greater(t, uplifted.Edge, plain.Edge)
	assert.InDelta(t, plain.CombinedOdds, uplifted.CombinedOdds, 1e-12)
	assert.InDelta(t, plain.JointProbability*1.31, uplifted.JointProbability, 1e-12)
}

// TestGenerate_NoUpliftAcrossMatches spreads the same-game legs over three
// unrelated games; the pattern must not lift their joint probability.
func TestGenerate_NoUpliftAcrossMatches(t *testing.T) {
	setup := setupTestEngine()

	legs := scenarioGameLegs()
	var pool []*models.Opportunity
	for i := range legs {
		leg := legs[i]
		leg.Match.ID = fmt.Sprintf("nba:g%d", i+1)
		leg.Edge = 5
		leg.Fingerprint = leg.ComputeFingerprint()
		pool = append(pool, &models.Opportunity{
			ID:          fmt.Sprintf("opp-g%d", i+1),
			Kind:        models.KindPositiveEV,
			Sport:       "NBA",
			League:      "NBA",
			Match:       leg.Match,
			Market:      leg.Market,
			Legs:        []models.Leg{leg},
			EdgePercent: 5,
		})
	}

	crossed := setup.engine.FlattenLegs(pool)
	require.Len(t, crossed, 3)
	ev := setup.engine.Evaluate(crossed)
	assert.Empty(t, ev.PatternID)
	assert.Equal(t, 1.0, ev.Strength)

	for _, p := range setup.engine.Generate(pool) {
		assert.Empty(t, p.PatternID)
		assert.Equal(t, 1.0, p.CorrelationStrength)
		assert.Greater(t, p.Edge, 0.0)
	}
}

func TestEvaluate_ConditionNotMet(t *testing.T) {
	setup := setupTestEngine()
	legs := scenarioGameLegs()
	legs[1].Line = fptr(210)

	ev := setup.engine.Evaluate(legs)
	assert.Empty(t, ev.PatternID)
	assert.Equal(t, 1.0, ev.Strength)

	legs = scenarioGameLegs()
	legs[0].Line = fptr(-3)
	assert.Empty(t, setup.engine.Evaluate(legs).PatternID)
}

func TestQualify_Gates(t *testing.T) {
	setup := setupTestEngine()
	spec, ok := Lookup(models.StrategyCrossDayAggressive)
	require.True(t, ok)

	_, err := setup.engine.Qualify(spec, scenarioGameLegs())
	assert.ErrorIs(t, err, ErrSameMatch)

	commence := testNow.Add(time.Hour)
	a := singleLegOpp("betsson", "m1", 1.9, 20, commence).Legs[0]
	b := singleLegOpp("coolbet", "m2", 1.9, 20, commence).Legs[0]
	_, err = setup.engine.Qualify(spec, []models.Leg{a, b})
	assert.ErrorIs(t, err, ErrMixedBooks)

	u := singleLegOpp(models.UnknownSportsbook, "m3", 1.9, 20, commence).Legs[0]
	_, err = setup.engine.Qualify(spec, []models.Leg{u, u})
	assert.ErrorIs(t, err, ErrUnknownBook)

	safe, _ := Lookup(models.StrategySameDaySafe)
	c := singleLegOpp("betsson", "m4", 1.9, 20, commence.Add(72*time.Hour)).Legs[0]
	_, err = setup.engine.Qualify(safe, []models.Leg{a, c})
	assert.ErrorIs(t, err, ErrDateMismatch)

	_, err = setup.engine.Qualify(safe, []models.Leg{a})
	assert.ErrorIs(t, err, ErrLegCount)

	low := singleLegOpp("betsson", "m5", 1.9, 0, commence).Legs[0]
	d := singleLegOpp("betsson", "m6", 1.9, 0, commence).Legs[0]
	balanced, _ := Lookup(models.StrategySameDayBalanced)
	_, err = setup.engine.Qualify(balanced, []models.Leg{low, d})
	assert.ErrorIs(t, err, ErrNonPositiveEV)

	_, err = setup.engine.Qualify(safe, []models.Leg{low, d})
	assert.ErrorIs(t, err, ErrOddsBounds)
}

func TestAssemble_PanicsOnInvariantViolation(t *testing.T) {
	setup := setupTestEngine()
	spec, _ := Lookup(models.StrategyCrossDayBalanced)
	legs := scenarioGameLegs()[:2]

	assert.Panics(t, func() {
		setup.engine.Assemble(spec, legs, setup.engine.Price(legs, 1.0))
	})
}

func TestForEachCombination(t *testing.T) {
	var got [][]int
	forEachCombination(4, 2, func(idx []int) bool {
		got = append(got, append([]int(nil), idx...))
		return true
	})
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)

	count := 0
	forEachCombination(10, 6, func([]int) bool { count++; return true })
	assert.Equal(t, 210, count)

	count = 0
	forEachCombination(10, 3, func([]int) bool { count++; return count < 5 })
	assert.Equal(t, 5, count)
}

func TestLoadPatternsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `
patterns:
  - id: nfl-under-dog-cover
    name: Low total underdog covers
    sport: NFL
    condition:
      max_total: 41
    outcomes: [under_total, underdog_spread]
    independent_prob: 0.25
    joint_prob: 0.29
    sample_size: 412
    min_edge: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := LoadPatternsFile(path)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "file", patterns[0].Source)
	assert.InDelta(t, 1.16, patterns[0].Strength(), 1e-9)

	catalog := NewCorrelationCatalog(SeedPatterns()...)
	require.NoError(t, catalog.Add(patterns[0]))
	assert.Len(t, catalog.Patterns(), 2)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("patterns:\n  - id: x\n    outcomes: [over_total]\n"), 0o600))
	_, err = LoadPatternsFile(bad)
	assert.Error(t, err)
}

func TestClassifyOutcome(t *testing.T) {
	legs := scenarioGameLegs()
	assert.Equal(t, models.OutcomeFavoriteSpread, ClassifyOutcome(&legs[0]))
	assert.Equal(t, models.OutcomeOverTotal, ClassifyOutcome(&legs[1]))
	assert.Equal(t, models.OutcomePlayerOver, ClassifyOutcome(&legs[2]))

	dog := models.Leg{SelectionType: models.SelectionAwayML, DecimalOdds: 3.1}
	assert.Equal(t, models.OutcomeUnderdogML, ClassifyOutcome(&dog))
}
