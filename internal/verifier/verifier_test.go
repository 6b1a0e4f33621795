package verifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/parlay-intel-service/internal/bookmaker"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

var testStart = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

type feedCall struct {
	sport      string
	markets    []string
	bookmakers []string
}

// stubFeed serves canned games per sport and records calls
type stubFeed struct {
	games map[string][]models.FeedGame
	err   error
	calls []feedCall
}

func (f *stubFeed) Odds(ctx context.Context, sportKey string, markets, bookmakers []string) ([]models.FeedGame, error) {
	f.calls = append(f.calls, feedCall{sport: sportKey, markets: markets, bookmakers: bookmakers})
	if f.err != nil {
		return nil, f.err
	}
	return f.games[sportKey], nil
}

// testVerifierSetup is a helper struct to hold test dependencies
type testVerifierSetup struct {
	verifier *Verifier
	feed     *stubFeed
	ctx      context.Context
}

func setupTestVerifier(t *testing.T) *testVerifierSetup {
	feed := &stubFeed{games: map[string][]models.FeedGame{
		"basketball_nba": {
			game("Boston Celtics", "New York Knicks", testStart, "betsson",
				models.FeedMarket{Key: "h2h", Outcomes: []models.FeedOutcome{
					{Name: "Boston Celtics", Price: 1.92},
					{Name: "New York Knicks", Price: 1.95},
				}},
				models.FeedMarket{Key: "spreads", Outcomes: []models.FeedOutcome{
					{Name: "Boston Celtics", Price: 1.91, Point: ptr(-3.5)},
					{Name: "New York Knicks", Price: 1.91, Point: ptr(3.5)},
				}},
			),
			game("Toronto Raptors", "Los Angeles Lakers", testStart.Add(time.Hour), "betsson",
				models.FeedMarket{Key: "totals", Outcomes: []models.FeedOutcome{
					{Name: "Over", Price: 2.00, Point: ptr(220.5)},
					{Name: "Under", Price: 1.80, Point: ptr(220.5)},
				}},
			),
		},
		"icehockey_nhl": {
			game("Ottawa Senators", "Boston Bruins", testStart, "betsson",
				models.FeedMarket{Key: "h2h", Outcomes: []models.FeedOutcome{
					{Name: "Ottawa Senators", Price: 2.40},
					{Name: "Boston Bruins", Price: 1.60},
				}},
			),
		},
	}}

	books := bookmaker.NewRegistry(bookmaker.DefaultBooks)
	return &testVerifierSetup{
		verifier: New(DefaultConfig(), feed, books, zerolog.Nop()),
		feed:     feed,
		ctx:      context.Background(),
	}
}

func ptr(v float64) *float64 { return &v }

func game(home, away string, start time.Time, book string, markets ...models.FeedMarket) models.FeedGame {
	return models.FeedGame{
		ID:           home + "-" + away,
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: start,
		Bookmakers:   []models.FeedBookmaker{{Key: book, Markets: markets}},
	}
}

func leg(home, away, league string, sel models.SelectionType, line *float64, odds float64) models.Leg {
	l := models.Leg{
		Sportsbook:    "betsson",
		SelectionType: sel,
		Line:          line,
		DecimalOdds:   odds,
		League:        league,
		Match:         models.Match{ID: home + away, HomeTeam: home, AwayTeam: away, CommenceTime: testStart},
	}
	l.Fingerprint = l.ComputeFingerprint()
	return l
}

func TestVerify_VerifiedAndWorse(t *testing.T) {
	setup := setupTestVerifier(t)

	p := &models.Parlay{ID: "p1", Legs: []models.Leg{
		leg("Celtics", "Knicks", "NBA", models.SelectionHomeML, nil, 1.90),
		leg("Raptors", "Lakers", "NBA", models.SelectionOver, ptr(220.5), 2.10),
	}}

	report := setup.verifier.Verify(setup.ctx, p)

	require.Len(t, report.Legs, 2)
	assert.Equal(t, "p1", report.ParlayID)
	assert.Equal(t, models.LegVerified, report.Legs[0].Status)
	assert.Equal(t, 1.92, *report.Legs[0].CurrentOdds)
	assert.Equal(t, models.LegWorse, report.Legs[1].Status)
	assert.Equal(t, 2.00, *report.Legs[1].CurrentOdds)
	assert.Equal(t, 2.10, report.Legs[1].StoredOdds)

	// one feed query for the sport
	require.Len(t, setup.feed.calls, 1)
	assert.Equal(t, "basketball_nba", setup.feed.calls[0].sport)
	assert.Equal(t, []string{"h2h", "totals"}, setup.feed.calls[0].markets)
	assert.Equal(t, []string{"betsson"}, setup.feed.calls[0].bookmakers)
}

func TestVerify_BatchesBySport(t *testing.T) {
	setup := setupTestVerifier(t)

	p := &models.Parlay{ID: "p1", Legs: []models.Leg{
		leg("Celtics", "Knicks", "NBA", models.SelectionHomeSpread, ptr(-3.5), 1.80),
		leg("Senators", "Bruins", "NHL", models.SelectionHomeML, nil, 2.40),
		leg("Knicks", "Celtics", "NBA", models.SelectionAwayML, nil, 1.95),
	}}

	report := setup.verifier.Verify(setup.ctx, p)

	assert.Len(t, setup.feed.calls, 2)
	assert.Equal(t, models.LegBetter, report.Legs[0].Status)
	assert.Equal(t, models.LegVerified, report.Legs[1].Status)
	// leg lists Knicks as home; the feed has them away, the away selection is the Celtics
	assert.Equal(t, models.LegVerified, report.Legs[2].Status)
	assert.Equal(t, 1.92, *report.Legs[2].CurrentOdds)
}

func TestVerify_Unavailable(t *testing.T) {
	setup := setupTestVerifier(t)

	prop := leg("Raptors", "Lakers", "NBA", models.SelectionPlayerProp, ptr(25.5), 1.90)
	prop.Market = models.Market{Type: models.MarketPlayerProp, Player: "LeBron James", Stat: "points"}

	offFeedBook := leg("Celtics", "Knicks", "NBA", models.SelectionHomeML, nil, 1.90)
	offFeedBook.Sportsbook = "bet365"

	tests := []struct {
		name   string
		leg    models.Leg
		reason string
	}{
		{"player prop", prop, ReasonPlayerProp},
		{"book without feed key", offFeedBook, ReasonBookmaker},
		{"league not on feed", leg("Tigres", "America", "Liga MX", models.SelectionHomeML, nil, 2.0), ReasonSport},
		{"match missing", leg("Heat", "Magic", "NBA", models.SelectionHomeML, nil, 2.0), ReasonMatchNotFound},
		{"market closed", leg("Raptors", "Lakers", "NBA", models.SelectionHomeML, nil, 2.0), ReasonMarketClosed},
		{"line moved", leg("Raptors", "Lakers", "NBA", models.SelectionOver, ptr(221.5), 2.0), ReasonLineGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := setup.verifier.Verify(setup.ctx, &models.Parlay{ID: "p", Legs: []models.Leg{tt.leg}})
			require.Len(t, report.Legs, 1)
			assert.Equal(t, models.LegUnavailable, report.Legs[0].Status)
			assert.Equal(t, tt.reason, report.Legs[0].Reason)
			assert.Nil(t, report.Legs[0].CurrentOdds)
		})
	}
}

func TestVerify_StartSkew(t *testing.T) {
	setup := setupTestVerifier(t)

	l := leg("Celtics", "Knicks", "NBA", models.SelectionHomeML, nil, 1.90)
	l.Match.CommenceTime = testStart.Add(72 * time.Hour)

	report := setup.verifier.Verify(setup.ctx, &models.Parlay{ID: "p", Legs: []models.Leg{l}})
	assert.Equal(t, models.LegUnavailable, report.Legs[0].Status)
	assert.Equal(t, ReasonMatchNotFound, report.Legs[0].Reason)
}

func TestVerify_TransportError(t *testing.T) {
	setup := setupTestVerifier(t)
	setup.feed.err = errors.New("connection refused")

	p := &models.Parlay{ID: "p1", Legs: []models.Leg{
		leg("Celtics", "Knicks", "NBA", models.SelectionHomeML, nil, 1.90),
		leg("Tigres", "America", "Liga MX", models.SelectionHomeML, nil, 2.0),
	}}

	report := setup.verifier.Verify(setup.ctx, p)
	assert.Equal(t, models.LegError, report.Legs[0].Status)
	assert.Contains(t, report.Legs[0].Reason, "connection refused")
	assert.Equal(t, models.LegUnavailable, report.Legs[1].Status)
}

func TestQuoteLeg(t *testing.T) {
	setup := setupTestVerifier(t)

	l := leg("Senators", "Bruins", "NHL", models.SelectionAwayML, nil, 1.70)
	check := setup.verifier.QuoteLeg(setup.ctx, &l)

	require.NotNil(t, check.CurrentOdds)
	assert.Equal(t, 1.60, *check.CurrentOdds)
	assert.Equal(t, models.LegWorse, check.Status)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		stored, current float64
		want            models.LegStatus
	}{
		{1.90, 1.90, models.LegVerified},
		{1.90, 1.92, models.LegVerified},
		{1.90, 1.88, models.LegVerified},
		{1.90, 1.95, models.LegBetter},
		{2.10, 2.00, models.LegWorse},
		{2.00, 2.04, models.LegBetter},
		{2.00, 1.96, models.LegWorse},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.stored, tt.current, 0.02), "%.2f -> %.2f", tt.stored, tt.current)
	}
}
