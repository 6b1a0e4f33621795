package oddsfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oddsBody = `[{
	"id": "g1",
	"sport_key": "basketball_nba",
	"home_team": "Toronto Raptors",
	"away_team": "Los Angeles Lakers",
	"commence_time": "2026-10-18T00:30:00Z",
	"bookmakers": [{
		"key": "betsson",
		"title": "Betsson",
		"markets": [
			{"key": "h2h", "outcomes": [{"name": "Toronto Raptors", "price": 1.92}, {"name": "Los Angeles Lakers", "price": 2.0}]},
			{"key": "totals", "outcomes": [{"name": "Over", "price": 1.9, "point": 220.5}, {"name": "Under", "price": 1.95, "point": 220.5}]}
		]
	}]
}]`

// testClientSetup is a helper struct to hold test dependencies
type testClientSetup struct {
	server *httptest.Server
	client *Client
	hits   *int32
	ctx    context.Context
}

// setupTestClient points a client at a stub feed
func setupTestClient(t *testing.T, handler http.HandlerFunc) *testClientSetup {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))

	client := NewClient(Config{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		Regions:           "eu",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		MaxRetries:        2,
	}, zerolog.Nop())

	return &testClientSetup{server: server, client: client, hits: &hits, ctx: context.Background()}
}

// cleanup cleans up test resources
func (s *testClientSetup) cleanup() {
	s.server.Close()
}

func TestClient_Odds(t *testing.T) {
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/basketball_nba/odds", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("apiKey"))
		assert.Equal(t, "eu", q.Get("regions"))
		assert.Equal(t, "h2h,spreads,totals", q.Get("markets"))
		assert.Equal(t, "decimal", q.Get("oddsFormat"))
		assert.Equal(t, "betsson,coolbet", q.Get("bookmakers"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oddsBody))
	})
	defer setup.cleanup()

	games, err := setup.client.Odds(setup.ctx, "basketball_nba", nil, []string{"betsson", "coolbet"})
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "Toronto Raptors", g.HomeTeam)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 30, 0, 0, time.UTC), g.CommenceTime.UTC())

	book, ok := g.Bookmaker("betsson")
	require.True(t, ok)
	_, ok = g.Bookmaker("coolbet")
	assert.False(t, ok)

	totals, ok := book.Market(MarketTotals)
	require.True(t, ok)
	require.NotNil(t, totals.Outcomes[0].Point)
	assert.Equal(t, 220.5, *totals.Outcomes[0].Point)

	h2h, ok := book.Market(MarketH2H)
	require.True(t, ok)
	assert.Nil(t, h2h.Outcomes[0].Point)
	assert.Equal(t, 1.92, h2h.Outcomes[0].Price)
}

func TestClient_Scores(t *testing.T) {
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/icehockey_nhl/scores", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("daysFrom"))
		w.Write([]byte(`[{"id":"g9","home_team":"Boston Bruins","away_team":"Ottawa Senators",
			"commence_time":"2026-10-16T23:00:00Z","completed":true,
			"scores":[{"name":"Boston Bruins","score":"3"},{"name":"Ottawa Senators","score":"2"}]}]`))
	})
	defer setup.cleanup()

	scores, err := setup.client.Scores(setup.ctx, "icehockey_nhl", 3)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.True(t, scores[0].Completed)
	assert.Equal(t, "3", scores[0].Scores[0].Score)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	})
	defer setup.cleanup()

	games, err := setup.client.Odds(setup.ctx, "basketball_nba", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, int32(2), atomic.LoadInt32(setup.hits))
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer setup.cleanup()

	_, err := setup.client.Odds(setup.ctx, "basketball_nba", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))
	assert.Equal(t, int32(3), atomic.LoadInt32(setup.hits))
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid api key"}`))
	})
	defer setup.cleanup()

	_, err := setup.client.Odds(setup.ctx, "basketball_nba", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
	assert.Equal(t, int32(1), atomic.LoadInt32(setup.hits))
}

func TestClient_Timeout(t *testing.T) {
	setup := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	})
	defer setup.cleanup()

	ctx, cancel := context.WithTimeout(setup.ctx, 50*time.Millisecond)
	defer cancel()

	_, err := setup.client.Odds(ctx, "basketball_nba", nil, nil)
	assert.Error(t, err)
}

func TestSportKey(t *testing.T) {
	tests := []struct {
		league string
		want   string
		ok     bool
	}{
		{"NBA", "basketball_nba", true},
		{"nfl", "americanfootball_nfl", true},
		{" NHL ", "icehockey_nhl", true},
		{"MLB", "baseball_mlb", true},
		{"NCAAB", "basketball_ncaab", true},
		{"NCAAF", "americanfootball_ncaaf", true},
		{"EPL", "soccer_epl", true},
		{"MLS", "soccer_usa_mls", true},
		{"Liga MX", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.league, func(t *testing.T) {
			got, ok := SportKey(tt.league)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
