package oddsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com"
	baseRetryWait  = 500 * time.Millisecond
)

// Feed market keys
const (
	MarketH2H     = "h2h"
	MarketSpreads = "spreads"
	MarketTotals  = "totals"
)

// SupportedMarkets are the only markets the feed is queried for
var SupportedMarkets = []string{MarketH2H, MarketSpreads, MarketTotals}

// ErrStatus is wrapped by non-retryable HTTP failures
var ErrStatus = errors.New("unexpected feed status")

// Config holds odds feed client configuration
type Config struct {
	BaseURL           string
	APIKey            string
	Regions           string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
}

// Client is the live odds feed HTTP client with rate limiting and retries
type Client struct {
	http    *http.Client
	config  Config
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewClient creates a new odds feed client
func NewClient(config Config, logger zerolog.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 1
	}
	if config.Regions == "" {
		config.Regions = "eu,us"
	}

	return &Client{
		http:    &http.Client{Timeout: config.Timeout},
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 2),
		logger:  logger.With().Str("component", "oddsfeed").Logger(),
	}
}

// Odds fetches current decimal prices for every upcoming game of a sport.
// Empty markets means all supported markets; empty bookmakers means all.
func (c *Client) Odds(ctx context.Context, sportKey string, markets, bookmakers []string) ([]models.FeedGame, error) {
	if len(markets) == 0 {
		markets = SupportedMarkets
	}
	q := url.Values{}
	q.Set("apiKey", c.config.APIKey)
	q.Set("regions", c.config.Regions)
	q.Set("markets", strings.Join(markets, ","))
	q.Set("oddsFormat", "decimal")
	q.Set("dateFormat", "iso")
	if len(bookmakers) > 0 {
		q.Set("bookmakers", strings.Join(bookmakers, ","))
	}

	var games []models.FeedGame
	endpoint := c.config.BaseURL + "/v4/sports/" + url.PathEscape(sportKey) + "/odds?" + q.Encode()
	if err := c.get(ctx, endpoint, &games); err != nil {
		return nil, fmt.Errorf("failed to fetch %s odds: %w", sportKey, err)
	}

	c.logger.Debug().
		Str("sport", sportKey).
		Int("games", len(games)).
		Msg("fetched odds")
	return games, nil
}

// Scores fetches live and recently completed games of a sport
func (c *Client) Scores(ctx context.Context, sportKey string, daysFrom int) ([]models.FeedScore, error) {
	q := url.Values{}
	q.Set("apiKey", c.config.APIKey)
	q.Set("dateFormat", "iso")
	if daysFrom > 0 {
		q.Set("daysFrom", fmt.Sprintf("%d", daysFrom))
	}

	var scores []models.FeedScore
	endpoint := c.config.BaseURL + "/v4/sports/" + url.PathEscape(sportKey) + "/scores?" + q.Encode()
	if err := c.get(ctx, endpoint, &scores); err != nil {
		return nil, fmt.Errorf("failed to fetch %s scores: %w", sportKey, err)
	}
	return scores, nil
}

// get performs a rate limited GET with exponential backoff on 429 and 5xx
func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, attempt-1); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt+1).
				Msg("odds feed request failed, retrying")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
		}

		if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
			c.logger.Debug().Str("remaining", remaining).Msg("odds feed quota")
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("request failed after %d retries: %w", c.config.MaxRetries, lastErr)
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
