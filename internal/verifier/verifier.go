package verifier

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/internal/oddsfeed"
)

// Unavailable reasons
const (
	ReasonPlayerProp    = "player prop not quoted by feed"
	ReasonBookmaker     = "bookmaker not quoted by feed"
	ReasonSport         = "league not covered by feed"
	ReasonMarket        = "market not quoted by feed"
	ReasonMatchNotFound = "match not found in feed"
	ReasonBookClosed    = "bookmaker no longer offers the game"
	ReasonMarketClosed  = "market closed"
	ReasonLineGone      = "selection or line no longer offered"
)

// OddsFeed is the part of the feed client the verifier needs
type OddsFeed interface {
	Odds(ctx context.Context, sportKey string, markets, bookmakers []string) ([]models.FeedGame, error)
}

// BookKeys maps canonical sportsbooks to feed bookmaker keys
type BookKeys interface {
	FeedKey(id string) (string, bool)
}

// Config holds verifier configuration
type Config struct {
	// Tolerance is the relative band within which a price counts as unchanged
	Tolerance float64
	// MaxStartSkew bounds how far a feed game may start from the stored commence time
	MaxStartSkew time.Duration
}

// DefaultConfig returns the standard thresholds
func DefaultConfig() Config {
	return Config{
		Tolerance:    0.02,
		MaxStartSkew: 36 * time.Hour,
	}
}

// Verifier re-quotes parlay legs from the live odds feed
type Verifier struct {
	config Config
	feed   OddsFeed
	books  BookKeys
	logger zerolog.Logger
}

// New creates a new verifier
func New(config Config, feed OddsFeed, books BookKeys, logger zerolog.Logger) *Verifier {
	if config.Tolerance <= 0 {
		config.Tolerance = 0.02
	}
	return &Verifier{
		config: config,
		feed:   feed,
		books:  books,
		logger: logger.With().Str("component", "verifier").Logger(),
	}
}

type pendingLeg struct {
	index     int
	leg       *models.Leg
	feedBook  string
	marketKey string
}

// Verify re-quotes every leg of the parlay. The feed is queried once per
// sport; a transport failure marks that sport's legs as error.
func (v *Verifier) Verify(ctx context.Context, p *models.Parlay) *models.VerificationReport {
	report := &models.VerificationReport{
		ParlayID:  p.ID,
		Legs:      make([]models.LegCheck, len(p.Legs)),
		CheckedAt: time.Now().UTC(),
	}

	bySport := make(map[string][]pendingLeg)
	for i := range p.Legs {
		leg := &p.Legs[i]
		report.Legs[i] = models.LegCheck{
			Index:       i,
			Fingerprint: leg.Fingerprint,
			StoredOdds:  leg.DecimalOdds,
		}

		if leg.SelectionType == models.SelectionPlayerProp || leg.Market.IsPlayerProp() {
			v.unavailable(report, i, ReasonPlayerProp)
			continue
		}
		feedBook, ok := v.books.FeedKey(leg.Sportsbook)
		if !ok {
			v.unavailable(report, i, ReasonBookmaker)
			continue
		}
		sportKey, ok := oddsfeed.SportKey(leg.League)
		if !ok {
			v.unavailable(report, i, ReasonSport)
			continue
		}
		marketKey := leg.SelectionType.FeedMarketKey()
		if marketKey == "" {
			v.unavailable(report, i, ReasonMarket)
			continue
		}
		bySport[sportKey] = append(bySport[sportKey], pendingLeg{index: i, leg: leg, feedBook: feedBook, marketKey: marketKey})
	}

	sports := make([]string, 0, len(bySport))
	for s := range bySport {
		sports = append(sports, s)
	}
	sort.Strings(sports)

	for _, sport := range sports {
		legs := bySport[sport]
		games, err := v.feed.Odds(ctx, sport, marketsOf(legs), booksOf(legs))
		if err != nil {
			v.logger.Warn().
				Err(err).
				Str("parlay_id", p.ID).
				Str("sport", sport).
				Msg("odds feed query failed")
			for _, pl := range legs {
				report.Legs[pl.index].Status = models.LegError
				report.Legs[pl.index].Reason = err.Error()
			}
			continue
		}
		for _, pl := range legs {
			v.check(report, pl, games)
		}
	}

	v.logger.Debug().
		Str("parlay_id", p.ID).
		Int("verified", report.Count(models.LegVerified)).
		Int("better", report.Count(models.LegBetter)).
		Int("worse", report.Count(models.LegWorse)).
		Int("unavailable", report.Count(models.LegUnavailable)).
		Int("error", report.Count(models.LegError)).
		Msg("parlay verified")

	return report
}

// QuoteLeg re-quotes a single leg, for closing-line capture
func (v *Verifier) QuoteLeg(ctx context.Context, leg *models.Leg) models.LegCheck {
	report := v.Verify(ctx, &models.Parlay{ID: "quote", Legs: []models.Leg{*leg}})
	return report.Legs[0]
}

func (v *Verifier) check(report *models.VerificationReport, pl pendingLeg, games []models.FeedGame) {
	game, swapped := v.findGame(pl.leg, games)
	if game == nil {
		v.unavailable(report, pl.index, ReasonMatchNotFound)
		return
	}
	book, ok := game.Bookmaker(pl.feedBook)
	if !ok {
		v.unavailable(report, pl.index, ReasonBookClosed)
		return
	}
	market, ok := book.Market(pl.marketKey)
	if !ok {
		v.unavailable(report, pl.index, ReasonMarketClosed)
		return
	}
	outcome, ok := findOutcome(pl.leg, game, swapped, market)
	if !ok {
		v.unavailable(report, pl.index, ReasonLineGone)
		return
	}

	current := outcome.Price
	check := &report.Legs[pl.index]
	check.CurrentOdds = &current
	check.Status = Classify(check.StoredOdds, current, v.config.Tolerance)
}

func (v *Verifier) unavailable(report *models.VerificationReport, i int, reason string) {
	report.Legs[i].Status = models.LegUnavailable
	report.Legs[i].Reason = reason
}

// Classify compares a re-quoted price to the stored one
func Classify(stored, current, tolerance float64) models.LegStatus {
	switch {
	case current >= stored*(1+tolerance):
		return models.LegBetter
	case current <= stored*(1-tolerance):
		return models.LegWorse
	default:
		return models.LegVerified
	}
}

// findGame picks the feed game whose teams match the leg's, closest in
// start time when several do. swapped is set when the feed lists the
// leg's home team as away.
func (v *Verifier) findGame(leg *models.Leg, games []models.FeedGame) (*models.FeedGame, bool) {
	var (
		best        *models.FeedGame
		bestSwapped bool
		bestSkew    time.Duration
	)
	for i := range games {
		g := &games[i]
		straight := models.TeamsMatch(leg.Match.HomeTeam, g.HomeTeam) && models.TeamsMatch(leg.Match.AwayTeam, g.AwayTeam)
		swapped := !straight && models.TeamsMatch(leg.Match.HomeTeam, g.AwayTeam) && models.TeamsMatch(leg.Match.AwayTeam, g.HomeTeam)
		if !straight && !swapped {
			continue
		}

		skew := g.CommenceTime.Sub(leg.Match.CommenceTime)
		if skew < 0 {
			skew = -skew
		}
		if v.config.MaxStartSkew > 0 && !leg.Match.CommenceTime.IsZero() && skew > v.config.MaxStartSkew {
			continue
		}
		if best == nil || skew < bestSkew {
			best, bestSwapped, bestSkew = g, swapped, skew
		}
	}
	return best, bestSwapped
}

func findOutcome(leg *models.Leg, game *models.FeedGame, swapped bool, market *models.FeedMarket) (*models.FeedOutcome, bool) {
	var name string
	line := leg.Line
	switch leg.SelectionType {
	case models.SelectionHomeML, models.SelectionHomeSpread:
		name = game.HomeTeam
		if swapped {
			name = game.AwayTeam
		}
	case models.SelectionAwayML, models.SelectionAwaySpread:
		name = game.AwayTeam
		if swapped {
			name = game.HomeTeam
		}
	case models.SelectionOver:
		name = "Over"
		line = totalLine(leg)
	case models.SelectionUnder:
		name = "Under"
		line = totalLine(leg)
	default:
		return nil, false
	}
	if market.Key == oddsfeed.MarketH2H {
		line = nil
	}

	for i := range market.Outcomes {
		o := &market.Outcomes[i]
		if strings.EqualFold(o.Name, name) && samePoint(line, o.Point) {
			return o, true
		}
	}
	return nil, false
}

func totalLine(leg *models.Leg) *float64 {
	if leg.Line != nil {
		return leg.Line
	}
	return leg.Market.Line
}

func samePoint(want, got *float64) bool {
	if want == nil {
		return true
	}
	if got == nil {
		return false
	}
	return math.Abs(*want-*got) < 1e-9
}

func marketsOf(legs []pendingLeg) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pl := range legs {
		if !seen[pl.marketKey] {
			seen[pl.marketKey] = true
			out = append(out, pl.marketKey)
		}
	}
	sort.Strings(out)
	return out
}

func booksOf(legs []pendingLeg) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pl := range legs {
		if !seen[pl.feedBook] {
			seen[pl.feedBook] = true
			out = append(out, pl.feedBook)
		}
	}
	sort.Strings(out)
	return out
}
