package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// OpportunityKind classifies a drop
type OpportunityKind string

const (
	KindArbitrage  OpportunityKind = "arbitrage"
	KindMiddle     OpportunityKind = "middle"
	KindPositiveEV OpportunityKind = "positive_ev"
	// KindRecreational only tags tracked bets that did not come from a drop
	KindRecreational OpportunityKind = "recreational"
)

// ParseOpportunityKind accepts the canonical names and the common aliases
// used by upstream alert sources.
func ParseOpportunityKind(s string) (OpportunityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arbitrage", "arb", "sure", "surebet":
		return KindArbitrage, nil
	case "middle", "middles":
		return KindMiddle, nil
	case "positive_ev", "plus_ev", "+ev", "ev", "positive ev", "value":
		return KindPositiveEV, nil
	case "recreational", "rec":
		return KindRecreational, nil
	}
	return "", fmt.Errorf("unknown opportunity kind %q", s)
}

// RequiredLegs is the exact leg count for two-way kinds and the minimum otherwise
func (k OpportunityKind) RequiredLegs() int {
	switch k {
	case KindArbitrage, KindMiddle:
		return 2
	default:
		return 1
	}
}

// IsSharp reports whether bets of this kind count as advantage play
func (k OpportunityKind) IsSharp() bool {
	return k == KindArbitrage || k == KindMiddle || k == KindPositiveEV
}

// SelectionType is the side of a market a leg takes
type SelectionType string

const (
	SelectionHomeML     SelectionType = "home_ml"
	SelectionAwayML     SelectionType = "away_ml"
	SelectionOver       SelectionType = "over"
	SelectionUnder      SelectionType = "under"
	SelectionHomeSpread SelectionType = "home_spread"
	SelectionAwaySpread SelectionType = "away_spread"
	SelectionPlayerProp SelectionType = "player_prop"
)

// Opposes reports whether two selections are opposite sides of one market
func (s SelectionType) Opposes(other SelectionType) bool {
	switch s {
	case SelectionHomeML:
		return other == SelectionAwayML
	case SelectionAwayML:
		return other == SelectionHomeML
	case SelectionOver:
		return other == SelectionUnder
	case SelectionUnder:
		return other == SelectionOver
	case SelectionHomeSpread:
		return other == SelectionAwaySpread
	case SelectionAwaySpread:
		return other == SelectionHomeSpread
	case SelectionPlayerProp:
		return other == SelectionPlayerProp
	}
	return false
}

// FeedMarketKey maps the selection to the odds feed market key.
// Player props are not quoted by the feed.
func (s SelectionType) FeedMarketKey() string {
	switch s {
	case SelectionHomeML, SelectionAwayML:
		return "h2h"
	case SelectionHomeSpread, SelectionAwaySpread:
		return "spreads"
	case SelectionOver, SelectionUnder:
		return "totals"
	default:
		return ""
	}
}

// UnknownSportsbook is carried by legs whose bookmaker could not be resolved
const UnknownSportsbook = "unknown"

// Match identifies a game
type Match struct {
	ID           string    `json:"id"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
	CommenceTime time.Time `json:"commence_time"`
}

// Date is the UTC calendar date of the match
func (m Match) Date() string {
	return m.CommenceTime.UTC().Format("2006-01-02")
}

// Name renders the match for humans
func (m Match) Name() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}

// Leg is one priced selection at one sportsbook
type Leg struct {
	Fingerprint   string        `json:"fingerprint"`
	OpportunityID string        `json:"opportunity_id"`
	Sportsbook    string        `json:"sportsbook"`
	Selection     string        `json:"selection"`
	SelectionType SelectionType `json:"selection_type"`
	Line          *float64      `json:"line,omitempty"`
	DecimalOdds   float64       `json:"decimal_odds"`
	AmericanOdds  int           `json:"american_odds"`
	PlayerName    string        `json:"player_name,omitempty"`
	DeepLink      string        `json:"deep_link,omitempty"`
	APISupported  bool          `json:"api_supported"`

	// Context copied from the owning opportunity
	Sport  string  `json:"sport"`
	League string  `json:"league"`
	Market Market  `json:"market"`
	Match  Match   `json:"match"`
	Edge   float64 `json:"edge"` // percent
}

// ComputeFingerprint derives the leg key from match, market, selection, book and odds bucket
func (l *Leg) ComputeFingerprint() string {
	return Fingerprint(
		l.Match.ID,
		l.Market.Key(),
		string(l.SelectionType),
		l.Selection,
		FormatLine(l.Line),
		l.Sportsbook,
		OddsBucket(l.DecimalOdds),
	)
}

// Validate checks the per-leg invariants
func (l *Leg) Validate() error {
	if l.DecimalOdds <= 1.0 {
		return fmt.Errorf("leg %q: decimal odds %.4f must be > 1.0", l.Selection, l.DecimalOdds)
	}
	if l.Sportsbook == "" {
		return fmt.Errorf("leg %q: sportsbook is required", l.Selection)
	}
	return nil
}

// Opportunity is a normalized drop
type Opportunity struct {
	ID          string          `json:"id"`
	Fingerprint string          `json:"fingerprint"`
	EventID     string          `json:"event_id,omitempty"`
	Kind        OpportunityKind `json:"kind"`
	Sport       string          `json:"sport"`
	League      string          `json:"league"`
	Match       Match           `json:"match"`
	Market      Market          `json:"market"`
	Legs        []Leg           `json:"legs"`
	EdgePercent float64         `json:"edge_percent"`
	Source      string          `json:"source"`
	IngestedAt  time.Time       `json:"ingested_at"`
	Expired     bool            `json:"expired"`
}

// ComputeFingerprint is hash(match, sorted leg fingerprints)
func (o *Opportunity) ComputeFingerprint() string {
	fps := make([]string, 0, len(o.Legs))
	for i := range o.Legs {
		fps = append(fps, o.Legs[i].Fingerprint)
	}
	sort.Strings(fps)
	return Fingerprint(append([]string{o.Match.ID}, fps...)...)
}

// Validate checks the per-kind invariants
func (o *Opportunity) Validate() error {
	if len(o.Legs) == 0 {
		return fmt.Errorf("opportunity has no legs")
	}
	for i := range o.Legs {
		if err := o.Legs[i].Validate(); err != nil {
			return err
		}
	}

	switch o.Kind {
	case KindArbitrage, KindMiddle:
		if len(o.Legs) != 2 {
			return fmt.Errorf("%s requires exactly 2 legs, got %d", o.Kind, len(o.Legs))
		}
		if !o.Legs[0].SelectionType.Opposes(o.Legs[1].SelectionType) {
			return fmt.Errorf("%s legs %s and %s are not opposing sides", o.Kind, o.Legs[0].SelectionType, o.Legs[1].SelectionType)
		}
		if o.Kind == KindArbitrage {
			inv := 1/o.Legs[0].DecimalOdds + 1/o.Legs[1].DecimalOdds
			if inv >= 1.0 {
				return fmt.Errorf("arbitrage implied probabilities sum to %.4f (>= 1.0)", inv)
			}
		}
	case KindPositiveEV:
	default:
		return fmt.Errorf("invalid opportunity kind %q", o.Kind)
	}

	return nil
}

// IsExpired reports whether the match has started
func (o *Opportunity) IsExpired(now time.Time) bool {
	return !now.Before(o.Match.CommenceTime)
}
