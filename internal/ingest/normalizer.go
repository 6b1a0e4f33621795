package ingest

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/bookmaker"
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/pkg/oddsmath"
)

// leagueSports maps league codes to the sport carried on opportunities
var leagueSports = map[string]string{
	"NBA":        "basketball",
	"WNBA":       "basketball",
	"NCAAB":      "basketball",
	"EUROLEAGUE": "basketball",
	"NFL":        "americanfootball",
	"NCAAF":      "americanfootball",
	"NHL":        "icehockey",
	"KHL":        "icehockey",
	"MLB":        "baseball",
	"EPL":        "soccer",
	"MLS":        "soccer",
	"LA LIGA":    "soccer",
	"SERIE A":    "soccer",
	"BUNDESLIGA": "soccer",
	"UCL":        "soccer",
	"ATP":        "tennis",
	"WTA":        "tennis",
	"UFC":        "mma",
}

var (
	directionRe = regexp.MustCompile(`(?i)^(.*?)\b(over|under|o|u)\s*(\d+(?:\.\d+)?)\s*(.*)$`)
	handicapRe  = regexp.MustCompile(`\s*([+-]\d+(?:\.\d+)?|\d+\.\d+)\s*$`)
	statTrimRe  = regexp.MustCompile(`(?i)\b(player|props?|o/u|over/under|total)\b`)
)

// NormalizerConfig holds normalization policy
type NormalizerConfig struct {
	StrictBookmakers    bool
	DefaultEventHorizon time.Duration
}

// Normalizer turns structured, text and OCR drops into opportunities
type Normalizer struct {
	config NormalizerConfig
	books  bookmaker.Resolver
	logger zerolog.Logger
}

// NewNormalizer creates a new normalizer
func NewNormalizer(config NormalizerConfig, books bookmaker.Resolver, logger zerolog.Logger) *Normalizer {
	if config.DefaultEventHorizon <= 0 {
		config.DefaultEventHorizon = 12 * time.Hour
	}
	return &Normalizer{
		config: config,
		books:  books,
		logger: logger.With().Str("component", "normalizer").Logger(),
	}
}

// classifiedLeg is a raw leg with its side of the market resolved
type classifiedLeg struct {
	raw       rawLeg
	selection models.SelectionType
	line      *float64
	player    string
	stat      string
}

// Normalize parses a drop and builds an unsaved opportunity. Deduplication
// is the caller's concern.
func (n *Normalizer) Normalize(payload *models.DropPayload, now time.Time) Result {
	var d draft
	if payload.IsText() {
		source := payload.Source
		if source != SourceOCR {
			source = SourceText
		}
		d = parseText(payload.Subject, payload.Body, source)
	} else {
		d = fromPayload(payload)
	}

	result := n.build(d, now)
	if result.Status == StatusRejected {
		n.logger.Warn().
			Str("event_id", d.EventID).
			Str("source", d.Source).
			Str("reason", result.Reason).
			Msg("drop rejected")
	}
	return result
}

func (n *Normalizer) build(d draft, now time.Time) Result {
	home, away := d.Home, d.Away
	if home == "" || away == "" {
		var ok bool
		home, away, ok = splitMatch(d.Match)
		if !ok {
			return Rejected("missing match")
		}
	}
	if len(d.Legs) == 0 {
		return Rejected("no legs found")
	}

	marketType := models.ClassifyMarket(d.Market)

	classified := make([]classifiedLeg, 0, len(d.Legs))
	for _, raw := range d.Legs {
		c, ok := classifySelection(raw, home, away, marketType)
		if !ok {
			n.logger.Debug().Str("selection", raw.Selection).Msg("skipping unrecognized selection")
			continue
		}
		classified = append(classified, c)
	}
	if len(classified) == 0 {
		return Rejected("no recognizable selections")
	}

	kind, err := n.kindOf(d.Kind, classified)
	if err != nil {
		return Rejected("%v", err)
	}

	ocr := d.Source == SourceOCR
	known := 0
	kept := classified[:0]
	books := make([]string, 0, len(classified))
	prices := make([]float64, 0, len(classified))
	americans := make([]int, 0, len(classified))
	for _, c := range classified {
		book := n.books.Resolve(c.raw.Book, ocr)
		if book == models.UnknownSportsbook {
			if n.config.StrictBookmakers {
				n.logger.Info().Str("bookmaker", c.raw.Book).Msg("dropping leg with unknown bookmaker")
				continue
			}
		} else {
			known++
		}

		dec, american, ok := price(c.raw)
		if !ok {
			n.logger.Info().
				Str("selection", c.raw.Selection).
				Float64("decimal", c.raw.Decimal).
				Int("american", c.raw.American).
				Msg("dropping leg with odds out of range")
			continue
		}

		kept = append(kept, c)
		books = append(books, book)
		prices = append(prices, dec)
		americans = append(americans, american)
	}
	if n.config.StrictBookmakers && known == 0 {
		return Rejected("all bookmakers unknown")
	}
	if len(kept) < kind.RequiredLegs() {
		return Rejected("%s requires %d legs, got %d", kind, kind.RequiredLegs(), len(kept))
	}

	sport, league := inferSport(d.Sport, d.League)
	commence := now.Add(n.config.DefaultEventHorizon)
	if d.Commence != nil {
		commence = d.Commence.UTC()
	}
	match := models.Match{
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: commence,
	}
	match.ID = models.Fingerprint("match", teamKey(home), teamKey(away), match.Date())

	edge := 0.0
	switch {
	case d.Percent != nil:
		edge = *d.Percent
	case kind == models.KindArbitrage:
		edge = oddsmath.ArbitragePercent(prices...)
	}

	opp := &models.Opportunity{
		ID:          uuid.New().String(),
		EventID:     d.EventID,
		Kind:        kind,
		Sport:       sport,
		League:      league,
		Match:       match,
		Market:      buildMarket(marketType, d.Market, kept),
		EdgePercent: edge,
		Source:      d.Source,
		IngestedAt:  now,
	}

	for i, c := range kept {
		leg := models.Leg{
			OpportunityID: opp.ID,
			Sportsbook:    books[i],
			Selection:     c.raw.Selection,
			SelectionType: c.selection,
			Line:          c.line,
			DecimalOdds:   prices[i],
			AmericanOdds:  americans[i],
			PlayerName:    c.player,
			DeepLink:      c.raw.Link,
			Sport:         opp.Sport,
			League:        opp.League,
			Market:        opp.Market,
			Match:         opp.Match,
			Edge:          opp.EdgePercent,
		}
		leg.APISupported = n.books.APISupported(leg.Sportsbook) && !leg.Market.IsPlayerProp()
		leg.Fingerprint = leg.ComputeFingerprint()
		opp.Legs = append(opp.Legs, leg)
	}
	opp.Fingerprint = opp.ComputeFingerprint()

	if err := opp.Validate(); err != nil {
		return Rejected("%v", err)
	}
	return Accepted(opp)
}

// kindOf honours an explicit kind, otherwise infers one from leg shape
func (n *Normalizer) kindOf(explicit string, legs []classifiedLeg) (models.OpportunityKind, error) {
	if explicit != "" {
		kind, err := models.ParseOpportunityKind(explicit)
		if err != nil {
			return "", err
		}
		if !kind.IsSharp() {
			return "", fmt.Errorf("drops cannot be of kind %s", kind)
		}
		return kind, nil
	}

	switch {
	case len(legs) == 1 || len(legs) > 2:
		return models.KindPositiveEV, nil
	case legs[0].selection.Opposes(legs[1].selection) && linesDiffer(legs[0].line, legs[1].line):
		return models.KindMiddle, nil
	default:
		return models.KindArbitrage, nil
	}
}

func linesDiffer(a, b *float64) bool {
	if a == nil || b == nil {
		return false
	}
	return math.Abs(math.Abs(*a)-math.Abs(*b)) > 1e-9
}

// price converts a raw leg to decimal and american odds
func price(raw rawLeg) (float64, int, bool) {
	if raw.American != 0 {
		dec, err := oddsmath.AmericanToDecimalFloat(raw.American)
		if err != nil {
			return 0, 0, false
		}
		return dec, raw.American, true
	}
	if raw.Decimal <= 1.0 {
		return 0, 0, false
	}
	american, err := oddsmath.DecimalToAmerican(raw.Decimal)
	if err != nil {
		return 0, 0, false
	}
	return raw.Decimal, american, true
}

// classifySelection decides which side of the market a leg takes
func classifySelection(raw rawLeg, home, away string, marketType models.MarketType) (classifiedLeg, bool) {
	c := classifiedLeg{raw: raw, player: raw.Player}
	sel := strings.TrimSpace(raw.Selection)
	if sel == "" {
		return c, false
	}

	if m := directionRe.FindStringSubmatch(sel); m != nil {
		line, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return c, false
		}
		c.line = &line
		subject := strings.TrimSpace(m[1])
		over := strings.HasPrefix(strings.ToLower(m[2]), "o")

		isTeam := subject != "" && (models.TeamsMatch(subject, home) || models.TeamsMatch(subject, away))
		if marketType == models.MarketPlayerProp || raw.Player != "" || (subject != "" && !isTeam) {
			c.selection = models.SelectionPlayerProp
			if c.player == "" {
				c.player = subject
			}
			c.stat = strings.ToLower(strings.TrimSpace(m[4]))
			return c, c.player != ""
		}
		if over {
			c.selection = models.SelectionOver
		} else {
			c.selection = models.SelectionUnder
		}
		return c, true
	}

	team := sel
	if m := handicapRe.FindStringSubmatchIndex(sel); m != nil && marketType != models.MarketMoneyline {
		line, err := strconv.ParseFloat(sel[m[2]:m[3]], 64)
		if err == nil {
			c.line = &line
			team = strings.TrimSpace(sel[:m[0]])
		}
	}
	team = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(team, " ML"), " ml"))

	side, ok := sideOf(team, home, away)
	if !ok {
		return c, false
	}
	switch {
	case c.line != nil && side == "home":
		c.selection = models.SelectionHomeSpread
	case c.line != nil:
		c.selection = models.SelectionAwaySpread
	case side == "home":
		c.selection = models.SelectionHomeML
	default:
		c.selection = models.SelectionAwayML
	}
	return c, true
}

// sideOf matches a team name to home or away. When both fuzzy-match the
// name contained in the other wins.
func sideOf(team, home, away string) (string, bool) {
	h := models.TeamsMatch(team, home)
	a := models.TeamsMatch(team, away)
	switch {
	case h && !a:
		return "home", true
	case a && !h:
		return "away", true
	case h && a:
		lt := strings.ToLower(team)
		if strings.Contains(strings.ToLower(home), lt) || strings.Contains(lt, strings.ToLower(home)) {
			return "home", true
		}
		if strings.Contains(strings.ToLower(away), lt) || strings.Contains(lt, strings.ToLower(away)) {
			return "away", true
		}
	}
	return "", false
}

// buildMarket derives the opportunity market from the label and the first leg
func buildMarket(marketType models.MarketType, label string, legs []classifiedLeg) models.Market {
	first := legs[0]
	if first.selection == models.SelectionPlayerProp {
		marketType = models.MarketPlayerProp
	}
	if marketType == "" {
		switch first.selection {
		case models.SelectionOver, models.SelectionUnder:
			marketType = models.MarketTotal
		case models.SelectionHomeSpread, models.SelectionAwaySpread:
			marketType = models.MarketSpread
		default:
			marketType = models.MarketMoneyline
		}
	}

	m := models.Market{Type: marketType, Label: label}
	switch marketType {
	case models.MarketTotal:
		m.Line = first.line
	case models.MarketSpread:
		if first.line != nil {
			abs := math.Abs(*first.line)
			m.Line = &abs
		}
	case models.MarketPlayerProp:
		m.Line = first.line
		m.Player = first.player
		m.Stat = first.stat
		if m.Stat == "" {
			m.Stat = strings.ToLower(strings.Join(strings.Fields(statTrimRe.ReplaceAllString(label, " ")), " "))
		}
	}
	return m
}

// inferSport fills the sport from the league code when absent
func inferSport(sport, league string) (string, string) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	league = strings.TrimSpace(league)
	if sport == "" {
		sport = leagueSports[strings.ToUpper(league)]
	}
	return sport, league
}

// teamKey reduces a team name to its last significant token so that
// "Raptors" and "Toronto Raptors" share a match id.
func teamKey(name string) string {
	tokens := models.TeamTokens(name)
	if len(tokens) == 0 {
		return strings.ToLower(strings.TrimSpace(name))
	}
	return tokens[len(tokens)-1]
}
