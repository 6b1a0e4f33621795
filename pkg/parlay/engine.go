package parlay

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
	"github.com/cypherlabdev/parlay-intel-service/pkg/oddsmath"
)

// Gate failures returned by Qualify
var (
	ErrLegCount      = errors.New("leg count outside strategy bounds")
	ErrMixedBooks    = errors.New("legs span more than one sportsbook")
	ErrUnknownBook   = errors.New("leg sportsbook is unknown")
	ErrSameMatch     = errors.New("two legs reference the same match")
	ErrDateMismatch  = errors.New("legs do not share a match date")
	ErrOddsBounds    = errors.New("combined odds outside strategy bounds")
	ErrNonPositiveEV = errors.New("edge is not positive")
)

// EngineConfig holds generation parameters
type EngineConfig struct {
	MaxLegsPerBucket     int     // K, top legs kept per sportsbook bucket
	MaxParlaysPerSlot    int     // cap per (bucket, strategy, leg count)
	TrueProbabilitySlope float64 // p = 0.5 + edge/100 × slope
	HighEVPoolSize       int     // global top-N legs HIGH_EV draws from
}

// DefaultEngineConfig returns the stock generation parameters
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxLegsPerBucket:     10,
		MaxParlaysPerSlot:    5,
		TrueProbabilitySlope: 0.3,
		HighEVPoolSize:       20,
	}
}

// Evaluation is the pricing of one leg combination
type Evaluation struct {
	CombinedOdds     float64
	JointProbability float64
	Strength         float64
	Edge             float64 // fraction, 0.05 = 5%
	PatternID        string
}

// Engine synthesizes single-book parlays from the opportunity pool
type Engine struct {
	config  EngineConfig
	catalog *CorrelationCatalog
	logger  zerolog.Logger
	now     func() time.Time
}

// NewEngine creates a new parlay engine
func NewEngine(config EngineConfig, catalog *CorrelationCatalog, logger zerolog.Logger) *Engine {
	defaults := DefaultEngineConfig()
	if config.MaxLegsPerBucket <= 0 {
		config.MaxLegsPerBucket = defaults.MaxLegsPerBucket
	}
	if config.MaxParlaysPerSlot <= 0 {
		config.MaxParlaysPerSlot = defaults.MaxParlaysPerSlot
	}
	if config.TrueProbabilitySlope <= 0 {
		config.TrueProbabilitySlope = defaults.TrueProbabilitySlope
	}
	if config.HighEVPoolSize <= 0 {
		config.HighEVPoolSize = defaults.HighEVPoolSize
	}
	if catalog == nil {
		catalog = NewCorrelationCatalog()
	}

	return &Engine{
		config:  config,
		catalog: catalog,
		logger:  logger.With().Str("component", "parlay_engine").Logger(),
		now:     time.Now,
	}
}

// Catalog returns the correlation catalog used by the engine
func (e *Engine) Catalog() *CorrelationCatalog {
	return e.catalog
}

// TrueProbability estimates a leg's win probability from its edge in percent
func (e *Engine) TrueProbability(edgePercent float64) float64 {
	p := 0.5 + edgePercent/100*e.config.TrueProbabilitySlope
	if p < 0.01 {
		return 0.01
	}
	if p > 0.99 {
		return 0.99
	}
	return p
}

// Price computes combined odds, joint probability and edge for a fixed strength
func (e *Engine) Price(legs []models.Leg, strength float64) Evaluation {
	if strength < 1.0 {
		strength = 1.0
	}
	prices := make([]float64, len(legs))
	joint := 1.0
	for i := range legs {
		prices[i] = legs[i].DecimalOdds
		joint *= e.TrueProbability(legs[i].Edge)
	}
	joint *= strength
	combined := oddsmath.Product(prices...)

	return Evaluation{
		CombinedOdds:     combined,
		JointProbability: joint,
		Strength:         strength,
		Edge:             oddsmath.Edge(combined, joint),
	}
}

// Evaluate prices legs with the correlation uplift of the best matching
// pattern. A pattern whose min-edge gate is not met is ignored.
func (e *Engine) Evaluate(legs []models.Leg) Evaluation {
	if pattern := e.catalog.Match(legs); pattern != nil {
		ev := e.Price(legs, pattern.Strength())
		if ev.Edge*100 >= pattern.MinEdge {
			ev.PatternID = pattern.ID
			return ev
		}
	}
	return e.Price(legs, 1.0)
}

// Qualify runs every generation gate for a leg combination under a strategy
// and returns its evaluation when all pass.
func (e *Engine) Qualify(spec StrategySpec, legs []models.Leg) (Evaluation, error) {
	if !spec.AcceptsLegCount(len(legs)) {
		return Evaluation{}, ErrLegCount
	}

	book := legs[0].Sportsbook
	matches := make(map[string]struct{}, len(legs))
	date := legs[0].Match.Date()
	for i := range legs {
		if legs[i].Sportsbook == models.UnknownSportsbook || legs[i].Sportsbook == "" {
			return Evaluation{}, ErrUnknownBook
		}
		if legs[i].Sportsbook != book {
			return Evaluation{}, ErrMixedBooks
		}
		if _, dup := matches[legs[i].Match.ID]; dup {
			return Evaluation{}, ErrSameMatch
		}
		matches[legs[i].Match.ID] = struct{}{}
		if spec.SameDay && legs[i].Match.Date() != date {
			return Evaluation{}, ErrDateMismatch
		}
	}

	ev := e.Evaluate(legs)
	if !spec.AcceptsOdds(ev.CombinedOdds) {
		return ev, ErrOddsBounds
	}
	if ev.Edge <= 0 {
		return ev, ErrNonPositiveEV
	}
	return ev, nil
}

// Assemble builds a parlay from qualified legs. It panics when the result
// violates a parlay invariant.
func (e *Engine) Assemble(spec StrategySpec, legs []models.Leg, ev Evaluation) *models.Parlay {
	now := e.now().UTC()
	own := make([]models.Leg, len(legs))
	copy(own, legs)

	p := &models.Parlay{
		ID:                  uuid.New().String(),
		Legs:                own,
		Sportsbook:          own[0].Sportsbook,
		CombinedOdds:        ev.CombinedOdds,
		PatternID:           ev.PatternID,
		CorrelationStrength: ev.Strength,
		Edge:                ev.Edge,
		Strategy:            spec.Strategy,
		RiskProfile:         spec.Profile,
		RiskLevel:           spec.Level,
		Status:              models.ParlayActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	p.Fingerprint = p.ComputeFingerprint()

	if err := CheckInvariants(p); err != nil {
		panic(fmt.Sprintf("parlay %s: invariant violated: %v", p.Fingerprint, err))
	}
	return p
}

// CheckInvariants verifies a parlay against its structural rules, its
// strategy bounds and a positive edge.
func CheckInvariants(p *models.Parlay) error {
	if err := p.Validate(); err != nil {
		return err
	}
	spec, ok := Lookup(p.Strategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q", p.Strategy)
	}
	if !spec.AcceptsLegCount(len(p.Legs)) {
		return fmt.Errorf("%w: %d legs for %s", ErrLegCount, len(p.Legs), p.Strategy)
	}
	if !spec.AcceptsOdds(p.CombinedOdds) {
		return fmt.Errorf("%w: %.4f for %s", ErrOddsBounds, p.CombinedOdds, p.Strategy)
	}
	if p.Edge <= 0 {
		return ErrNonPositiveEV
	}
	return nil
}

// FlattenLegs turns the pool into candidate legs carrying their opportunity
// context. Invalid legs and legs at unknown books are skipped.
func (e *Engine) FlattenLegs(pool []*models.Opportunity) []models.Leg {
	now := e.now()
	byFingerprint := make(map[string]int)
	legs := make([]models.Leg, 0, len(pool)*2)

	for _, opp := range pool {
		if opp == nil || opp.Expired || opp.IsExpired(now) {
			continue
		}
		for i := range opp.Legs {
			leg := opp.Legs[i]
			leg.OpportunityID = opp.ID
			leg.Sport = opp.Sport
			leg.League = opp.League
			leg.Match = opp.Match
			if leg.Market.Type == "" {
				leg.Market = opp.Market
			}
			if leg.Edge == 0 {
				leg.Edge = opp.EdgePercent
			}
			if err := leg.Validate(); err != nil {
				e.logger.Debug().Err(err).Str("opportunity_id", opp.ID).Msg("skipping invalid leg")
				continue
			}
			if leg.Sportsbook == models.UnknownSportsbook {
				continue
			}
			if leg.Fingerprint == "" {
				leg.Fingerprint = leg.ComputeFingerprint()
			}

			if idx, seen := byFingerprint[leg.Fingerprint]; seen {
				if leg.Edge > legs[idx].Edge {
					legs[idx] = leg
				}
				continue
			}
			byFingerprint[leg.Fingerprint] = len(legs)
			legs = append(legs, leg)
		}
	}
	return legs
}

// Generate runs one deterministic generation pass over a pool snapshot
func (e *Engine) Generate(pool []*models.Opportunity) []*models.Parlay {
	legs := e.FlattenLegs(pool)
	sortByEdge(legs)

	topEdge := make(map[string]struct{}, e.config.HighEVPoolSize)
	for i := 0; i < len(legs) && i < e.config.HighEVPoolSize; i++ {
		topEdge[legs[i].Fingerprint] = struct{}{}
	}

	buckets := make(map[string][]models.Leg)
	for _, leg := range legs {
		buckets[leg.Sportsbook] = append(buckets[leg.Sportsbook], leg)
	}
	books := make([]string, 0, len(buckets))
	for book := range buckets {
		books = append(books, book)
	}
	sort.Strings(books)

	claimed := make(map[string]struct{})
	var out []*models.Parlay

	for _, spec := range Catalog {
		for _, book := range books {
			candidates := buckets[book]
			if spec.TopEdgeOnly {
				filtered := make([]models.Leg, 0, len(candidates))
				for _, leg := range candidates {
					if _, ok := topEdge[leg.Fingerprint]; ok {
						filtered = append(filtered, leg)
					}
				}
				candidates = filtered
			}
			if len(candidates) < models.MinParlayLegs {
				continue
			}
			if len(candidates) > e.config.MaxLegsPerBucket {
				candidates = candidates[:e.config.MaxLegsPerBucket]
			}

			for n := spec.MinLegs; n <= spec.MaxLegs && n <= len(candidates); n++ {
				produced := 0
				combo := make([]models.Leg, n)
				forEachCombination(len(candidates), n, func(idx []int) bool {
					for i, j := range idx {
						combo[i] = candidates[j]
					}
					key := legSetKey(combo)
					if _, taken := claimed[key]; taken {
						return true
					}
					ev, err := e.Qualify(spec, combo)
					if err != nil {
						return true
					}
					claimed[key] = struct{}{}
					out = append(out, e.Assemble(spec, combo, ev))
					produced++
					return produced < e.config.MaxParlaysPerSlot
				})
			}
		}
	}

	seen := make(map[string]struct{}, len(out))
	unique := out[:0]
	for _, p := range out {
		if _, dup := seen[p.Fingerprint]; dup {
			continue
		}
		seen[p.Fingerprint] = struct{}{}
		unique = append(unique, p)
	}

	e.logger.Debug().
		Int("legs", len(legs)).
		Int("buckets", len(books)).
		Int("parlays", len(unique)).
		Msg("generation pass complete")

	return unique
}

func sortByEdge(legs []models.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		if legs[i].Edge != legs[j].Edge {
			return legs[i].Edge > legs[j].Edge
		}
		return legs[i].Fingerprint < legs[j].Fingerprint
	})
}

func legSetKey(legs []models.Leg) string {
	fps := make([]string, len(legs))
	for i := range legs {
		fps[i] = legs[i].Fingerprint
	}
	sort.Strings(fps)
	return strings.Join(fps, "|")
}

// forEachCombination visits every k-subset of [0,n) in lexicographic order
// until fn returns false.
func forEachCombination(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
