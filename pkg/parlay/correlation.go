package parlay

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// SeedPatterns returns the built-in correlation catalog
func SeedPatterns() []models.CorrelationPattern {
	minSpread := 7.5
	minTotal := 225.0
	return []models.CorrelationPattern{
		{
			ID:    "nba-fav-cover-over-star-points",
			Name:  "Favorite covers a big spread in a high total game, star scores",
			Sport: "NBA",
			Condition: models.PatternCondition{
				MinFavoriteSpread: &minSpread,
				MinTotal:          &minTotal,
				Tags:              []string{"points"},
			},
			Outcomes: []models.OutcomeTemplate{
				models.OutcomeFavoriteSpread,
				models.OutcomeOverTotal,
				models.OutcomePlayerOver,
			},
			IndependentProb: 0.125,
			JointProb:       0.16375,
			Source:          "seed",
		},
	}
}

// CorrelationCatalog is the process-wide set of known patterns
type CorrelationCatalog struct {
	mu       sync.RWMutex
	patterns []models.CorrelationPattern
}

// NewCorrelationCatalog creates a catalog holding the given patterns
func NewCorrelationCatalog(patterns ...models.CorrelationPattern) *CorrelationCatalog {
	c := &CorrelationCatalog{}
	for _, p := range patterns {
		_ = c.Add(p)
	}
	return c
}

// Add appends a pattern, replacing any pattern with the same id
func (c *CorrelationCatalog) Add(p models.CorrelationPattern) error {
	if err := validatePattern(&p); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.patterns {
		if c.patterns[i].ID == p.ID {
			c.patterns[i] = p
			return nil
		}
	}
	c.patterns = append(c.patterns, p)
	return nil
}

// Patterns returns a snapshot of the catalog
func (c *CorrelationCatalog) Patterns() []models.CorrelationPattern {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CorrelationPattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Match returns the strongest pattern whose sport, condition and outcome
// templates all fit the legs, or nil.
func (c *CorrelationCatalog) Match(legs []models.Leg) *models.CorrelationPattern {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var best *models.CorrelationPattern
	for i := range c.patterns {
		p := &c.patterns[i]
		if !patternMatches(p, legs) {
			continue
		}
		if best == nil || p.Strength() > best.Strength() ||
			(p.Strength() == best.Strength() && p.ID < best.ID) {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	matched := *best
	return &matched
}

type catalogFile struct {
	Patterns []models.CorrelationPattern `yaml:"patterns"`
}

// LoadPatternsFile reads supplemental patterns from a YAML file
func LoadPatternsFile(path string) ([]models.CorrelationPattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read correlation catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse correlation catalog: %w", err)
	}

	for i := range file.Patterns {
		if err := validatePattern(&file.Patterns[i]); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		if file.Patterns[i].Source == "" {
			file.Patterns[i].Source = "file"
		}
	}
	return file.Patterns, nil
}

func validatePattern(p *models.CorrelationPattern) error {
	if p.ID == "" {
		return fmt.Errorf("correlation pattern id is required")
	}
	if len(p.Outcomes) < models.MinParlayLegs {
		return fmt.Errorf("correlation pattern %s needs at least %d outcomes", p.ID, models.MinParlayLegs)
	}
	if p.IndependentProb <= 0 || p.IndependentProb > 1 || p.JointProb <= 0 || p.JointProb > 1 {
		return fmt.Errorf("correlation pattern %s has probabilities outside (0,1]", p.ID)
	}
	return nil
}

// ClassifyOutcome maps a leg to the role it can play in a pattern
func ClassifyOutcome(leg *models.Leg) models.OutcomeTemplate {
	switch leg.SelectionType {
	case models.SelectionHomeSpread, models.SelectionAwaySpread:
		if leg.Line == nil || *leg.Line == 0 {
			return models.OutcomeUnclassified
		}
		if *leg.Line < 0 {
			return models.OutcomeFavoriteSpread
		}
		return models.OutcomeUnderdogSpread
	case models.SelectionHomeML, models.SelectionAwayML:
		if leg.DecimalOdds < 2.0 {
			return models.OutcomeFavoriteML
		}
		return models.OutcomeUnderdogML
	case models.SelectionOver:
		return models.OutcomeOverTotal
	case models.SelectionUnder:
		return models.OutcomeUnderTotal
	case models.SelectionPlayerProp:
		sel := strings.ToLower(leg.Selection)
		switch {
		case strings.Contains(sel, "under"):
			return models.OutcomePlayerUnder
		case strings.Contains(sel, "over"):
			return models.OutcomePlayerOver
		}
	}
	return models.OutcomeUnclassified
}

func patternMatches(p *models.CorrelationPattern, legs []models.Leg) bool {
	if len(legs) != len(p.Outcomes) {
		return false
	}
	// patterns describe dependencies inside one game
	for i := range legs {
		if legs[i].Match.ID != legs[0].Match.ID {
			return false
		}
	}

	got := make([]string, 0, len(legs))
	for i := range legs {
		if !strings.EqualFold(legs[i].Sport, p.Sport) && !strings.EqualFold(legs[i].League, p.Sport) {
			return false
		}
		t := ClassifyOutcome(&legs[i])
		if t == models.OutcomeUnclassified {
			return false
		}
		got = append(got, string(t))
	}
	want := make([]string, 0, len(p.Outcomes))
	for _, o := range p.Outcomes {
		want = append(want, string(o))
	}
	sort.Strings(got)
	sort.Strings(want)
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}

	return conditionHolds(p.Condition, legs)
}

func conditionHolds(cond models.PatternCondition, legs []models.Leg) bool {
	spread, hasSpread := 0.0, false
	total, hasTotal := 0.0, false
	stats := make([]string, 0, len(legs))

	for i := range legs {
		leg := &legs[i]
		switch leg.SelectionType {
		case models.SelectionHomeSpread, models.SelectionAwaySpread:
			if leg.Line != nil {
				spread, hasSpread = math.Abs(*leg.Line), true
			}
		case models.SelectionOver, models.SelectionUnder:
			if leg.Line != nil {
				total, hasTotal = *leg.Line, true
			}
		case models.SelectionPlayerProp:
			stats = append(stats, strings.ToLower(leg.Market.Stat+" "+leg.Selection))
		}
	}

	if cond.MinFavoriteSpread != nil && (!hasSpread || spread < *cond.MinFavoriteSpread) {
		return false
	}
	if cond.MinTotal != nil && (!hasTotal || total < *cond.MinTotal) {
		return false
	}
	if cond.MaxTotal != nil && (!hasTotal || total > *cond.MaxTotal) {
		return false
	}
	for _, tag := range cond.Tags {
		tag = strings.ToLower(tag)
		found := false
		for _, s := range stats {
			if strings.Contains(s, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
