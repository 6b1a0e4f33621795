package models

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Strategy is a parlay construction recipe
type Strategy string

const (
	StrategySameDaySafe        Strategy = "SAME_DAY_SAFE"
	StrategySameDayBalanced    Strategy = "SAME_DAY_BALANCED"
	StrategySameDayAggressive  Strategy = "SAME_DAY_AGGRESSIVE"
	StrategyCrossDaySafe       Strategy = "CROSS_DAY_SAFE"
	StrategyCrossDayBalanced   Strategy = "CROSS_DAY_BALANCED"
	StrategyCrossDayAggressive Strategy = "CROSS_DAY_AGGRESSIVE"
	StrategyLottery            Strategy = "LOTTERY"
	StrategyHighEV             Strategy = "HIGH_EV"
)

// RiskProfile is the user-facing bucket a parlay is offered under
type RiskProfile string

const (
	ProfileConservative RiskProfile = "CONSERVATIVE"
	ProfileBalanced     RiskProfile = "BALANCED"
	ProfileAggressive   RiskProfile = "AGGRESSIVE"
	ProfileLottery      RiskProfile = "LOTTERY"
)

// ParseRiskProfile parses a profile name case-insensitively
func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(strings.ToUpper(strings.TrimSpace(s))) {
	case ProfileConservative:
		return ProfileConservative, nil
	case ProfileBalanced:
		return ProfileBalanced, nil
	case ProfileAggressive:
		return ProfileAggressive, nil
	case ProfileLottery:
		return ProfileLottery, nil
	}
	return "", fmt.Errorf("unknown risk profile %q", s)
}

// RiskLevel classifies a parlay's variance
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// ParlayStatus is the lifecycle state of a parlay
type ParlayStatus string

const (
	ParlayActive   ParlayStatus = "active"
	ParlayExpired  ParlayStatus = "expired"
	ParlayReplaced ParlayStatus = "replaced"
)

const (
	MinParlayLegs = 2
	MaxParlayLegs = 6
)

// Parlay is a multi-leg bet placeable at a single sportsbook
type Parlay struct {
	ID                  string       `json:"id"`
	Fingerprint         string       `json:"fingerprint"`
	Legs                []Leg        `json:"legs"`
	Sportsbook          string       `json:"sportsbook"`
	CombinedOdds        float64      `json:"combined_odds"`
	PatternID           string       `json:"pattern_id,omitempty"`
	CorrelationStrength float64      `json:"correlation_strength"`
	Edge                float64      `json:"edge"`
	Strategy            Strategy     `json:"strategy"`
	RiskProfile         RiskProfile  `json:"risk_profile"`
	RiskLevel           RiskLevel    `json:"risk_level"`
	Status              ParlayStatus `json:"status"`
	ReplacedBy          string       `json:"replaced_by,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// LegFingerprints returns the sorted leg fingerprints
func (p *Parlay) LegFingerprints() []string {
	fps := make([]string, 0, len(p.Legs))
	for i := range p.Legs {
		fps = append(fps, p.Legs[i].Fingerprint)
	}
	sort.Strings(fps)
	return fps
}

// ComputeFingerprint is hash(sorted leg fingerprints, strategy)
func (p *Parlay) ComputeFingerprint() string {
	return Fingerprint(append(p.LegFingerprints(), string(p.Strategy))...)
}

// Validate checks the structural invariants every stored parlay must hold:
// leg count, single sportsbook, distinct matches and the combined odds product.
func (p *Parlay) Validate() error {
	n := len(p.Legs)
	if n < MinParlayLegs || n > MaxParlayLegs {
		return fmt.Errorf("parlay has %d legs, want %d-%d", n, MinParlayLegs, MaxParlayLegs)
	}

	matches := make(map[string]struct{}, n)
	product := 1.0
	for i := range p.Legs {
		leg := &p.Legs[i]
		if leg.Sportsbook != p.Sportsbook {
			return fmt.Errorf("leg %d at %q, parlay sportsbook is %q", i, leg.Sportsbook, p.Sportsbook)
		}
		if _, dup := matches[leg.Match.ID]; dup {
			return fmt.Errorf("match %q appears twice", leg.Match.ID)
		}
		matches[leg.Match.ID] = struct{}{}
		if leg.DecimalOdds <= 1.0 {
			return fmt.Errorf("leg %d has decimal odds %.4f", i, leg.DecimalOdds)
		}
		product *= leg.DecimalOdds
	}

	if math.Abs(product-p.CombinedOdds) > 1e-9 {
		return fmt.Errorf("combined odds %.10f differ from leg product %.10f", p.CombinedOdds, product)
	}
	if p.CorrelationStrength < 1.0 {
		return fmt.Errorf("correlation strength %.4f below 1.0", p.CorrelationStrength)
	}
	return nil
}

// HasMatch reports whether any leg belongs to the given match
func (p *Parlay) HasMatch(matchID string) bool {
	for i := range p.Legs {
		if p.Legs[i].Match.ID == matchID {
			return true
		}
	}
	return false
}

// AdvisoryRequest selects the parlays offered to one user
type AdvisoryRequest struct {
	UserID      string
	Profiles    []RiskProfile
	Sportsbooks []string
	Limit       int
}
