package models

import "time"

// OutcomeTemplate is the role a leg plays inside a correlation pattern
type OutcomeTemplate string

const (
	OutcomeFavoriteSpread OutcomeTemplate = "favorite_spread"
	OutcomeUnderdogSpread OutcomeTemplate = "underdog_spread"
	OutcomeFavoriteML     OutcomeTemplate = "favorite_ml"
	OutcomeUnderdogML     OutcomeTemplate = "underdog_ml"
	OutcomeOverTotal      OutcomeTemplate = "over_total"
	OutcomeUnderTotal     OutcomeTemplate = "under_total"
	OutcomePlayerOver     OutcomeTemplate = "player_over"
	OutcomePlayerUnder    OutcomeTemplate = "player_under"
	OutcomeUnclassified   OutcomeTemplate = ""
)

// PatternCondition gates a pattern on the lines of the legs it binds
type PatternCondition struct {
	MinFavoriteSpread *float64 `json:"min_favorite_spread,omitempty" yaml:"min_favorite_spread,omitempty"`
	MinTotal          *float64 `json:"min_total,omitempty" yaml:"min_total,omitempty"`
	MaxTotal          *float64 `json:"max_total,omitempty" yaml:"max_total,omitempty"`
	// Tags must all appear among the player-prop stats of the combination
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// CorrelationPattern is a known statistical dependency between outcomes
type CorrelationPattern struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Sport           string            `json:"sport" yaml:"sport"`
	Condition       PatternCondition  `json:"condition" yaml:"condition"`
	Outcomes        []OutcomeTemplate `json:"outcomes" yaml:"outcomes"`
	IndependentProb float64           `json:"independent_prob" yaml:"independent_prob"`
	JointProb       float64           `json:"joint_prob" yaml:"joint_prob"`
	SampleSize      int               `json:"sample_size" yaml:"sample_size"`
	MinEdge         float64           `json:"min_edge" yaml:"min_edge"` // percent
	Source          string            `json:"source" yaml:"source"`
	CreatedAt       time.Time         `json:"created_at" yaml:"-"`
}

// Strength is p_joint / p_independent clamped to at least 1.0
func (p *CorrelationPattern) Strength() float64 {
	if p.IndependentProb <= 0 {
		return 1.0
	}
	s := p.JointProb / p.IndependentProb
	if s < 1.0 {
		return 1.0
	}
	return s
}
