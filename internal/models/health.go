package models

import "time"

// HealthLevel is the book health risk band
type HealthLevel string

const (
	HealthSafe     HealthLevel = "SAFE"
	HealthMonitor  HealthLevel = "MONITOR"
	HealthWarning  HealthLevel = "WARNING"
	HealthHighRisk HealthLevel = "HIGH_RISK"
	HealthCritical HealthLevel = "CRITICAL"
)

// HealthStatus tells whether a score could be computed
type HealthStatus string

const (
	HealthStatusOK               HealthStatus = "OK"
	HealthStatusInsufficientData HealthStatus = "INSUFFICIENT_DATA"
)

// FactorID names one of the eight scoring factors
type FactorID string

const (
	FactorWinRate        FactorID = "win_rate"
	FactorCLV            FactorID = "clv"
	FactorDiversity      FactorID = "diversity"
	FactorTiming         FactorID = "timing"
	FactorStakePattern   FactorID = "stake_pattern"
	FactorBetTypeMix     FactorID = "bet_type_mix"
	FactorActivityChange FactorID = "activity_change"
	FactorWithdrawal     FactorID = "withdrawal"
)

// FactorScores holds the eight bounded sub-scores
type FactorScores struct {
	WinRate        int `json:"win_rate"`
	CLV            int `json:"clv"`
	Diversity      int `json:"diversity"`
	Timing         int `json:"timing"`
	StakePattern   int `json:"stake_pattern"`
	BetTypeMix     int `json:"bet_type_mix"`
	ActivityChange int `json:"activity_change"`
	Withdrawal     int `json:"withdrawal"`
}

// Total sums the sub-scores
func (f FactorScores) Total() int {
	return f.WinRate + f.CLV + f.Diversity + f.Timing + f.StakePattern + f.BetTypeMix + f.ActivityChange + f.Withdrawal
}

// Get returns the sub-score of one factor
func (f FactorScores) Get(id FactorID) int {
	switch id {
	case FactorWinRate:
		return f.WinRate
	case FactorCLV:
		return f.CLV
	case FactorDiversity:
		return f.Diversity
	case FactorTiming:
		return f.Timing
	case FactorStakePattern:
		return f.StakePattern
	case FactorBetTypeMix:
		return f.BetTypeMix
	case FactorActivityChange:
		return f.ActivityChange
	case FactorWithdrawal:
		return f.Withdrawal
	}
	return 0
}

// BookHealthScore is one day's score for a user at a sportsbook
type BookHealthScore struct {
	UserID           string       `json:"user_id"`
	Sportsbook       string       `json:"sportsbook"`
	Date             string       `json:"date"` // YYYY-MM-DD
	Factors          FactorScores `json:"factors"`
	Total            int          `json:"total"`
	Level            HealthLevel  `json:"level"`
	MonthsUntilLimit float64      `json:"months_until_limit"`
	LimitProbability float64      `json:"limit_probability"`
	TotalBets        int          `json:"total_bets"`
	CalculatedAt     time.Time    `json:"calculated_at"`
}

// Priority orders recommendations
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Rank is lower for more urgent priorities
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Recommendation is an actionable message derived from a factor
type Recommendation struct {
	Code     string   `json:"code"`
	Factor   FactorID `json:"factor,omitempty"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
}

// TrendLabel summarizes the 30-day direction of a score
type TrendLabel string

const (
	TrendImproving        TrendLabel = "IMPROVING"
	TrendStable           TrendLabel = "STABLE"
	TrendSlowlyWorsening  TrendLabel = "SLOWLY_WORSENING"
	TrendWorsening        TrendLabel = "WORSENING"
	TrendRapidlyWorsening TrendLabel = "RAPIDLY_WORSENING"
)

// HealthTrend compares today's total against stored history
type HealthTrend struct {
	Change7d  *int       `json:"change_7d,omitempty"`
	Change30d *int       `json:"change_30d,omitempty"`
	Label     TrendLabel `json:"label"`
}

// HealthReport is what the scoring pipeline returns to callers
type HealthReport struct {
	Status          HealthStatus     `json:"status"`
	UserID          string           `json:"user_id"`
	Sportsbook      string           `json:"sportsbook"`
	TotalBets       int              `json:"total_bets"`
	BetsRemaining   int              `json:"bets_remaining,omitempty"`
	Score           *BookHealthScore `json:"score,omitempty"`
	Trend           *HealthTrend     `json:"trend,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}
