package parlay

import (
	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// StrategySpec holds the construction bounds of one strategy
type StrategySpec struct {
	Strategy models.Strategy
	MinLegs  int
	MaxLegs  int
	MinOdds  float64
	MaxOdds  float64
	SameDay  bool
	// TopEdgeOnly restricts candidates to the global top-N legs by edge
	TopEdgeOnly bool
	Profile     models.RiskProfile
	Level       models.RiskLevel
}

// Catalog lists every strategy in evaluation order. A leg set is claimed by
// the first strategy that accepts it.
var Catalog = []StrategySpec{
	{Strategy: models.StrategySameDaySafe, MinLegs: 2, MaxLegs: 2, MinOdds: 1.5, MaxOdds: 3.0, SameDay: true, Profile: models.ProfileConservative, Level: models.RiskLow},
	{Strategy: models.StrategySameDayBalanced, MinLegs: 2, MaxLegs: 3, MinOdds: 2.0, MaxOdds: 6.0, SameDay: true, Profile: models.ProfileBalanced, Level: models.RiskMedium},
	{Strategy: models.StrategySameDayAggressive, MinLegs: 2, MaxLegs: 4, MinOdds: 4.0, MaxOdds: 15.0, SameDay: true, Profile: models.ProfileAggressive, Level: models.RiskHigh},
	{Strategy: models.StrategyCrossDaySafe, MinLegs: 2, MaxLegs: 2, MinOdds: 1.5, MaxOdds: 3.0, Profile: models.ProfileConservative, Level: models.RiskLow},
	{Strategy: models.StrategyCrossDayBalanced, MinLegs: 2, MaxLegs: 3, MinOdds: 2.5, MaxOdds: 8.0, Profile: models.ProfileBalanced, Level: models.RiskMedium},
	{Strategy: models.StrategyCrossDayAggressive, MinLegs: 2, MaxLegs: 4, MinOdds: 5.0, MaxOdds: 20.0, Profile: models.ProfileAggressive, Level: models.RiskHigh},
	{Strategy: models.StrategyLottery, MinLegs: 4, MaxLegs: 6, MinOdds: 10.0, MaxOdds: 100.0, Profile: models.ProfileLottery, Level: models.RiskExtreme},
	{Strategy: models.StrategyHighEV, MinLegs: 2, MaxLegs: 3, MinOdds: 2.0, MaxOdds: 10.0, TopEdgeOnly: true, Profile: models.ProfileBalanced, Level: models.RiskMedium},
}

// Lookup returns the catalog entry of a strategy
func Lookup(s models.Strategy) (StrategySpec, bool) {
	for _, spec := range Catalog {
		if spec.Strategy == s {
			return spec, true
		}
	}
	return StrategySpec{}, false
}

// AcceptsOdds reports whether combined decimal odds fall inside the bounds
func (s StrategySpec) AcceptsOdds(combined float64) bool {
	return combined >= s.MinOdds && combined <= s.MaxOdds
}

// AcceptsLegCount reports whether n legs are allowed
func (s StrategySpec) AcceptsLegCount(n int) bool {
	return n >= s.MinLegs && n <= s.MaxLegs
}
