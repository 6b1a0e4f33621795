package bookhealth

import (
	"sort"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

const (
	dateLayout         = "2006-01-02"
	maxRecommendations = 5
	extractFundsTotal  = 86
)

type rule struct {
	factor    models.FactorID
	threshold int
	priority  models.Priority
	code      string
	message   string
}

// rules are ordered by factor then descending threshold; the first hit per
// factor wins.
var rules = []rule{
	{models.FactorCLV, 25, models.PriorityCritical, "clv_flagged", "You consistently beat the closing line. Mix in bets at market price before the book flags you."},
	{models.FactorCLV, 15, models.PriorityHigh, "clv_high", "Your closing line value is high. Avoid taking stale lines right before they move."},
	{models.FactorWinRate, 20, models.PriorityHigh, "win_rate_high", "Your win rate stands out. Add some lower-edge or recreational bets."},
	{models.FactorWinRate, 10, models.PriorityMedium, "win_rate_elevated", "Your win rate is above average for this book."},
	{models.FactorBetTypeMix, 16, models.PriorityHigh, "mix_sharp_only", "Almost all your bets are arbitrage or +EV. Place some parlays or popular favorites."},
	{models.FactorBetTypeMix, 8, models.PriorityLow, "mix_sharp_heavy", "Add a few recreational bets to balance your profile."},
	{models.FactorTiming, 12, models.PriorityHigh, "timing_fast", "You bet seconds after lines are posted. Wait a few minutes before betting."},
	{models.FactorTiming, 8, models.PriorityMedium, "timing_quick", "Your bets follow line releases closely. Vary your timing."},
	{models.FactorDiversity, 12, models.PriorityMedium, "diversity_low", "You bet on very few sports and markets. Spread your action."},
	{models.FactorStakePattern, 6, models.PriorityMedium, "stakes_unround", "Round your stakes to 5 or 10 and vary their size."},
	{models.FactorActivityChange, 10, models.PriorityMedium, "activity_spike", "Your volume jumped since you started. Ramp up gradually."},
	{models.FactorWithdrawal, 3, models.PriorityLow, "withdrawal_pattern", "Avoid withdrawing right after every win."},
}

// Recommendations derives prioritized advice from the factor scores
func Recommendations(f models.FactorScores, total int) []models.Recommendation {
	var recs []models.Recommendation

	if total >= extractFundsTotal {
		recs = append(recs, models.Recommendation{
			Code:     "extract_funds",
			Priority: models.PriorityCritical,
			Message:  "A limit is imminent. Withdraw your balance from this sportsbook now.",
		})
	}

	done := make(map[models.FactorID]bool)
	for _, r := range rules {
		if done[r.factor] {
			continue
		}
		if f.Get(r.factor) >= r.threshold {
			done[r.factor] = true
			recs = append(recs, models.Recommendation{
				Code:     r.code,
				Factor:   r.factor,
				Priority: r.priority,
				Message:  r.message,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// Trend compares today's total to the latest stored totals on or before
// 7 and 30 days ago.
func Trend(today int, date string, history []models.BookHealthScore) *models.HealthTrend {
	trend := &models.HealthTrend{Label: models.TrendStable}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return trend
	}
	if prev, ok := latestOnOrBefore(history, day.AddDate(0, 0, -7).Format(dateLayout)); ok {
		d := today - prev.Total
		trend.Change7d = &d
	}
	if prev, ok := latestOnOrBefore(history, day.AddDate(0, 0, -30).Format(dateLayout)); ok {
		d := today - prev.Total
		trend.Change30d = &d
	}

	// the label follows the 30-day change only
	if trend.Change30d != nil {
		trend.Label = TrendLabel(*trend.Change30d)
	}
	return trend
}

// TrendLabel classifies a score delta
func TrendLabel(delta int) models.TrendLabel {
	switch {
	case delta > 15:
		return models.TrendRapidlyWorsening
	case delta > 8:
		return models.TrendWorsening
	case delta > 3:
		return models.TrendSlowlyWorsening
	case delta < -3:
		return models.TrendImproving
	default:
		return models.TrendStable
	}
}

func latestOnOrBefore(history []models.BookHealthScore, cutoff string) (models.BookHealthScore, bool) {
	var best models.BookHealthScore
	found := false
	for _, h := range history {
		if h.Date > cutoff {
			continue
		}
		if !found || h.Date > best.Date {
			best = h
			found = true
		}
	}
	return best, found
}
