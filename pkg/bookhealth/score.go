package bookhealth

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// ScorerConfig holds scoring parameters
type ScorerConfig struct {
	MinBets int // below this a report carries INSUFFICIENT_DATA
}

// Scorer computes book health reports
type Scorer struct {
	config ScorerConfig
	logger zerolog.Logger
}

// NewScorer creates a new book health scorer
func NewScorer(config ScorerConfig, logger zerolog.Logger) *Scorer {
	if config.MinBets <= 0 {
		config.MinBets = 10
	}
	return &Scorer{
		config: config,
		logger: logger.With().Str("component", "book_health_scorer").Logger(),
	}
}

// MinBets returns the minimum history size for a score
func (s *Scorer) MinBets() int {
	return s.config.MinBets
}

// Score builds the report for one user at one sportsbook. history holds the
// previously stored daily scores used for the trend.
func (s *Scorer) Score(
	userID, sportsbook string,
	profile *models.UserBookProfile,
	bets []models.TrackedBet,
	history []models.BookHealthScore,
	now time.Time,
) *models.HealthReport {
	report := &models.HealthReport{
		UserID:     userID,
		Sportsbook: sportsbook,
		TotalBets:  len(bets),
	}

	if len(bets) < s.config.MinBets {
		report.Status = models.HealthStatusInsufficientData
		report.BetsRemaining = s.config.MinBets - len(bets)
		return report
	}

	st := Aggregate(bets, now)
	factors := Factors(st, profile)
	total := clampTotal(factors.Total())

	ageMonths := -1
	if profile != nil {
		ageMonths = profile.AccountAgeMonths
	}

	date := now.UTC().Format(dateLayout)
	score := &models.BookHealthScore{
		UserID:           userID,
		Sportsbook:       sportsbook,
		Date:             date,
		Factors:          factors,
		Total:            total,
		Level:            Level(total),
		MonthsUntilLimit: MonthsUntilLimit(total, ageMonths),
		LimitProbability: LimitProbability(total),
		TotalBets:        len(bets),
		CalculatedAt:     now.UTC(),
	}

	report.Status = models.HealthStatusOK
	report.Score = score
	report.Trend = Trend(total, date, history)
	report.Recommendations = Recommendations(factors, total)

	s.logger.Debug().
		Str("user_id", userID).
		Str("sportsbook", sportsbook).
		Int("total", total).
		Str("level", string(score.Level)).
		Float64("limit_probability", score.LimitProbability).
		Msg("scored book health")

	return report
}

func clampTotal(total int) int {
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// Level maps a total to its risk band
func Level(total int) models.HealthLevel {
	switch {
	case total >= 86:
		return models.HealthCritical
	case total >= 71:
		return models.HealthHighRisk
	case total >= 51:
		return models.HealthWarning
	case total >= 31:
		return models.HealthMonitor
	default:
		return models.HealthSafe
	}
}

// MonthsUntilLimit estimates the time to a limit, scaled by account age.
// A negative age means unknown and applies no scaling.
func MonthsUntilLimit(total, accountAgeMonths int) float64 {
	var base float64
	switch {
	case total >= 86:
		base = 0.5
	case total >= 71:
		base = 3
	case total >= 51:
		base = 9
	case total >= 31:
		base = 15
	default:
		base = 24
	}

	factor := 1.0
	switch {
	case accountAgeMonths < 0:
	case accountAgeMonths < 6:
		factor = 0.7
	case accountAgeMonths < 12:
		factor = 0.85
	case accountAgeMonths > 24:
		factor = 1.2
	}
	return base * factor
}

// LimitProbability is σ((total − 50)/10) clamped to [0.01, 0.99]
func LimitProbability(total int) float64 {
	p := 1.0 / (1.0 + math.Exp(-float64(total-50)/10.0))
	return math.Min(0.99, math.Max(0.01, p))
}
