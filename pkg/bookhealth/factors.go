package bookhealth

import (
	"math"
	"strings"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Factor maxima
const (
	MaxWinRate        = 25
	MaxCLV            = 30
	MaxDiversity      = 15
	MaxTiming         = 15
	MaxStakePattern   = 10
	MaxBetTypeMix     = 20
	MaxActivityChange = 15
	MaxWithdrawal     = 5
)

// activityWindow is the lookback used for post-onboarding volume
const activityWindow = 30 * 24 * time.Hour

// WinRateScore scores the win percentage of settled won/lost bets
func WinRateScore(winRatePct float64) int {
	switch {
	case winRatePct >= 65:
		return 25
	case winRatePct >= 60:
		return 20
	case winRatePct >= 57:
		return 15
	case winRatePct >= 55:
		return 10
	case winRatePct >= 53:
		return 5
	default:
		return 0
	}
}

// CLVScore scores the mean closing line value in percent
func CLVScore(meanCLVPct float64) int {
	switch {
	case meanCLVPct >= 8:
		return 30
	case meanCLVPct >= 5:
		return 25
	case meanCLVPct >= 3:
		return 20
	case meanCLVPct >= 2:
		return 15
	case meanCLVPct >= 1:
		return 10
	case meanCLVPct >= 0:
		return 5
	default:
		return 0
	}
}

// DiversityScore is high when betting concentrates on few sports and markets
func DiversityScore(sports, markets int) int {
	switch {
	case sports <= 0:
		return 0
	case sports == 1 && markets <= 2:
		return 15
	case sports == 1:
		return 12
	case sports == 2 && markets <= 2:
		return 10
	case sports == 2:
		return 7
	case sports == 3:
		return 4
	default:
		return 0
	}
}

// TimingScore scores how fast bets follow line publication
func TimingScore(meanSecondsAfterPost float64) int {
	switch {
	case meanSecondsAfterPost < 20:
		return 15
	case meanSecondsAfterPost < 60:
		return 12
	case meanSecondsAfterPost < 120:
		return 8
	case meanSecondsAfterPost < 300:
		return 4
	default:
		return 0
	}
}

// StakePatternScore combines the share of round stakes and the stake
// coefficient of variation. Odd, uniform stakes score highest.
func StakePatternScore(roundRatio, cv float64) int {
	score := 0
	switch {
	case roundRatio < 0.2:
		score += 6
	case roundRatio < 0.5:
		score += 4
	case roundRatio < 0.8:
		score += 2
	}
	switch {
	case cv < 0.1:
		score += 4
	case cv < 0.25:
		score += 2
	}
	return score
}

// BetTypeMixScore scores the fraction of advantage-play bets
func BetTypeMixScore(sharpFraction float64) int {
	switch {
	case sharpFraction >= 0.95:
		return 20
	case sharpFraction >= 0.85:
		return 16
	case sharpFraction >= 0.7:
		return 12
	case sharpFraction >= 0.5:
		return 8
	case sharpFraction >= 0.3:
		return 4
	default:
		return 0
	}
}

// ActivityChangeScore compares the last 30 days of volume with what the user
// reported at onboarding.
func ActivityChangeScore(recentBets int, wasActiveBefore bool, estimatedMonthlyBets int) int {
	if !wasActiveBefore {
		switch {
		case recentBets >= 40:
			return 15
		case recentBets >= 20:
			return 10
		case recentBets >= 10:
			return 6
		default:
			return 0
		}
	}

	baseline := estimatedMonthlyBets
	if baseline < 1 {
		baseline = 1
	}
	ratio := float64(recentBets) / float64(baseline)
	switch {
	case ratio >= 4:
		return 10
	case ratio >= 2.5:
		return 6
	case ratio >= 1.5:
		return 3
	default:
		return 0
	}
}

// Stats are the aggregates the factors are computed from
type Stats struct {
	TotalBets        int
	SharpBets        int
	Won              int
	Lost             int
	MeanCLVPct       float64
	HasCLV           bool
	MeanSecondsAfter float64
	HasTiming        bool
	Sports           int
	Markets          int
	RoundRatio       float64
	StakeCV          float64
	RecentBets       int
}

// Aggregate computes Stats from a bet history. Recreational bets only
// contribute to the sharp ratio and the activity volume.
func Aggregate(bets []models.TrackedBet, now time.Time) Stats {
	st := Stats{TotalBets: len(bets)}

	sports := make(map[string]struct{})
	markets := make(map[string]struct{})
	var clvSum, secSum float64
	var clvN, secN, rounded int
	stakes := make([]float64, 0, len(bets))

	for i := range bets {
		b := &bets[i]
		if now.Sub(b.PlacedAt) <= activityWindow {
			st.RecentBets++
		}
		if !b.IsSharp() {
			continue
		}
		st.SharpBets++

		switch b.Result {
		case models.ResultWon:
			st.Won++
		case models.ResultLost:
			st.Lost++
		}
		if b.CLV != nil {
			clvSum += *b.CLV
			clvN++
		}
		if b.SecondsAfterPost != nil {
			secSum += float64(*b.SecondsAfterPost)
			secN++
		}
		if b.Sport != "" {
			sports[strings.ToLower(b.Sport)] = struct{}{}
		}
		if b.Market != "" {
			markets[strings.ToLower(b.Market)] = struct{}{}
		}
		if b.StakeRounded || models.IsStakeRounded(b.Stake) {
			rounded++
		}
		stakes = append(stakes, b.Stake.InexactFloat64())
	}

	if clvN > 0 {
		st.MeanCLVPct = clvSum / float64(clvN) * 100
		st.HasCLV = true
	}
	if secN > 0 {
		st.MeanSecondsAfter = secSum / float64(secN)
		st.HasTiming = true
	}
	st.Sports = len(sports)
	st.Markets = len(markets)
	if st.SharpBets > 0 {
		st.RoundRatio = float64(rounded) / float64(st.SharpBets)
	}
	st.StakeCV = coefficientOfVariation(stakes)
	return st
}

// WinRatePct is the won share of settled won/lost sharp bets
func (s Stats) WinRatePct() (float64, bool) {
	settled := s.Won + s.Lost
	if settled == 0 {
		return 0, false
	}
	return float64(s.Won) / float64(settled) * 100, true
}

// SharpFraction is the share of advantage-play bets across all bets
func (s Stats) SharpFraction() float64 {
	if s.TotalBets == 0 {
		return 0
	}
	return float64(s.SharpBets) / float64(s.TotalBets)
}

// Factors turns aggregates into the eight sub-scores
func Factors(st Stats, profile *models.UserBookProfile) models.FactorScores {
	var f models.FactorScores

	if wr, ok := st.WinRatePct(); ok {
		f.WinRate = WinRateScore(wr)
	}
	if st.HasCLV {
		f.CLV = CLVScore(st.MeanCLVPct)
	}
	f.Diversity = DiversityScore(st.Sports, st.Markets)
	if st.HasTiming {
		f.Timing = TimingScore(st.MeanSecondsAfter)
	}
	if st.SharpBets > 0 {
		f.StakePattern = StakePatternScore(st.RoundRatio, st.StakeCV)
	}
	f.BetTypeMix = BetTypeMixScore(st.SharpFraction())
	if profile != nil {
		f.ActivityChange = ActivityChangeScore(st.RecentBets, profile.WasActiveBefore, profile.EstimatedMonthlyBets)
	}
	// withdrawal patterns are not tracked yet
	f.Withdrawal = 0

	return f
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
