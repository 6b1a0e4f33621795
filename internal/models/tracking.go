package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetResult is the settled outcome of a tracked bet; empty means unsettled
type BetResult string

const (
	ResultWon  BetResult = "won"
	ResultLost BetResult = "lost"
	ResultPush BetResult = "push"
	ResultVoid BetResult = "void"
)

// Valid reports whether r is a settled result
func (r BetResult) Valid() bool {
	switch r {
	case ResultWon, ResultLost, ResultPush, ResultVoid:
		return true
	}
	return false
}

// ActivityFlags records what a user does at a book besides sports betting
type ActivityFlags struct {
	Sports bool `json:"sports"`
	Casino bool `json:"casino"`
	Poker  bool `json:"poker"`
	Live   bool `json:"live"`
}

// UserBookProfile is a user's account at one sportsbook, from onboarding
type UserBookProfile struct {
	UserID               string        `json:"user_id"`
	Sportsbook           string        `json:"sportsbook"`
	AccountAgeMonths     int           `json:"account_age_months"`
	EstimatedMonthlyBets int           `json:"estimated_monthly_bets"`
	WasActiveBefore      bool          `json:"was_active_before"`
	DepositBracket       string        `json:"deposit_bracket"`
	Activity             ActivityFlags `json:"activity"`
	IsLimited            bool          `json:"is_limited"`
	LimitedAt            *time.Time    `json:"limited_at,omitempty"`
	OnboardedAt          time.Time     `json:"onboarded_at"`
}

// LimitEvent records a book limiting or banning a user
type LimitEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Sportsbook string    `json:"sportsbook"`
	Kind       string    `json:"kind"` // limited | banned | reduced
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

var (
	five = decimal.NewFromInt(5)
)

// IsStakeRounded reports whether a stake is divisible by 5 (which covers 10)
func IsStakeRounded(stake decimal.Decimal) bool {
	return !stake.IsZero() && stake.Mod(five).IsZero()
}

// TrackedBet is a bet the user placed, recorded for book health scoring
type TrackedBet struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Sportsbook       string          `json:"sportsbook"`
	Source           OpportunityKind `json:"source"`
	OpportunityID    string          `json:"opportunity_id,omitempty"`
	Sport            string          `json:"sport"`
	League           string          `json:"league,omitempty"`
	Market           string          `json:"market"`
	SelectionType    SelectionType   `json:"selection_type,omitempty"`
	Selection        string          `json:"selection,omitempty"`
	Line             *float64        `json:"line,omitempty"`
	HomeTeam         string          `json:"home_team,omitempty"`
	AwayTeam         string          `json:"away_team,omitempty"`
	CommenceTime     *time.Time      `json:"commence_time,omitempty"`
	PlacedAt         time.Time       `json:"placed_at"`
	Stake            decimal.Decimal `json:"stake"`
	StakeRounded     bool            `json:"stake_rounded"`
	OddsTaken        float64         `json:"odds_taken"`
	ClosingOdds      *float64        `json:"closing_odds,omitempty"`
	CLV              *float64        `json:"clv,omitempty"`
	Result           BetResult       `json:"result,omitempty"`
	SecondsAfterPost *int            `json:"seconds_after_post,omitempty"`
}

// SetClosingOdds stores the closing price and derives CLV from it
func (b *TrackedBet) SetClosingOdds(closing float64) {
	b.ClosingOdds = &closing
	clv := (closing - b.OddsTaken) / b.OddsTaken
	b.CLV = &clv
}

// IsSharp reports whether the bet came from an advantage-play source
func (b *TrackedBet) IsSharp() bool {
	return b.Source.IsSharp()
}

// IsSettled reports whether a result has been recorded
func (b *TrackedBet) IsSettled() bool {
	return b.Result != ""
}
