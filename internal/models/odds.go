package models

import (
	"time"
)

// FeedGame is one game in the odds feed response
type FeedGame struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime time.Time       `json:"commence_time"`
	Bookmakers   []FeedBookmaker `json:"bookmakers"`
}

// FeedBookmaker holds one book's markets for a game
type FeedBookmaker struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate time.Time    `json:"last_update"`
	Markets    []FeedMarket `json:"markets"`
}

// Bookmaker returns the bookmaker with the given feed key
func (g *FeedGame) Bookmaker(key string) (*FeedBookmaker, bool) {
	for i := range g.Bookmakers {
		if g.Bookmakers[i].Key == key {
			return &g.Bookmakers[i], true
		}
	}
	return nil, false
}

// Market returns the first market with the given key
func (b *FeedBookmaker) Market(key string) (*FeedMarket, bool) {
	for i := range b.Markets {
		if b.Markets[i].Key == key {
			return &b.Markets[i], true
		}
	}
	return nil, false
}

// FeedMarket is one market (h2h, spreads, totals) at a book
type FeedMarket struct {
	Key      string        `json:"key"`
	Outcomes []FeedOutcome `json:"outcomes"`
}

// FeedOutcome is a priced outcome in decimal format
type FeedOutcome struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Point       *float64 `json:"point,omitempty"`
	Description string   `json:"description,omitempty"`
}

// FeedScore is one game from the scores endpoint
type FeedScore struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	CommenceTime time.Time       `json:"commence_time"`
	Completed    bool            `json:"completed"`
	Scores       []FeedTeamScore `json:"scores"`
}

// FeedTeamScore is a team's score as reported by the feed
type FeedTeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// DropOutcome is one outcome of a structured drop
type DropOutcome struct {
	Outcome string  `json:"outcome"`
	Odds    float64 `json:"odds"`
	Casino  string  `json:"casino"`
	Link    string  `json:"link,omitempty"`
	Player  string  `json:"player,omitempty"`
}

// DropPayload is the inbound drop body. Structured pushes fill EventID..Outcomes,
// free-text and OCR drops fill Subject and Body.
type DropPayload struct {
	EventID       string        `json:"event_id,omitempty"`
	ArbPercentage *float64      `json:"arb_percentage,omitempty"`
	Match         string        `json:"match,omitempty"`
	League        string        `json:"league,omitempty"`
	Market        string        `json:"market,omitempty"`
	Outcomes      []DropOutcome `json:"outcomes,omitempty"`

	Kind         string     `json:"kind,omitempty"`
	Sport        string     `json:"sport,omitempty"`
	HomeTeam     string     `json:"home_team,omitempty"`
	AwayTeam     string     `json:"away_team,omitempty"`
	CommenceTime *time.Time `json:"commence_time,omitempty"`

	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
	// Source is "structured", "text" or "ocr"; inferred when empty
	Source string `json:"source,omitempty"`
}

// IsText reports whether the payload must go through the text grammar
func (d *DropPayload) IsText() bool {
	return len(d.Outcomes) == 0 && (d.Body != "" || d.Subject != "")
}
