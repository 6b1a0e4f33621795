package ingest

import (
	"math"
	"strings"
	"time"

	"github.com/cypherlabdev/parlay-intel-service/internal/models"
)

// Drop sources
const (
	SourceStructured = "structured"
	SourceText       = "text"
	SourceOCR        = "ocr"
)

// rawLeg is a leg as it appeared in the drop, before resolution
type rawLeg struct {
	Selection string
	Book      string
	American  int
	Decimal   float64
	Player    string
	Link      string
}

// draft is the shape-independent intermediate form of a drop
type draft struct {
	EventID  string
	Kind     string
	Percent  *float64
	Match    string
	Home     string
	Away     string
	Sport    string
	League   string
	Market   string
	Commence *time.Time
	Legs     []rawLeg
	Source   string
}

// fromPayload reads a structured push. Odds with |v| >= 100 are american,
// anything else is taken as decimal.
func fromPayload(p *models.DropPayload) draft {
	d := draft{
		EventID:  strings.TrimSpace(p.EventID),
		Kind:     p.Kind,
		Percent:  p.ArbPercentage,
		Match:    strings.TrimSpace(p.Match),
		Home:     strings.TrimSpace(p.HomeTeam),
		Away:     strings.TrimSpace(p.AwayTeam),
		Sport:    strings.TrimSpace(p.Sport),
		League:   strings.TrimSpace(p.League),
		Market:   strings.TrimSpace(p.Market),
		Commence: p.CommenceTime,
		Source:   p.Source,
	}
	if d.Source == "" {
		d.Source = SourceStructured
	}

	for _, o := range p.Outcomes {
		leg := rawLeg{
			Selection: strings.TrimSpace(o.Outcome),
			Book:      o.Casino,
			Player:    strings.TrimSpace(o.Player),
			Link:      o.Link,
		}
		if math.Abs(o.Odds) >= 100 {
			leg.American = int(math.Round(o.Odds))
		} else {
			leg.Decimal = o.Odds
		}
		d.Legs = append(d.Legs, leg)
	}
	return d
}
