package models

import (
	"strings"
)

// MarketType is the discriminator of the Market variant
type MarketType string

const (
	MarketMoneyline  MarketType = "moneyline"
	MarketSpread     MarketType = "spread"
	MarketTotal      MarketType = "total"
	MarketPlayerProp MarketType = "player_prop"
)

// Market describes what is being priced, independent of the side a leg takes.
//
//	Moneyline:  Type only
//	Spread:     Line holds the absolute handicap
//	Total:      Line holds the total
//	PlayerProp: Player, Stat and Line
type Market struct {
	Type   MarketType `json:"type"`
	Line   *float64   `json:"line,omitempty"`
	Player string     `json:"player,omitempty"`
	Stat   string     `json:"stat,omitempty"`
	Label  string     `json:"label,omitempty"`
}

// Key is a canonical string for the market used in fingerprints and grouping
func (m Market) Key() string {
	switch m.Type {
	case MarketMoneyline:
		return string(MarketMoneyline)
	case MarketSpread:
		return string(MarketSpread)
	case MarketTotal:
		return string(MarketTotal) + ":" + FormatLine(m.Line)
	case MarketPlayerProp:
		return strings.Join([]string{string(MarketPlayerProp), strings.ToLower(m.Player), strings.ToLower(m.Stat), FormatLine(m.Line)}, ":")
	default:
		return strings.ToLower(m.Label)
	}
}

// IsPlayerProp reports whether the feed cannot re-quote this market
func (m Market) IsPlayerProp() bool {
	return m.Type == MarketPlayerProp
}

// ClassifyMarket maps free market text (e.g. "Total Points", "Spread -3.5",
// "Moneyline", "Player Points") to a market type.
func ClassifyMarket(text string) MarketType {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "player") || strings.Contains(t, "prop") ||
		strings.Contains(t, "rebounds") || strings.Contains(t, "assists") ||
		strings.Contains(t, "passing") || strings.Contains(t, "rushing") ||
		strings.Contains(t, "receiving") || strings.Contains(t, "shots on goal"):
		return MarketPlayerProp
	case strings.Contains(t, "total") || strings.Contains(t, "over/under") || strings.Contains(t, "o/u"):
		return MarketTotal
	case strings.Contains(t, "spread") || strings.Contains(t, "handicap") ||
		strings.Contains(t, "run line") || strings.Contains(t, "puck line") || strings.Contains(t, "point spread"):
		return MarketSpread
	case strings.Contains(t, "moneyline") || strings.Contains(t, "money line") ||
		strings.Contains(t, "h2h") || strings.Contains(t, "winner") || t == "ml":
		return MarketMoneyline
	}
	return ""
}
