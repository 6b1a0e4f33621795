package oddsmath

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// AmericanToDecimal converts American odds to decimal odds exactly
// American +150 → Decimal 2.50
// American -200 → Decimal 1.50
func AmericanToDecimal(american int) (decimal.Decimal, error) {
	if american == 0 || (american > -100 && american < 100) {
		return decimal.Zero, fmt.Errorf("invalid American odds: %d", american)
	}

	price := decimal.NewFromInt(int64(american))
	if american > 0 {
		// Positive odds: 1 + price/100
		return one.Add(price.Div(hundred)), nil
	}

	// Negative odds: 1 + 100/|price|
	return one.Add(hundred.Div(price.Abs())), nil
}

// AmericanToDecimalFloat is AmericanToDecimal for float callers
func AmericanToDecimalFloat(american int) (float64, error) {
	d, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.50 → American -200
func DecimalToAmerican(dec float64) (int, error) {
	if dec <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds: must be > 1.0, got %v", dec)
	}

	if dec >= 2.0 {
		return int(math.Round((dec - 1.0) * 100.0)), nil
	}

	return int(math.Round(-100.0 / (dec - 1.0))), nil
}

// ImpliedProbability converts decimal odds to implied probability
func ImpliedProbability(dec float64) float64 {
	if dec <= 0 {
		return 0
	}
	return 1.0 / dec
}

// InverseSum is the sum of implied probabilities of a set of decimal prices.
// A two-way market with an inverse sum below 1.0 is an arbitrage.
func InverseSum(prices ...float64) float64 {
	sum := 0.0
	for _, p := range prices {
		sum += ImpliedProbability(p)
	}
	return sum
}

// ArbitragePercent returns the guaranteed margin of a set of prices as a percentage
func ArbitragePercent(prices ...float64) float64 {
	inv := InverseSum(prices...)
	if inv <= 0 {
		return 0
	}
	return (1.0/inv - 1.0) * 100.0
}

// Product multiplies decimal prices into combined parlay odds
func Product(prices ...float64) float64 {
	combined := 1.0
	for _, p := range prices {
		combined *= p
	}
	return combined
}

// Edge is odds × probability − 1
func Edge(dec, probability float64) float64 {
	return dec*probability - 1.0
}

// RelativeChange returns (current − reference) / reference
func RelativeChange(reference, current float64) float64 {
	if reference == 0 {
		return 0
	}
	return (current - reference) / reference
}
