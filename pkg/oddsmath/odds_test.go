package oddsmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		american int
		want     float64
	}{
		{-200, 1.5},
		{255, 3.55},
		{100, 2.0},
		{-100, 2.0},
		{-110, 1.0 + 100.0/110.0},
		{150, 2.5},
	}

	for _, tt := range tests {
		got, err := AmericanToDecimalFloat(tt.american)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-12, "american %d", tt.american)
	}
}

func TestAmericanToDecimal_Invalid(t *testing.T) {
	for _, american := range []int{0, 50, -99} {
		_, err := AmericanToDecimal(american)
		assert.Error(t, err, "american %d", american)
	}
}

func TestDecimalToAmerican_Invalid(t *testing.T) {
	_, err := DecimalToAmerican(1.0)
	assert.Error(t, err)
	_, err = DecimalToAmerican(0.5)
	assert.Error(t, err)
}

// Every integer price with |p| in [100, 10000] survives a decimal round trip.
func TestAmericanRoundTrip(t *testing.T) {
	for p := 100; p <= 10000; p++ {
		for _, american := range []int{p, -p} {
			dec, err := AmericanToDecimalFloat(american)
			require.NoError(t, err)

			back, err := DecimalToAmerican(dec)
			require.NoError(t, err)

			// +100 and -100 are the same price
			if american == -100 {
				assert.Equal(t, 100, back)
				continue
			}
			require.Equal(t, american, back, "round trip of %d via %v", american, dec)
		}
	}
}

func TestInverseSumAndArbitrage(t *testing.T) {
	// Over 220.5 -200 at one book, Under 220.5 +255 at another
	inv := InverseSum(1.5, 3.55)
	assert.Less(t, inv, 1.0)
	assert.Greater(t, ArbitragePercent(1.5, 3.55), 0.0)

	assert.Greater(t, InverseSum(1.9, 1.9), 1.0)
}

func TestProductAndEdge(t *testing.T) {
	assert.InDelta(t, 3.99, Product(1.9, 2.1), 1e-9)
	assert.InDelta(t, 1.0, Product(), 1e-12)
	assert.InDelta(t, 0.0, Edge(2.0, 0.5), 1e-12)
	assert.InDelta(t, -0.05, RelativeChange(2.0, 1.9), 1e-12)
}
