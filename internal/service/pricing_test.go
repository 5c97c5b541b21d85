package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFor_PricedTiers(t *testing.T) {
	cases := map[int]float64{
		5:  5,
		10: 8,
		30: 15,
		60: 25,
	}
	for duration, want := range cases {
		price, err := PriceFor(duration, false)
		require.NoError(t, err)
		assert.Equal(t, want, price, "duration %d", duration)
	}
}

func TestPriceFor_UnknownDurationRejected(t *testing.T) {
	_, err := PriceFor(999, false)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = PriceFor(0, false)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestPriceFor_LegacyFallbackToBaseTier(t *testing.T) {
	// Legacy mode reproduces the old dashboard behavior: an unknown duration
	// silently sells at the cheapest tier.
	price, err := PriceFor(999, true)
	require.NoError(t, err)
	assert.Equal(t, float64(5), price)
}
