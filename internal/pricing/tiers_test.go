package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFor(t *testing.T) {
	r, err := RangeFor("small", "basic")
	require.NoError(t, err)
	assert.Equal(t, PriceRange{295, 395}, r)

	r, err = RangeFor("xl", "luxury")
	require.NoError(t, err)
	assert.Equal(t, PriceRange{1295, 1595}, r)
}

func TestRangeFor_UnknownInputs(t *testing.T) {
	_, err := RangeFor("mansion", "basic")
	assert.Error(t, err)

	_, err = RangeFor("small", "platinum")
	assert.Error(t, err)
}

func TestRangeFor_AllTiersOrdered(t *testing.T) {
	for _, size := range []string{"small", "medium", "large", "xl"} {
		basic, err := RangeFor(size, "basic")
		require.NoError(t, err)
		deluxe, err := RangeFor(size, "deluxe")
		require.NoError(t, err)
		luxury, err := RangeFor(size, "luxury")
		require.NoError(t, err)

		assert.Less(t, basic.Low, basic.High)
		assert.Less(t, basic.High, deluxe.High)
		assert.Less(t, deluxe.High, luxury.High)
	}
}

func TestPriceRangeDisplay(t *testing.T) {
	assert.Equal(t, "$295 - $395", PriceRange{295, 395}.Display())
}

func TestPriceRangeContains(t *testing.T) {
	r := PriceRange{295, 395}
	assert.True(t, r.Contains(295))
	assert.True(t, r.Contains(350))
	assert.False(t, r.Contains(396))
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "Deluxe", PackageName("deluxe"))
	assert.Equal(t, "custom", PackageName("custom"))
}

func TestFeatures(t *testing.T) {
	assert.Contains(t, Features("basic"), "Exterior Glass Cleaning")
	assert.Contains(t, Features("luxury"), "Deep Track Scrubbing")
	assert.Nil(t, Features("custom"))

	// Each tier builds on the one below it
	assert.Equal(t, "Everything in Basic, plus:", Features("deluxe")[0])
	assert.Equal(t, "Everything in Deluxe, plus:", Features("luxury")[0])
}
