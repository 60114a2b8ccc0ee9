package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profitlogic/internal/model"
)

func fixedYear() int { return 2025 }

func TestSynthetic_Deterministic(t *testing.T) {
	src := NewSynthetic(10, fixedYear)
	q := model.MarketQuery{VIN: "KM8R54AP1L", Make: "Hyundai", Model: "Tucson", Year: 2023, Mileage: 12000}

	a, err := src.Comparables(context.Background(), q)
	require.NoError(t, err)
	b, err := src.Comparables(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a, 10)

	base := src.BasePrice(q)
	assert.InDelta(t, 26000*0.85*0.85, base, 1e-6)
	for _, l := range a {
		assert.GreaterOrEqual(t, l.Price, base-3000)
		assert.LessOrEqual(t, l.Price, base+3000)
		assert.GreaterOrEqual(t, l.Mileage, 1000)
		assert.LessOrEqual(t, l.Mileage, 32000)
		assert.GreaterOrEqual(t, l.DOM, 5)
		assert.LessOrEqual(t, l.DOM, 100)
	}
}

func TestSynthetic_PriceAndMileageFloors(t *testing.T) {
	src := NewSynthetic(25, fixedYear)
	q := model.MarketQuery{Make: "Unknown", Model: "Old", Year: 1990, Mileage: 0}

	listings, err := src.Comparables(context.Background(), q)
	require.NoError(t, err)
	for _, l := range listings {
		assert.Equal(t, 5000.0, l.Price)
		assert.GreaterOrEqual(t, l.Mileage, 1000)
	}
}

func TestSummarize(t *testing.T) {
	snap := Summarize([]model.Listing{
		{Price: 20000, Mileage: 40000, DOM: 10},
		{Price: 22000, Mileage: 30000, DOM: 20},
		{Price: 24000, Mileage: 50000, DOM: 30},
		{Price: 18000, Mileage: 60000, DOM: 40},
	})
	assert.Equal(t, 4, snap.ListingCount)
	assert.InDelta(t, 21000.0, snap.AvgPrice, 1e-9)
	assert.InDelta(t, 45000.0, snap.MedianMileage, 1e-9)
	assert.InDelta(t, 25.0, snap.AvgDOM, 1e-9)
	assert.Equal(t, 18000.0, snap.MinPrice)
	assert.Equal(t, 24000.0, snap.MaxPrice)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.ListingCount)
	assert.Equal(t, 0.0, empty.AvgPrice)
}
