package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicStats_Counts(t *testing.T) {
	stats := computeBasicStats(mustPrepare(seq(4, 4, 5, 3)))

	assert.Equal(t, 4, stats.TotalPulls)
	assert.Equal(t, 1, stats.FiveStarCount)
	assert.Equal(t, 2, stats.FourStarCount)
	assert.Equal(t, 1, stats.ThreeStarCount)
	assert.Equal(t, 25.00, stats.FiveStarRate)
	assert.Equal(t, 50.00, stats.FourStarRate)
	assert.Equal(t, 25.00, stats.ThreeStarRate)
}

func TestBasicStats_CountsSumToTotal(t *testing.T) {
	sequences := [][]int{
		{3},
		{5, 5, 5},
		{3, 3, 4, 3, 3, 3, 4, 5, 3, 4},
		{4, 3, 3, 3, 3, 3, 3},
	}
	for _, ranks := range sequences {
		stats := computeBasicStats(mustPrepare(seq(ranks...)))
		assert.Equal(t, stats.TotalPulls, stats.FiveStarCount+stats.FourStarCount+stats.ThreeStarCount)

		rateSum := stats.FiveStarRate + stats.FourStarRate + stats.ThreeStarRate
		assert.InDelta(t, 100, rateSum, 0.02, "rates should sum to 100 within rounding tolerance")
	}
}

func TestBasicStats_Empty(t *testing.T) {
	stats := computeBasicStats(nil)

	assert.Equal(t, 0, stats.TotalPulls)
	assert.Equal(t, 0.00, stats.FiveStarRate)
	assert.Equal(t, 0.00, stats.FourStarRate)
	assert.Empty(t, stats.FiveStarByCategory)
	assert.Empty(t, stats.FourStarByCategory)
}

func TestBasicStats_CategoryBreakdown(t *testing.T) {
	records := seq(5, 5, 5, 4)
	records[0].Category = "character"
	records[1].Category = "character"
	records[2].Category = "weapon"
	records[3].Category = "character"

	stats := computeBasicStats(mustPrepare(records))

	assert.Equal(t, []CategoryShare{
		{Category: "character", Count: 2, Share: 66.7},
		{Category: "weapon", Count: 1, Share: 33.3},
	}, stats.FiveStarByCategory)
	assert.Equal(t, []CategoryShare{
		{Category: "character", Count: 1, Share: 100.0},
	}, stats.FourStarByCategory)
}

func TestBasicStats_CategorySharesSum(t *testing.T) {
	records := seq(5, 5, 5, 5, 5, 5, 5)
	cats := []string{"character", "weapon", "character", "character", "weapon", "character", "weapon"}
	for i := range records {
		records[i].Category = cats[i]
	}

	stats := computeBasicStats(mustPrepare(records))

	sum := 0.0
	for _, share := range stats.FiveStarByCategory {
		sum += share.Share
	}
	assert.True(t, math.Abs(sum-100) <= 0.1, "category shares should sum to 100, got %.2f", sum)
}
