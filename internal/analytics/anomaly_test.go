package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha-tracker/internal/domain"
)

func TestFindDrySpells(t *testing.T) {
	spells := findDrySpells(mustPrepare(seq(3, 3, 5, 3, 3, 3, 5, 3)))

	require.Len(t, spells, 3)
	// longest first: the 4-pull run, the 3-pull run, then the ongoing tail
	assert.Equal(t, 4, spells[0].Length)
	assert.False(t, spells[0].IsOngoing)
	assert.NotEmpty(t, spells[0].EndedAt, "a terminated run records when its 5-star landed")
	assert.Equal(t, 3, spells[1].Length)
	assert.Equal(t, DrySpell{Length: 1, IsOngoing: true}, spells[2])
}

func TestFindDrySpells_InstantFiveStarsAreNotSpells(t *testing.T) {
	assert.Empty(t, findDrySpells(mustPrepare(seq(5, 5, 5))))
}

func TestFindDrySpells_CapsAtTopFive(t *testing.T) {
	var ranks []int
	for length := 2; length <= 8; length++ {
		for i := 0; i < length-1; i++ {
			ranks = append(ranks, 3)
		}
		ranks = append(ranks, 5)
	}

	spells := findDrySpells(mustPrepare(seq(ranks...)))

	require.Len(t, spells, 5)
	lengths := make([]int, 0, len(spells))
	for _, s := range spells {
		lengths = append(lengths, s.Length)
	}
	assert.Equal(t, []int{8, 7, 6, 5, 4}, lengths)
}

func TestFindLuckPeriods(t *testing.T) {
	var records []domain.PullRecord
	// first window: 10 pulls, one of them a 5-star
	for i := 0; i < 10; i++ {
		rank := 3
		if i == 4 {
			rank = 5
		}
		records = append(records, record(idf("w1", i), rank, testBase.Add(time.Duration(i)*time.Minute)))
	}
	// third window, two weeks later: 20 pulls without a 5-star
	coldStart := testBase.Add(14*24*time.Hour + time.Hour)
	for i := 0; i < 20; i++ {
		records = append(records, record(idf("w3", i), 3, coldStart.Add(time.Duration(i)*time.Minute)))
	}

	periods := findLuckPeriods(mustPrepare(records), testRule)

	require.Len(t, periods, 2, "the empty middle window is skipped")

	lucky := periods[0]
	assert.Equal(t, "2024-03-01", lucky.StartDate)
	assert.Equal(t, "2024-03-08", lucky.EndDate)
	assert.Equal(t, 10, lucky.TotalPulls)
	assert.Equal(t, 1, lucky.FiveStarCount)
	assert.Equal(t, 16.67, lucky.LuckFactor)
	assert.True(t, lucky.IsLucky)
	assert.False(t, lucky.IsUnlucky)

	unlucky := periods[1]
	assert.Equal(t, 20, unlucky.TotalPulls)
	assert.Equal(t, 0.0, unlucky.LuckFactor)
	assert.True(t, unlucky.IsUnlucky)
	assert.False(t, unlucky.IsLucky)
}

func TestFindLuckPeriods_NeutralWindow(t *testing.T) {
	// 167 pulls with one 5-star: expected 1.002, factor just under 1
	var records []domain.PullRecord
	for i := 0; i < 167; i++ {
		rank := 3
		if i == 0 {
			rank = 5
		}
		records = append(records, record(idf("n", i), rank, testBase.Add(time.Duration(i)*time.Minute)))
	}

	periods := findLuckPeriods(mustPrepare(records), testRule)

	require.Len(t, periods, 1)
	assert.False(t, periods[0].IsLucky)
	assert.False(t, periods[0].IsUnlucky)
}

func TestFindLuckPeriods_Empty(t *testing.T) {
	assert.Empty(t, findLuckPeriods(nil, testRule))
}

func idf(prefix string, i int) string {
	return prefix + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}
