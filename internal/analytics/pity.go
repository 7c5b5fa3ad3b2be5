package analytics

import (
	"math"
	"sort"

	"gacha-tracker/internal/constants"
)

// SpacingStats summarizes the distances between consecutive 5-star pulls.
// All zero when no 5-star has been pulled yet.
type SpacingStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	StdDev  float64 `json:"stdDev"`
}

// PityAnalysis tracks the pulls-since-last-5-star counter and derives its
// distribution plus the instantaneous soft-pity probability.
type PityAnalysis struct {
	CurrentPity                int          `json:"currentPity"`
	IsSoftPity                 bool         `json:"isSoftPity"`
	Rule                       PityRule     `json:"pityRule"`
	SpacingDistribution        []int        `json:"spacingDistribution"` // ten fixed-width buckets of 10
	SpacingStats               SpacingStats `json:"spacingStats"`
	CurrentSoftPityProbability float64      `json:"currentSoftPityProbability"`
}

func computePityAnalysis(pulls []pull, rule PityRule) PityAnalysis {
	spaced, currentPity := spacings(pulls)

	return PityAnalysis{
		CurrentPity:                currentPity,
		IsSoftPity:                 currentPity >= rule.SoftPityStart,
		Rule:                       rule,
		SpacingDistribution:        spacingDistribution(spaced),
		SpacingStats:               spacingStats(spaced),
		CurrentSoftPityProbability: softPityProbability(currentPity, rule),
	}
}

// spacingDistribution buckets spacings in fixed widths of 10: bucket i holds
// values in [10i+1, 10i+10]; the last bucket also catches everything beyond.
func spacingDistribution(spaced []int) []int {
	dist := make([]int, constants.SpacingBuckets)
	for _, s := range spaced {
		idx := (s - 1) / constants.SpacingBucketWidth
		if idx >= constants.SpacingBuckets {
			idx = constants.SpacingBuckets - 1
		}
		if idx < 0 {
			idx = 0
		}
		dist[idx]++
	}
	return dist
}

func spacingStats(spaced []int) SpacingStats {
	if len(spaced) == 0 {
		return SpacingStats{}
	}

	n := float64(len(spaced))
	sum := 0
	min, max := spaced[0], spaced[0]
	for _, s := range spaced {
		sum += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	mean := float64(sum) / n

	sorted := append([]int(nil), spaced...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	var median float64
	if len(sorted)%2 == 0 {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		median = float64(sorted[mid])
	}

	// population standard deviation
	var sq float64
	for _, s := range spaced {
		d := float64(s) - mean
		sq += d * d
	}
	stdDev := math.Sqrt(sq / n)

	return SpacingStats{
		Average: round2(mean),
		Median:  round2(median),
		Min:     min,
		Max:     max,
		StdDev:  round2(stdDev),
	}
}

// softPityProbability is the chance the next pull yields a 5-star. Below the
// soft-pity threshold it is the base rate; from the threshold on it ramps
// linearly to 100% at hard pity.
func softPityProbability(currentPity int, rule PityRule) float64 {
	if currentPity < rule.SoftPityStart {
		return round2(rule.BaseFiveStarRate)
	}

	window := rule.HardPity - rule.SoftPityStart
	if window <= 0 {
		// degenerate rule where soft pity starts at hard pity
		window = 1
	}

	step := (100 - rule.BaseFiveStarRate) / float64(window)
	p := rule.BaseFiveStarRate + step*float64(currentPity-rule.SoftPityStart+1)
	if p > 100 {
		p = 100
	}
	return round2(p)
}
