package analytics

// SoftPityAnalysis measures how many 5-star pulls landed inside the
// soft-pity window, i.e. took at least SoftPityStart pulls since the
// previous 5-star. The boundary is inclusive.
type SoftPityAnalysis struct {
	TotalFiveStars      int     `json:"totalFiveStars"`
	WithinSoftPityCount int     `json:"withinSoftPityCount"`
	SoftPityRatio       float64 `json:"softPityRatio"`   // 0..1, 3 decimals
	SoftPityPercent     float64 `json:"softPityPercent"` // 1 decimal
}

// ProbabilityAnalysis compares the observed 5-star rate against the pool's
// theoretical base rate.
type ProbabilityAnalysis struct {
	ActualFiveStarRate      float64          `json:"actualFiveStarRate"`      // percent, 3 decimals
	TheoreticalFiveStarRate float64          `json:"theoreticalFiveStarRate"` // percent, 3 decimals
	Deviation               float64          `json:"deviation"`               // signed percent, 2 decimals
	IsAboveAverage          bool             `json:"isAboveAverage"`
	SoftPity                SoftPityAnalysis `json:"softPityAnalysis"`
}

func computeProbabilityAnalysis(pulls []pull, rule PityRule) ProbabilityAnalysis {
	spaced, _ := spacings(pulls)
	totalPulls := len(pulls)
	fiveStars := len(spaced)

	analysis := ProbabilityAnalysis{
		TheoreticalFiveStarRate: round3(rule.BaseFiveStarRate),
		SoftPity:                softPityHits(spaced, rule),
	}

	if totalPulls > 0 {
		analysis.ActualFiveStarRate = round3(float64(fiveStars) / float64(totalPulls) * 100)
		if rule.BaseFiveStarRate > 0 {
			analysis.Deviation = round2((analysis.ActualFiveStarRate - rule.BaseFiveStarRate) / rule.BaseFiveStarRate * 100)
		}
	}
	analysis.IsAboveAverage = analysis.Deviation > 0

	return analysis
}

// softPityHits counts spacings at or past the soft-pity threshold. The
// running pity counter starts at zero at the beginning of the filtered
// history, so the first 5-star's spacing is measured from there.
func softPityHits(spaced []int, rule PityRule) SoftPityAnalysis {
	hits := SoftPityAnalysis{TotalFiveStars: len(spaced)}
	for _, s := range spaced {
		if s >= rule.SoftPityStart {
			hits.WithinSoftPityCount++
		}
	}
	if hits.TotalFiveStars > 0 {
		ratio := float64(hits.WithinSoftPityCount) / float64(hits.TotalFiveStars)
		hits.SoftPityRatio = round3(ratio)
		hits.SoftPityPercent = round1(ratio * 100)
	}
	return hits
}
