package analytics

import (
	"sort"

	"gacha-tracker/internal/constants"
)

// DrySpell is a run of consecutive pulls without a 5-star. A terminated run
// includes the 5-star that ended it; the trailing run, if any, is ongoing.
type DrySpell struct {
	Length    int    `json:"length"`
	EndedAt   string `json:"endedAt,omitempty"`
	IsOngoing bool   `json:"isOngoing,omitempty"`
}

// LuckPeriod is one fixed 7-day window scored by luck factor: the ratio of
// observed 5-stars to the statistically expected count for its pull volume.
type LuckPeriod struct {
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	TotalPulls    int     `json:"totalPulls"`
	FiveStarCount int     `json:"fiveStarCount"`
	LuckFactor    float64 `json:"luckFactor"` // 2 decimals
	IsLucky       bool    `json:"isLucky"`
	IsUnlucky     bool    `json:"isUnlucky"`
}

// AdvancedStats bundles the anomaly views and the pull recommendation.
type AdvancedStats struct {
	ConsecutiveDrySpells []DrySpell      `json:"consecutiveDrySpells"`
	LuckyUnluckyPeriods  []LuckPeriod    `json:"luckyUnluckyPeriods"`
	RecommendedNextPulls *Recommendation `json:"recommendedNextPulls"`
}

func computeAdvancedStats(pulls []pull, rule PityRule) AdvancedStats {
	return AdvancedStats{
		ConsecutiveDrySpells: findDrySpells(pulls),
		LuckyUnluckyPeriods:  findLuckPeriods(pulls, rule),
	}
}

func findDrySpells(pulls []pull) []DrySpell {
	spells := []DrySpell{}
	run := 0
	for _, p := range pulls {
		run++
		if p.rec.Rank == 5 {
			if run > 1 {
				spells = append(spells, DrySpell{Length: run, EndedAt: p.rec.Time})
			}
			run = 0
		}
	}
	if run > 0 {
		spells = append(spells, DrySpell{Length: run, IsOngoing: true})
	}

	sort.SliceStable(spells, func(i, j int) bool { return spells[i].Length > spells[j].Length })
	if len(spells) > constants.TopDrySpells {
		spells = spells[:constants.TopDrySpells]
	}
	return spells
}

// findLuckPeriods partitions the timestamp span into fixed 7-day windows
// anchored at the first pull, scores each non-empty window, and keeps the
// top windows by luck factor.
func findLuckPeriods(pulls []pull, rule PityRule) []LuckPeriod {
	periods := []LuckPeriod{}
	if len(pulls) == 0 || rule.BaseFiveStarRate <= 0 {
		return periods
	}

	first := pulls[0].at
	last := pulls[len(pulls)-1].at
	window := constants.LuckPeriodWindow

	idx := 0
	for start := first; !start.After(last); start = start.Add(window) {
		end := start.Add(window)

		count := 0
		fiveStars := 0
		for ; idx < len(pulls) && pulls[idx].at.Before(end); idx++ {
			count++
			if pulls[idx].rec.Rank == 5 {
				fiveStars++
			}
		}
		if count == 0 {
			continue
		}

		expected := float64(count) * rule.BaseFiveStarRate / 100
		factor := float64(fiveStars) / expected
		periods = append(periods, LuckPeriod{
			StartDate:     dateKey(start),
			EndDate:       dateKey(end.Add(-1)),
			TotalPulls:    count,
			FiveStarCount: fiveStars,
			LuckFactor:    round2(factor),
			IsLucky:       factor > 1.5,
			IsUnlucky:     factor < 0.5,
		})
	}

	// descending by factor; earlier windows first on ties for determinism
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].LuckFactor != periods[j].LuckFactor {
			return periods[i].LuckFactor > periods[j].LuckFactor
		}
		return periods[i].StartDate < periods[j].StartDate
	})
	if len(periods) > constants.TopLuckPeriods {
		periods = periods[:constants.TopLuckPeriods]
	}
	return periods
}
