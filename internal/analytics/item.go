package analytics

import (
	"math"
	"sort"
	"time"
)

// itemKey groups acquisitions of the same item at the same rank. A struct
// key avoids the collision risk of concatenated-string keys.
type itemKey struct {
	name string
	rank int
}

// ItemStat is the acquisition history of one (item, rank) pair.
type ItemStat struct {
	Name          string   `json:"name"`
	Rank          int      `json:"rank"`
	Count         int      `json:"count"`
	FirstObtained string   `json:"firstObtained"`
	LastObtained  string   `json:"lastObtained"`
	AvgDaysBetween *float64 `json:"avgDaysBetween"` // 1 decimal, absent under 2 pulls
}

// ItemAnalysis ranks items by rarity and acquisition count.
type ItemAnalysis struct {
	Items          []ItemStat `json:"items"`
	UniqueItems    int        `json:"uniqueItems"`
	MostPulledItem *ItemStat  `json:"mostPulledItem"`
}

func computeItemAnalysis(pulls []pull) ItemAnalysis {
	type group struct {
		stat        ItemStat
		occurrences []time.Time
	}

	groups := make(map[itemKey]*group)
	var order []itemKey
	for _, p := range pulls {
		key := itemKey{name: p.rec.ItemName, rank: p.rec.Rank}
		g, ok := groups[key]
		if !ok {
			g = &group{stat: ItemStat{
				Name:          p.rec.ItemName,
				Rank:          p.rec.Rank,
				FirstObtained: p.rec.Time,
			}}
			groups[key] = g
			order = append(order, key)
		}
		g.stat.Count++
		g.stat.LastObtained = p.rec.Time
		g.occurrences = append(g.occurrences, p.at)
	}

	items := make([]ItemStat, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if avg, ok := averageGapDays(g.occurrences); ok {
			g.stat.AvgDaysBetween = &avg
		}
		items = append(items, g.stat)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rank != items[j].Rank {
			return items[i].Rank > items[j].Rank
		}
		return items[i].Count > items[j].Count
	})

	analysis := ItemAnalysis{Items: items, UniqueItems: len(items)}
	if len(items) > 0 {
		top := items[0]
		analysis.MostPulledItem = &top
	}
	return analysis
}

// averageGapDays averages the whole-day gaps between consecutive
// acquisitions. Undefined under two occurrences.
func averageGapDays(occurrences []time.Time) (float64, bool) {
	if len(occurrences) < 2 {
		return 0, false
	}
	total := 0
	for i := 1; i < len(occurrences); i++ {
		gap := int(math.Ceil(occurrences[i].Sub(occurrences[i-1]).Hours() / 24))
		total += gap
	}
	return round1(float64(total) / float64(len(occurrences)-1)), true
}
