package analytics

import "sort"

// CategoryShare is one item-kind slice of a rank's pulls.
type CategoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"` // percent of the rank's pulls, 1 decimal
}

// BasicStats counts pulls by rank and breaks the two rare ranks down by
// item category. Rates are percentages of the total, 2 decimals; they sum
// to 100 within rounding tolerance.
type BasicStats struct {
	TotalPulls         int             `json:"totalPulls"`
	FiveStarCount      int             `json:"fiveStarCount"`
	FourStarCount      int             `json:"fourStarCount"`
	ThreeStarCount     int             `json:"threeStarCount"`
	FiveStarRate       float64         `json:"fiveStarRate"`
	FourStarRate       float64         `json:"fourStarRate"`
	ThreeStarRate      float64         `json:"threeStarRate"`
	FiveStarByCategory []CategoryShare `json:"fiveStarByCategory"`
	FourStarByCategory []CategoryShare `json:"fourStarByCategory"`
}

func computeBasicStats(pulls []pull) BasicStats {
	stats := BasicStats{
		TotalPulls:         len(pulls),
		FiveStarByCategory: []CategoryShare{},
		FourStarByCategory: []CategoryShare{},
	}

	fiveByCat := make(map[string]int)
	fourByCat := make(map[string]int)
	for _, p := range pulls {
		switch p.rec.Rank {
		case 5:
			stats.FiveStarCount++
			fiveByCat[p.rec.Category]++
		case 4:
			stats.FourStarCount++
			fourByCat[p.rec.Category]++
		default:
			stats.ThreeStarCount++
		}
	}

	if stats.TotalPulls > 0 {
		total := float64(stats.TotalPulls)
		stats.FiveStarRate = round2(float64(stats.FiveStarCount) / total * 100)
		stats.FourStarRate = round2(float64(stats.FourStarCount) / total * 100)
		stats.ThreeStarRate = round2(float64(stats.ThreeStarCount) / total * 100)
	}

	stats.FiveStarByCategory = categoryShares(fiveByCat, stats.FiveStarCount)
	stats.FourStarByCategory = categoryShares(fourByCat, stats.FourStarCount)
	return stats
}

func categoryShares(byCat map[string]int, rankTotal int) []CategoryShare {
	shares := make([]CategoryShare, 0, len(byCat))
	for cat, n := range byCat {
		share := CategoryShare{Category: cat, Count: n}
		if rankTotal > 0 {
			share.Share = round1(float64(n) / float64(rankTotal) * 100)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
