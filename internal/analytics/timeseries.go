package analytics

import "sort"

// DailyBucket aggregates one calendar day of pulls.
type DailyBucket struct {
	Date      string `json:"date"` // 2006-01-02
	Count     int    `json:"count"`
	FiveStars int    `json:"fiveStars"`
	FourStars int    `json:"fourStars"`
}

// MonthlyBucket aggregates one calendar month of daily buckets.
type MonthlyBucket struct {
	Month      string `json:"month"` // 2006-01
	TotalPulls int    `json:"totalPulls"`
	FiveStars  int    `json:"fiveStars"`
}

// TimeRange is the inclusive span of the record set in whole days.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// TimeAnalysis buckets the sequence by day and month. Empty input yields
// empty buckets and a nil range, never an error.
type TimeAnalysis struct {
	DailyDistribution []DailyBucket   `json:"dailyDistribution"`
	MonthlySummary    []MonthlyBucket `json:"monthlySummary"`
	TimeRange         *TimeRange      `json:"timeRange"`
}

func computeTimeAnalysis(pulls []pull) TimeAnalysis {
	analysis := TimeAnalysis{
		DailyDistribution: []DailyBucket{},
		MonthlySummary:    []MonthlyBucket{},
	}
	if len(pulls) == 0 {
		return analysis
	}

	daily := make(map[string]*DailyBucket)
	earliest, latest := pulls[0].at, pulls[0].at
	for _, p := range pulls {
		key := dateKey(p.at)
		bucket, ok := daily[key]
		if !ok {
			bucket = &DailyBucket{Date: key}
			daily[key] = bucket
		}
		bucket.Count++
		if p.rec.Rank == 5 {
			bucket.FiveStars++
		}
		if p.rec.Rank == 4 {
			bucket.FourStars++
		}
		if p.at.Before(earliest) {
			earliest = p.at
		}
		if p.at.After(latest) {
			latest = p.at
		}
	}

	for _, b := range daily {
		analysis.DailyDistribution = append(analysis.DailyDistribution, *b)
	}
	sort.Slice(analysis.DailyDistribution, func(i, j int) bool {
		return analysis.DailyDistribution[i].Date < analysis.DailyDistribution[j].Date
	})

	monthly := make(map[string]*MonthlyBucket)
	var monthOrder []string
	for _, day := range analysis.DailyDistribution {
		key := day.Date[:7]
		bucket, ok := monthly[key]
		if !ok {
			bucket = &MonthlyBucket{Month: key}
			monthly[key] = bucket
			monthOrder = append(monthOrder, key)
		}
		bucket.TotalPulls += day.Count
		bucket.FiveStars += day.FiveStars
	}
	for _, key := range monthOrder {
		analysis.MonthlySummary = append(analysis.MonthlySummary, *monthly[key])
	}

	startDay := truncateToDay(earliest)
	endDay := truncateToDay(latest)
	analysis.TimeRange = &TimeRange{
		Start: dateKey(earliest),
		End:   dateKey(latest),
		Days:  int(endDay.Sub(startDay).Hours()/24) + 1,
	}
	return analysis
}
