package service

import (
	"context"
	"math"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"
)

// PoolTypeSummary is one pool's counters plus its pity state.
type PoolTypeSummary struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Limited        bool   `json:"limited"`
	Count          int    `json:"count"`
	FiveStarCount  int    `json:"fiveStarCount"`
	FourStarCount  int    `json:"fourStarCount"`
	ThreeStarCount int    `json:"threeStarCount"`
	CurrentPity    int    `json:"currentPity"`
	MaxPity        int    `json:"maxPity"`
	LastFiveStar   int    `json:"lastFiveStar"` // pulls the latest 5-star took
}

// Summary is the lightweight per-user overview: global counters plus a
// per-pool breakdown with independent pity counters.
type Summary struct {
	TotalPulls      int                 `json:"totalPulls"`
	FiveStarCount   int                 `json:"fiveStarCount"`
	FourStarCount   int                 `json:"fourStarCount"`
	ThreeStarCount  int                 `json:"threeStarCount"`
	FiveStarRate    float64             `json:"fiveStarRate"`
	FourStarRate    float64             `json:"fourStarRate"`
	ThreeStarRate   float64             `json:"threeStarRate"`
	RecentFiveStars []domain.PullRecord `json:"recentFiveStars"`
	RecentFourStars []domain.PullRecord `json:"recentFourStars"`
	ByPoolType      []PoolTypeSummary   `json:"byPoolType"`
}

// Summary builds the per-pool overview. Pity counters are tracked per pool
// type because pools never share pity.
func (s *RecordService) Summary(ctx context.Context, uid string, game domain.Game) (*Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	records, err := s.repo.RecordsForUser(ctx, uid, game)
	if err != nil {
		return nil, err
	}
	sortRecordsByTime(records)

	summary := &Summary{
		RecentFiveStars: []domain.PullRecord{},
		RecentFourStars: []domain.PullRecord{},
		ByPoolType:      []PoolTypeSummary{},
	}

	pools := make(map[string]*PoolTypeSummary)
	var poolOrder []string
	poolSummary := func(code string) *PoolTypeSummary {
		if p, ok := pools[code]; ok {
			return p
		}
		p := &PoolTypeSummary{Code: code, Name: code}
		if pt, ok := domain.PoolTypeFor(game, code); ok {
			p.Name = s.locales.Lookup(game, pt.NameKey)
			p.Limited = pt.Limited
		}
		pools[code] = p
		poolOrder = append(poolOrder, code)
		return p
	}

	// register known pools up front so empty ones still report
	for _, pt := range domain.PoolTypesFor(game) {
		poolSummary(pt.Code)
	}

	for _, rec := range records {
		pool := poolSummary(rec.PoolType)
		pool.Count++
		summary.TotalPulls++

		switch rec.Rank {
		case 5:
			pool.FiveStarCount++
			summary.FiveStarCount++
			summary.RecentFiveStars = append([]domain.PullRecord{rec}, summary.RecentFiveStars...)
			pool.LastFiveStar = pool.CurrentPity + 1
			if pool.LastFiveStar > pool.MaxPity {
				pool.MaxPity = pool.LastFiveStar
			}
			pool.CurrentPity = 0
		case 4:
			pool.FourStarCount++
			summary.FourStarCount++
			summary.RecentFourStars = append([]domain.PullRecord{rec}, summary.RecentFourStars...)
			pool.CurrentPity++
		default:
			pool.ThreeStarCount++
			summary.ThreeStarCount++
			pool.CurrentPity++
		}
	}

	if summary.TotalPulls > 0 {
		total := float64(summary.TotalPulls)
		summary.FiveStarRate = roundPct(float64(summary.FiveStarCount) / total * 100)
		summary.FourStarRate = roundPct(float64(summary.FourStarCount) / total * 100)
		summary.ThreeStarRate = roundPct(float64(summary.ThreeStarCount) / total * 100)
	}

	if len(summary.RecentFiveStars) > constants.RecentItemsLimit {
		summary.RecentFiveStars = summary.RecentFiveStars[:constants.RecentItemsLimit]
	}
	if len(summary.RecentFourStars) > constants.RecentItemsLimit {
		summary.RecentFourStars = summary.RecentFourStars[:constants.RecentItemsLimit]
	}

	for _, code := range poolOrder {
		summary.ByPoolType = append(summary.ByPoolType, *pools[code])
	}
	return summary, nil
}

func roundPct(v float64) float64 { return math.Round(v*100) / 100 }
