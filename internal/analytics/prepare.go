package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gacha-tracker/internal/domain"
)

// pull pairs a record with its parsed timestamp so analyzers never re-parse.
type pull struct {
	rec domain.PullRecord
	at  time.Time
}

// prepare parses every timestamp and sorts the sequence chronologically.
// Pity walking and dry-spell detection assume this order; it is established
// here once instead of being trusted from the caller.
//
// An unparsable timestamp is an upstream contract breach and surfaces as the
// only error the engine can produce.
func prepare(records []domain.PullRecord) ([]pull, error) {
	pulls := make([]pull, 0, len(records))
	for _, r := range records {
		at, err := r.OccurredAt()
		if err != nil {
			return nil, fmt.Errorf("record %s: invalid timestamp %q: %w", r.ID, r.Time, err)
		}
		pulls = append(pulls, pull{rec: r, at: at})
	}
	sort.SliceStable(pulls, func(i, j int) bool { return pulls[i].at.Before(pulls[j].at) })
	return pulls, nil
}

// spacings walks the sequence and records, for every 5-star pull, how many
// pulls it took since the previous 5-star (counting itself). The leftover
// counter after the walk is the current pity.
func spacings(pulls []pull) (spaced []int, currentPity int) {
	count := 0
	for _, p := range pulls {
		count++
		if p.rec.Rank == 5 {
			spaced = append(spaced, count)
			count = 0
		}
	}
	return spaced, count
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
