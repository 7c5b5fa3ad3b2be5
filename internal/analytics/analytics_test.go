package analytics

import (
	"fmt"
	"time"

	"gacha-tracker/internal/domain"
)

// testRule mirrors the common character-pool mechanics.
var testRule = PityRule{
	HardPity:         90,
	SoftPityStart:    75,
	FourStarPity:     10,
	BaseFiveStarRate: 0.6,
	BaseFourStarRate: 5.1,
}

var testBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// seq builds one record per rank, one minute apart, in the given order.
func seq(ranks ...int) []domain.PullRecord {
	records := make([]domain.PullRecord, 0, len(ranks))
	for i, rank := range ranks {
		records = append(records, record(fmt.Sprintf("r%04d", i), rank, testBase.Add(time.Duration(i)*time.Minute)))
	}
	return records
}

func record(id string, rank int, at time.Time) domain.PullRecord {
	name := "Magic Guide"
	category := "weapon"
	switch rank {
	case 4:
		name = "Xingqiu"
		category = "character"
	case 5:
		name = "Zhongli"
		category = "character"
	}
	return domain.PullRecord{
		Game:     domain.GameGenshin,
		UID:      "100000001",
		PoolType: "301",
		Count:    "1",
		Time:     at.Format(domain.TimeLayout),
		ItemName: name,
		Lang:     "en",
		Category: category,
		Rank:     rank,
		ID:       id,
		PoolID:   "0",
	}
}

func mustPrepare(records []domain.PullRecord) []pull {
	pulls, err := prepare(records)
	if err != nil {
		panic(err)
	}
	return pulls
}
