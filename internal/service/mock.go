package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var mockFiveStars = map[domain.Game][]string{
	domain.GameGenshin:  {"Eula", "Kazuha", "Ganyu", "Zhongli", "Raiden Shogun", "Ayaka", "Nahida", "Venti"},
	domain.GameStarRail: {"Blade", "Jing Yuan", "Seele", "Silver Wolf", "Luocha", "Bailu", "Fu Xuan", "Yanqing"},
	domain.GameZenless:  {"Von Lycaon", "Nicole", "Corin", "Koleda", "Ben", "Anton", "Ellen", "Grace"},
}

var mockFourStars = map[domain.Game][]string{
	domain.GameGenshin:  {"Xiangling", "Xingqiu", "Bennett", "Chongyun", "Ningguang", "Beidou", "Yanfei", "Diona"},
	domain.GameStarRail: {"March 7th", "Dan Heng", "Asta", "Natasha", "Hook", "Pela", "Serval", "Sampo"},
	domain.GameZenless:  {"Anby", "Billy", "Soukaku", "Lucy", "Piper", "Seth", "Pulchra", "Soldier 11"},
}

var mockThreeStars = map[domain.Game][]string{
	domain.GameGenshin:  {"Ferrous Shadow", "Cool Steel", "Harbinger of Dawn", "Slingshot", "Sharpshooter's Oath", "Thrilling Tales", "Magic Guide"},
	domain.GameStarRail: {"Arrows", "Cornucopia", "Collapsing Sky", "Darting Arrow", "Void", "Chorus", "Shattered Home"},
	domain.GameZenless:  {"Vortex Arrow", "Lyra's Howl", "Magnetic Storm", "Marcato Desire", "Gilded Blossom", "Steam Oven", "Reverb"},
}

// GenerateMock synthesizes a plausible pull history for demos and tests and
// stores it. Rank odds follow the usual published base rates; timestamps
// land within the recent history window.
func (s *RecordService) GenerateMock(ctx context.Context, uid string, game domain.Game, count int, seed int64) ([]domain.PullRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if count <= 0 {
		count = constants.MockDefaultCount
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pools := domain.PoolTypesFor(game)
	if len(pools) == 0 {
		return nil, fmt.Errorf("unknown game %q", game)
	}

	now := time.Now()
	records := make([]domain.PullRecord, 0, count)
	for i := 0; i < count; i++ {
		rank := 3
		switch roll := rng.Float64(); {
		case roll < 0.006:
			rank = 5
		case roll < 0.13:
			rank = 4
		}

		category := mockCategory(game, rank, rng)
		at := now.AddDate(0, 0, -rng.Intn(constants.MockHistoryDays)).
			Truncate(time.Hour).
			Add(time.Duration(rng.Intn(24))*time.Hour + time.Duration(rng.Intn(60))*time.Minute)

		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate record id: %w", err)
		}

		records = append(records, domain.PullRecord{
			Game:     game,
			UID:      uid,
			PoolType: pools[rng.Intn(len(pools))].Code,
			Count:    "1",
			Time:     at.Format(domain.TimeLayout),
			ItemName: mockName(game, rank, rng),
			Lang:     s.locales.Lang(),
			Category: category,
			Rank:     rank,
			ID:       id,
			PoolID:   "0",
		})
	}

	sortRecordsByTime(records)

	if _, err := s.repo.SaveBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save mock records: %w", err)
	}

	s.logger.Info().
		Str("uid", uid).
		Str("game", string(game)).
		Int("count", len(records)).
		Int64("seed", seed).
		Msg("mock records generated")
	return records, nil
}

func mockCategory(game domain.Game, rank int, rng *rand.Rand) string {
	weaponKind := "weapon"
	if game == domain.GameStarRail {
		weaponKind = "lightcone"
	}
	if rank == 3 {
		return weaponKind
	}
	if rng.Float64() > 0.5 {
		return "character"
	}
	return weaponKind
}

func mockName(game domain.Game, rank int, rng *rand.Rand) string {
	var names []string
	switch rank {
	case 5:
		names = mockFiveStars[game]
	case 4:
		names = mockFourStars[game]
	default:
		names = mockThreeStars[game]
	}
	return names[rng.Intn(len(names))]
}
