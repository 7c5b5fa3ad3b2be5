package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gacha-tracker/internal/analytics"
	"gacha-tracker/internal/config"
	"gacha-tracker/internal/domain"
	"gacha-tracker/internal/locale"
)

// fakeStore is an in-memory RecordWriter keyed by (uid, game).
type fakeStore struct {
	mu          sync.Mutex
	records     map[string][]domain.PullRecord
	failFor     map[string]error
	deleteCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[string][]domain.PullRecord),
		failFor: make(map[string]error),
	}
}

func storeKey(uid string, game domain.Game) string {
	return uid + "|" + string(game)
}

func (f *fakeStore) seed(records ...domain.PullRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range records {
		key := storeKey(rec.UID, rec.Game)
		f.records[key] = append(f.records[key], rec)
	}
}

func (f *fakeStore) RecordsForUser(ctx context.Context, uid string, game domain.Game) ([]domain.PullRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[uid]; err != nil {
		return nil, err
	}
	out := append([]domain.PullRecord(nil), f.records[storeKey(uid, game)]...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) RecordsForUserAndPool(ctx context.Context, uid string, game domain.Game, poolType string) ([]domain.PullRecord, error) {
	all, err := f.RecordsForUser(ctx, uid, game)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PullRecord, 0, len(all))
	for _, rec := range all {
		if rec.PoolType == poolType {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) RecordsPage(ctx context.Context, uid string, game domain.Game, limit, offset int) ([]domain.PullRecord, error) {
	all, err := f.RecordsForUser(ctx, uid, game)
	if err != nil {
		return nil, err
	}
	// newest first, like the SQL path
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return []domain.PullRecord{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeStore) CountForUser(ctx context.Context, uid string, game domain.Game) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[uid]; err != nil {
		return 0, err
	}
	return len(f.records[storeKey(uid, game)]), nil
}

func (f *fakeStore) SaveBatch(ctx context.Context, records []domain.PullRecord) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inserted := 0
	for _, rec := range records {
		key := storeKey(rec.UID, rec.Game)
		exists := false
		for _, have := range f.records[key] {
			if have.ID == rec.ID {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		f.records[key] = append(f.records[key], rec)
		inserted++
	}
	return inserted, nil
}

func (f *fakeStore) DeleteForUser(ctx context.Context, uid string, game domain.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	delete(f.records, storeKey(uid, game))
	return nil
}

func testLocales(t *testing.T) *locale.Table {
	t.Helper()
	locales, err := locale.New(&config.Config{Locale: "en"})
	require.NoError(t, err)
	return locales
}

func testRules(t *testing.T) *analytics.RuleTable {
	t.Helper()
	rules, err := analytics.NewRuleTable()
	require.NoError(t, err)
	return rules
}

func newTestRecordService(t *testing.T) (*RecordService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewRecordService(store, testLocales(t), zerolog.Nop()), store
}

// pullAt builds a stored record for the genshin character pool.
func pullAt(uid, id string, rank int, timeStr string) domain.PullRecord {
	return domain.PullRecord{
		Game:     domain.GameGenshin,
		UID:      uid,
		PoolType: "301",
		Count:    "1",
		Time:     timeStr,
		ItemName: fmt.Sprintf("Item %s", id),
		Lang:     "en",
		Category: "character",
		Rank:     rank,
		ID:       id,
		PoolID:   "0",
	}
}
