package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha-tracker/internal/domain"
)

type fakeProfileStore struct {
	profiles map[string]*domain.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeProfileStore) Upsert(ctx context.Context, profile *domain.Profile) error {
	key := storeKey(profile.UID, profile.Game)
	if existing, ok := f.profiles[key]; ok {
		existing.Name = profile.Name
		existing.UpdatedAt = profile.UpdatedAt
		return nil
	}
	clone := *profile
	f.profiles[key] = &clone
	return nil
}

func (f *fakeProfileStore) Get(ctx context.Context, uid string, game domain.Game) (*domain.Profile, error) {
	p, ok := f.profiles[storeKey(uid, game)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeProfileStore) All(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProfileStore) ByGame(ctx context.Context, game domain.Game) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.profiles {
		if p.Game == game {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) Delete(ctx context.Context, uid string, game domain.Game) error {
	delete(f.profiles, storeKey(uid, game))
	return nil
}

func TestProfileService_Create(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), zerolog.Nop())

	profile, err := svc.Create(context.Background(), "100000001", domain.GameGenshin, "")
	require.NoError(t, err)

	assert.NotEmpty(t, profile.ID)
	assert.Equal(t, "genshinImpact - 100000001", profile.Name, "empty name gets a default")

	got, err := svc.Get(context.Background(), "100000001", domain.GameGenshin)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
}

func TestProfileService_CreateRejectsUnknownGame(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), zerolog.Nop())

	_, err := svc.Create(context.Background(), "u1", domain.Game("pokerStars"), "x")
	require.Error(t, err)
}

func TestProfileService_CreateIsUpsert(t *testing.T) {
	store := newFakeProfileStore()
	svc := NewProfileService(store, zerolog.Nop())

	first, err := svc.Create(context.Background(), "200000001", domain.GameStarRail, "Main")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "200000001", domain.GameStarRail, "Renamed")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "200000001", domain.GameStarRail)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "re-creating the same (uid, game) keeps the row")
	assert.Equal(t, "Renamed", got.Name)
}

func TestProfileService_ByGameAndDelete(t *testing.T) {
	svc := NewProfileService(newFakeProfileStore(), zerolog.Nop())

	_, err := svc.Create(context.Background(), "100000001", domain.GameGenshin, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "200000001", domain.GameStarRail, "")
	require.NoError(t, err)

	genshin, err := svc.ByGame(context.Background(), domain.GameGenshin)
	require.NoError(t, err)
	assert.Len(t, genshin, 1)

	require.NoError(t, svc.Delete(context.Background(), "100000001", domain.GameGenshin))
	_, err = svc.Get(context.Background(), "100000001", domain.GameGenshin)
	assert.Error(t, err)
}
