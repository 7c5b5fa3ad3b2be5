package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gacha-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type ProfileRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewProfileRepository(sqlDB *sql.DB, logger zerolog.Logger) *ProfileRepository {
	return &ProfileRepository{db: sqlDB, logger: logger}
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gacha_profiles (id, uid, game, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (uid, game) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		profile.ID, profile.UID, string(profile.Game), profile.Name, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("uid", profile.UID).Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, uid string, game domain.Game) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, uid, game, name, created_at, updated_at FROM gacha_profiles WHERE uid = ? AND game = ?",
		uid, string(game),
	)
	return scanProfile(row)
}

func (r *ProfileRepository) All(ctx context.Context) ([]domain.Profile, error) {
	return r.queryProfiles(ctx,
		"SELECT id, uid, game, name, created_at, updated_at FROM gacha_profiles ORDER BY created_at ASC")
}

func (r *ProfileRepository) ByGame(ctx context.Context, game domain.Game) ([]domain.Profile, error) {
	return r.queryProfiles(ctx,
		"SELECT id, uid, game, name, created_at, updated_at FROM gacha_profiles WHERE game = ? ORDER BY created_at ASC",
		string(game))
}

func (r *ProfileRepository) Delete(ctx context.Context, uid string, game domain.Game) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM gacha_profiles WHERE uid = ? AND game = ?",
		uid, string(game),
	)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var game string
		if err := rows.Scan(&p.ID, &p.UID, &game, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.Game = domain.Game(game)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

func scanProfile(row *sql.Row) (*domain.Profile, error) {
	var p domain.Profile
	var game string
	if err := row.Scan(&p.ID, &p.UID, &game, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Game = domain.Game(game)
	return &p, nil
}
