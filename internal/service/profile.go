package service

import (
	"context"
	"fmt"
	"time"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ProfileStore is the profile registry surface.
type ProfileStore interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	Get(ctx context.Context, uid string, game domain.Game) (*domain.Profile, error)
	All(ctx context.Context) ([]domain.Profile, error)
	ByGame(ctx context.Context, game domain.Game) ([]domain.Profile, error)
	Delete(ctx context.Context, uid string, game domain.Game) error
}

type ProfileService struct {
	repo   ProfileStore
	logger zerolog.Logger
}

func NewProfileService(repo ProfileStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// Create registers a (uid, game) pair. Name defaults to "<game> - <uid>".
func (s *ProfileService) Create(ctx context.Context, uid string, game domain.Game, name string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !game.Valid() {
		return nil, fmt.Errorf("unknown game %q", game)
	}
	if name == "" {
		name = fmt.Sprintf("%s - %s", game, uid)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile id: %w", err)
	}

	now := time.Now()
	profile := &domain.Profile{
		ID:        id,
		UID:       uid,
		Game:      game,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", uid).Str("game", string(game)).Msg("profile created")
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, uid string, game domain.Game) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Get(ctx, uid, game)
}

func (s *ProfileService) All(ctx context.Context) ([]domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.All(ctx)
}

func (s *ProfileService) ByGame(ctx context.Context, game domain.Game) ([]domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.ByGame(ctx, game)
}

func (s *ProfileService) Delete(ctx context.Context, uid string, game domain.Game) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.Delete(ctx, uid, game)
}
