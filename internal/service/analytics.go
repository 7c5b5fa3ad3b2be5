package service

import (
	"context"
	"fmt"

	"gacha-tracker/internal/analytics"
	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"
	"gacha-tracker/internal/locale"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RecordStore is the query surface of the record repository the analytics
// flow needs. The store guarantees ID uniqueness within a (uid, game) scope.
type RecordStore interface {
	RecordsForUser(ctx context.Context, uid string, game domain.Game) ([]domain.PullRecord, error)
	RecordsForUserAndPool(ctx context.Context, uid string, game domain.Game, poolType string) ([]domain.PullRecord, error)
}

// BatchResult is one user's envelope in a batch analysis. Exactly one of
// Data and Error is populated.
type BatchResult struct {
	UID     string            `json:"uid"`
	Success bool              `json:"success"`
	Data    *analytics.Report `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type AnalyticsService struct {
	store       RecordStore
	rules       *analytics.RuleTable
	locales     *locale.Table
	concurrency int
	logger      zerolog.Logger
}

func NewAnalyticsService(store RecordStore, rules *analytics.RuleTable, locales *locale.Table, concurrency int, logger zerolog.Logger) *AnalyticsService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AnalyticsService{store: store, rules: rules, locales: locales, concurrency: concurrency, logger: logger}
}

// DetailedAnalytics fetches one user's filtered record sequence and runs the
// full analyzer fan-out over it. Pool type may be empty for all pools.
func (s *AnalyticsService) DetailedAnalytics(ctx context.Context, uid string, game domain.Game, poolType string) (*analytics.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Debug().
		Str("uid", uid).
		Str("game", string(game)).
		Str("pool_type", poolType).
		Msg("running detailed analytics")

	var records []domain.PullRecord
	var err error
	if poolType != "" {
		records, err = s.store.RecordsForUserAndPool(ctx, uid, game, poolType)
	} else {
		records, err = s.store.RecordsForUser(ctx, uid, game)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to load records")
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	rule := s.rules.RuleFor(game, poolType)
	report, err := analytics.Analyze(records, rule)
	if err != nil {
		return nil, err
	}

	if rec := report.Advanced.RecommendedNextPulls; rec != nil {
		rec.Message = s.locales.Message(game, rec.Code, rec.CurrentPity)
	}

	s.logger.Info().
		Str("uid", uid).
		Int("records", len(records)).
		Int("current_pity", report.Pity.CurrentPity).
		Msg("analytics computed")
	return report, nil
}

// BatchAnalyze analyzes several users concurrently. Results come back in
// input order; one user's failure is recorded in its envelope and never
// aborts the siblings.
func (s *AnalyticsService) BatchAnalyze(ctx context.Context, uids []string, game domain.Game) []BatchResult {
	results := make([]BatchResult, len(uids))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, uid := range uids {
		i, uid := i, uid // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			report, err := s.DetailedAnalytics(gCtx, uid, game, "")
			if err != nil {
				s.logger.Warn().Err(err).Str("uid", uid).Msg("batch analysis failed for user")
				results[i] = BatchResult{UID: uid, Error: err.Error()}
				return nil
			}
			results[i] = BatchResult{UID: uid, Success: true, Data: report}
			return nil
		})
	}

	// closures never return errors; Wait only fences completion
	_ = g.Wait()
	return results
}
