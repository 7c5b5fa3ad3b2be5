package fx

import (
	"gacha-tracker/internal/analytics"
	"gacha-tracker/internal/config"
	"gacha-tracker/internal/database"
	"gacha-tracker/internal/locale"
	"gacha-tracker/internal/logger"
	"gacha-tracker/internal/repository"
	"gacha-tracker/internal/server"
	"gacha-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideAnalyticsService(
	repo *repository.RecordRepository,
	rules *analytics.RuleTable,
	locales *locale.Table,
	cfg *config.Config,
	log zerolog.Logger,
) *service.AnalyticsService {
	return service.NewAnalyticsService(repo, rules, locales, cfg.BatchConcurrency, log)
}

func ProvideRecordService(
	repo *repository.RecordRepository,
	locales *locale.Table,
	log zerolog.Logger,
) *service.RecordService {
	return service.NewRecordService(repo, locales, log)
}

func ProvideProfileService(repo *repository.ProfileRepository, log zerolog.Logger) *service.ProfileService {
	return service.NewProfileService(repo, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(analytics.NewRuleTable),
	locale.Module,
	// repos
	fx.Provide(repository.NewRecordRepository),
	fx.Provide(repository.NewProfileRepository),
	// svc
	fx.Provide(ProvideAnalyticsService),
	fx.Provide(ProvideRecordService),
	fx.Provide(ProvideProfileService),
	// server
	fx.Provide(server.New),
)
