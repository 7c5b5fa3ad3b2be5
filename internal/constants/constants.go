package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

// Analytics shape constants.
const (
	SpacingBuckets     = 10
	SpacingBucketWidth = 10
	TopDrySpells       = 5
	TopLuckPeriods     = 10
	LuckPeriodWindow   = 7 * 24 * time.Hour
)

const (
	RecentItemsLimit = 10
	DefaultPageSize  = 100
	MaxPageSize      = 500
	MaxBatchUsers    = 50
)

const (
	MockDefaultCount = 100
	MockHistoryDays  = 90
)
