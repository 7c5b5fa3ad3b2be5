package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"

	"github.com/rs/zerolog"
)

const recordColumns = "uid, game, id, pool_type, item_id, count, time, item_name, lang, category, rank_type, pool_id"

// RecordRepository is the keyed, indexed pull-record store. Records come
// back ordered by timestamp so callers get a stable chronological sequence;
// duplicate IDs within a (uid, game) scope are rejected at insert time.
type RecordRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRecordRepository(sqlDB *sql.DB, logger zerolog.Logger) *RecordRepository {
	return &RecordRepository{db: sqlDB, logger: logger}
}

func (r *RecordRepository) RecordsForUser(ctx context.Context, uid string, game domain.Game) ([]domain.PullRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM gacha_records WHERE uid = ? AND game = ? ORDER BY time ASC, id ASC", recordColumns)
	return r.queryRecords(ctx, query, uid, string(game))
}

func (r *RecordRepository) RecordsForUserAndPool(ctx context.Context, uid string, game domain.Game, poolType string) ([]domain.PullRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM gacha_records WHERE uid = ? AND game = ? AND pool_type = ? ORDER BY time ASC, id ASC", recordColumns)
	return r.queryRecords(ctx, query, uid, string(game), poolType)
}

// RecordsPage returns one page of history, newest first.
func (r *RecordRepository) RecordsPage(ctx context.Context, uid string, game domain.Game, limit, offset int) ([]domain.PullRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM gacha_records WHERE uid = ? AND game = ? ORDER BY time DESC, id DESC LIMIT ? OFFSET ?", recordColumns)
	return r.queryRecords(ctx, query, uid, string(game), limit, offset)
}

func (r *RecordRepository) CountForUser(ctx context.Context, uid string, game domain.Game) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM gacha_records WHERE uid = ? AND game = ?",
		uid, string(game),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// SaveBatch inserts records in DBBatchSize chunks within one transaction,
// skipping rows whose (uid, game, id) already exists. Returns how many rows
// were actually inserted.
func (r *RecordRepository) SaveBatch(ctx context.Context, records []domain.PullRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT OR IGNORE INTO gacha_records (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", recordColumns))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i := 0; i < len(records); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(records) {
			end = len(records)
		}

		for _, rec := range records[i:end] {
			res, err := stmt.ExecContext(ctx,
				rec.UID, string(rec.Game), rec.ID, rec.PoolType, rec.ItemID, rec.Count,
				rec.Time, rec.ItemName, rec.Lang, rec.Category, rec.Rank, rec.PoolID,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}

	r.logger.Debug().
		Int("total", len(records)).
		Int("inserted", inserted).
		Msg("record batch saved")
	return inserted, nil
}

func (r *RecordRepository) DeleteForUser(ctx context.Context, uid string, game domain.Game) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM gacha_records WHERE uid = ? AND game = ?",
		uid, string(game),
	)
	if err != nil {
		r.logger.Error().Err(err).Str("uid", uid).Msg("failed to delete records")
		return fmt.Errorf("failed to delete records: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		r.logger.Debug().Str("uid", uid).Int64("deleted", n).Msg("records deleted")
	}
	return nil
}

func (r *RecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]domain.PullRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []domain.PullRecord
	for rows.Next() {
		var rec domain.PullRecord
		var game string
		if err := rows.Scan(
			&rec.UID, &game, &rec.ID, &rec.PoolType, &rec.ItemID, &rec.Count,
			&rec.Time, &rec.ItemName, &rec.Lang, &rec.Category, &rec.Rank, &rec.PoolID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Game = domain.Game(game)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}
