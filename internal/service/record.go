package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gacha-tracker/internal/constants"
	"gacha-tracker/internal/domain"
	"gacha-tracker/internal/locale"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// RecordWriter extends the query surface with the mutations the import,
// clean and mock paths need.
type RecordWriter interface {
	RecordStore
	RecordsPage(ctx context.Context, uid string, game domain.Game, limit, offset int) ([]domain.PullRecord, error)
	CountForUser(ctx context.Context, uid string, game domain.Game) (int, error)
	SaveBatch(ctx context.Context, records []domain.PullRecord) (int, error)
	DeleteForUser(ctx context.Context, uid string, game domain.Game) error
}

// ImportEntry is one record of the JSON interchange format.
type ImportEntry struct {
	GachaType string `json:"gacha_type"`
	ItemID    string `json:"item_id"`
	Count     string `json:"count"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Lang      string `json:"lang"`
	ItemType  string `json:"item_type"`
	RankType  string `json:"rank_type"`
	ID        string `json:"id"`
	GachaID   string `json:"gacha_id"`
}

// ImportPayload is the uploaded document: a header plus the pull list.
type ImportPayload struct {
	Info struct {
		UID  string `json:"uid"`
		Lang string `json:"lang"`
	} `json:"info"`
	List []ImportEntry `json:"list"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type CleanResult struct {
	OriginalCount int  `json:"originalCount"`
	ValidCount    int  `json:"validCount"`
	RemovedCount  int  `json:"removedCount"`
	Success       bool `json:"success"`
}

type RecordService struct {
	repo    RecordWriter
	locales *locale.Table
	logger  zerolog.Logger
}

func NewRecordService(repo RecordWriter, locales *locale.Table, logger zerolog.Logger) *RecordService {
	return &RecordService{repo: repo, locales: locales, logger: logger}
}

// Import parses an uploaded record document and stores the new entries.
// Rows whose ID already exists in the store are skipped, as are rows that
// fail basic validity.
func (s *RecordService) Import(ctx context.Context, uid string, game domain.Game, payload []byte) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var doc ImportPayload
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse import payload: %w", err)
	}
	if doc.Info.UID != "" {
		uid = doc.Info.UID
	}

	records := make([]domain.PullRecord, 0, len(doc.List))
	skipped := 0
	for _, e := range doc.List {
		rec, err := e.toRecord(uid, game)
		if err != nil {
			s.logger.Debug().Err(err).Str("id", e.ID).Msg("skipping invalid import entry")
			skipped++
			continue
		}
		records = append(records, rec)
	}

	inserted, err := s.repo.SaveBatch(ctx, records)
	if err != nil {
		s.logger.Error().Err(err).Str("uid", uid).Msg("failed to save imported records")
		return nil, fmt.Errorf("failed to save imported records: %w", err)
	}
	skipped += len(records) - inserted

	s.logger.Info().
		Str("uid", uid).
		Int("imported", inserted).
		Int("skipped", skipped).
		Msg("records imported")
	return &ImportResult{Imported: inserted, Skipped: skipped}, nil
}

// Export dumps a user's full history in the interchange format.
func (s *RecordService) Export(ctx context.Context, uid string, game domain.Game) (*ImportPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	records, err := s.repo.RecordsForUser(ctx, uid, game)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	doc := &ImportPayload{List: make([]ImportEntry, 0, len(records))}
	doc.Info.UID = uid
	doc.Info.Lang = s.locales.Lang()
	for _, rec := range records {
		doc.List = append(doc.List, ImportEntry{
			GachaType: rec.PoolType,
			ItemID:    rec.ItemID,
			Count:     rec.Count,
			Time:      rec.Time,
			Name:      rec.ItemName,
			Lang:      rec.Lang,
			ItemType:  rec.Category,
			RankType:  strconv.Itoa(rec.Rank),
			ID:        rec.ID,
			GachaID:   rec.PoolID,
		})
	}
	return doc, nil
}

// History returns one page of a user's records, newest first.
func (s *RecordService) History(ctx context.Context, uid string, game domain.Game, page, pageSize int) ([]domain.PullRecord, int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	total, err := s.repo.CountForUser(ctx, uid, game)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.repo.RecordsPage(ctx, uid, game, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Clean is the data-hygiene pass: it drops records with a rank outside the
// known tiers, an unparsable timestamp, or a duplicate ID, then rewrites
// the store. Analyzers rely on this having run on anything imported from
// untrusted files.
func (s *RecordService) Clean(ctx context.Context, uid string, game domain.Game) (*CleanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	records, err := s.repo.RecordsForUser(ctx, uid, game)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	valid := make([]domain.PullRecord, 0, len(records))
	for _, rec := range records {
		if rec.UID == "" || !rec.ValidRank() {
			continue
		}
		if _, err := rec.OccurredAt(); err != nil {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			continue
		}
		seen[rec.ID] = struct{}{}
		valid = append(valid, rec)
	}

	removed := len(records) - len(valid)
	if removed > 0 {
		if err := s.repo.DeleteForUser(ctx, uid, game); err != nil {
			return nil, err
		}
		if _, err := s.repo.SaveBatch(ctx, valid); err != nil {
			return nil, err
		}
	}

	s.logger.Info().
		Str("uid", uid).
		Int("original", len(records)).
		Int("removed", removed).
		Msg("record store cleaned")
	return &CleanResult{
		OriginalCount: len(records),
		ValidCount:    len(valid),
		RemovedCount:  removed,
		Success:       true,
	}, nil
}

func (e ImportEntry) toRecord(uid string, game domain.Game) (domain.PullRecord, error) {
	rank, err := strconv.Atoi(e.RankType)
	if err != nil {
		return domain.PullRecord{}, fmt.Errorf("invalid rank %q: %w", e.RankType, err)
	}

	rec := domain.PullRecord{
		Game:     game,
		UID:      uid,
		PoolType: e.GachaType,
		ItemID:   e.ItemID,
		Count:    e.Count,
		Time:     e.Time,
		ItemName: e.Name,
		Lang:     e.Lang,
		Category: e.ItemType,
		Rank:     rank,
		ID:       e.ID,
		PoolID:   e.GachaID,
	}
	if !rec.ValidRank() {
		return domain.PullRecord{}, fmt.Errorf("rank %d out of range", rank)
	}
	if _, err := rec.OccurredAt(); err != nil {
		return domain.PullRecord{}, fmt.Errorf("invalid time %q: %w", e.Time, err)
	}
	if rec.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return domain.PullRecord{}, fmt.Errorf("failed to generate record id: %w", err)
		}
		rec.ID = id
	}
	if rec.Count == "" {
		rec.Count = "1"
	}
	return rec, nil
}

// sortRecordsByTime orders records chronologically, oldest first. The raw
// timestamp format sorts lexicographically.
func sortRecordsByTime(records []domain.PullRecord) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Time < records[j].Time })
}
