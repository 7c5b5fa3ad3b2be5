package domain

import (
	"time"
)

// TimeLayout is the second-precision timestamp format used by every gacha
// record export format the importer understands.
const TimeLayout = "2006-01-02 15:04:05"

// PullRecord is one resolved pull event. Records are constructed by the
// import path (or the mock generator) and consumed read-only by every
// analyzer; nothing mutates a record after it is stored.
//
// ID is unique within a (uid, game) scope; duplicates are filtered by the
// record store on import, not re-deduplicated downstream.
type PullRecord struct {
	Game     Game
	UID      string
	PoolType string // pool code within the game, e.g. "301"
	ItemID   string
	Count    string
	Time     string // raw timestamp, TimeLayout, second precision
	ItemName string
	Lang     string
	Category string // free-form item kind, e.g. "character" / "weapon"
	Rank     int    // 3, 4 or 5
	ID       string
	PoolID   string
}

// OccurredAt parses the record's raw timestamp.
func (r PullRecord) OccurredAt() (time.Time, error) {
	return time.Parse(TimeLayout, r.Time)
}

// ValidRank reports whether the rank is one of the three known tiers.
func (r PullRecord) ValidRank() bool {
	return r.Rank == 3 || r.Rank == 4 || r.Rank == 5
}

// Profile registers a (uid, game) pair the tracker has data for.
type Profile struct {
	ID        string // nanoid
	UID       string
	Game      Game
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
