package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// DateRange is the inclusive span of transaction dates seen in one document.
type DateRange struct {
	Start civil.Date
	End   civil.Date
	Valid bool // false when no row normalized successfully
}

// Observe widens the range to include d.
func (r *DateRange) Observe(d civil.Date) {
	if !r.Valid {
		r.Start, r.End, r.Valid = d, d, true
		return
	}
	if d.Before(r.Start) {
		r.Start = d
	}
	if r.End.Before(d) {
		r.End = d
	}
}

// IngestionRun identifies one ingestion call for bookkeeping and logs.
type IngestionRun struct {
	RunID      string // uuid
	Checksum   string // sha-256 of the raw document bytes
	StartedAt  time.Time
	FinishedAt time.Time
}

// IngestionReport is the final, immutable result of one ingestion call.
// It is created only after every row has been processed.
type IngestionReport struct {
	Run IngestionRun

	InsertedCount  int
	DuplicateCount int
	RejectedRows   []RejectedRow
	TotalRowsSeen  int
	DateRange      DateRange
}
