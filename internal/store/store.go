// Package store holds the deduplication store: a persistent set of canonical
// transactions keyed by content hash, shared across ingestion calls.
package store

import (
	"context"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// InsertOutcome is the result of an atomic insert attempt.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	AlreadyExists
)

// Store is the deduplication boundary. Insert is a combined
// exists-then-insert with at-most-once semantics: two concurrent inserts of
// the same content hash must never both report Inserted, which is what makes
// overlapping statements safe to ingest concurrently.
type Store interface {
	// Exists reports whether a transaction with the given content hash has
	// already been stored.
	Exists(ctx context.Context, hash string) (bool, error)

	// Insert stores the transaction keyed by its ContentHash, atomically.
	// A duplicate returns AlreadyExists and leaves the stored record alone.
	Insert(ctx context.Context, tx *domain.CanonicalTransaction) (InsertOutcome, error)
}
