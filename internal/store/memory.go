package store

import (
	"context"
	"sync"

	"github.com/dvloznov/cashflow-ingest/internal/domain"
)

// Memory is an in-memory Store, safe for concurrent use. Data is lost on
// restart; use the Postgres store for persistence across runs.
type Memory struct {
	mu     sync.RWMutex
	byHash map[string]*domain.CanonicalTransaction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{byHash: make(map[string]*domain.CanonicalTransaction)}
}

func (s *Memory) Exists(ctx context.Context, hash string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byHash[hash]
	return ok, nil
}

// Insert checks and stores under one lock, so concurrent inserts of the
// same hash serialize and exactly one reports Inserted.
func (s *Memory) Insert(ctx context.Context, tx *domain.CanonicalTransaction) (InsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byHash[tx.ContentHash]; ok {
		return AlreadyExists, nil
	}
	txCopy := *tx
	s.byHash[tx.ContentHash] = &txCopy
	return Inserted, nil
}

// Len returns the number of stored transactions.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byHash)
}

// Get returns the stored transaction for hash, or nil.
func (s *Memory) Get(hash string) *domain.CanonicalTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.byHash[hash]
	if !ok {
		return nil
	}
	txCopy := *tx
	return &txCopy
}
