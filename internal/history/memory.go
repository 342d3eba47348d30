package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for simulations and tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []*HandRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveHand appends the record.
func (s *MemoryStore) SaveHand(_ context.Context, record *HandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// RecentHands returns up to limit records for the table, newest first.
func (s *MemoryStore) RecentHands(_ context.Context, table string, limit int) ([]*HandRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*HandRecord
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if table == "" || s.records[i].Table == table {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}
