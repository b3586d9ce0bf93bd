package memory

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store keeps records in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.Mutex
	items []core.Record
}

func New(seed ...core.Record) *Store {
	return &Store{items: append([]core.Record(nil), seed...)}
}

// Append stores the record at the end.
func (s *Store) Append(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return nil
}

// LoadAll returns a copy of the stored records.
func (s *Store) LoadAll(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.items...), nil
}

func (s *Store) RewriteAll(_ context.Context, records []core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Record(nil), records...)
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
