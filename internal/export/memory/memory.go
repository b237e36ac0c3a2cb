package memory

import (
	"context"
	"fmt"
	"sync"

	"aurum/internal/storage"
)

// Store is an in-memory snapshot mirror for local runs and tests.
type Store struct {
	mu    sync.Mutex
	items []storage.NetWorthSnapshot
}

func New() *Store {
	return &Store{}
}

// Append stores the snapshot and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, snap storage.NetWorthSnapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, snap)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Snapshots returns a copy of everything appended so far.
func (s *Store) Snapshots() []storage.NetWorthSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.NetWorthSnapshot(nil), s.items...)
}
