package memory

import (
	"context"
	"sync"

	"github.com/parcours-dev/parcours/pkg/domain"
)

// Store implements ports.SnapshotStore in process memory.
// Safe for concurrent use. Suitable for tests and single-instance
// deployments; entries live until deleted or the process exits.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]*domain.Snapshot
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]map[string]*domain.Snapshot),
	}
}

// Save persists the snapshot. The stored copy is detached from the caller's
// pointer so later mutations do not leak into the store.
func (s *Store) Save(ctx context.Context, sessionID, tabID string, snap *domain.Snapshot) error {
	copied := snap.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	tabs, ok := s.sessions[sessionID]
	if !ok {
		tabs = make(map[string]*domain.Snapshot)
		s.sessions[sessionID] = tabs
	}
	tabs[tabID] = copied
	return nil
}

// Load retrieves the snapshot, returning a copy so the caller cannot mutate
// store state through the pointer.
func (s *Store) Load(ctx context.Context, sessionID, tabID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.sessions[sessionID][tabID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return snap.Clone(), nil
}

// Delete removes the entry for a (session, tab) pair.
func (s *Store) Delete(ctx context.Context, sessionID, tabID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions[sessionID], tabID)
	if len(s.sessions[sessionID]) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

// List returns the tab ids holding a snapshot under the session.
func (s *Store) List(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tabs := make([]string, 0, len(s.sessions[sessionID]))
	for id := range s.sessions[sessionID] {
		tabs = append(tabs, id)
	}
	return tabs, nil
}
