package store

import (
	"sync"
	"time"

	"parley/internal/domain"
)

// MemoryPending is a volatile PendingStore backed by a process-local map.
// Safe for concurrent access; suited to tests, demos and single-process
// deployments.
type MemoryPending struct {
	mu      sync.RWMutex
	entries map[domain.SessionID]domain.PendingEntry
}

// NewMemoryPending returns an empty in-memory pending store.
func NewMemoryPending() *MemoryPending {
	return &MemoryPending{entries: make(map[domain.SessionID]domain.PendingEntry)}
}

// Put stores or replaces the entry for id.
func (s *MemoryPending) Put(id domain.SessionID, entry domain.PendingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry
	return nil
}

// Get returns the entry for id, if present.
func (s *MemoryPending) Get(id domain.SessionID) (domain.PendingEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	return entry, ok, nil
}

// Delete removes the entry for id. Deleting an absent id is not an error.
func (s *MemoryPending) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Sweep purges entries whose offer TTL lapsed before now.
func (s *MemoryPending) Sweep(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for id, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, id)
			purged++
		}
	}
	return purged, nil
}

// Len reports how many negotiations are currently in flight.
func (s *MemoryPending) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// MemorySessions is a volatile SessionStore backed by a process-local map.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]domain.Session
}

// NewMemorySessions returns an empty in-memory session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[domain.SessionID]domain.Session)}
}

// Put stores or replaces session.
func (s *MemorySessions) Put(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = session
	return nil
}

// Get returns the session for id, if present.
func (s *MemorySessions) Get(id domain.SessionID) (domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok, nil
}

// All returns every stored session, expired ones included.
func (s *MemorySessions) All() ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out, nil
}

// Compile-time assertions.
var (
	_ domain.PendingStore = (*MemoryPending)(nil)
	_ domain.SessionStore = (*MemorySessions)(nil)
)
