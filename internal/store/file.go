package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"parley/internal/domain"
)

const (
	pendingFilename  = "pending.json"
	sessionsFilename = "sessions.json"
)

// load reads the JSON map at path into out; a missing file leaves out
// empty, so a fresh directory behaves like an empty store.
func load(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

// flush rewrites path atomically through a sibling temp file. Negotiation
// state must never be left half-written across CLI invocations.
func flush(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// PendingFileStore persists in-flight negotiations to disk so a CLI role
// can carry a handshake across process invocations.
type PendingFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPendingFileStore returns a PendingFileStore rooted at dir.
func NewPendingFileStore(dir string) *PendingFileStore {
	return &PendingFileStore{dir: dir}
}

func (s *PendingFileStore) path() string { return filepath.Join(s.dir, pendingFilename) }

// Put stores or replaces the entry for id.
func (s *PendingFileStore) Put(id domain.SessionID, entry domain.PendingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[domain.SessionID]domain.PendingEntry{}
	if err := load(s.path(), &entries); err != nil {
		return err
	}
	entries[id] = entry
	return flush(s.path(), entries)
}

// Get returns the entry for id, if present.
func (s *PendingFileStore) Get(id domain.SessionID) (domain.PendingEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[domain.SessionID]domain.PendingEntry{}
	if err := load(s.path(), &entries); err != nil {
		return domain.PendingEntry{}, false, err
	}
	entry, ok := entries[id]
	return entry, ok, nil
}

// Delete removes the entry for id. Deleting an absent id is not an error.
func (s *PendingFileStore) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[domain.SessionID]domain.PendingEntry{}
	if err := load(s.path(), &entries); err != nil {
		return err
	}
	if _, ok := entries[id]; !ok {
		return nil
	}
	delete(entries, id)
	return flush(s.path(), entries)
}

// Sweep purges entries whose offer TTL lapsed before now.
func (s *PendingFileStore) Sweep(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := map[domain.SessionID]domain.PendingEntry{}
	if err := load(s.path(), &entries); err != nil {
		return 0, err
	}
	purged := 0
	for id, entry := range entries {
		if entry.Expired(now) {
			delete(entries, id)
			purged++
		}
	}
	if purged == 0 {
		return 0, nil
	}
	return purged, flush(s.path(), entries)
}

// SessionFileStore persists established sessions to disk.
type SessionFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSessionFileStore returns a SessionFileStore rooted at dir.
func NewSessionFileStore(dir string) *SessionFileStore {
	return &SessionFileStore{dir: dir}
}

func (s *SessionFileStore) path() string { return filepath.Join(s.dir, sessionsFilename) }

// Put stores or replaces session.
func (s *SessionFileStore) Put(session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := map[domain.SessionID]domain.Session{}
	if err := load(s.path(), &sessions); err != nil {
		return err
	}
	sessions[session.SessionID] = session
	return flush(s.path(), sessions)
}

// Get returns the session for id, if present.
func (s *SessionFileStore) Get(id domain.SessionID) (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := map[domain.SessionID]domain.Session{}
	if err := load(s.path(), &sessions); err != nil {
		return domain.Session{}, false, err
	}
	session, ok := sessions[id]
	return session, ok, nil
}

// All returns every stored session, expired ones included.
func (s *SessionFileStore) All() ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := map[domain.SessionID]domain.Session{}
	if err := load(s.path(), &sessions); err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session)
	}
	return out, nil
}

// Compile-time assertions.
var (
	_ domain.PendingStore = (*PendingFileStore)(nil)
	_ domain.SessionStore = (*SessionFileStore)(nil)
)
