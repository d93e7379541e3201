package domain

import "time"

// PendingStore holds one role's in-flight negotiations keyed by session
// identifier. The handshake contract allows at most one in-flight attempt
// per session identifier per role.
type PendingStore interface {
	Put(id SessionID, entry PendingEntry) error
	Get(id SessionID) (PendingEntry, bool, error)
	Delete(id SessionID) error
	// Sweep removes entries whose offer TTL has lapsed and returns how
	// many were purged. Nothing sweeps automatically; callers own the
	// schedule.
	Sweep(now time.Time) (int, error)
}

// SessionStore holds one role's established sessions. Validity is checked
// lazily at read time, so expired sessions may linger here.
type SessionStore interface {
	Put(session Session) error
	Get(id SessionID) (Session, bool, error)
	All() ([]Session, error)
}

// Gate screens offer payloads before they enter a negotiation. The
// handshake core trusts content the gate has passed and never re-screens.
type Gate interface {
	Screen(scope string, boundary, constraints map[string]any) error
}
