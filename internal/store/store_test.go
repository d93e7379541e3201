package store_test

import (
	"testing"
	"time"

	"parley/internal/domain"
	"parley/internal/store"
)

func sampleEntry(created time.Time, ttl int64) domain.PendingEntry {
	return domain.PendingEntry{
		State: domain.StateOfferSent,
		Offer: domain.Offer{
			SessionID:   "s-1",
			RequesterID: "alice",
			Scope:       "read-profile",
			CreatedAt:   created,
			TTLSeconds:  ttl,
			MAC:         "abc123",
		},
		CreatedAt: created,
	}
}

func sampleSession(established time.Time) domain.Session {
	return domain.Session{
		SessionID:         "s-1",
		SessionToken:      "tok-1",
		RequesterID:       "alice",
		ResponderID:       "bob",
		AgreedScope:       "read-profile",
		AgreedConstraints: map[string]any{"max_x": float64(500)},
		ModeID:            "shared-s-1",
		State:             domain.StateEstablished,
		EstablishedAt:     established,
		ExpiresAt:         established.Add(time.Hour),
		MACChain:          []string{"a", "b", "c"},
	}
}

func testPendingStore(t *testing.T, s domain.PendingStore) {
	t.Helper()
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	if _, ok, err := s.Get("s-1"); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	entry := sampleEntry(now, 30)
	if err := s.Put("s-1", entry); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get("s-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Offer.MAC != entry.Offer.MAC || got.State != entry.State {
		t.Fatal("entry mismatch after round trip")
	}

	// A live entry survives the sweep; an expired one does not.
	purged, err := s.Sweep(now.Add(10 * time.Second))
	if err != nil || purged != 0 {
		t.Fatalf("sweep live: purged=%d err=%v", purged, err)
	}
	purged, err = s.Sweep(now.Add(31 * time.Second))
	if err != nil || purged != 1 {
		t.Fatalf("sweep expired: purged=%d err=%v", purged, err)
	}
	if _, ok, _ := s.Get("s-1"); ok {
		t.Fatal("entry survived sweep")
	}

	if err := s.Delete("missing"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func testSessionStore(t *testing.T, s domain.SessionStore) {
	t.Helper()
	session := sampleSession(time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC))

	if err := s.Put(session); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := s.Get(session.SessionID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.SessionToken != session.SessionToken || got.AgreedScope != session.AgreedScope {
		t.Fatal("session mismatch after round trip")
	}
	if len(got.MACChain) != 3 {
		t.Fatalf("mac chain lost: %v", got.MACChain)
	}

	all, err := s.All()
	if err != nil || len(all) != 1 {
		t.Fatalf("all: n=%d err=%v", len(all), err)
	}
}

func TestMemoryPending(t *testing.T)  { testPendingStore(t, store.NewMemoryPending()) }
func TestMemorySessions(t *testing.T) { testSessionStore(t, store.NewMemorySessions()) }

func TestPendingFileStore(t *testing.T) {
	testPendingStore(t, store.NewPendingFileStore(t.TempDir()))
}

func TestSessionFileStore(t *testing.T) {
	testSessionStore(t, store.NewSessionFileStore(t.TempDir()))
}

func TestFileStores_PersistAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	if err := store.NewPendingFileStore(dir).Put("s-1", sampleEntry(now, 30)); err != nil {
		t.Fatalf("put pending: %v", err)
	}
	if err := store.NewSessionFileStore(dir).Put(sampleSession(now)); err != nil {
		t.Fatalf("put session: %v", err)
	}

	// Fresh store instances over the same directory see the state, the
	// way separate CLI invocations do.
	if _, ok, err := store.NewPendingFileStore(dir).Get("s-1"); err != nil || !ok {
		t.Fatalf("reload pending: ok=%v err=%v", ok, err)
	}
	got, ok, err := store.NewSessionFileStore(dir).Get("s-1")
	if err != nil || !ok {
		t.Fatalf("reload session: ok=%v err=%v", ok, err)
	}
	if !got.EstablishedAt.Equal(now) {
		t.Fatalf("established_at drifted: %v", got.EstablishedAt)
	}
}
