package handshake

import (
	"errors"
	"time"

	"parley/internal/audit"
	"parley/internal/crypto"
	"parley/internal/domain"
	"parley/internal/store"
)

// Default lifecycle bounds, matching the protocol's reference behavior.
const (
	// DefaultOfferTTL bounds how long an unanswered offer stays live.
	DefaultOfferTTL = 30 * time.Second
	// DefaultSessionTTL is the fixed lifetime of an established session,
	// measured from the moment of establishment.
	DefaultSessionTTL = time.Hour
)

// Clock supplies the current instant. Injected so tests and deployments
// with their own time source can drive TTL arithmetic deterministically.
type Clock func() time.Time

// Config assembles one role instance. Everything here is immutable after
// construction; in particular the secrets are never rotated in place.
type Config struct {
	// Party is this role's identity on the wire.
	Party domain.PartyID
	// Secret signs this role's outbound messages.
	Secret []byte
	// PeerSecret verifies the counterpart's messages. Defaults to Secret
	// for shared-secret deployments. Distribution of either is out of
	// band; see the keyring package for the file-based mechanism.
	PeerSecret []byte
	// OfferTTL is stamped on offers minted by an initiator. Defaults to
	// DefaultOfferTTL.
	OfferTTL time.Duration
	// SessionTTL is the established-session lifetime. Defaults to
	// DefaultSessionTTL.
	SessionTTL time.Duration
	// Clock defaults to time.Now.
	Clock Clock
	// Audit receives every completed transition. Defaults to a no-op sink.
	Audit audit.Sink
	// Pending and Sessions default to fresh in-memory stores owned
	// exclusively by this role instance.
	Pending  domain.PendingStore
	Sessions domain.SessionStore
}

// role carries the state and collaborators common to both sides of the
// handshake.
type role struct {
	party      domain.PartyID
	signer     *crypto.Authenticator
	verifier   *crypto.Authenticator
	offerTTL   time.Duration
	sessionTTL time.Duration
	now        Clock
	audit      audit.Sink
	pending    domain.PendingStore
	sessions   domain.SessionStore
}

func newRole(cfg Config) (role, error) {
	if cfg.Party == "" {
		return role{}, errors.New("handshake: party id required")
	}
	if len(cfg.Secret) == 0 {
		return role{}, errors.New("handshake: signing secret required")
	}
	peer := cfg.PeerSecret
	if len(peer) == 0 {
		peer = cfg.Secret
	}
	r := role{
		party:      cfg.Party,
		signer:     crypto.NewAuthenticator(cfg.Secret),
		verifier:   crypto.NewAuthenticator(peer),
		offerTTL:   cfg.OfferTTL,
		sessionTTL: cfg.SessionTTL,
		now:        cfg.Clock,
		audit:      cfg.Audit,
		pending:    cfg.Pending,
		sessions:   cfg.Sessions,
	}
	if r.offerTTL <= 0 {
		r.offerTTL = DefaultOfferTTL
	}
	if r.sessionTTL <= 0 {
		r.sessionTTL = DefaultSessionTTL
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.audit == nil {
		r.audit = audit.Noop{}
	}
	if r.pending == nil {
		r.pending = store.NewMemoryPending()
	}
	if r.sessions == nil {
		r.sessions = store.NewMemorySessions()
	}
	return r, nil
}

// Session returns an established session, if one exists for id.
func (r *role) Session(id domain.SessionID) (domain.Session, bool, error) {
	return r.sessions.Get(id)
}

// ValidSession reports whether an established session exists for id and
// has not yet expired. Purely a read-time check; nothing is evicted.
func (r *role) ValidSession(id domain.SessionID) bool {
	session, ok, err := r.sessions.Get(id)
	if err != nil || !ok {
		return false
	}
	return session.Valid(r.now())
}

// Sessions returns every stored session, expired ones included.
func (r *role) Sessions() ([]domain.Session, error) {
	return r.sessions.All()
}

// SweepPending purges pending entries whose offer TTL has lapsed and
// returns how many were removed. Callers own the sweep schedule; without
// it abandoned negotiations linger until next access.
func (r *role) SweepPending() (int, error) {
	return r.pending.Sweep(r.now())
}

// record emits an audit event for a completed transition.
func (r *role) record(id domain.SessionID, op string, err error) {
	event := audit.Event{
		Time:      r.now(),
		Party:     r.party,
		SessionID: id,
		Op:        op,
	}
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			event.Code = string(perr.Code)
		}
		event.Err = err.Error()
	}
	r.audit.Record(event)
}

// deriveModeID derives the shared-session mode identifier from the
// session identifier. Both parties end up with the same value because it
// travels inside the signed confirmation.
func deriveModeID(id domain.SessionID) domain.ModeID {
	s := id.String()
	if len(s) > 8 {
		s = s[:8]
	}
	return domain.ModeID("shared-" + s)
}
