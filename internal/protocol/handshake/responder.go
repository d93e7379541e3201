package handshake

import (
	"fmt"

	"github.com/google/uuid"

	"parley/internal/domain"
)

// Responder drives the answering side of the handshake: it validates the
// opening Offer, emits the Response with a fresh session token, then
// validates the Confirmation and materializes the session.
//
// A Responder owns its pending store and session store exclusively;
// callers must serialize the transitions of any single session identifier.
type Responder struct {
	role
}

// NewResponder builds a responder role instance from cfg.
func NewResponder(cfg Config) (*Responder, error) {
	r, err := newRole(cfg)
	if err != nil {
		return nil, err
	}
	return &Responder{role: r}, nil
}

// ProcessOffer validates an inbound Offer and, when accept is true, emits
// the Response. The accepted scope is the offer's scope verbatim; scope is
// never renegotiated, only constraints are. modified carries the limits
// this responder overrides, key-by-key.
//
// Rejections: ErrSignatureInvalid on an integrity-code failure,
// ErrTimeout when the offer is already past its TTL, ErrDenied when
// accept is false. No rejection here mutates state.
func (r *Responder) ProcessOffer(offer domain.Offer, accept bool, modified map[string]any) (domain.Response, error) {
	const op = "process_offer"
	id := offer.SessionID

	if !r.verifier.Verify(offer.MACFields(), offer.MAC) {
		r.record(id, op, ErrSignatureInvalid)
		return domain.Response{}, ErrSignatureInvalid
	}

	// Expiry is measured from the offer's self-reported creation instant
	// against this role's clock, not from receipt. Under clock skew this
	// can reject a live offer or admit a stale one; the protocol leaves
	// that trade-off with the deployment's clock discipline.
	now := r.now()
	if now.Sub(offer.CreatedAt) > offer.TTL() {
		r.record(id, op, ErrTimeout)
		return domain.Response{}, ErrTimeout
	}

	if !accept {
		r.record(id, op, ErrDenied)
		return domain.Response{}, ErrDenied
	}

	if modified == nil {
		modified = map[string]any{}
	}
	response := domain.Response{
		SessionID:           id,
		OfferMAC:            offer.MAC,
		ResponderID:         r.party,
		AcceptedScope:       offer.Scope,
		AcceptedConstraints: offer.Constraints,
		ModifiedConstraints: modified,
		SessionToken:        domain.SessionToken(uuid.NewString()),
		CreatedAt:           now,
	}
	mac, err := r.signer.Sum(response.MACFields())
	if err != nil {
		r.record(id, op, err)
		return domain.Response{}, fmt.Errorf("sign response: %w", err)
	}
	response.MAC = mac

	entry := domain.PendingEntry{
		State:     domain.StateOfferReceived,
		Offer:     offer,
		Response:  &response,
		CreatedAt: now,
	}
	if err := r.pending.Put(id, entry); err != nil {
		r.record(id, op, err)
		return domain.Response{}, fmt.Errorf("store pending response: %w", err)
	}
	r.record(id, op, nil)
	return response, nil
}

// ProcessConfirmation validates the closing Confirmation against the
// pending response and, on success, materializes the session and clears
// the pending entry. Re-processing a consumed confirmation finds no
// pending entry and fails with ErrScopeMismatch, so a session can never
// be established twice.
//
// Rejections: ErrScopeMismatch for an unknown session identifier,
// ErrSignatureInvalid for an integrity-code failure or a response-code or
// token binding mismatch, ErrDenied when the confirmation is negative.
func (r *Responder) ProcessConfirmation(confirmation domain.Confirmation) (domain.Session, error) {
	const op = "process_confirmation"
	id := confirmation.SessionID

	entry, ok, err := r.pending.Get(id)
	if err != nil {
		r.record(id, op, err)
		return domain.Session{}, fmt.Errorf("pending lookup: %w", err)
	}
	if !ok || entry.Response == nil {
		r.record(id, op, ErrScopeMismatch)
		return domain.Session{}, ErrScopeMismatch
	}

	if !r.verifier.Verify(confirmation.MACFields(), confirmation.MAC) {
		r.record(id, op, ErrSignatureInvalid)
		return domain.Session{}, ErrSignatureInvalid
	}
	if confirmation.ResponseMAC != entry.Response.MAC {
		r.record(id, op, ErrSignatureInvalid)
		return domain.Session{}, ErrSignatureInvalid
	}
	if confirmation.SessionToken != entry.Response.SessionToken {
		r.record(id, op, ErrSignatureInvalid)
		return domain.Session{}, ErrSignatureInvalid
	}

	if !confirmation.Confirmed {
		r.record(id, op, ErrDenied)
		return domain.Session{}, ErrDenied
	}

	now := r.now()
	session := domain.Session{
		SessionID:         id,
		SessionToken:      confirmation.SessionToken,
		RequesterID:       entry.Offer.RequesterID,
		ResponderID:       r.party,
		AgreedScope:       entry.Response.AcceptedScope,
		AgreedConstraints: domain.OverlayConstraints(entry.Response.AcceptedConstraints, entry.Response.ModifiedConstraints),
		ModeID:            confirmation.ModeID,
		State:             domain.StateEstablished,
		EstablishedAt:     now,
		ExpiresAt:         now.Add(r.sessionTTL),
		MACChain:          []string{entry.Offer.MAC, entry.Response.MAC, confirmation.MAC},
	}
	if err := r.sessions.Put(session); err != nil {
		r.record(id, op, err)
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	if err := r.pending.Delete(id); err != nil {
		r.record(id, op, err)
		return domain.Session{}, fmt.Errorf("clear pending response: %w", err)
	}
	r.record(id, op, nil)
	return session, nil
}
