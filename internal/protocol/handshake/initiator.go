package handshake

import (
	"fmt"

	"github.com/google/uuid"

	"parley/internal/domain"
)

// Initiator drives the requesting side of the handshake: it opens with an
// Offer, validates the counterpart's Response, and emits the Confirmation
// that finalizes its own mirrored session.
//
// An Initiator owns its pending store and session store exclusively.
// Operations are synchronous and never perform I/O; callers must
// serialize the transitions of any single session identifier.
type Initiator struct {
	role
}

// NewInitiator builds an initiator role instance from cfg.
func NewInitiator(cfg Config) (*Initiator, error) {
	r, err := newRole(cfg)
	if err != nil {
		return nil, err
	}
	return &Initiator{role: r}, nil
}

// CreateOffer mints a fresh negotiation: a new session identifier, the
// declared scope, boundary and proposed constraints, stamped with this
// role's clock and TTL and authenticated with its secret. The offer is
// held pending until a Response arrives or the TTL lapses.
func (i *Initiator) CreateOffer(scope string, boundary, constraints map[string]any) (domain.Offer, error) {
	if boundary == nil {
		boundary = map[string]any{}
	}
	if constraints == nil {
		constraints = map[string]any{}
	}
	now := i.now()
	offer := domain.Offer{
		SessionID:   domain.SessionID(uuid.NewString()),
		RequesterID: i.party,
		Scope:       scope,
		Boundary:    boundary,
		Constraints: constraints,
		CreatedAt:   now,
		TTLSeconds:  int64(i.offerTTL.Seconds()),
	}
	mac, err := i.signer.Sum(offer.MACFields())
	if err != nil {
		i.record(offer.SessionID, "create_offer", err)
		return domain.Offer{}, fmt.Errorf("sign offer: %w", err)
	}
	offer.MAC = mac

	entry := domain.PendingEntry{
		State:     domain.StateOfferSent,
		Offer:     offer,
		CreatedAt: now,
	}
	if err := i.pending.Put(offer.SessionID, entry); err != nil {
		i.record(offer.SessionID, "create_offer", err)
		return domain.Offer{}, fmt.Errorf("store pending offer: %w", err)
	}
	i.record(offer.SessionID, "create_offer", nil)
	return offer, nil
}

// ProcessResponse validates the counterpart's Response against the
// pending offer and, on success, emits the Confirmation, materializes the
// local session and clears the pending entry.
//
// Rejections: ErrScopeMismatch for an unknown session identifier,
// ErrSignatureInvalid for an integrity-code failure or an offer-code
// binding mismatch, ErrTimeout once the offer's TTL has lapsed. The
// timeout path purges the pending entry; every other failure leaves state
// untouched.
func (i *Initiator) ProcessResponse(response domain.Response) (domain.Confirmation, error) {
	const op = "process_response"
	id := response.SessionID

	entry, ok, err := i.pending.Get(id)
	if err != nil {
		i.record(id, op, err)
		return domain.Confirmation{}, fmt.Errorf("pending lookup: %w", err)
	}
	if !ok {
		i.record(id, op, ErrScopeMismatch)
		return domain.Confirmation{}, ErrScopeMismatch
	}

	if !i.verifier.Verify(response.MACFields(), response.MAC) {
		i.record(id, op, ErrSignatureInvalid)
		return domain.Confirmation{}, ErrSignatureInvalid
	}
	if response.OfferMAC != entry.Offer.MAC {
		i.record(id, op, ErrSignatureInvalid)
		return domain.Confirmation{}, ErrSignatureInvalid
	}

	now := i.now()
	if entry.Expired(now) {
		// Sole failure path that mutates state: a dead offer is purged so
		// the identifier cannot be answered later.
		if err := i.pending.Delete(id); err != nil {
			i.record(id, op, err)
			return domain.Confirmation{}, fmt.Errorf("purge expired offer: %w", err)
		}
		i.record(id, op, ErrTimeout)
		return domain.Confirmation{}, ErrTimeout
	}

	confirmation := domain.Confirmation{
		SessionID:    id,
		SessionToken: response.SessionToken,
		ResponseMAC:  response.MAC,
		Confirmed:    true,
		ModeID:       deriveModeID(id),
		CreatedAt:    now,
	}
	mac, err := i.signer.Sum(confirmation.MACFields())
	if err != nil {
		i.record(id, op, err)
		return domain.Confirmation{}, fmt.Errorf("sign confirmation: %w", err)
	}
	confirmation.MAC = mac

	session := domain.Session{
		SessionID:         id,
		SessionToken:      response.SessionToken,
		RequesterID:       i.party,
		ResponderID:       response.ResponderID,
		AgreedScope:       response.AcceptedScope,
		AgreedConstraints: domain.OverlayConstraints(response.AcceptedConstraints, response.ModifiedConstraints),
		ModeID:            confirmation.ModeID,
		State:             domain.StateEstablished,
		EstablishedAt:     now,
		ExpiresAt:         now.Add(i.sessionTTL),
		MACChain:          []string{entry.Offer.MAC, response.MAC, confirmation.MAC},
	}
	if err := i.sessions.Put(session); err != nil {
		i.record(id, op, err)
		return domain.Confirmation{}, fmt.Errorf("store session: %w", err)
	}
	if err := i.pending.Delete(id); err != nil {
		i.record(id, op, err)
		return domain.Confirmation{}, fmt.Errorf("clear pending offer: %w", err)
	}
	i.record(id, op, nil)
	return confirmation, nil
}
