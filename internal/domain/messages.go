package domain

import "time"

// Wire-type discriminators. They appear on envelopes and are folded into
// every message's canonical encoding, so a message of one type can never
// replay as another.
const (
	TypeOffer        = "offer"
	TypeResponse     = "response"
	TypeConfirmation = "confirmation"
)

// wireTime is the canonical text form of an instant. Both parties must
// produce the identical string or integrity codes will never match.
func wireTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// Offer opens a negotiation: the initiator declares the scope it wants,
// the semantic boundary it will stay inside, and the limits it proposes.
type Offer struct {
	SessionID   SessionID      `json:"session_id"`
	RequesterID PartyID        `json:"requester_id"`
	Scope       string         `json:"scope"`
	Boundary    map[string]any `json:"boundary"`
	Constraints map[string]any `json:"constraints"`
	CreatedAt   time.Time      `json:"created_at"`
	TTLSeconds  int64          `json:"ttl_seconds"`
	MAC         string         `json:"mac,omitempty"`
}

// TTL returns the offer's time-to-live as a duration.
func (o Offer) TTL() time.Duration { return time.Duration(o.TTLSeconds) * time.Second }

// MACFields returns the canonical field set covered by the offer's
// integrity code. The mac itself is excluded.
func (o Offer) MACFields() map[string]any {
	return map[string]any{
		"type":         TypeOffer,
		"session_id":   o.SessionID.String(),
		"requester_id": o.RequesterID.String(),
		"scope":        o.Scope,
		"boundary":     o.Boundary,
		"constraints":  o.Constraints,
		"created_at":   wireTime(o.CreatedAt),
		"ttl_seconds":  o.TTLSeconds,
	}
}

// Response answers an Offer. OfferMAC pins it to exactly one offer;
// SessionToken is the responder-minted value the confirmation must echo.
type Response struct {
	SessionID           SessionID      `json:"session_id"`
	OfferMAC            string         `json:"offer_mac"`
	ResponderID         PartyID        `json:"responder_id"`
	AcceptedScope       string         `json:"accepted_scope"`
	AcceptedConstraints map[string]any `json:"accepted_constraints"`
	ModifiedConstraints map[string]any `json:"modified_constraints"`
	SessionToken        SessionToken   `json:"session_token"`
	CreatedAt           time.Time      `json:"created_at"`
	MAC                 string         `json:"mac,omitempty"`
}

// MACFields returns the canonical field set covered by the response's
// integrity code.
func (r Response) MACFields() map[string]any {
	return map[string]any{
		"type":                 TypeResponse,
		"session_id":           r.SessionID.String(),
		"offer_mac":            r.OfferMAC,
		"responder_id":         r.ResponderID.String(),
		"accepted_scope":       r.AcceptedScope,
		"accepted_constraints": r.AcceptedConstraints,
		"modified_constraints": r.ModifiedConstraints,
		"session_token":        r.SessionToken.String(),
		"created_at":           wireTime(r.CreatedAt),
	}
}

// Confirmation closes the handshake. ResponseMAC and SessionToken pin it
// to exactly one response.
type Confirmation struct {
	SessionID    SessionID    `json:"session_id"`
	SessionToken SessionToken `json:"session_token"`
	ResponseMAC  string       `json:"response_mac"`
	Confirmed    bool         `json:"confirmed"`
	ModeID       ModeID       `json:"mode_id"`
	CreatedAt    time.Time    `json:"created_at"`
	MAC          string       `json:"mac,omitempty"`
}

// MACFields returns the canonical field set covered by the confirmation's
// integrity code.
func (c Confirmation) MACFields() map[string]any {
	return map[string]any{
		"type":          TypeConfirmation,
		"session_id":    c.SessionID.String(),
		"session_token": c.SessionToken.String(),
		"response_mac":  c.ResponseMAC,
		"confirmed":     c.Confirmed,
		"mode_id":       c.ModeID.String(),
		"created_at":    wireTime(c.CreatedAt),
	}
}

// Envelope is the wire record ferried between parties by a transport.
// Exactly one of Offer, Response, Confirmation is set, matching Type.
type Envelope struct {
	Type         string        `json:"type"`
	From         PartyID       `json:"from"`
	To           PartyID       `json:"to"`
	Offer        *Offer        `json:"offer,omitempty"`
	Response     *Response     `json:"response,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
	Timestamp    int64         `json:"timestamp"`
}
