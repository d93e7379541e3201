package domain

import "time"

// Session is the shared state both parties hold once all three handshake
// messages have validated. MACChain preserves the offer, response and
// confirmation integrity codes in order, so either party can later prove
// which exact messages produced the session.
type Session struct {
	SessionID         SessionID      `json:"session_id"`
	SessionToken      SessionToken   `json:"session_token"`
	RequesterID       PartyID        `json:"requester_id"`
	ResponderID       PartyID        `json:"responder_id"`
	AgreedScope       string         `json:"agreed_scope"`
	AgreedConstraints map[string]any `json:"agreed_constraints"`
	ModeID            ModeID         `json:"mode_id"`
	State             State          `json:"state"`
	EstablishedAt     time.Time      `json:"established_at"`
	ExpiresAt         time.Time      `json:"expires_at"`
	MACChain          []string       `json:"mac_chain"`
}

// Valid reports whether the session is established and not yet expired.
// Expiry is a read-time condition; nothing evicts sessions actively.
func (s Session) Valid(now time.Time) bool {
	return s.State == StateEstablished && now.Before(s.ExpiresAt)
}

// PendingEntry is the provisional state one role holds between handshake
// messages. Response is nil on the initiator side.
type PendingEntry struct {
	State     State     `json:"state"`
	Offer     Offer     `json:"offer"`
	Response  *Response `json:"response,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the entry outlived the offer's TTL.
func (e PendingEntry) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.Offer.TTL()
}
