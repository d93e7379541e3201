package domain

// SessionID identifies one negotiation attempt and the session it may
// produce. Minted once by the initiator and echoed by every message.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// SessionToken is the random value minted by the responder that binds a
// specific negotiated session.
type SessionToken string

// String returns the string form of the token.
func (t SessionToken) String() string { return string(t) }

// PartyID names one of the two negotiating parties.
type PartyID string

// String returns the string form of the party identifier.
func (p PartyID) String() string { return string(p) }

// ModeID is the derived shared-session identifier both parties agree on.
type ModeID string

// String returns the string form of the mode identifier.
func (m ModeID) String() string { return string(m) }

// State tracks where a negotiation attempt is in its lifecycle.
type State string

const (
	// StateInit is the zero state before any message is sent.
	StateInit State = "INIT"
	// StateOfferSent is held by the initiator while awaiting a Response.
	StateOfferSent State = "OFFER_SENT"
	// StateOfferReceived is held by the responder while awaiting a Confirmation.
	StateOfferReceived State = "OFFER_RECEIVED"
	// StateEstablished marks a fully negotiated session.
	StateEstablished State = "ESTABLISHED"
	// StateFailed marks a validation failure, terminal for the attempt.
	StateFailed State = "FAILED"
	// StateTimeout marks a TTL expiry, terminal for the attempt.
	StateTimeout State = "TIMEOUT"
)
