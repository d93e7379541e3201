// Package handshake implements the three-message mutual negotiation that
// establishes a short-lived, cryptographically verifiable session between
// two parties.
//
// # Protocol flow
//
//	Initiator                              Responder
//	---------                              ---------
//	CreateOffer(scope, boundary,
//	            constraints)
//	                 --- Offer --->        ProcessOffer(offer, accept,
//	                                                    modified)
//	                 <-- Response ---
//	ProcessResponse(response)
//	  session established locally
//	                 --- Confirmation ->   ProcessConfirmation(conf)
//	                                         session established
//
// Every message carries a keyed integrity code over a canonical encoding
// of its own fields; each later message additionally embeds the previous
// message's code, chaining the three into one verifiable transcript. A
// session exists only after all three codes validate and the responder's
// token round-trips intact.
//
// # State machine
//
// Per session identifier and role: INIT transitions to OFFER_SENT
// (initiator) or OFFER_RECEIVED (responder), then to ESTABLISHED. Any
// validation failure or TTL expiry ends the attempt; ESTABLISHED persists
// until the session's fixed lifetime lapses, which is observed lazily at
// read time rather than by eviction.
//
// # Rejections
//
// The four sentinel errors (ErrScopeMismatch, ErrSignatureInvalid,
// ErrTimeout, ErrDenied) are all recoverable: the caller restarts with a
// fresh offer. Failure paths never commit partial state, with one
// documented exception: an initiator discovering its own offer expired
// purges the pending entry. ErrDenied covers both an explicit responder
// rejection and a negative confirmation; the wire code is shared between
// the two on purpose, matching the protocol's single REQUESTER_DENIED
// classification.
//
// # Concurrency
//
// Role instances own their stores exclusively and perform no internal
// I/O, waiting or retries. At most one negotiation may be in flight per
// session identifier per role; callers serialize the three transitions of
// a given identifier. Delivery, retransmission and timeout scheduling all
// live outside this package.
package handshake
