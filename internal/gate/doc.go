// Package gate holds the content-screening seam in front of the
// handshake. Offer payloads are screened before they ever enter a
// negotiation message; the protocol core never re-validates payload
// safety.
package gate
