// Package crypto provides the keyed integrity codec used to authenticate
// every handshake message, plus secret minting and fingerprinting helpers.
//
// # Canonical encoding
//
// An integrity code covers the JSON encoding of a message's fields with
// the mac excluded, keys sorted at every depth, and timestamps rendered
// to a fixed UTC text form before encoding. Any divergence in
// canonicalization between the two parties breaks verification, so both
// sides of the wire must run this codec.
//
// # Failure behavior
//
// Verify fails closed: internal errors, missing codes and mismatches are
// all reported as a bare false so the codec cannot be used as an oracle
// for forging valid codes.
package crypto
