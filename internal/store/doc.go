// Package store provides the pending-negotiation and session stores the
// handshake roles run against: in-memory implementations for tests and
// single-process use, and JSON-file implementations (temp-file-then-rename
// writes) so the CLI can carry a handshake across invocations.
package store
