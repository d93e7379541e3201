// Package domain defines the negotiation protocol's shared vocabulary:
// typed identifiers, the three wire messages, the established Session,
// pending-state records, and the store and gate interfaces the rest of
// the module implements against.
package domain
