// Command exchange runs the store-and-forward mailbox server parties use
// to ferry handshake envelopes to each other. State is in-memory only.
package main
