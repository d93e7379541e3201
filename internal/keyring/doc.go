// Package keyring is the out-of-band key-distribution endpoint: it keeps
// a party's signing secret and its peer's verification secret in
// passphrase-encrypted files (argon2id key derivation, ChaCha20-Poly1305
// sealing). The handshake core never reads keys itself; it receives them
// at role construction.
package keyring
