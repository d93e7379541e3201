// Package app wires application dependencies for the CLI.
//
// It builds the keyring, file-backed stores, both handshake roles and the
// exchange client from Config, exposing them via the Wire struct for
// commands to use.
package app
