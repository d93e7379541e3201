// Package commands implements the parley CLI verbs: key management
// (keygen, trust), the three handshake steps as seen from either side
// (offer, respond, confirm, complete), session inspection (sessions) and
// an in-process walkthrough (demo).
package commands
