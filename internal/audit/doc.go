// Package audit records every completed handshake transition to a
// pluggable sink. The protocol core only ever calls Record; what happens
// to events after that (structured log, test buffer, nothing) is the
// deployment's choice.
package audit
