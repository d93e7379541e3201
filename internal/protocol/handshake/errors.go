package handshake

// FailCode is the protocol-level failure classification carried on every
// rejected transition.
type FailCode string

const (
	// CodeScopeMismatch: reference to an unknown or already-finalized
	// session identifier.
	CodeScopeMismatch FailCode = "SCOPE_MISMATCH"
	// CodeSignatureInvalid: any integrity-code or code-binding check
	// failure. Deliberately undifferentiated so verification cannot be
	// used as a forging oracle.
	CodeSignatureInvalid FailCode = "SIGNATURE_INVALID"
	// CodeTimeout: the offer's TTL lapsed before the handshake completed.
	CodeTimeout FailCode = "TIMEOUT"
	// CodeDenied: explicit non-acceptance or non-confirmation. The wire
	// code covers both directions; see the package doc.
	CodeDenied FailCode = "REQUESTER_DENIED"
)

// ProtocolError is a recoverable handshake rejection. The caller may
// always restart with a fresh offer; nothing here is fatal to the process.
type ProtocolError struct {
	Code FailCode
}

// Error implements error.
func (e *ProtocolError) Error() string { return "handshake: " + string(e.Code) }

// Sentinel rejections, comparable with errors.Is.
var (
	ErrScopeMismatch    = &ProtocolError{Code: CodeScopeMismatch}
	ErrSignatureInvalid = &ProtocolError{Code: CodeSignatureInvalid}
	ErrTimeout          = &ProtocolError{Code: CodeTimeout}
	ErrDenied           = &ProtocolError{Code: CodeDenied}
)
