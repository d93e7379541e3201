package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Authenticator computes and verifies keyed integrity codes over the
// canonical encoding of a message's fields. Both parties must canonicalize
// identically: JSON with keys sorted at every depth (Go's map marshaling
// guarantees this), values hashed in their JSON-decoded form, instants
// already rendered to fixed text by the caller, and the mac field excluded.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns an Authenticator signing with secret. The
// secret is copied; the caller may zero its own slice afterwards.
func NewAuthenticator(secret []byte) *Authenticator {
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Authenticator{secret: s}
}

// Sum returns the hex HMAC-SHA256 digest of the canonical encoding of
// fields. The fields are round-tripped through JSON before hashing, so
// in-memory values (say an int64 constraint) and their wire-decoded form
// (float64 after transport) produce the identical digest.
func (a *Authenticator) Sum(fields map[string]any) (string, error) {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return "", err
	}
	payload, err := json.Marshal(decoded)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, a.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the digest for fields and compares it to claimed in
// constant time. Any internal error, or an empty claimed code, yields
// false; callers learn nothing about which field diverged.
func (a *Authenticator) Verify(fields map[string]any, claimed string) bool {
	if claimed == "" {
		return false
	}
	expected, err := a.Sum(fields)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(claimed))
}
