package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// SecretBytes is the size of a freshly minted signing secret.
const SecretBytes = 32

// NewSecret returns a random signing secret.
func NewSecret() ([]byte, error) {
	secret := make([]byte, SecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// Fingerprint returns a short hex fingerprint of a secret or key, safe to
// show to users for comparison. It hashes with SHA-256 and truncates to
// 10 bytes (20 hex chars).
func Fingerprint(material []byte) string {
	sum := sha256.Sum256(material)
	return hex.EncodeToString(sum[:10])
}

// Zero overwrites b in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
