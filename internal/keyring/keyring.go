package keyring

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"parley/internal/crypto"
)

const (
	// Current version of the encrypted blob format stored on disk.
	keyringFormatVersion = 1

	ownKeyFilename  = "secret.key"
	peerKeyFilename = "peer.key"
)

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or
	// the ciphertext has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted keyring")
)

// blob is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	Time   uint32 `json:"argon_time"`
	Memory uint32 `json:"argon_memory"`
	Lanes  uint8  `json:"argon_lanes"`
	Cipher []byte `json:"cipher"`
}

// Tunables for argon2id key derivation.
func argonParamsDefault() (time, memory uint32, lanes uint8) { return 1, 1 << 16, 4 }

// seal derives a key from passphrase and seals raw into a JSON blob.
func seal(passphrase string, raw []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	t, m, l := argonParamsDefault()
	key := argon2.IDKey([]byte(passphrase), salt[:], t, m, l, chacha20poly1305.KeySize)
	defer crypto.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt-bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(blob{
		V:      keyringFormatVersion,
		Salt:   salt[:],
		Time:   t,
		Memory: m,
		Lanes:  l,
		Cipher: ct,
	})
}

// open decrypts a JSON blob using a key derived from passphrase.
func open(passphrase string, b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, err
	}
	if bl.V > keyringFormatVersion {
		return nil, fmt.Errorf("unsupported keyring version %d", bl.V)
	}

	key := argon2.IDKey([]byte(passphrase), bl.Salt, bl.Time, bl.Memory, bl.Lanes, chacha20poly1305.KeySize)
	defer crypto.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// FileKeyring stores a party's own signing secret and its peer's
// verification secret as passphrase-encrypted files under one directory.
// Secrets reach a role instance only at construction; this is the
// out-of-band distribution endpoint, not part of the protocol itself.
type FileKeyring struct {
	dir string
}

// New returns a FileKeyring rooted at dir.
func New(dir string) *FileKeyring { return &FileKeyring{dir: dir} }

// SaveOwn encrypts and stores this party's signing secret.
func (k *FileKeyring) SaveOwn(passphrase string, secret []byte) error {
	return k.save(ownKeyFilename, passphrase, secret)
}

// LoadOwn decrypts and returns this party's signing secret.
func (k *FileKeyring) LoadOwn(passphrase string) ([]byte, error) {
	return k.load(ownKeyFilename, passphrase)
}

// SavePeer encrypts and stores the peer's verification secret.
func (k *FileKeyring) SavePeer(passphrase string, secret []byte) error {
	return k.save(peerKeyFilename, passphrase, secret)
}

// LoadPeer decrypts and returns the peer's verification secret. A missing
// peer key is reported via os.ErrNotExist; shared-secret deployments fall
// back to the party's own secret.
func (k *FileKeyring) LoadPeer(passphrase string) ([]byte, error) {
	return k.load(peerKeyFilename, passphrase)
}

func (k *FileKeyring) save(name, passphrase string, secret []byte) error {
	b, err := seal(passphrase, secret)
	if err != nil {
		return err
	}
	path := filepath.Join(k.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (k *FileKeyring) load(name, passphrase string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(k.dir, name))
	if err != nil {
		return nil, err
	}
	return open(passphrase, b)
}
