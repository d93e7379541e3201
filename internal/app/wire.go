package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"parley/internal/audit"
	"parley/internal/domain"
	"parley/internal/exchange"
	"parley/internal/gate"
	"parley/internal/keyring"
	"parley/internal/protocol/handshake"
	"parley/internal/store"
)

// Wire bundles the stores, roles and clients one party needs. A party can
// open negotiations and answer them, so both roles are built over the
// same key material and state directory.
type Wire struct {
	Party     domain.PartyID
	Initiator *handshake.Initiator
	Responder *handshake.Responder
	Keyring   *keyring.FileKeyring
	Gate      domain.Gate
	Exchange  *exchange.Client // nil when no exchange is configured
}

// NewWire constructs the dependency graph from cfg, unlocking the party's
// key material with passphrase.
func NewWire(cfg Config, passphrase string) (*Wire, error) {
	if cfg.Party == "" {
		return nil, errors.New("party id required")
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	ring := keyring.New(cfg.Home)
	secret, err := ring.LoadOwn(passphrase)
	if err != nil {
		return nil, err
	}
	peer, err := ring.LoadPeer(passphrase)
	if errors.Is(err, os.ErrNotExist) {
		peer = nil // shared-secret deployment
	} else if err != nil {
		return nil, err
	}

	sink := audit.NewSlog(slog.Default())
	party := domain.PartyID(cfg.Party)

	// Separate pending namespaces per role; a party negotiating with
	// itself would otherwise collide. The session registry is shared so
	// "sessions" lists everything the party established either way.
	sessions := store.NewSessionFileStore(cfg.Home)

	initiator, err := handshake.NewInitiator(handshake.Config{
		Party:      party,
		Secret:     secret,
		PeerSecret: peer,
		OfferTTL:   cfg.OfferTTL,
		SessionTTL: cfg.SessionTTL,
		Audit:      sink,
		Pending:    store.NewPendingFileStore(cfg.Home),
		Sessions:   sessions,
	})
	if err != nil {
		return nil, err
	}

	responderHome := filepath.Join(cfg.Home, "responder")
	if err := os.MkdirAll(responderHome, 0o700); err != nil {
		return nil, err
	}
	responder, err := handshake.NewResponder(handshake.Config{
		Party:      party,
		Secret:     secret,
		PeerSecret: peer,
		OfferTTL:   cfg.OfferTTL,
		SessionTTL: cfg.SessionTTL,
		Audit:      sink,
		Pending:    store.NewPendingFileStore(responderHome),
		Sessions:   sessions,
	})
	if err != nil {
		return nil, err
	}

	w := &Wire{
		Party:     party,
		Initiator: initiator,
		Responder: responder,
		Keyring:   ring,
		Gate:      gate.AllowAll{},
	}
	if cfg.ExchangeURL != "" {
		w.Exchange = exchange.NewClient(cfg.ExchangeURL)
	}
	return w, nil
}
