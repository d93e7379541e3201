package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime wiring options for building a party's toolkit.
type Config struct {
	Home        string        // state directory, e.g. $HOME/.parley
	Party       string        // this party's wire identity
	ExchangeURL string        // exchange base URL, empty for offline use
	OfferTTL    time.Duration // TTL stamped on outbound offers
	SessionTTL  time.Duration // lifetime of established sessions
}

// FromEnv loads configuration from PARLEY_* environment variables.
// Unset variables leave zero values for the caller (flags, defaults) to
// fill in.
func FromEnv() (Config, error) {
	cfg := Config{
		Home:        strings.TrimSpace(os.Getenv("PARLEY_HOME")),
		Party:       strings.TrimSpace(os.Getenv("PARLEY_PARTY")),
		ExchangeURL: strings.TrimSpace(os.Getenv("PARLEY_EXCHANGE")),
	}
	var err error
	if cfg.OfferTTL, err = envSeconds("PARLEY_OFFER_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = envSeconds("PARLEY_SESSION_TTL"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envSeconds(name string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value: %q", name, raw)
	}
	return time.Duration(n) * time.Second, nil
}
