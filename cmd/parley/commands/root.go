package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/app"
)

var (
	home        string
	party       string
	passphrase  string
	exchangeURL string
	offerTTL    int64

	cfg app.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:           "parley",
		Short:         "Negotiated-session handshake CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envCfg, err := app.FromEnv()
			if err != nil {
				return err
			}
			cfg = envCfg
			if party != "" {
				cfg.Party = party
			}
			if exchangeURL != "" {
				cfg.ExchangeURL = exchangeURL
			}
			if offerTTL > 0 {
				cfg.OfferTTL = time.Duration(offerTTL) * time.Second
			}
			if home != "" {
				cfg.Home = home
			}
			if cfg.Home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				cfg.Home = filepath.Join(dir, ".parley")
			}
			// Keep parties' state apart when several share one machine.
			if cfg.Party != "" {
				cfg.Home = filepath.Join(cfg.Home, cfg.Party)
			}
			return os.MkdirAll(cfg.Home, 0o700)
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "state dir (default ~/.parley)")
	root.PersistentFlags().StringVarP(&party, "party", "P", "", "this party's identity (or PARLEY_PARTY)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the keyring")
	root.PersistentFlags().StringVar(&exchangeURL, "exchange", "", "exchange base URL (or PARLEY_EXCHANGE)")
	root.PersistentFlags().Int64Var(&offerTTL, "ttl", 0, "offer TTL in seconds")

	root.AddCommand(
		keygenCmd(),
		trustCmd(),
		offerCmd(),
		respondCmd(),
		confirmCmd(),
		completeCmd(),
		sessionsCmd(),
		demoCmd(),
	)
	return root.Execute()
}

// wire builds the party's dependency graph, unlocking the keyring.
func wire() (*app.Wire, error) {
	w, err := app.NewWire(cfg, passphrase)
	if err != nil {
		return nil, fmt.Errorf("wiring %q: %w", cfg.Party, err)
	}
	return w, nil
}

// parseKV turns repeated k=v flags into a map, reading integer, float and
// boolean values as such so constraint arithmetic keeps its types.
func parseKV(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		switch {
		case v == "true" || v == "false":
			out[k] = v == "true"
		default:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				out[k] = n
			} else if f, err := strconv.ParseFloat(v, 64); err == nil {
				out[k] = f
			} else {
				out[k] = v
			}
		}
	}
	return out, nil
}
