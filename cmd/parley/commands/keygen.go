package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/crypto"
	"parley/internal/keyring"
)

// keygenCmd mints this party's signing secret and stores it encrypted
// under the keyring passphrase.
func keygenCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Mint and store this party's signing secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := crypto.NewSecret()
			if err != nil {
				return err
			}
			ring := keyring.New(cfg.Home)
			if err := ring.SaveOwn(passphrase, secret); err != nil {
				return fmt.Errorf("saving secret: %w", err)
			}
			fmt.Printf("Secret stored for %s. Fingerprint=%s\n", cfg.Party, crypto.Fingerprint(secret))
			if show {
				// For handing to the peer out of band.
				fmt.Printf("Secret=%s\n", hex.EncodeToString(secret))
			}
			crypto.Zero(secret)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the secret hex for out-of-band distribution")
	return cmd
}

// trustCmd imports the peer's verification secret, completing the
// out-of-band key distribution for this party.
func trustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trust <secret-hex>",
		Short: "Store the peer's verification secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding secret: %w", err)
			}
			ring := keyring.New(cfg.Home)
			if err := ring.SavePeer(passphrase, secret); err != nil {
				return fmt.Errorf("saving peer secret: %w", err)
			}
			fmt.Printf("Peer secret stored. Fingerprint=%s\n", crypto.Fingerprint(secret))
			crypto.Zero(secret)
			return nil
		},
	}
}
