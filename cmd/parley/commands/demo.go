package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/crypto"
	"parley/internal/protocol/handshake"
)

// demoCmd runs the whole three-message handshake in process between two
// throwaway parties and prints each step. Useful for a first look at the
// protocol without an exchange or keyring.
func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a complete in-process handshake",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := crypto.NewSecret()
			if err != nil {
				return err
			}
			alice, err := handshake.NewInitiator(handshake.Config{Party: "alice", Secret: secret})
			if err != nil {
				return err
			}
			bob, err := handshake.NewResponder(handshake.Config{Party: "bob", Secret: secret})
			if err != nil {
				return err
			}

			fmt.Println("--- Step 1: alice -> offer -> bob ---")
			offer, err := alice.CreateOffer(
				"read-profile",
				map[string]any{"data_types": []any{"profile"}, "time_range": "last_30_days"},
				map[string]any{"max_x": int64(1000)},
			)
			if err != nil {
				return err
			}
			fmt.Printf("session=%s scope=%q mac=%s...\n", offer.SessionID, offer.Scope, offer.MAC[:16])

			fmt.Println("--- Step 2: bob -> response -> alice ---")
			response, err := bob.ProcessOffer(offer, true, map[string]any{"max_x": int64(500)})
			if err != nil {
				return err
			}
			fmt.Printf("token=%s modified=max_x->500 mac=%s...\n", response.SessionToken, response.MAC[:16])

			fmt.Println("--- Step 3: alice -> confirmation -> bob ---")
			confirmation, err := alice.ProcessResponse(response)
			if err != nil {
				return err
			}
			fmt.Printf("confirmed=%v mode=%s mac=%s...\n",
				confirmation.Confirmed, confirmation.ModeID, confirmation.MAC[:16])

			fmt.Println("--- Step 4: session established ---")
			session, err := bob.ProcessConfirmation(confirmation)
			if err != nil {
				return err
			}
			fmt.Printf("state=%s agreed=%v expires=%s\n",
				session.State, session.AgreedConstraints, session.ExpiresAt.Format("15:04:05"))
			fmt.Printf("alice valid=%v  bob valid=%v\n",
				alice.ValidSession(offer.SessionID), bob.ValidSession(offer.SessionID))
			return nil
		},
	}
}
