package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"parley/internal/domain"
	"parley/internal/protocol/handshake"
)

// completeCmd drains confirmations from the mailbox and materializes the
// responder-side sessions.
func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Finalize sessions from waiting confirmations",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			if w.Exchange == nil {
				return errors.New("no exchange configured; set --exchange or PARLEY_EXCHANGE")
			}

			envs, err := w.Exchange.Fetch(w.Party, 0)
			if err != nil {
				return err
			}
			// Ack removes a mailbox prefix, so stop at the first envelope
			// another command must handle.
			acked := 0
			for _, env := range envs {
				if env.Type != domain.TypeConfirmation || env.Confirmation == nil {
					break
				}
				acked++
				session, err := w.Responder.ProcessConfirmation(*env.Confirmation)
				if err != nil {
					var perr *handshake.ProtocolError
					if errors.As(err, &perr) {
						fmt.Printf("Confirmation %s rejected: %s\n", env.Confirmation.SessionID, perr.Code)
						continue
					}
					return err
				}
				fmt.Printf("Session %s established with %s (scope %q, expires %s)\n",
					session.SessionID, session.RequesterID, session.AgreedScope,
					session.ExpiresAt.Format("15:04:05"))
			}
			if err := w.Exchange.Ack(w.Party, acked); err != nil {
				return err
			}
			if acked == 0 {
				fmt.Println("No confirmations waiting.")
			}
			return nil
		},
	}
}
