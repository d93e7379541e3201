package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/domain"
	"parley/internal/protocol/handshake"
)

// confirmCmd drains responses from the mailbox, validates each against
// its pending offer and sends back the confirmation. The local session is
// established as a side effect.
func confirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Validate responses and send confirmations",
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
				if env.Type != domain.TypeResponse || env.Response == nil {
					break
				}
				acked++
				confirmation, err := w.Initiator.ProcessResponse(*env.Response)
				if err != nil {
					var perr *handshake.ProtocolError
					if errors.As(err, &perr) {
						fmt.Printf("Response %s rejected: %s\n", env.Response.SessionID, perr.Code)
						continue
					}
					return err
				}
				out := domain.Envelope{
					Type:         domain.TypeConfirmation,
					From:         w.Party,
					To:           env.From,
					Confirmation: &confirmation,
					Timestamp:    time.Now().Unix(),
				}
				if err := w.Exchange.Post(out); err != nil {
					return fmt.Errorf("posting confirmation: %w", err)
				}
				fmt.Printf("Session %s established (mode %s)\n",
					confirmation.SessionID, confirmation.ModeID)
			}
			if err := w.Exchange.Ack(w.Party, acked); err != nil {
				return err
			}
			if acked == 0 {
				fmt.Println("No responses waiting.")
			}
			return nil
		},
	}
}
