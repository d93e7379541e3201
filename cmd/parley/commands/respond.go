package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/domain"
	"parley/internal/protocol/handshake"
)

// respondCmd drains pending offers from this party's mailbox and answers
// each one.
func respondCmd() *cobra.Command {
	var (
		deny     bool
		modified []string
	)
	cmd := &cobra.Command{
		Use:   "respond",
		Short: "Answer offers waiting in the mailbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			if w.Exchange == nil {
				return errors.New("no exchange configured; set --exchange or PARLEY_EXCHANGE")
			}
			mods, err := parseKV(modified)
			if err != nil {
				return err
			}

			envs, err := w.Exchange.Fetch(w.Party, 0)
			if err != nil {
				return err
			}
			// Ack removes a mailbox prefix, so stop at the first envelope
			// another command must handle.
			acked := 0
			for _, env := range envs {
				if env.Type != domain.TypeOffer || env.Offer == nil {
					break
				}
				acked++
				response, err := w.Responder.ProcessOffer(*env.Offer, !deny, mods)
				if err != nil {
					var perr *handshake.ProtocolError
					if errors.As(err, &perr) {
						fmt.Printf("Offer %s rejected: %s\n", env.Offer.SessionID, perr.Code)
						continue
					}
					return err
				}
				out := domain.Envelope{
					Type:      domain.TypeResponse,
					From:      w.Party,
					To:        env.From,
					Response:  &response,
					Timestamp: time.Now().Unix(),
				}
				if err := w.Exchange.Post(out); err != nil {
					return fmt.Errorf("posting response: %w", err)
				}
				fmt.Printf("Responded to %s (scope %q, token %s)\n",
					response.SessionID, response.AcceptedScope, response.SessionToken)
			}
			if err := w.Exchange.Ack(w.Party, acked); err != nil {
				return err
			}
			if acked == 0 {
				fmt.Println("No offers waiting.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&deny, "deny", false, "reject instead of accepting")
	cmd.Flags().StringArrayVar(&modified, "constraint", nil, "override a proposed limit as key=value (repeatable)")
	return cmd
}
