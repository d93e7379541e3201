package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"parley/internal/domain"
)

// offerCmd opens a negotiation with a peer: the payload is screened by
// the content gate, signed into an Offer, held pending locally and posted
// to the peer's mailbox.
func offerCmd() *cobra.Command {
	var (
		scope       string
		boundary    []string
		constraints []string
	)
	cmd := &cobra.Command{
		Use:   "offer <peer>",
		Short: "Open a negotiation with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			peer := domain.PartyID(args[0])
			if scope == "" {
				return errors.New("--scope is required")
			}
			w, err := wire()
			if err != nil {
				return err
			}
			if w.Exchange == nil {
				return errors.New("no exchange configured; set --exchange or PARLEY_EXCHANGE")
			}

			bnd, err := parseKV(boundary)
			if err != nil {
				return err
			}
			cons, err := parseKV(constraints)
			if err != nil {
				return err
			}
			if err := w.Gate.Screen(scope, bnd, cons); err != nil {
				return fmt.Errorf("offer payload rejected: %w", err)
			}

			offer, err := w.Initiator.CreateOffer(scope, bnd, cons)
			if err != nil {
				return err
			}
			env := domain.Envelope{
				Type:      domain.TypeOffer,
				From:      w.Party,
				To:        peer,
				Offer:     &offer,
				Timestamp: time.Now().Unix(),
			}
			if err := w.Exchange.Post(env); err != nil {
				return fmt.Errorf("posting offer: %w", err)
			}
			fmt.Printf("Offer %s sent to %s (scope %q, ttl %ds)\n",
				offer.SessionID, peer, offer.Scope, offer.TTLSeconds)
			return nil
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "", "intent description for the session")
	cmd.Flags().StringArrayVar(&boundary, "boundary", nil, "semantic limit as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&constraints, "constraint", nil, "proposed limit as key=value (repeatable)")
	return cmd
}
