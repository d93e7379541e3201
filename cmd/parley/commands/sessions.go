package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// sessionsCmd lists established sessions with their read-time validity
// and optionally sweeps expired pending negotiations.
func sessionsCmd() *cobra.Command {
	var sweep bool
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List established sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := wire()
			if err != nil {
				return err
			}
			if sweep {
				purgedI, err := w.Initiator.SweepPending()
				if err != nil {
					return err
				}
				purgedR, err := w.Responder.SweepPending()
				if err != nil {
					return err
				}
				fmt.Printf("Swept %d expired pending negotiations.\n", purgedI+purgedR)
			}

			sessions, err := w.Initiator.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No sessions.")
				return nil
			}
			now := time.Now()
			for _, s := range sessions {
				status := "expired"
				if s.Valid(now) {
					status = "valid until " + s.ExpiresAt.Format(time.RFC3339)
				}
				fmt.Printf("%s  %s<->%s  scope=%q  mode=%s  %s\n",
					s.SessionID, s.RequesterID, s.ResponderID, s.AgreedScope, s.ModeID, status)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&sweep, "sweep", false, "purge expired pending negotiations first")
	return cmd
}
