package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"walletsegue/internal/domain"
)

// cancel [request-id]: give up on a request, or on all that are too old.
func cancelCmd() *cobra.Command {
	var (
		reason  string
		expired time.Duration
	)
	cmd := &cobra.Command{
		Use:   "cancel [request-id]",
		Short: "Cancel an outstanding request",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expired > 0 {
				n := appCtx.Client.CancelExpired(expired)
				pterm.Info.Printf("cancelled %d request(s) older than %s\n", n, expired)
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("request id required (or use --older-than)")
			}
			return appCtx.Client.Cancel(domain.RequestID(args[0]), reason)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "cancelled by user", "reason passed to the failure callback")
	cmd.Flags().DurationVar(&expired, "older-than", 0, "cancel every request older than this")
	return cmd
}
