package commands

import (
	"github.com/spf13/cobra"
)

// handle <url>: feed a wallet response into the client.
func handleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handle <url|payload>",
		Short: "Process a response URL opened by the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			before := appCtx.Client.Outstanding()
			err := appCtx.Client.HandleResponseURL(args[0])
			if appCtx.Client.Outstanding() < before {
				// The request's callback already reported the outcome.
				return nil
			}
			return err
		},
	}
}
