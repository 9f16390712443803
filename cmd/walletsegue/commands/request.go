package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// request <action...>: seal a batch under the session key.
func requestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <method[?][=params]>...",
		Short: "Send an encrypted batch of actions to the wallet",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := parseActions(args)
			if err != nil {
				return err
			}
			out, err := appCtx.Client.MakeRequest(actions, printResults, printFailure)
			if err != nil {
				return fmt.Errorf("request: %w", err)
			}
			printOutbound("request", out)
			return nil
		},
	}
}
