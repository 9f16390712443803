package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"walletsegue/internal/services/segue"
)

// handshake [action...]: open a session, optionally carrying a first batch.
func handshakeCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "handshake [method[?][=params]...]",
		Short: "Start a key exchange with the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := parseActions(args)
			if err != nil {
				return err
			}
			var opts []segue.HandshakeOption
			if force {
				opts = append(opts, segue.WithForce())
			}
			out, err := appCtx.Client.InitiateHandshake(actions, printResults, printFailure, opts...)
			if err != nil {
				return err
			}
			if out.URL == "" {
				pterm.Info.Println("session already established, use --force to renegotiate")
				return nil
			}
			printOutbound("handshake", out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "renegotiate an established session")
	return cmd
}
