package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print local and wallet key fingerprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Local:  %s\n", appCtx.Client.Fingerprint())
			if fp, ok := appCtx.Client.PeerFingerprint(); ok {
				fmt.Printf("Wallet: %s\n", fp)
			}
			return nil
		},
	}
}
