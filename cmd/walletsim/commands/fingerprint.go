package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"walletsegue/internal/crypto"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the wallet key fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Fingerprint: %s\n", crypto.Fingerprint(wallet.KeyPair().Public))
			return nil
		},
	}
}
