package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Cancel outstanding requests and erase the session keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Client.Disconnect(); err != nil {
				return err
			}
			pterm.Success.Println("disconnected")
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start over with a fresh session id and key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Client.Reset(); err != nil {
				return err
			}
			pterm.Success.Printf("new session %s\n", appCtx.Client.SessionID())
			return nil
		},
	}
}
