package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"walletsegue/internal/app"
)

var (
	home        string
	passphrase  string
	showMetrics bool
	appCtx      *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:           "walletsegue",
		Short:         "Talk to a mobile wallet through app-to-app links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if passphrase == "" {
				passphrase = os.Getenv("WALLETSEGUE_PASSPHRASE")
			}

			cfg, err := app.Load(home)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg, passphrase, app.Deps{})
			if err != nil {
				return err
			}
			if _, err := w.Restore(printResults, printFailure); err != nil {
				return err
			}
			appCtx = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appCtx == nil {
				return nil
			}
			if showMetrics {
				printMetrics(appCtx)
			}
			return appCtx.Persist()
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.walletsegue)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the session keys")
	root.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print protocol counters after the command")

	root.AddCommand(
		handshakeCmd(),
		requestCmd(),
		handleCmd(),
		statusCmd(),
		cancelCmd(),
		disconnectCmd(),
		resetCmd(),
		fingerprintCmd(),
		serveCmd(),
	)
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		return err
	}
	return nil
}
