package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"walletsegue/internal/callback"
)

// serve: accept wallet responses on an http callback URL.
func serveCmd() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Listen for wallet responses on the http callback URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = appCtx.Config.Listen
			}
			srv := callback.New(appCtx.Client,
				callback.WithCallbackURL(appCtx.Config.CallbackURL),
				callback.WithGatherer(appCtx.Registry),
				callback.WithAfter(appCtx.Persist),
				callback.WithRateLimit(appCtx.Config.CallbackRate, appCtx.Config.CallbackBurst),
				callback.WithLogger(appCtx.Log),
			)
			hs := &http.Server{
				Addr:              listen,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			errCh := make(chan error, 1)
			go func() { errCh <- hs.ListenAndServe() }()
			pterm.Info.Printf("listening on %s\n", listen)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}
