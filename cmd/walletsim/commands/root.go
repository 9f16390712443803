package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/observability"
	"walletsegue/internal/peer"
	"walletsegue/internal/store"
)

const walletRecordID = domain.SessionID("walletsim")

var (
	home       string
	passphrase string
	logLevel   string

	keys   domain.KeyStore
	wallet *peer.Wallet
	log    zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "walletsim",
		Short:         "Answer walletsegue requests like a mobile wallet would",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".walletsim")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if passphrase == "" {
				passphrase = os.Getenv("WALLETSIM_PASSPHRASE")
			}
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p or WALLETSIM_PASSPHRASE)")
			}
			log = observability.NewLogger("walletsim", logLevel)
			keys = store.NewSessionFileStore(home, passphrase, store.DefaultKDF)

			w, err := loadWallet()
			if err != nil {
				return err
			}
			wallet = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.walletsim)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the wallet key")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	root.AddCommand(respondCmd(), rejectCmd(), fingerprintCmd())
	if err := root.Execute(); err != nil {
		pterm.Error.Println(err)
		return err
	}
	return nil
}

// loadWallet restores the saved key pair or creates one on first use.
func loadWallet() (*peer.Wallet, error) {
	rec, ok, err := keys.LoadSession()
	if err != nil {
		return nil, err
	}
	if ok {
		return peer.FromKeyPair(crypto.KeyPair{Private: rec.LocalPrivate, Public: rec.LocalPublic}), nil
	}
	w, err := peer.NewWallet()
	if err != nil {
		return nil, err
	}
	if err := saveWallet(w); err != nil {
		return nil, err
	}
	log.Info().Str("fingerprint", crypto.Fingerprint(w.KeyPair().Public).String()).Msg("created wallet key")
	return w, nil
}

func saveWallet(w *peer.Wallet) error {
	kp := w.KeyPair()
	return keys.SaveSession(domain.SessionRecord{
		ID:           walletRecordID,
		LocalPrivate: kp.Private,
		LocalPublic:  kp.Public,
		CreatedUTC:   time.Now().Unix(),
	})
}
