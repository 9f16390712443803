package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"walletsegue/internal/app"
	"walletsegue/internal/domain"
	"walletsegue/internal/peer"
	"walletsegue/internal/store"
)

var fastKDF = store.KDFParams{N: 1 << 10, R: 8, P: 1}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFile), []byte(body), 0o600))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := app.Load(home)
	require.NoError(t, err)
	require.Equal(t, app.DefaultConfig(home), cfg)
}

func TestLoad_OverlaysDefinedKeys(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, `
wallet_url = " https://wallet.example/wsegue "
callback_url = "myapp://segue"
key_store = "KEYRING"
allow_concurrent = true
`)
	cfg, err := app.Load(home)
	require.NoError(t, err)
	require.Equal(t, "https://wallet.example/wsegue", cfg.WalletURL)
	require.Equal(t, "myapp://segue", cfg.CallbackURL)
	require.Equal(t, app.KeyStoreKeyring, cfg.KeyStore)
	require.True(t, cfg.AllowConcurrent)
	// untouched keys keep their defaults
	require.Equal(t, "walletsegue-cli", cfg.AppID)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     `wallet = "x"`,
		"bad key store":   `key_store = "vault"`,
		"relative wallet": `wallet_url = "wsegue"`,
		"empty wallet":    `wallet_url = ""`,
		"bad toml":        `wallet_url = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, body)
			_, err := app.Load(home)
			require.Error(t, err)
		})
	}
}

func newWire(t *testing.T, home string) *app.Wire {
	t.Helper()
	nop := zerolog.Nop()
	kdf := fastKDF
	w, err := app.NewWire(app.DefaultConfig(home), "pw", app.Deps{Log: &nop, KDF: &kdf})
	require.NoError(t, err)
	return w
}

func TestNewWire_FileStoreNeedsPassphrase(t *testing.T) {
	_, err := app.NewWire(app.DefaultConfig(t.TempDir()), "", app.Deps{})
	require.Error(t, err)
}

// A handshake dispatched by one process is resolved by the next.
func TestWire_PersistRestoreAcrossInvocations(t *testing.T) {
	home := t.TempDir()

	first := newWire(t, home)
	out, err := first.Client.InitiateHandshake([]domain.Action{{Method: "eth_requestAccounts"}}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, first.Persist())
	sess := first.Client.SessionID()

	wallet, err := peer.NewWallet()
	require.NoError(t, err)
	in, err := wallet.Decode([]byte(out.URL))
	require.NoError(t, err)
	reply, err := wallet.Respond(in, peer.Succeed(in.Actions, `["0xabc"]`))
	require.NoError(t, err)

	second := newWire(t, home)
	require.Equal(t, sess, second.Client.SessionID())

	var got []domain.ActionResult
	n, err := second.Restore(func(r []domain.ActionResult) { got = r }, func(err error) { t.Fatalf("unexpected failure: %v", err) })
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, domain.StateHandshaking, second.Client.State())

	require.NoError(t, second.Client.HandleResponseURL(reply))
	require.Len(t, got, 1)
	require.Equal(t, domain.StateEstablished, second.Client.State())
	require.NoError(t, second.Persist())

	third := newWire(t, home)
	n, err = third.Restore(nil, nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, domain.StateEstablished, third.Client.State())
}
