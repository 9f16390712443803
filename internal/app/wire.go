package app

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"walletsegue/internal/domain"
	"walletsegue/internal/observability"
	"walletsegue/internal/services/segue"
	"walletsegue/internal/store"
)

const keyringService = "walletsegue"

// Wire bundles the stores, client and ambient services for the CLI.
type Wire struct {
	Config   Config
	Keys     domain.KeyStore
	Pending  domain.PendingStore
	Client   *segue.Client
	Log      zerolog.Logger
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
}

// Deps overrides pieces of the graph, mainly for tests.
type Deps struct {
	Keys domain.KeyStore
	Log  *zerolog.Logger
	KDF  *store.KDFParams
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, passphrase string, deps Deps) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	log := observability.NewLogger("walletsegue", cfg.LogLevel)
	if deps.Log != nil {
		log = *deps.Log
	}

	keys := deps.Keys
	if keys == nil {
		var err error
		if keys, err = openKeyStore(cfg, passphrase, deps); err != nil {
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	client, err := segue.New(segue.Config{
		WalletURL:       cfg.WalletURL,
		CallbackURL:     cfg.CallbackURL,
		AppID:           cfg.AppID,
		Version:         cfg.Version,
		AllowConcurrent: cfg.AllowConcurrent,
	}, keys, segue.WithLogger(log), segue.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	return &Wire{
		Config:   cfg,
		Keys:     keys,
		Pending:  store.NewPendingFileStore(cfg.Home),
		Client:   client,
		Log:      log,
		Metrics:  metrics,
		Registry: reg,
	}, nil
}

func openKeyStore(cfg Config, passphrase string, deps Deps) (domain.KeyStore, error) {
	switch cfg.KeyStore {
	case KeyStoreKeyring:
		ring, err := store.OpenKeyring(keyringService, cfg.Home, passphrase)
		if err != nil {
			return nil, err
		}
		return store.NewKeyringStore(ring, "session"), nil
	case KeyStoreFile:
		if passphrase == "" {
			return nil, fmt.Errorf("a passphrase is required for the file key store")
		}
		kdf := store.DefaultKDF
		if deps.KDF != nil {
			kdf = *deps.KDF
		}
		return store.NewSessionFileStore(cfg.Home, passphrase, kdf), nil
	default:
		return nil, fmt.Errorf("unsupported key store %q", cfg.KeyStore)
	}
}
