package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the TOML file read from the home directory.
const ConfigFile = "config.toml"

// Key store backends.
const (
	KeyStoreFile    = "file"
	KeyStoreKeyring = "keyring"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home            string  // config directory, e.g. $HOME/.walletsegue
	WalletURL       string  // wallet universal link, e.g. https://wallet.example/wsegue
	CallbackURL     string  // where the wallet answers; empty accepts any URL
	AppID           string  // host application identifier sent to the wallet
	Version         string  // protocol version; empty uses the built-in one
	KeyStore        string  // "file" or "keyring"
	AllowConcurrent bool    // permit more than one outstanding request
	LogLevel        string  // zerolog level name
	Listen          string  // address of the http callback listener
	CallbackRate    float64 // callbacks per second accepted by the listener; 0 disables
	CallbackBurst   int
}

// fileConfig is the config.toml key mapping.
type fileConfig struct {
	WalletURL       string  `toml:"wallet_url"`
	CallbackURL     string  `toml:"callback_url"`
	AppID           string  `toml:"app_id"`
	Version         string  `toml:"version"`
	KeyStore        string  `toml:"key_store"`
	AllowConcurrent bool    `toml:"allow_concurrent"`
	LogLevel        string  `toml:"log_level"`
	Listen          string  `toml:"listen"`
	CallbackRate    float64 `toml:"callback_rate"`
	CallbackBurst   int     `toml:"callback_burst"`
}

// DefaultConfig returns the settings used when config.toml is absent.
func DefaultConfig(home string) Config {
	return Config{
		Home:          home,
		WalletURL:     "https://go.cb-w.com/wsegue",
		AppID:         "walletsegue-cli",
		KeyStore:      KeyStoreFile,
		LogLevel:      "info",
		Listen:        "127.0.0.1:8765",
		CallbackRate:  5,
		CallbackBurst: 10,
	}
}

// DefaultHome returns ~/.walletsegue.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".walletsegue"), nil
}

// Load overlays <home>/config.toml on the defaults and validates the result.
// A missing file yields the defaults.
func Load(home string) (Config, error) {
	cfg := DefaultConfig(home)
	path := filepath.Join(home, ConfigFile)

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("wallet_url") {
		cfg.WalletURL = strings.TrimSpace(raw.WalletURL)
	}
	if meta.IsDefined("callback_url") {
		cfg.CallbackURL = strings.TrimSpace(raw.CallbackURL)
	}
	if meta.IsDefined("app_id") {
		cfg.AppID = strings.TrimSpace(raw.AppID)
	}
	if meta.IsDefined("version") {
		cfg.Version = strings.TrimSpace(raw.Version)
	}
	if meta.IsDefined("key_store") {
		cfg.KeyStore = strings.ToLower(strings.TrimSpace(raw.KeyStore))
	}
	if meta.IsDefined("allow_concurrent") {
		cfg.AllowConcurrent = raw.AllowConcurrent
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("listen") {
		cfg.Listen = strings.TrimSpace(raw.Listen)
	}
	if meta.IsDefined("callback_rate") {
		cfg.CallbackRate = raw.CallbackRate
	}
	if meta.IsDefined("callback_burst") {
		cfg.CallbackBurst = raw.CallbackBurst
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks required fields and enumerations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Home) == "" {
		return fmt.Errorf("config: home is required")
	}
	if c.WalletURL == "" {
		return fmt.Errorf("config: wallet_url is required")
	}
	if u, err := url.Parse(c.WalletURL); err != nil || u.Scheme == "" {
		return fmt.Errorf("config: wallet_url %q is not an absolute url", c.WalletURL)
	}
	if c.CallbackURL != "" {
		if u, err := url.Parse(c.CallbackURL); err != nil || u.Scheme == "" {
			return fmt.Errorf("config: callback_url %q is not an absolute url", c.CallbackURL)
		}
	}
	if c.Listen == "" {
		return fmt.Errorf("config: listen is required")
	}
	if c.CallbackRate < 0 || c.CallbackBurst < 0 {
		return fmt.Errorf("config: callback_rate and callback_burst must not be negative")
	}
	switch c.KeyStore {
	case KeyStoreFile, KeyStoreKeyring:
	default:
		return fmt.Errorf("config: unsupported key_store %q (expected %s or %s)", c.KeyStore, KeyStoreFile, KeyStoreKeyring)
	}
	return nil
}
