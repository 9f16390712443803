package segue

import (
	"fmt"
	"net/url"
	"strings"

	"walletsegue/internal/protocol/envelope"
)

// Config describes how to reach the wallet and where it should answer.
type Config struct {
	// WalletURL is the universal link or custom scheme the wallet handles.
	WalletURL string
	// CallbackURL is where the wallet sends its response. When set, only
	// URLs with the same scheme, host and path are accepted on ingress.
	CallbackURL string
	// AppID identifies the host application to the wallet.
	AppID string
	// Version is written into every envelope; defaults to envelope.Version.
	Version string
	// AllowConcurrent lifts the one-request-in-flight limit.
	AllowConcurrent bool
}

func (c *Config) normalize() error {
	c.WalletURL = strings.TrimSpace(c.WalletURL)
	c.CallbackURL = strings.TrimSpace(c.CallbackURL)
	if c.WalletURL == "" {
		return fmt.Errorf("segue config: wallet url is required")
	}
	if _, err := url.Parse(c.WalletURL); err != nil {
		return fmt.Errorf("segue config: wallet url: %w", err)
	}
	if c.CallbackURL != "" {
		if _, err := url.Parse(c.CallbackURL); err != nil {
			return fmt.Errorf("segue config: callback url: %w", err)
		}
	}
	if c.Version == "" {
		c.Version = envelope.Version
	}
	return nil
}
