package segue

import (
	"time"

	"github.com/rs/zerolog"

	"walletsegue/internal/observability"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records dispatch and ingress counters on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock overrides the time source for envelopes and pending entries.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// HandshakeOption adjusts a single InitiateHandshake call.
type HandshakeOption func(*handshakeOpts)

type handshakeOpts struct {
	force bool
}

// WithForce renegotiates even when the session is already established.
func WithForce() HandshakeOption {
	return func(o *handshakeOpts) { o.force = true }
}
