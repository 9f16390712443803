package segue

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/observability"
	"walletsegue/internal/protocol/codec"
	"walletsegue/internal/protocol/envelope"
	"walletsegue/internal/protocol/handshake"
	"walletsegue/internal/registry"
)

// handshakeIllegal lists methods a wallet refuses inside a key exchange.
var handshakeIllegal = map[string]bool{
	"eth_sendTransaction": true,
	"eth_signTransaction": true,
}

// Outbound is a dispatched request: the id it is tracked under and the URL
// the UI layer should open.
type Outbound struct {
	RequestID domain.RequestID
	URL       string
}

// Client correlates wallet requests with their asynchronous responses for
// a single session.
type Client struct {
	cfg      Config
	machine  *handshake.Machine
	registry *registry.Registry
	log      zerolog.Logger
	metrics  *observability.Metrics
	now      func() time.Time

	// dispatchMu makes the in-flight check and registration atomic.
	dispatchMu sync.Mutex
}

// New constructs a Client over the session persisted in store.
func New(cfg Config, store domain.KeyStore, opts ...Option) (*Client, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg: cfg,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	c.registry = registry.New(registry.WithClock(c.now))
	m, err := handshake.New(store, handshake.WithClock(c.now))
	if err != nil {
		return nil, err
	}
	c.machine = m
	return c, nil
}

// InitiateHandshake starts a key exchange carrying actions as its initial
// batch.
//
// On an Established session without WithForce it returns a zero Outbound
// and a nil error. Nothing is dispatched, the actions are not sent and
// neither callback is ever invoked; callers that need the actions run
// should check out.URL and follow up with MakeRequest.
//
// Steps:
//  1. Reject methods a wallet will not run inside a handshake.
//  2. An Established session without WithForce is a no-op.
//  3. Enforce the in-flight policy, then move the machine to Handshaking.
//  4. Put the actions in clear on first contact, or seal them under the
//     previous key when renegotiating.
//  5. Register the pending handshake and return its URL.
func (c *Client) InitiateHandshake(
	actions []domain.Action,
	onSuccess domain.SuccessFunc,
	onFailure domain.FailureFunc,
	opts ...HandshakeOption,
) (Outbound, error) {
	var o handshakeOpts
	for _, fn := range opts {
		fn(&o)
	}
	for _, a := range actions {
		if handshakeIllegal[a.Method] {
			return Outbound{}, fmt.Errorf("%w: %s", domain.ErrInvalidHandshake, a.Method)
		}
	}
	payload, err := codec.EncodeActions(actions)
	if err != nil {
		return Outbound{}, err
	}

	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	sess := c.machine.SessionID()
	switch c.machine.State() {
	case domain.StateEstablished:
		if !o.force {
			c.log.Debug().Msg("handshake skipped, session already established")
			return Outbound{}, nil
		}
	case domain.StateHandshaking:
		return Outbound{}, domain.ErrAlreadyInProgress
	case domain.StateDisconnected:
		return Outbound{}, domain.ErrDisconnected
	}
	if err := c.checkInFlight(sess); err != nil {
		return Outbound{}, err
	}

	prev, err := c.machine.Begin(o.force)
	if errors.Is(err, domain.ErrAlreadyEstablished) {
		return Outbound{}, nil
	}
	if err != nil {
		return Outbound{}, err
	}
	if prev != nil {
		defer prev.Wipe()
	}

	id := newRequestID()
	hs := &envelope.Handshake{}
	if prev == nil {
		hs.InitialActions = actions
	} else {
		sealed, err := crypto.Seal(*prev, payload, envelope.AssociatedData(id, sess))
		if err != nil {
			c.machine.Abort()
			return Outbound{}, err
		}
		hs.SealedActions = crypto.B64(sealed)
	}

	req := c.baseRequest(id, sess)
	req.Handshake = hs
	out, err := c.dispatch(req, domain.PendingRequest{
		RequestID: id,
		SessionID: sess,
		Actions:   actions,
		Handshake: true,
		OnSuccess: onSuccess,
		OnFailure: onFailure,
	})
	if err != nil {
		c.machine.Abort()
		return Outbound{}, err
	}
	c.metrics.Dispatched(observability.KindHandshake)
	c.log.Debug().Str("session_id", sess.String()).Str("request_id", id.String()).Bool("renegotiate", prev != nil).
		Int("actions", len(actions)).Msg("handshake dispatched")
	return out, nil
}

// MakeRequest seals actions under the session key and returns the URL that
// carries them to the wallet.
func (c *Client) MakeRequest(
	actions []domain.Action,
	onSuccess domain.SuccessFunc,
	onFailure domain.FailureFunc,
) (Outbound, error) {
	payload, err := codec.EncodeActions(actions)
	if err != nil {
		return Outbound{}, err
	}

	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	key, err := c.machine.SymmetricKey()
	if err != nil {
		return Outbound{}, err
	}
	defer key.Wipe()
	sess := c.machine.SessionID()
	if err := c.checkInFlight(sess); err != nil {
		return Outbound{}, err
	}

	id := newRequestID()
	sealed, err := crypto.Seal(key, payload, envelope.AssociatedData(id, sess))
	if err != nil {
		return Outbound{}, err
	}
	req := c.baseRequest(id, sess)
	req.EncryptedPayload = crypto.B64(sealed)

	out, err := c.dispatch(req, domain.PendingRequest{
		RequestID: id,
		SessionID: sess,
		Actions:   actions,
		OnSuccess: onSuccess,
		OnFailure: onFailure,
	})
	if err != nil {
		return Outbound{}, err
	}
	c.metrics.Dispatched(observability.KindRequest)
	c.log.Debug().Str("session_id", sess.String()).Str("request_id", id.String()).
		Int("actions", len(actions)).Msg("request dispatched")
	return out, nil
}

// Cancel fails the pending request id with ErrCancelled. A cancelled
// handshake returns the session to Unestablished.
func (c *Client) Cancel(id domain.RequestID, reason string) error {
	return c.Fail(id, &domain.CancelError{RequestID: id, Reason: reason})
}

// Fail fails the pending request id with err.
func (c *Client) Fail(id domain.RequestID, err error) error {
	p, ok := c.registry.Get(id)
	if ok && p.Handshake {
		c.machine.Abort()
	}
	if ferr := c.registry.Fail(id, err); ferr != nil {
		return ferr
	}
	c.metrics.SetPending(c.registry.Len())
	c.log.Info().Str("request_id", id.String()).Err(err).Msg("request failed locally")
	return nil
}

// CancelExpired cancels every request older than maxAge and returns how
// many were cancelled.
func (c *Client) CancelExpired(maxAge time.Duration) int {
	n := 0
	for _, id := range c.registry.Expired(c.now().Add(-maxAge)) {
		if c.Cancel(id, "timed out") == nil {
			n++
		}
	}
	return n
}

// Disconnect cancels every pending request and discards the session keys.
// The client is unusable until Reset.
func (c *Client) Disconnect() error {
	c.dispatchMu.Lock()
	sess := c.machine.SessionID()
	err := c.machine.Disconnect()
	c.dispatchMu.Unlock()

	// Callbacks may dispatch again, so they run without dispatchMu.
	n := c.registry.CancelSession(sess, "disconnected")
	c.metrics.SetPending(c.registry.Len())
	c.log.Info().Str("session_id", sess.String()).Int("cancelled", n).Msg("session disconnected")
	return err
}

// Reset cancels every pending request and starts a fresh session with a new
// id and key pair.
func (c *Client) Reset() error {
	c.dispatchMu.Lock()
	old := c.machine.SessionID()
	err := c.machine.Reset()
	c.dispatchMu.Unlock()

	n := c.registry.CancelSession(old, "session reset")
	c.metrics.SetPending(c.registry.Len())
	if err != nil {
		return err
	}
	c.log.Info().Str("previous", old.String()).Str("current", c.machine.SessionID().String()).
		Int("cancelled", n).Msg("session reset")
	return nil
}

// State returns the session lifecycle state.
func (c *Client) State() domain.SessionState { return c.machine.State() }

// SessionID returns the current session id.
func (c *Client) SessionID() domain.SessionID { return c.machine.SessionID() }

// Fingerprint returns a short fingerprint of the local public key.
func (c *Client) Fingerprint() domain.Fingerprint {
	return crypto.Fingerprint(c.machine.PublicKey())
}

// PeerFingerprint returns the wallet key's fingerprint once established.
func (c *Client) PeerFingerprint() (domain.Fingerprint, bool) {
	pub, ok := c.machine.PeerPublic()
	if !ok {
		return "", false
	}
	return crypto.Fingerprint(pub), true
}

// Pending returns the outstanding requests in serialisable form.
func (c *Client) Pending() []domain.PendingRecord { return c.registry.Snapshot() }

// Outstanding returns the number of requests awaiting a response.
func (c *Client) Outstanding() int { return c.registry.Len() }

// Restore re-registers requests dispatched by an earlier process with fresh
// callbacks. Records for another session are skipped. A pending handshake
// puts the session back into Handshaking.
func (c *Client) Restore(
	records []domain.PendingRecord,
	onSuccess domain.SuccessFunc,
	onFailure domain.FailureFunc,
) (int, error) {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	sess := c.machine.SessionID()
	n := 0
	for _, rec := range records {
		if rec.SessionID != sess {
			c.log.Debug().Str("request_id", rec.RequestID.String()).Msg("skipping record of another session")
			continue
		}
		if rec.Handshake {
			if err := c.machine.Resume(); err != nil {
				c.log.Warn().Str("request_id", rec.RequestID.String()).Err(err).Msg("stale handshake record")
				continue
			}
		}
		err := c.registry.Register(domain.PendingRequest{
			RequestID: rec.RequestID,
			SessionID: rec.SessionID,
			Actions:   rec.Actions,
			Handshake: rec.Handshake,
			OnSuccess: onSuccess,
			OnFailure: onFailure,
			CreatedAt: time.Unix(rec.CreatedUTC, 0),
		})
		if err != nil {
			return n, err
		}
		n++
	}
	c.metrics.SetPending(c.registry.Len())
	return n, nil
}

func (c *Client) checkInFlight(sess domain.SessionID) error {
	if c.cfg.AllowConcurrent {
		return nil
	}
	if c.registry.Outstanding(sess) > 0 {
		return domain.ErrRequestInFlight
	}
	return nil
}

func (c *Client) baseRequest(id domain.RequestID, sess domain.SessionID) envelope.Request {
	return envelope.Request{
		RequestID: id,
		SessionID: sess,
		Version:   c.cfg.Version,
		Sender:    crypto.B64(c.machine.PublicKey().Slice()),
		AppID:     c.cfg.AppID,
		Callback:  c.cfg.CallbackURL,
		Timestamp: c.now().Unix(),
	}
}

// dispatch encodes req into a URL and registers p. Nothing is registered
// when encoding fails.
func (c *Client) dispatch(req envelope.Request, p domain.PendingRequest) (Outbound, error) {
	u, err := envelope.EncodeURL(c.cfg.WalletURL, req)
	if err != nil {
		return Outbound{}, err
	}
	p.CreatedAt = c.now()
	if err := c.registry.Register(p); err != nil {
		return Outbound{}, err
	}
	c.metrics.SetPending(c.registry.Len())
	return Outbound{RequestID: req.RequestID, URL: u}, nil
}

func newRequestID() domain.RequestID { return domain.RequestID(uuid.NewString()) }
