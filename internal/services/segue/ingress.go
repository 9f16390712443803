package segue

import (
	"fmt"

	"github.com/rs/zerolog"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/observability"
	"walletsegue/internal/protocol/codec"
	"walletsegue/internal/protocol/envelope"
)

// HandleResponseURL is HandleResponse for a callback URL. When a callback
// URL is configured, any other destination is rejected untouched.
func (c *Client) HandleResponseURL(raw string) error {
	if c.cfg.CallbackURL != "" && !envelope.MatchesCallback(raw, c.cfg.CallbackURL) {
		c.metrics.Ingress(observability.OutcomeRejected)
		c.log.Warn().Msg("ignoring url that does not match the callback")
		return domain.ErrNotSegueURL
	}
	return c.HandleResponse([]byte(raw))
}

// HandleResponse is the single ingress for wallet responses. It accepts a
// URL carrying the p parameter, the bare base64 parameter, or raw JSON, and
// never panics.
//
// Steps:
//  1. Parse the envelope; only requestId and sessionId are trusted.
//  2. Unknown session or request ids are reported with no side effect.
//  3. A wallet failure fails the request with *PeerError.
//  4. For a handshake, derive the key from the sender; otherwise use the
//     session key.
//  5. Open the payload, decode results, then commit the handshake and
//     resolve the request.
//
// Failures after step 2 are delivered to the request's OnFailure and also
// returned. A nil return means the request's callback has run.
func (c *Client) HandleResponse(raw []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handle response: recovered panic: %v", r)
			c.metrics.Ingress(observability.OutcomeMalformed)
			c.log.Error().Err(err).Msg("response handling panicked")
		}
	}()

	resp, err := envelope.ParseResponse(raw)
	if err != nil {
		c.metrics.Ingress(observability.OutcomeMalformed)
		c.log.Warn().Err(err).Msg("unparseable response")
		return err
	}
	log := c.log.With().
		Str("request_id", resp.RequestID.String()).
		Str("session_id", resp.SessionID.String()).
		Logger()

	if resp.SessionID != c.machine.SessionID() {
		c.metrics.Ingress(observability.OutcomeUnknown)
		log.Warn().Msg("response for a foreign session")
		return fmt.Errorf("session %s: %w", resp.SessionID, domain.ErrUnknownRequest)
	}
	p, ok := c.registry.Get(resp.RequestID)
	if !ok || p.SessionID != resp.SessionID {
		c.metrics.Ingress(observability.OutcomeUnknown)
		log.Warn().Msg("response for an unknown request")
		return fmt.Errorf("request %s: %w", resp.RequestID, domain.ErrUnknownRequest)
	}

	if resp.Failure != nil {
		perr := &domain.PeerError{RequestID: p.RequestID, Description: resp.Failure.Description}
		c.failPending(log, p, perr, observability.OutcomeFailed)
		return nil
	}

	var (
		key    crypto.SymmetricKey
		sender domain.X25519Public
	)
	if p.Handshake {
		sender, err = envelope.SenderKey(resp.Sender)
		if err != nil {
			err = fmt.Errorf("%w: sender key: %v", domain.ErrHandshake, err)
			c.failPending(log, p, err, observability.OutcomeMalformed)
			return err
		}
		key, err = c.machine.Derive(sender.Slice())
	} else {
		key, err = c.machine.SymmetricKey()
	}
	if err != nil {
		c.failPending(log, p, err, observability.OutcomeFailed)
		return err
	}
	defer key.Wipe()

	plain, err := open(key, resp)
	if err != nil {
		c.failPending(log, p, err, observability.OutcomeTampered)
		return err
	}
	results, err := codec.DecodeResults(plain)
	if err != nil {
		c.failPending(log, p, err, observability.OutcomeMalformed)
		return err
	}
	return c.resolve(log, p, sender, results)
}

func open(key crypto.SymmetricKey, resp envelope.Response) ([]byte, error) {
	sealed, err := envelope.SealedPayload(resp.EncryptedPayload)
	if err != nil {
		return nil, err
	}
	return crypto.Open(key, sealed, envelope.AssociatedData(resp.RequestID, resp.SessionID))
}

// resolve commits a handshake if p is one, then delivers results.
func (c *Client) resolve(log zerolog.Logger, p domain.PendingRequest, sender domain.X25519Public, results []domain.ActionResult) error {
	if len(results) != len(p.Actions) {
		err := fmt.Errorf("request %s: %w: %d results for %d actions",
			p.RequestID, domain.ErrMalformedResponse, len(results), len(p.Actions))
		c.failPending(log, p, err, observability.OutcomeMalformed)
		return err
	}
	if p.Handshake {
		if _, err := c.machine.Complete(sender.Slice()); err != nil {
			c.failPending(log, p, err, observability.OutcomeFailed)
			return err
		}
		log.Info().Str("peer", crypto.Fingerprint(sender).String()).Msg("session established")
	}
	if err := c.registry.Resolve(p.RequestID, results); err != nil {
		// Cancelled between lookup and resolution.
		c.metrics.Ingress(observability.OutcomeUnknown)
		log.Warn().Err(err).Msg("request vanished before resolution")
		return err
	}
	c.metrics.Ingress(observability.OutcomeResolved)
	c.metrics.SetPending(c.registry.Len())
	log.Info().Int("results", len(results)).Msg("response resolved")
	return nil
}

// failPending delivers err to p, undoing a pending handshake first.
func (c *Client) failPending(log zerolog.Logger, p domain.PendingRequest, err error, outcome string) {
	if p.Handshake {
		c.machine.Abort()
	}
	if ferr := c.registry.Fail(p.RequestID, err); ferr != nil {
		log.Warn().Err(ferr).Msg("request vanished before failure")
	}
	c.metrics.Ingress(outcome)
	c.metrics.SetPending(c.registry.Len())
	log.Warn().Err(err).Str("outcome", outcome).Msg("response failed request")
}
