package peer

import (
	"fmt"
	"sync"
	"time"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/protocol/codec"
	"walletsegue/internal/protocol/envelope"
)

// DefaultCallback is used when a request names no callback URL.
const DefaultCallback = "walletsegue://callback"

// Incoming is a decoded host request.
type Incoming struct {
	Request envelope.Request
	Actions []domain.Action
	// Handshake is set when the request opens or renegotiates a session.
	Handshake bool
}

// Wallet answers host requests. It rotates its key pair on every handshake.
type Wallet struct {
	mu   sync.Mutex
	keys crypto.KeyPair
	now  func() time.Time
}

// NewWallet returns a wallet with a fresh key pair.
func NewWallet() (*Wallet, error) {
	kp, err := crypto.NewKeyPair()
	if err != nil {
		return nil, err
	}
	return FromKeyPair(kp), nil
}

// FromKeyPair returns a wallet using kp.
func FromKeyPair(kp crypto.KeyPair) *Wallet {
	return &Wallet{keys: kp, now: time.Now}
}

// KeyPair returns the wallet's current key pair.
func (w *Wallet) KeyPair() crypto.KeyPair {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.keys
}

// Decode reads a host request given as a URL, base64 or JSON.
//
// A sealed renegotiation is opened with the key the wallet shared with the
// host before rotating.
func (w *Wallet) Decode(raw []byte) (Incoming, error) {
	req, err := envelope.ParseRequest(raw)
	if err != nil {
		return Incoming{}, err
	}
	in := Incoming{Request: req, Handshake: req.Handshake != nil}

	switch {
	case req.Handshake != nil && req.Handshake.SealedActions == "":
		in.Actions = req.Handshake.InitialActions
	case req.Handshake != nil:
		in.Actions, err = w.openActions(req, req.Handshake.SealedActions)
	default:
		in.Actions, err = w.openActions(req, req.EncryptedPayload)
	}
	if err != nil {
		return Incoming{}, err
	}
	if in.Actions == nil {
		in.Actions = []domain.Action{}
	}
	return in, nil
}

// Respond seals results for in and returns the callback URL carrying them.
// Answering a handshake rotates the wallet key first.
func (w *Wallet) Respond(in Incoming, results []domain.ActionResult) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if in.Handshake {
		kp, err := crypto.NewKeyPair()
		if err != nil {
			return "", err
		}
		w.keys = kp
	}
	key, err := w.keyFor(in.Request)
	if err != nil {
		return "", err
	}
	defer key.Wipe()

	payload, err := codec.EncodeResults(results)
	if err != nil {
		return "", err
	}
	sealed, err := crypto.Seal(key, payload, envelope.AssociatedData(in.Request.RequestID, in.Request.SessionID))
	if err != nil {
		return "", err
	}
	resp := w.baseResponse(in)
	resp.Sender = crypto.B64(w.keys.Public.Slice())
	resp.EncryptedPayload = crypto.B64(sealed)
	return envelope.EncodeURL(callback(in), resp)
}

// Reject answers in with a whole-request failure.
func (w *Wallet) Reject(in Incoming, description string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	resp := w.baseResponse(in)
	resp.Failure = &envelope.Failure{Description: description}
	return envelope.EncodeURL(callback(in), resp)
}

func (w *Wallet) openActions(req envelope.Request, payload string) ([]domain.Action, error) {
	w.mu.Lock()
	key, err := w.keyFor(req)
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	sealed, err := crypto.DecodeB64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %v", domain.ErrDecryption, err)
	}
	plain, err := crypto.Open(key, sealed, envelope.AssociatedData(req.RequestID, req.SessionID))
	if err != nil {
		return nil, err
	}
	return codec.DecodeActions(plain)
}

// keyFor derives the key shared with the request's sender. Callers hold w.mu.
func (w *Wallet) keyFor(req envelope.Request) (crypto.SymmetricKey, error) {
	host, err := envelope.SenderKey(req.Sender)
	if err != nil {
		return crypto.SymmetricKey{}, fmt.Errorf("%w: sender key: %v", domain.ErrHandshake, err)
	}
	return w.keys.Establish(host.Slice())
}

func (w *Wallet) baseResponse(in Incoming) envelope.Response {
	return envelope.Response{
		RequestID: in.Request.RequestID,
		SessionID: in.Request.SessionID,
		Version:   in.Request.Version,
		Timestamp: w.now().Unix(),
	}
}

func callback(in Incoming) string {
	if in.Request.Callback != "" {
		return in.Request.Callback
	}
	return DefaultCallback
}

// Succeed returns a success result for every action, each carrying value.
func Succeed(actions []domain.Action, value string) []domain.ActionResult {
	out := make([]domain.ActionResult, len(actions))
	for i := range actions {
		out[i] = domain.ActionSuccess{Value: []byte(value)}
	}
	return out
}
