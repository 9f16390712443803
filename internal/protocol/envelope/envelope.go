package envelope

import (
	"fmt"
	"strings"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
)

// Version is the protocol version written into every outbound envelope.
const Version = "1"

// Request is a host-to-wallet message.
type Request struct {
	RequestID        domain.RequestID `json:"requestId"`
	SessionID        domain.SessionID `json:"sessionId"`
	Version          string           `json:"version"`
	Sender           string           `json:"sender"`
	AppID            string           `json:"appId,omitempty"`
	Callback         string           `json:"callback,omitempty"`
	Timestamp        int64            `json:"timestamp"`
	Handshake        *Handshake       `json:"handshake,omitempty"`
	EncryptedPayload string           `json:"encryptedPayload,omitempty"`
}

// Handshake carries the initial actions of a key exchange. InitialActions
// is used in clear on first contact; SealedActions when renegotiating
// under a previous key.
type Handshake struct {
	InitialActions []domain.Action `json:"initialActions,omitempty"`
	SealedActions  string          `json:"sealedActions,omitempty"`
}

// Response is a wallet-to-host message.
type Response struct {
	RequestID        domain.RequestID `json:"requestId"`
	SessionID        domain.SessionID `json:"sessionId"`
	Version          string           `json:"version"`
	Sender           string           `json:"sender,omitempty"`
	Timestamp        int64            `json:"timestamp"`
	EncryptedPayload string           `json:"encryptedPayload,omitempty"`
	Failure          *Failure         `json:"failure,omitempty"`
}

// Failure is a whole-request error reported by the wallet.
type Failure struct {
	Description string `json:"description"`
}

// Validate checks the fields every response must carry.
func (r Response) Validate() error {
	if strings.TrimSpace(string(r.RequestID)) == "" {
		return fmt.Errorf("%w: response missing requestId", domain.ErrMalformedResponse)
	}
	if strings.TrimSpace(string(r.SessionID)) == "" {
		return fmt.Errorf("%w: response missing sessionId", domain.ErrMalformedResponse)
	}
	if r.Failure == nil && r.EncryptedPayload == "" {
		return fmt.Errorf("%w: response has neither payload nor failure", domain.ErrMalformedResponse)
	}
	return nil
}

// Validate checks the fields every request must carry.
func (r Request) Validate() error {
	if strings.TrimSpace(string(r.RequestID)) == "" {
		return fmt.Errorf("request missing requestId")
	}
	if strings.TrimSpace(string(r.SessionID)) == "" {
		return fmt.Errorf("request missing sessionId")
	}
	if r.Sender == "" {
		return fmt.Errorf("request missing sender")
	}
	if r.Handshake == nil && r.EncryptedPayload == "" {
		return fmt.Errorf("request has neither handshake nor payload")
	}
	return nil
}

// SenderKey decodes the base64 sender public key.
func SenderKey(s string) (domain.X25519Public, error) {
	b, err := crypto.DecodeB64(s)
	if err != nil {
		return domain.X25519Public{}, err
	}
	return domain.ParseX25519Public(b)
}

// AssociatedData binds a sealed payload to its correlation identifiers.
func AssociatedData(req domain.RequestID, sess domain.SessionID) []byte {
	return []byte(string(req) + "|" + string(sess))
}

// SealedPayload decodes an encryptedPayload field into raw bytes.
func SealedPayload(s string) ([]byte, error) {
	b, err := crypto.DecodeB64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: payload encoding: %v", domain.ErrDecryption, err)
	}
	return b, nil
}
