package domain

import (
	interfaces "walletsegue/internal/domain/interfaces"
	types "walletsegue/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	RequestID      = types.RequestID
	SessionID      = types.SessionID
	Fingerprint    = types.Fingerprint
	X25519Public   = types.X25519Public
	X25519Private  = types.X25519Private
	Action         = types.Action
	ActionResult   = types.ActionResult
	ActionSuccess  = types.ActionSuccess
	ActionFailure  = types.ActionFailure
	SessionState   = types.SessionState
	SessionRecord  = types.SessionRecord
	PendingRequest = types.PendingRequest
	PendingRecord  = types.PendingRecord
	SuccessFunc    = types.SuccessFunc
	FailureFunc    = types.FailureFunc
	BatchError     = types.BatchError
	PeerError      = types.PeerError
	CancelError    = types.CancelError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore     = interfaces.KeyStore
	PendingStore = interfaces.PendingStore
)

// Session states.
const (
	StateUnestablished = types.StateUnestablished
	StateHandshaking   = types.StateHandshaking
	StateEstablished   = types.StateEstablished
	StateDisconnected  = types.StateDisconnected
)

// Errors re-exported from the types subpackage.
var (
	ErrHandshake          = types.ErrHandshake
	ErrDecryption         = types.ErrDecryption
	ErrMalformedResponse  = types.ErrMalformedResponse
	ErrDuplicateRequest   = types.ErrDuplicateRequest
	ErrUnknownRequest     = types.ErrUnknownRequest
	ErrNotConnected       = types.ErrNotConnected
	ErrAlreadyInProgress  = types.ErrAlreadyInProgress
	ErrAlreadyEstablished = types.ErrAlreadyEstablished
	ErrRequestInFlight    = types.ErrRequestInFlight
	ErrCancelled          = types.ErrCancelled
	ErrDisconnected       = types.ErrDisconnected
	ErrInvalidHandshake   = types.ErrInvalidHandshake
	ErrNotSegueURL        = types.ErrNotSegueURL
)

// NewAction builds an Action with JSON-encoded params.
func NewAction(method string, params any, optional bool) (Action, error) {
	return types.NewAction(method, params, optional)
}

// ParseX25519Public copies b into a public key.
func ParseX25519Public(b []byte) (X25519Public, error) {
	return types.ParseX25519Public(b)
}
