// Package segue is the public entry point for talking to an external wallet
// application through app-to-app links.
//
//	client, err := segue.New(segue.Config{WalletURL: "https://wallet.example/wsegue"}, store)
//	out, err := client.InitiateHandshake(actions, onSuccess, onFailure)
//	// open out.URL; later, in the OS callback:
//	err = client.HandleResponseURL(callbackURL)
package segue

import (
	"walletsegue/internal/domain"
	"walletsegue/internal/observability"
	inner "walletsegue/internal/services/segue"
)

type (
	Client          = inner.Client
	Config          = inner.Config
	Outbound        = inner.Outbound
	Option          = inner.Option
	HandshakeOption = inner.HandshakeOption
	Action          = domain.Action
	ActionResult    = domain.ActionResult
	ActionSuccess   = domain.ActionSuccess
	ActionFailure   = domain.ActionFailure
	BatchError      = domain.BatchError
	PeerError       = domain.PeerError
	KeyStore        = domain.KeyStore
	SessionState    = domain.SessionState
	PendingRecord   = domain.PendingRecord
	SuccessFunc     = domain.SuccessFunc
	FailureFunc     = domain.FailureFunc
	Metrics         = observability.Metrics
)

var (
	New         = inner.New
	WithLogger  = inner.WithLogger
	WithMetrics = inner.WithMetrics
	WithClock   = inner.WithClock
	WithForce   = inner.WithForce
	NewAction   = domain.NewAction
	NewMetrics  = observability.NewMetrics
)

// Errors callers match with errors.Is.
var (
	ErrHandshake         = domain.ErrHandshake
	ErrDecryption        = domain.ErrDecryption
	ErrMalformedResponse = domain.ErrMalformedResponse
	ErrUnknownRequest    = domain.ErrUnknownRequest
	ErrNotConnected      = domain.ErrNotConnected
	ErrAlreadyInProgress = domain.ErrAlreadyInProgress
	ErrRequestInFlight   = domain.ErrRequestInFlight
	ErrCancelled         = domain.ErrCancelled
	ErrDisconnected      = domain.ErrDisconnected
	ErrInvalidHandshake  = domain.ErrInvalidHandshake
	ErrNotSegueURL       = domain.ErrNotSegueURL
)
