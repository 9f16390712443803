package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrHandshake          = errors.New("handshake failed")
	ErrDecryption         = errors.New("payload decryption failed")
	ErrMalformedResponse  = errors.New("malformed response")
	ErrDuplicateRequest   = errors.New("duplicate request id")
	ErrUnknownRequest     = errors.New("unknown request")
	ErrNotConnected       = errors.New("session not established")
	ErrAlreadyInProgress  = errors.New("handshake already in progress")
	ErrAlreadyEstablished = errors.New("session already established")
	ErrRequestInFlight    = errors.New("request already in flight")
	ErrCancelled          = errors.New("request cancelled")
	ErrDisconnected       = errors.New("session disconnected")
	ErrInvalidHandshake   = errors.New("action not allowed in handshake")
	ErrNotSegueURL        = errors.New("url is not a wallet response")
)

// BatchError reports a batch in which at least one non-optional action
// failed. Results holds every decoded result, in action order.
type BatchError struct {
	RequestID RequestID
	Actions   []Action
	Results   []ActionResult
}

// Failures returns the indices of the failed actions.
func (e *BatchError) Failures() []int {
	var out []int
	for i, r := range e.Results {
		if !r.OK() {
			out = append(out, i)
		}
	}
	return out
}

// First returns the first failure belonging to a non-optional action.
func (e *BatchError) First() (int, ActionFailure, bool) {
	for i, r := range e.Results {
		f, ok := r.(ActionFailure)
		if !ok {
			continue
		}
		if i < len(e.Actions) && e.Actions[i].Optional {
			continue
		}
		return i, f, true
	}
	return -1, ActionFailure{}, false
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "request %s: batch failed", e.RequestID)
	if i, f, ok := e.First(); ok {
		method := ""
		if i < len(e.Actions) {
			method = e.Actions[i].Method
		}
		fmt.Fprintf(&b, ": action %d (%s): code %d: %s", i, method, f.Code, f.Message)
	}
	return b.String()
}

// PeerError is a whole-request failure reported by the wallet instead of
// per-action results.
type PeerError struct {
	RequestID   RequestID
	Description string
}

func (e *PeerError) Error() string {
	return fmt.Sprintf("request %s: wallet failure: %s", e.RequestID, e.Description)
}

// CancelError wraps the caller's reason for a cancellation.
type CancelError struct {
	RequestID RequestID
	Reason    string
}

func (e *CancelError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("request %s: %v", e.RequestID, ErrCancelled)
	}
	return fmt.Sprintf("request %s: %v: %s", e.RequestID, ErrCancelled, e.Reason)
}

// Is lets errors.Is(err, ErrCancelled) match.
func (e *CancelError) Is(target error) bool { return target == ErrCancelled }
