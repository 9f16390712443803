package types

import "time"

// SuccessFunc receives the per-action results of a fully successful batch.
type SuccessFunc func(results []ActionResult)

// FailureFunc receives the reason a request did not succeed.
type FailureFunc func(err error)

// PendingRequest correlates a dispatched request with its completion
// callbacks until the response arrives or the request is cancelled.
type PendingRequest struct {
	RequestID RequestID
	SessionID SessionID
	Actions   []Action
	Handshake bool
	OnSuccess SuccessFunc
	OnFailure FailureFunc
	CreatedAt time.Time
}

// Record returns the serialisable projection of p.
func (p PendingRequest) Record() PendingRecord {
	return PendingRecord{
		RequestID:  p.RequestID,
		SessionID:  p.SessionID,
		Actions:    append([]Action(nil), p.Actions...),
		Handshake:  p.Handshake,
		CreatedUTC: p.CreatedAt.Unix(),
	}
}

// PendingRecord is a PendingRequest without its callbacks, suitable for
// persisting across process restarts.
type PendingRecord struct {
	RequestID  RequestID `json:"request_id"`
	SessionID  SessionID `json:"session_id"`
	Actions    []Action  `json:"actions"`
	Handshake  bool      `json:"handshake,omitempty"`
	CreatedUTC int64     `json:"created_utc"`
}
