package app

import (
	"walletsegue/internal/domain"
)

// Restore reloads requests persisted by an earlier invocation into the
// client and returns how many belong to the current session.
func (w *Wire) Restore(onSuccess domain.SuccessFunc, onFailure domain.FailureFunc) (int, error) {
	records, err := w.Pending.LoadPending()
	if err != nil {
		return 0, err
	}
	return w.Client.Restore(records, onSuccess, onFailure)
}

// Persist writes the client's outstanding requests for the next invocation.
func (w *Wire) Persist() error {
	return w.Pending.SavePending(w.Client.Pending())
}
