package types

import (
	"encoding/json"
	"fmt"
)

// Action is one requested wallet operation inside a batch.
//
// Params is opaque to the protocol and forwarded verbatim. An Optional action
// may fail without failing the batch it belongs to.
type Action struct {
	Method   string          `json:"method"`
	Params   json.RawMessage `json:"params,omitempty"`
	Optional bool            `json:"optional,omitempty"`
}

// NewAction marshals params and returns the resulting Action.
func NewAction(method string, params any, optional bool) (Action, error) {
	if method == "" {
		return Action{}, fmt.Errorf("action method is required")
	}
	a := Action{Method: method, Optional: optional}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return Action{}, fmt.Errorf("action %q params: %w", method, err)
		}
		a.Params = raw
	}
	return a, nil
}
