package types

import "encoding/json"

// ActionResult is the outcome of a single action. It is a closed sum:
// the only implementations are ActionSuccess and ActionFailure.
type ActionResult interface {
	// OK reports whether the action succeeded.
	OK() bool
	isActionResult()
}

// ActionSuccess carries the value the wallet returned for an action.
type ActionSuccess struct {
	Value json.RawMessage
}

// OK implements ActionResult.
func (ActionSuccess) OK() bool { return true }

func (ActionSuccess) isActionResult() {}

// ActionFailure carries the wallet's error code and message for an action.
type ActionFailure struct {
	Code    int64
	Message string
}

// OK implements ActionResult.
func (ActionFailure) OK() bool { return false }

func (ActionFailure) isActionResult() {}
