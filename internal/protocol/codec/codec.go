package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"walletsegue/internal/domain"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

type actionsWire struct {
	Actions []domain.Action `json:"actions"`
}

type resultsWire struct {
	Results []resultWire `json:"results"`
}

type resultWire struct {
	Status  string          `json:"status"`
	Value   json.RawMessage `json:"value,omitempty"`
	Code    *int64          `json:"code,omitempty"`
	Message *string         `json:"message,omitempty"`
}

// EncodeActions serialises actions in order. An empty batch encodes as an
// empty array, never null.
func EncodeActions(actions []domain.Action) ([]byte, error) {
	if actions == nil {
		actions = []domain.Action{}
	}
	for i, a := range actions {
		if strings.TrimSpace(a.Method) == "" {
			return nil, fmt.Errorf("action %d: missing method", i)
		}
		if len(a.Params) > 0 && !json.Valid(a.Params) {
			return nil, fmt.Errorf("action %d (%s): params are not valid JSON", i, a.Method)
		}
	}
	return json.Marshal(actionsWire{Actions: actions})
}

// DecodeActions parses a request payload.
func DecodeActions(b []byte) ([]domain.Action, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	field, ok := raw["actions"]
	if !ok {
		return nil, fmt.Errorf("decode actions: missing actions")
	}
	var out []domain.Action
	if err := json.Unmarshal(field, &out); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	for i, a := range out {
		if strings.TrimSpace(a.Method) == "" {
			return nil, fmt.Errorf("decode actions: action %d missing method", i)
		}
	}
	if out == nil {
		out = []domain.Action{}
	}
	return out, nil
}

// EncodeResults serialises per-action results in order.
func EncodeResults(results []domain.ActionResult) ([]byte, error) {
	wire := resultsWire{Results: make([]resultWire, 0, len(results))}
	for i, r := range results {
		switch v := r.(type) {
		case domain.ActionSuccess:
			val := v.Value
			if len(val) == 0 {
				val = json.RawMessage("null")
			}
			wire.Results = append(wire.Results, resultWire{Status: statusSuccess, Value: val})
		case domain.ActionFailure:
			code, msg := v.Code, v.Message
			wire.Results = append(wire.Results, resultWire{Status: statusFailure, Code: &code, Message: &msg})
		default:
			return nil, fmt.Errorf("result %d: unsupported type %T", i, r)
		}
	}
	return json.Marshal(wire)
}

// DecodeResults parses a response payload. Any structural problem is
// reported as ErrMalformedResponse.
func DecodeResults(b []byte) ([]domain.ActionResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	field, ok := raw["results"]
	if !ok || bytes.Equal(bytes.TrimSpace(field), []byte("null")) {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformedResponse)
	}
	var wire []resultWire
	if err := json.Unmarshal(field, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	out := make([]domain.ActionResult, 0, len(wire))
	for i, w := range wire {
		switch w.Status {
		case statusSuccess:
			// Value "null" is legal; an absent value is not.
			if w.Value == nil {
				return nil, fmt.Errorf("%w: result %d: success without value", domain.ErrMalformedResponse, i)
			}
			out = append(out, domain.ActionSuccess{Value: w.Value})
		case statusFailure:
			if w.Code == nil || w.Message == nil {
				return nil, fmt.Errorf("%w: result %d: failure without code or message", domain.ErrMalformedResponse, i)
			}
			out = append(out, domain.ActionFailure{Code: *w.Code, Message: *w.Message})
		default:
			return nil, fmt.Errorf("%w: result %d: unknown status %q", domain.ErrMalformedResponse, i, w.Status)
		}
	}
	return out, nil
}
