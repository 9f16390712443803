package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
)

// Param is the query parameter that carries an encoded message.
const Param = "p"

// EncodeURL appends msg, JSON then base64url encoded, to base as ?p=.
func EncodeURL(base string, msg any) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	q := u.Query()
	q.Set(Param, crypto.B64URL(b))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Unwrap returns the JSON bytes of a message given as a URL with a p
// parameter, a bare base64 string, or raw JSON.
func Unwrap(raw []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrMalformedResponse)
	}
	if trimmed[0] == '{' {
		return trimmed, nil
	}
	s := string(trimmed)
	if strings.Contains(s, "://") || strings.Contains(s, "?") {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		p := u.Query().Get(Param)
		if p == "" {
			return nil, fmt.Errorf("%w: missing %q parameter", domain.ErrNotSegueURL, Param)
		}
		s = p
	}
	b, err := crypto.DecodeB64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return b, nil
}

// ParseResponse decodes and validates a wallet response in any accepted form.
func ParseResponse(raw []byte) (Response, error) {
	b, err := Unwrap(raw)
	if err != nil {
		return Response{}, err
	}
	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return Response{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if err := r.Validate(); err != nil {
		return Response{}, err
	}
	return r, nil
}

// ParseRequest decodes and validates a host request in any accepted form.
func ParseRequest(raw []byte) (Request, error) {
	b, err := Unwrap(raw)
	if err != nil {
		return Request{}, err
	}
	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Request{}, err
	}
	return r, nil
}

// MatchesCallback reports whether raw points at the same host and path as
// callback and carries a p parameter.
func MatchesCallback(raw, callback string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	c, err := url.Parse(callback)
	if err != nil {
		return false
	}
	return u.Scheme == c.Scheme && u.Host == c.Host && u.Path == c.Path && u.Query().Get(Param) != ""
}
