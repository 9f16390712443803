package envelope_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/protocol/envelope"
)

func TestEncodeURLParseResponse(t *testing.T) {
	resp := envelope.Response{
		RequestID:        "req-1",
		SessionID:        "sess-1",
		Version:          envelope.Version,
		Timestamp:        1700000000,
		EncryptedPayload: crypto.B64([]byte("sealed")),
	}
	u, err := envelope.EncodeURL("https://host.example/wsegue?keep=1", resp)
	if err != nil {
		t.Fatalf("EncodeURL: %v", err)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}
	if parsed.Query().Get("keep") != "1" {
		t.Fatalf("existing query lost: %s", u)
	}
	if parsed.Query().Get(envelope.Param) == "" {
		t.Fatalf("no p parameter: %s", u)
	}

	got, err := envelope.ParseResponse([]byte(u))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if got.RequestID != resp.RequestID || got.SessionID != resp.SessionID || got.EncryptedPayload != resp.EncryptedPayload {
		t.Fatalf("ParseResponse = %+v, want %+v", got, resp)
	}

	// The bare parameter and the raw JSON decode to the same thing.
	bare, err := envelope.ParseResponse([]byte(parsed.Query().Get(envelope.Param)))
	if err != nil || bare.RequestID != resp.RequestID {
		t.Fatalf("bare base64: %+v, %v", bare, err)
	}
	raw := `{"requestId":"req-1","sessionId":"sess-1","version":"1","timestamp":1,"failure":{"description":"nope"}}`
	failed, err := envelope.ParseResponse([]byte(raw))
	if err != nil {
		t.Fatalf("raw JSON: %v", err)
	}
	if failed.Failure == nil || failed.Failure.Description != "nope" {
		t.Fatalf("failure = %+v", failed.Failure)
	}
}

func TestParseResponseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":         "   ",
		"bad json":      "{nope",
		"no request id": `{"sessionId":"s","encryptedPayload":"AA"}`,
		"no session id": `{"requestId":"r","encryptedPayload":"AA"}`,
		"no payload":    `{"requestId":"r","sessionId":"s"}`,
		"not base64":    "***",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := envelope.ParseResponse([]byte(in)); !errors.Is(err, domain.ErrMalformedResponse) {
				t.Fatalf("got %v, want ErrMalformedResponse", err)
			}
		})
	}
	if _, err := envelope.ParseResponse([]byte("https://host.example/cb?x=1")); !errors.Is(err, domain.ErrNotSegueURL) {
		t.Fatalf("url without p: got %v, want ErrNotSegueURL", err)
	}
}

func TestParseRequestHandshake(t *testing.T) {
	a, _ := domain.NewAction("eth_requestAccounts", nil, false)
	req := envelope.Request{
		RequestID: "r",
		SessionID: "s",
		Version:   envelope.Version,
		Sender:    crypto.B64(make([]byte, 32)),
		Handshake: &envelope.Handshake{InitialActions: []domain.Action{a}},
	}
	u, err := envelope.EncodeURL("wallet://wsegue", req)
	if err != nil {
		t.Fatalf("EncodeURL: %v", err)
	}
	got, err := envelope.ParseRequest([]byte(u))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if got.Handshake == nil || len(got.Handshake.InitialActions) != 1 || got.Handshake.InitialActions[0].Method != "eth_requestAccounts" {
		t.Fatalf("handshake = %+v", got.Handshake)
	}
	if _, err := envelope.SenderKey(got.Sender); err != nil {
		t.Fatalf("SenderKey: %v", err)
	}
}

func TestMatchesCallback(t *testing.T) {
	cb := "https://app.example/wsegue"
	if !envelope.MatchesCallback(cb+"?p=abc", cb) {
		t.Fatal("same host/path should match")
	}
	if envelope.MatchesCallback("https://evil.example/wsegue?p=abc", cb) {
		t.Fatal("different host should not match")
	}
	if envelope.MatchesCallback("https://app.example/other?p=abc", cb) {
		t.Fatal("different path should not match")
	}
	if envelope.MatchesCallback(cb, cb) {
		t.Fatal("missing p should not match")
	}
}

func TestAssociatedData(t *testing.T) {
	ad := string(envelope.AssociatedData("r1", "s1"))
	if !strings.Contains(ad, "r1") || !strings.Contains(ad, "s1") {
		t.Fatalf("AssociatedData = %q", ad)
	}
}
