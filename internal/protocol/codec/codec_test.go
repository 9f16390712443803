package codec_test

import (
	"encoding/json"
	"errors"
	"testing"

	"walletsegue/internal/domain"
	"walletsegue/internal/protocol/codec"
)

func TestActionsRoundTrip(t *testing.T) {
	a1, err := domain.NewAction("eth_requestAccounts", nil, false)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}
	a2, err := domain.NewAction("personal_sign", []string{"0xdead", "0xbeef"}, true)
	if err != nil {
		t.Fatalf("NewAction: %v", err)
	}
	in := []domain.Action{a1, a2}

	b, err := codec.EncodeActions(in)
	if err != nil {
		t.Fatalf("EncodeActions: %v", err)
	}
	out, err := codec.DecodeActions(b)
	if err != nil {
		t.Fatalf("DecodeActions: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Method != in[i].Method || out[i].Optional != in[i].Optional || string(out[i].Params) != string(in[i].Params) {
			t.Fatalf("action %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestEncodeActionsEmptyIsArray(t *testing.T) {
	b, err := codec.EncodeActions(nil)
	if err != nil {
		t.Fatalf("EncodeActions: %v", err)
	}
	if string(b) != `{"actions":[]}` {
		t.Fatalf("EncodeActions(nil) = %s", b)
	}
}

func TestEncodeActionsRejectsMissingMethod(t *testing.T) {
	if _, err := codec.EncodeActions([]domain.Action{{}}); err == nil {
		t.Fatal("expected error for empty method")
	}
}

func TestResultsRoundTrip(t *testing.T) {
	in := []domain.ActionResult{
		domain.ActionSuccess{Value: json.RawMessage(`["0xabc"]`)},
		domain.ActionFailure{Code: 4001, Message: "User rejected"},
		domain.ActionSuccess{Value: json.RawMessage(`null`)},
	}
	b, err := codec.EncodeResults(in)
	if err != nil {
		t.Fatalf("EncodeResults: %v", err)
	}
	out, err := codec.DecodeResults(b)
	if err != nil {
		t.Fatalf("DecodeResults: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	if s, ok := out[0].(domain.ActionSuccess); !ok || string(s.Value) != `["0xabc"]` {
		t.Fatalf("result 0 = %#v", out[0])
	}
	if f, ok := out[1].(domain.ActionFailure); !ok || f.Code != 4001 || f.Message != "User rejected" {
		t.Fatalf("result 1 = %#v", out[1])
	}
	if s, ok := out[2].(domain.ActionSuccess); !ok || string(s.Value) != "null" {
		t.Fatalf("result 2 = %#v", out[2])
	}
}

func TestDecodeResultsIgnoresUnknownFields(t *testing.T) {
	b := []byte(`{"extra":1,"results":[{"status":"success","value":1,"trace":"x"}]}`)
	out, err := codec.DecodeResults(b)
	if err != nil {
		t.Fatalf("DecodeResults: %v", err)
	}
	if len(out) != 1 || !out[0].OK() {
		t.Fatalf("DecodeResults = %#v", out)
	}
}

func TestDecodeResultsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"missing results":   `{"data":[]}`,
		"null results":      `{"results":null}`,
		"results not array": `{"results":{}}`,
		"unknown status":    `{"results":[{"status":"maybe"}]}`,
		"success no value":  `{"results":[{"status":"success"}]}`,
		"failure no code":   `{"results":[{"status":"failure","message":"x"}]}`,
		"failure no msg":    `{"results":[{"status":"failure","code":1}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.DecodeResults([]byte(in))
			if !errors.Is(err, domain.ErrMalformedResponse) {
				t.Fatalf("got %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestDecodeResultsEmpty(t *testing.T) {
	out, err := codec.DecodeResults([]byte(`{"results":[]}`))
	if err != nil {
		t.Fatalf("DecodeResults: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d", len(out))
	}
}
