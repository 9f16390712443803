package peer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"walletsegue/internal/crypto"
	"walletsegue/internal/domain"
	"walletsegue/internal/peer"
	"walletsegue/internal/protocol/codec"
	"walletsegue/internal/protocol/envelope"
)

func hostRequest(t *testing.T, host crypto.KeyPair, hs *envelope.Handshake) string {
	t.Helper()
	u, err := envelope.EncodeURL("https://wallet.example/wsegue", envelope.Request{
		RequestID: "req-1",
		SessionID: "sess-1",
		Version:   envelope.Version,
		Sender:    crypto.B64(host.Public.Slice()),
		Handshake: hs,
	})
	require.NoError(t, err)
	return u
}

func TestWallet_HandshakeRotatesAndSeals(t *testing.T) {
	host, err := crypto.NewKeyPair()
	require.NoError(t, err)
	w, err := peer.NewWallet()
	require.NoError(t, err)
	before := w.KeyPair().Public

	actions := []domain.Action{{Method: "eth_requestAccounts"}}
	in, err := w.Decode([]byte(hostRequest(t, host, &envelope.Handshake{InitialActions: actions})))
	require.NoError(t, err)
	require.True(t, in.Handshake)
	require.Equal(t, actions, in.Actions)

	reply, err := w.Respond(in, peer.Succeed(in.Actions, `["0xabc"]`))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply, peer.DefaultCallback+"?p="))
	require.NotEqual(t, before, w.KeyPair().Public)

	resp, err := envelope.ParseResponse([]byte(reply))
	require.NoError(t, err)
	sender, err := envelope.SenderKey(resp.Sender)
	require.NoError(t, err)
	require.Equal(t, w.KeyPair().Public, sender)

	key, err := host.Establish(sender.Slice())
	require.NoError(t, err)
	sealed, err := envelope.SealedPayload(resp.EncryptedPayload)
	require.NoError(t, err)
	plain, err := crypto.Open(key, sealed, envelope.AssociatedData("req-1", "sess-1"))
	require.NoError(t, err)
	results, err := codec.DecodeResults(plain)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].OK())
}

func TestWallet_SealedRequest(t *testing.T) {
	host, err := crypto.NewKeyPair()
	require.NoError(t, err)
	w, err := peer.NewWallet()
	require.NoError(t, err)
	key, err := host.Establish(w.KeyPair().Public.Slice())
	require.NoError(t, err)

	actions := []domain.Action{{Method: "personal_sign", Params: []byte(`["0x68","0x01"]`)}}
	payload, err := codec.EncodeActions(actions)
	require.NoError(t, err)
	sealed, err := crypto.Seal(key, payload, envelope.AssociatedData("req-1", "sess-1"))
	require.NoError(t, err)

	req := envelope.Request{
		RequestID:        "req-1",
		SessionID:        "sess-1",
		Sender:           crypto.B64(host.Public.Slice()),
		Callback:         "myapp://segue",
		EncryptedPayload: crypto.B64(sealed),
	}
	u, err := envelope.EncodeURL("https://wallet.example/wsegue", req)
	require.NoError(t, err)

	in, err := w.Decode([]byte(u))
	require.NoError(t, err)
	require.False(t, in.Handshake)
	require.Equal(t, "personal_sign", in.Actions[0].Method)
	require.JSONEq(t, `["0x68","0x01"]`, string(in.Actions[0].Params))

	reply, err := w.Reject(in, "user declined")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply, "myapp://segue?p="))
	resp, err := envelope.ParseResponse([]byte(reply))
	require.NoError(t, err)
	require.NotNil(t, resp.Failure)
	require.Equal(t, "user declined", resp.Failure.Description)

	// Bound to its ids: the same ciphertext under another request id fails.
	req.RequestID = "req-2"
	u, err = envelope.EncodeURL("https://wallet.example/wsegue", req)
	require.NoError(t, err)
	_, err = w.Decode([]byte(u))
	require.True(t, errors.Is(err, domain.ErrDecryption), "got %v", err)
}
